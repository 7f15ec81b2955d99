package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		minStock int
		want     StockStatus
	}{
		{"zero quantity is out of stock", 0, 10, OutOfStock},
		{"zero quantity with zero threshold", 0, 0, OutOfStock},
		{"quantity equal to threshold is low", 5, 5, LowStock},
		{"quantity below threshold is low", 3, 5, LowStock},
		{"one above threshold is in stock", 6, 5, InStock},
		{"positive quantity with zero threshold", 1, 0, InStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.quantity, tt.minStock))
		})
	}
}

func TestProduct_StockStatus(t *testing.T) {
	p := Product{ID: 1, Name: "Apple", Quantity: 5, MinStock: 10}

	assert.Equal(t, LowStock, p.StockStatus())
	assert.True(t, p.IsLowStock())
}

func TestStockStatus_Labels(t *testing.T) {
	assert.Equal(t, "Out of Stock", OutOfStock.Label())
	assert.Equal(t, "Low Stock", LowStock.Label())
	assert.Equal(t, "In Stock", InStock.Label())

	assert.Equal(t, "out", OutOfStock.String())
	assert.Equal(t, "low", LowStock.String())
	assert.Equal(t, "in", InStock.String())
}

func TestProduct_Input(t *testing.T) {
	p := Product{
		ID:          7,
		Name:        "Desk",
		Category:    "Furniture",
		Supplier:    "Ikea",
		Quantity:    4,
		MinStock:    2,
		Price:       1999.5,
		LastUpdated: "2024-05-01T10:00:00",
	}

	in := p.Input()

	assert.Equal(t, ProductInput{
		Name:     "Desk",
		Category: "Furniture",
		Supplier: "Ikea",
		Quantity: 4,
		MinStock: 2,
		Price:    1999.5,
	}, in)
}

func TestComputeStatistics(t *testing.T) {
	products := []Product{
		{ID: 1, Quantity: 5, MinStock: 10, Price: 2},
		{ID: 2, Quantity: 0, MinStock: 3, Price: 100},
		{ID: 3, Quantity: 20, MinStock: 3, Price: 1.5},
	}

	stats := ComputeStatistics(products)

	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.LowStockCount)
	assert.Equal(t, 1, stats.OutOfStockCount)
	assert.InDelta(t, 40.0, stats.TotalValue, 0.0001)
}

func TestComputeStatistics_Empty(t *testing.T) {
	assert.Equal(t, Statistics{}, ComputeStatistics(nil))
}
