package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracknstock/internal/domain"
)

func TestWriteCSV(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Apple", Category: "Fruits", Supplier: "FarmFresh", Quantity: 5, MinStock: 10, Price: 120.5},
		{ID: 2, Name: "Banana", Category: "Fruits", Supplier: "TropicalTaste", Quantity: 0, MinStock: 3, Price: 40},
		{ID: 3, Name: "Sofa", Category: "Furniture", Supplier: "Ikea", Quantity: 8, MinStock: 2, Price: 25999.99},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, products))

	want := "Brand,Name,Category,Quantity,Min Stock,Price (₹),Status\n" +
		"FarmFresh,Apple,Fruits,5,10,120.5,Low Stock\n" +
		"TropicalTaste,Banana,Fruits,0,3,40,Out of Stock\n" +
		"Ikea,Sofa,Furniture,8,2,25999.99,In Stock\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_EscapesCommasAndQuotes(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: `Chair, "Deluxe"`, Category: "Furniture", Supplier: "H&M", Quantity: 1, MinStock: 0, Price: 10},
		{ID: 2, Name: "Multi\nline", Category: "Kitchen", Supplier: "Philips", Quantity: 4, MinStock: 1, Price: 2},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, products))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Len(t, records[1], 7)
	assert.Equal(t, `Chair, "Deluxe"`, records[1][1])
	assert.Equal(t, "Multi\nline", records[2][1])
}

func TestWriteCSV_EmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, "Brand,Name,Category,Quantity,Min Stock,Price (₹),Status\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteCSV_PropagatesWriteError(t *testing.T) {
	err := WriteCSV(failingWriter{}, []domain.Product{{ID: 1, Name: "x"}})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "inventory_report.csv", FileName)
}
