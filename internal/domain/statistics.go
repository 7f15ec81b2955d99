package domain

// Statistics is computed by the backend over the whole inventory and is
// fetched separately from the product list.
type Statistics struct {
	TotalProducts   int     `json:"totalProducts"`
	LowStockCount   int     `json:"lowStockCount"`
	OutOfStockCount int     `json:"outOfStockCount"`
	TotalValue      float64 `json:"totalValue"`
}

// ComputeStatistics aggregates products the same way the backend does.
func ComputeStatistics(products []Product) Statistics {
	stats := Statistics{TotalProducts: len(products)}
	for _, p := range products {
		if p.IsLowStock() {
			stats.LowStockCount++
		}
		if p.Quantity == 0 {
			stats.OutOfStockCount++
		}
		stats.TotalValue += float64(p.Quantity) * p.Price
	}
	return stats
}
