package domain

// Product mirrors the backend's product resource. Fields missing from a
// response decode to their zero values.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Supplier    string  `json:"supplier"`
	Quantity    int     `json:"quantity"`
	MinStock    int     `json:"minStock"`
	Price       float64 `json:"price"`
	LastUpdated string  `json:"lastUpdated,omitempty"`
}

// ProductInput is the body sent on create and update.
type ProductInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Supplier string  `json:"supplier"`
	Quantity int     `json:"quantity"`
	MinStock int     `json:"minStock"`
	Price    float64 `json:"price"`
}

func (p Product) Input() ProductInput {
	return ProductInput{
		Name:     p.Name,
		Category: p.Category,
		Supplier: p.Supplier,
		Quantity: p.Quantity,
		MinStock: p.MinStock,
		Price:    p.Price,
	}
}

func (p Product) StockStatus() StockStatus {
	return StatusOf(p.Quantity, p.MinStock)
}

// IsLowStock reports quantity at or below the reorder threshold, which
// includes out-of-stock products.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}

type StockStatus int

const (
	InStock StockStatus = iota
	LowStock
	OutOfStock
)

func StatusOf(quantity, minStock int) StockStatus {
	switch {
	case quantity == 0:
		return OutOfStock
	case quantity <= minStock:
		return LowStock
	default:
		return InStock
	}
}

func (s StockStatus) Label() string {
	switch s {
	case OutOfStock:
		return "Out of Stock"
	case LowStock:
		return "Low Stock"
	default:
		return "In Stock"
	}
}

// String returns the css-friendly key used by the templates.
func (s StockStatus) String() string {
	switch s {
	case OutOfStock:
		return "out"
	case LowStock:
		return "low"
	default:
		return "in"
	}
}
