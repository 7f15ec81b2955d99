package view

import (
	"tracknstock/internal/domain"
	apperrors "tracknstock/internal/errors"
	"tracknstock/internal/filter"
	"tracknstock/internal/viewstate"
)

// PageInventory is the template name of the dashboard.
const PageInventory = "inventory"

type StatusOption struct {
	Value string
	Label string
}

var statusOptions = []StatusOption{
	{Value: string(filter.StatusAll), Label: "All Stock"},
	{Value: string(filter.StatusLow), Label: "Low Stock"},
	{Value: string(filter.StatusInStock), Label: "In Stock"},
}

// InventoryPage is everything the dashboard template reads.
type InventoryPage struct {
	State      viewstate.State
	Products   []domain.Product
	Total      int
	Statistics domain.Statistics
	Categories []string
	// Brands narrows the modal's brand list client side.
	Brands   map[string][]string
	Statuses []StatusOption
	// FieldErrors maps form field names to messages for the open modal.
	FieldErrors  map[string]string
	DeleteTarget *domain.Product
	// Return carries the filter selections through form posts.
	Return string
}

// NewInventoryPage derives the page from the view state and the full
// product collection.
func NewInventoryPage(s viewstate.State, products []domain.Product, stats domain.Statistics) InventoryPage {
	page := InventoryPage{
		State:       s,
		Products:    s.Visible(products),
		Total:       len(products),
		Statistics:  stats,
		Categories:  domain.Categories(),
		Brands:      domain.BrandCatalog(),
		Statuses:    statusOptions,
		FieldErrors: map[string]string{},
		Return:      s.Query().Encode(),
	}
	if s.DeleteID != 0 {
		for i := range products {
			if products[i].ID == s.DeleteID {
				p := products[i]
				page.DeleteTarget = &p
				break
			}
		}
	}
	return page
}

// WithError attaches per-field messages when err is a validation error.
func (p InventoryPage) WithError(err error) InventoryPage {
	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		return p
	}
	fields := make(map[string]string, len(ve.Details))
	for _, d := range ve.Details {
		fields[d.Field] = d.Message
	}
	p.FieldErrors = fields
	return p
}
