// Package filter derives the visible product list from the full collection
// and the active search and filter selections.
package filter

import (
	"strings"

	"tracknstock/internal/domain"
)

// All disables the category or brand filter.
const All = "all"

type StatusFilter string

const (
	StatusAll     StatusFilter = "all"
	StatusLow     StatusFilter = "low"
	StatusInStock StatusFilter = "in-stock"
)

func ParseStatus(s string) (StatusFilter, bool) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case StatusAll:
		return StatusAll, true
	case StatusLow:
		return StatusLow, true
	case StatusInStock:
		return StatusInStock, true
	default:
		return StatusAll, false
	}
}

type Criteria struct {
	Search   string
	Status   StatusFilter
	Category string
	Brand    string
}

func DefaultCriteria() Criteria {
	return Criteria{
		Search:   "",
		Status:   StatusAll,
		Category: All,
		Brand:    All,
	}
}

// Apply returns the products matching c, in input order. The input
// slice is never modified.
func Apply(products []domain.Product, c Criteria) []domain.Product {
	visible := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, c) {
			visible = append(visible, p)
		}
	}
	return visible
}

// Matches combines the search, status, category and brand predicates with
// logical AND.
func Matches(p domain.Product, c Criteria) bool {
	return matchesSearch(p, c.Search) &&
		matchesStatus(p, c.Status) &&
		matchesExact(p.Category, c.Category) &&
		matchesExact(p.Supplier, c.Brand)
}

func matchesSearch(p domain.Product, search string) bool {
	if search == "" {
		return true
	}
	term := strings.ToLower(search)
	for _, field := range []string{p.Name, p.Supplier, p.Category} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesStatus(p domain.Product, status StatusFilter) bool {
	switch status {
	case StatusLow:
		return p.Quantity <= p.MinStock
	case StatusInStock:
		return p.Quantity > p.MinStock
	default:
		return true
	}
}

func matchesExact(field, want string) bool {
	if strings.EqualFold(want, All) {
		return true
	}
	return strings.EqualFold(field, want)
}
