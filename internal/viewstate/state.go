// Package viewstate models everything the inventory screen shows as one
// immutable value. Actions produce a new State through Reduce; values such
// as the brand list are derived, never stored.
package viewstate

import (
	"strings"

	"tracknstock/internal/domain"
	"tracknstock/internal/filter"
	"tracknstock/internal/form"
)

type NoticeKind string

const (
	NoticeNone    NoticeKind = ""
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

type Notice struct {
	Kind    NoticeKind
	Message string
}

type State struct {
	Criteria filter.Criteria
	Modal    form.Modal
	Notice   Notice
	// DeleteID is the product awaiting delete confirmation, zero when none.
	DeleteID int64
}

func New() State {
	return State{
		Criteria: filter.DefaultCriteria(),
		Modal:    form.NewClosed(),
	}
}

// Brands lists the brands that may be picked given the selected category.
func (s State) Brands() []string {
	if isAll(s.Criteria.Category) {
		return domain.AllBrands()
	}
	return domain.BrandsFor(s.Criteria.Category)
}

// QuickBrands is the short list rendered as toggle buttons.
func (s State) QuickBrands() []string {
	brands := s.Brands()
	if isAll(s.Criteria.Category) && len(brands) > 6 {
		return brands[:6]
	}
	return brands
}

func (s State) Visible(products []domain.Product) []domain.Product {
	return filter.Apply(products, s.Criteria)
}

type Action interface {
	apply(State) State
}

func Reduce(s State, actions ...Action) State {
	for _, a := range actions {
		s = a.apply(s)
	}
	return s
}

type SetSearch struct{ Text string }

func (a SetSearch) apply(s State) State {
	s.Criteria.Search = a.Text
	return s
}

// SetStatus falls back to "all" for unrecognised values.
type SetStatus struct{ Status string }

func (a SetStatus) apply(s State) State {
	s.Criteria.Status, _ = filter.ParseStatus(a.Status)
	return s
}

// SelectCategory also resets the brand when it is not sold in the new
// category.
type SelectCategory struct{ Category string }

func (a SelectCategory) apply(s State) State {
	s.Criteria.Category = normalize(a.Category)
	if !isAll(s.Criteria.Brand) && !containsFold(s.Brands(), s.Criteria.Brand) {
		s.Criteria.Brand = filter.All
	}
	return s
}

type SelectBrand struct{ Brand string }

func (a SelectBrand) apply(s State) State {
	brand := normalize(a.Brand)
	if !isAll(brand) && !containsFold(s.Brands(), brand) {
		brand = filter.All
	}
	s.Criteria.Brand = brand
	return s
}

// ToggleBrand selects a brand, or clears the selection when it is already
// active.
type ToggleBrand struct{ Brand string }

func (a ToggleBrand) apply(s State) State {
	if strings.EqualFold(s.Criteria.Brand, a.Brand) {
		s.Criteria.Brand = filter.All
		return s
	}
	return SelectBrand{Brand: a.Brand}.apply(s)
}

// OpenAdd seeds the category from the active category filter.
type OpenAdd struct{}

func (OpenAdd) apply(s State) State {
	category := ""
	if !isAll(s.Criteria.Category) {
		category = s.Criteria.Category
	}
	if m, err := s.Modal.OpenAdd(category); err == nil {
		s.Modal = m
		s.DeleteID = 0
	}
	return s
}

type OpenEdit struct{ Product domain.Product }

func (a OpenEdit) apply(s State) State {
	if m, err := s.Modal.OpenEdit(a.Product); err == nil {
		s.Modal = m
		s.DeleteID = 0
	}
	return s
}

type EditBuffer struct{ Buffer form.Buffer }

func (a EditBuffer) apply(s State) State {
	if m, err := s.Modal.WithBuffer(a.Buffer); err == nil {
		s.Modal = m
	}
	return s
}

type CloseModal struct{}

func (CloseModal) apply(s State) State {
	s.Modal = s.Modal.Cancel()
	return s
}

// SetModal installs a modal returned by a submit attempt.
type SetModal struct{ Modal form.Modal }

func (a SetModal) apply(s State) State {
	s.Modal = a.Modal
	return s
}

// RequestDelete asks for confirmation before deleting a product.
type RequestDelete struct{ ID int64 }

func (a RequestDelete) apply(s State) State {
	if s.Modal.IsOpen() {
		return s
	}
	s.DeleteID = a.ID
	return s
}

type CancelDelete struct{}

func (CancelDelete) apply(s State) State {
	s.DeleteID = 0
	return s
}

type Notify struct {
	Kind    NoticeKind
	Message string
}

func (a Notify) apply(s State) State {
	s.Notice = Notice{Kind: a.Kind, Message: a.Message}
	return s
}

func normalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || isAll(v) {
		return filter.All
	}
	return v
}

func isAll(v string) bool {
	return strings.EqualFold(v, filter.All)
}

func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}
