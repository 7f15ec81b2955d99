// Package form holds the add/edit modal state machine and its edit buffer.
package form

import (
	"errors"
	"strconv"

	"tracknstock/internal/domain"
)

var (
	ErrInvalidTransition = errors.New("modal is already open")
	ErrModalClosed       = errors.New("modal is not open")
)

type Mode int

const (
	Closed Mode = iota
	AddOpen
	EditOpen
)

func (m Mode) String() string {
	switch m {
	case AddOpen:
		return "add"
	case EditOpen:
		return "edit"
	default:
		return "closed"
	}
}

// Buffer mirrors a product's editable fields as text for input binding.
type Buffer struct {
	Name     string `form:"name" validate:"required"`
	Category string `form:"category" validate:"required,category"`
	Quantity string `form:"quantity" validate:"required,number"`
	MinStock string `form:"minStock" validate:"required,number"`
	Price    string `form:"price" validate:"required,numeric,nonnegative"`
	Supplier string `form:"supplier" validate:"required"`
}

// FromProduct renders p into a buffer, numbers as plain text.
func FromProduct(p domain.Product) Buffer {
	return Buffer{
		Name:     p.Name,
		Category: p.Category,
		Quantity: strconv.Itoa(p.Quantity),
		MinStock: strconv.Itoa(p.MinStock),
		Price:    strconv.FormatFloat(p.Price, 'f', -1, 64),
		Supplier: p.Supplier,
	}
}

// Modal is an immutable value; transitions return a new Modal.
type Modal struct {
	mode      Mode
	productID int64
	buffer    Buffer
}

func NewClosed() Modal {
	return Modal{}
}

func (m Modal) Mode() Mode       { return m.mode }
func (m Modal) ProductID() int64 { return m.productID }
func (m Modal) Buffer() Buffer   { return m.buffer }
func (m Modal) IsOpen() bool     { return m.mode != Closed }

// OpenAdd starts an empty add form. category may be empty.
func (m Modal) OpenAdd(category string) (Modal, error) {
	if m.IsOpen() {
		return m, ErrInvalidTransition
	}
	return Modal{mode: AddOpen, buffer: Buffer{Category: category}}, nil
}

func (m Modal) OpenEdit(p domain.Product) (Modal, error) {
	if m.IsOpen() {
		return m, ErrInvalidTransition
	}
	return Modal{mode: EditOpen, productID: p.ID, buffer: FromProduct(p)}, nil
}

// WithBuffer replaces the edit buffer of an open modal.
func (m Modal) WithBuffer(b Buffer) (Modal, error) {
	if !m.IsOpen() {
		return m, ErrModalClosed
	}
	m.buffer = b
	return m, nil
}

// Cancel discards the buffer and closes the modal.
func (m Modal) Cancel() Modal {
	return NewClosed()
}

// BrandOptions lists the brands selectable for the buffer's category, or
// every brand when no category is chosen.
func (b Buffer) BrandOptions() []string {
	if b.Category == "" {
		return domain.AllBrands()
	}
	return domain.BrandsFor(b.Category)
}
