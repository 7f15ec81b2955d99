package form

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"tracknstock/internal/domain"
	apperrors "tracknstock/internal/errors"
)

const (
	msgMissingFields = "please fill in all fields"
	msgInvalidFields = "please correct the highlighted fields"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := domain.CanonicalCategory(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("nonnegative", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && f >= 0
	})
	v.RegisterStructValidation(brandInCategory, Buffer{})
	return v
}

func brandInCategory(sl validator.StructLevel) {
	b, ok := sl.Current().Interface().(Buffer)
	if !ok || b.Supplier == "" {
		return
	}
	if _, known := domain.CanonicalCategory(b.Category); !known {
		return
	}
	if !domain.BrandBelongs(b.Category, b.Supplier) {
		sl.ReportError(b.Supplier, "supplier", "Supplier", "brand", b.Category)
	}
}

// Validate checks that every field is present and well formed. The returned
// error is always an *apperrors.ValidationError.
func (b Buffer) Validate() error {
	err := validate.Struct(b)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error())
	}

	message := msgInvalidFields
	details := make([]apperrors.ValidationDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			message = msgMissingFields
		}
		details = append(details, apperrors.ValidationDetail{
			Field:   fe.Field(),
			Message: describe(fe),
		})
	}
	return apperrors.NewValidationError(message, details...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "number":
		return fmt.Sprintf("%s must be a whole number of zero or more", fe.Field())
	case "numeric", "nonnegative":
		return fmt.Sprintf("%s must be a number of zero or more", fe.Field())
	case "category":
		return fmt.Sprintf("category must be one of %s", strings.Join(domain.Categories(), ", "))
	case "brand":
		return fmt.Sprintf("brand is not sold under %s", fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// ToInput validates the buffer and coerces it into a request body.
func (b Buffer) ToInput() (domain.ProductInput, error) {
	if err := b.Validate(); err != nil {
		return domain.ProductInput{}, err
	}

	quantity, err := strconv.Atoi(b.Quantity)
	if err != nil {
		return domain.ProductInput{}, outOfRange("quantity")
	}
	minStock, err := strconv.Atoi(b.MinStock)
	if err != nil {
		return domain.ProductInput{}, outOfRange("minStock")
	}
	price, err := strconv.ParseFloat(b.Price, 64)
	if err != nil {
		return domain.ProductInput{}, outOfRange("price")
	}

	category, _ := domain.CanonicalCategory(b.Category)
	return domain.ProductInput{
		Name:     b.Name,
		Category: category,
		Supplier: canonicalBrand(category, b.Supplier),
		Quantity: quantity,
		MinStock: minStock,
		Price:    price,
	}, nil
}

func outOfRange(field string) error {
	return apperrors.NewValidationError(msgInvalidFields, apperrors.ValidationDetail{
		Field:   field,
		Message: fmt.Sprintf("%s is out of range", field),
	})
}

func canonicalBrand(category, brand string) string {
	for _, b := range domain.BrandsFor(category) {
		if strings.EqualFold(b, brand) {
			return b
		}
	}
	return brand
}
