package domain

import (
	"sort"
	"strings"
)

var categories = []string{"Fruits", "Electronics", "Furniture", "Clothes", "Kitchen", "Stationery"}

var brandsByCategory = map[string][]string{
	"Fruits":      {"FarmFresh", "OrganicValley", "TropicalTaste"},
	"Electronics": {"Sony", "Samsung", "Apple", "Xiaomi", "OnePlus"},
	"Furniture":   {"Ikea", "HomeTown", "Magnolia"},
	"Clothes":     {"Zara", "H&M", "Uniqlo", "Levis"},
	"Kitchen":     {"Prestige", "Wonderchef", "Philips"},
	"Stationery":  {"Reynolds", "Camlin", "Staedtler"},
}

func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// CanonicalCategory returns the taxonomy spelling of category, matched
// case-insensitively.
func CanonicalCategory(category string) (string, bool) {
	for _, c := range categories {
		if strings.EqualFold(c, category) {
			return c, true
		}
	}
	return "", false
}

// BrandsFor returns the brands of a category, or nil for an unknown one.
func BrandsFor(category string) []string {
	c, ok := CanonicalCategory(category)
	if !ok {
		return nil
	}
	brands := brandsByCategory[c]
	out := make([]string, len(brands))
	copy(out, brands)
	return out
}

// AllBrands returns every brand across categories, sorted.
func AllBrands() []string {
	var out []string
	for _, brands := range brandsByCategory {
		out = append(out, brands...)
	}
	sort.Strings(out)
	return out
}

// BrandCatalog returns the brands of every category keyed by category name.
func BrandCatalog() map[string][]string {
	out := make(map[string][]string, len(brandsByCategory))
	for c := range brandsByCategory {
		out[c] = BrandsFor(c)
	}
	return out
}

func BrandBelongs(category, brand string) bool {
	for _, b := range BrandsFor(category) {
		if strings.EqualFold(b, brand) {
			return true
		}
	}
	return false
}
