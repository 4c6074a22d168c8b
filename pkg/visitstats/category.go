package visitstats

import (
	"fmt"
	"strings"
)

// Category is the customer classification driving the default price.
type Category string

const (
	CategoryChild Category = "child"
	CategoryAdult Category = "adult"
)

// Default prices in rupiah per category.
const (
	PriceChild int64 = 18000
	PriceAdult int64 = 20000
)

// CategoryAll is the list-filter sentinel that matches every record.
const CategoryAll = "all"

// ParseCategory normalizes a category value into the closed set. It accepts
// mixed case and the localized labels used by the input forms
// ("Anak-anak", "Dewasa").
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "child", "anak-anak", "anak":
		return CategoryChild, nil
	case "adult", "dewasa":
		return CategoryAdult, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// PriceFor returns the fixed price for a recognized category, 0 otherwise.
func PriceFor(c Category) int64 {
	switch c {
	case CategoryChild:
		return PriceChild
	case CategoryAdult:
		return PriceAdult
	}
	return 0
}
