package constants

import (
	"strings"
)

// Category is a spending category for an expense row. The set is closed: the
// LLM prompt instructs the model to pick from exactly this list, and anything
// it invents anyway is canonicalized to Other.
type Category string

const (
	Amazon        Category = "amazon"
	Uber          Category = "uber"
	Groceries     Category = "groceries"
	Entertainment Category = "entertainment"
	Fashion       Category = "fashion"
	Travel        Category = "travel"
	Food          Category = "food"
	Rent          Category = "rent"
	Insurance     Category = "insurance"
	Subscriptions Category = "subscriptions"
	Other         Category = "other"
)

var allCategories = []Category{
	Amazon,
	Uber,
	Groceries,
	Entertainment,
	Fashion,
	Travel,
	Food,
	Rent,
	Insurance,
	Subscriptions,
	Other,
}

// AllCategories returns the category keys in canonical order.
func AllCategories() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps free-form category text onto the closed enumeration.
// The second return reports whether the input was recognized; unrecognized
// input comes back as Other.
func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"transportation": Uber,
		"taxi":           Uber,
		"lyft":           Uber,
		"grocery":        Groceries,
		"clothes":        Fashion,
		"clothing":       Fashion,
		"dining":         Food,
		"restaurant":     Food,
		"coffee":         Food,
		"flight":         Travel,
		"hotel":          Travel,
		"monthly":        Subscriptions,
		"subscription":   Subscriptions,
		"streaming":      Subscriptions,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	for _, cat := range allCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}

	return Other, false
}
