package grocery

import (
	"testing"

	"github.com/ithinkitschris/expense-assistant/constants"
)

func TestRuleBasedHardOverrides(t *testing.T) {
	tests := []struct {
		item string
		want constants.GroceryType
	}{
		// "broth" would keyword-match meat via "chicken"; override wins.
		{"chicken broth", constants.Pantry},
		{"beef broth", constants.Pantry},
		// "yogurt" with a fruit prefix would match produce.
		{"strawberry yogurt", constants.Dairy},
		{"greek yogurt", constants.Dairy},
		// "granola" shelves with snacks even in cereal-like phrases.
		{"granola", constants.SnacksType},
		{"peanut butter chocolate granola", constants.SnacksType},
	}
	for _, tc := range tests {
		if got := RuleBased(tc.item); got != tc.want {
			t.Errorf("RuleBased(%q) = %q, want %q", tc.item, got, tc.want)
		}
	}
}

func TestRuleBasedSauces(t *testing.T) {
	tests := []struct {
		item string
		want constants.GroceryType
	}{
		// Cooking bases go to pantry, checked before the condiment list.
		{"soy sauce", constants.Pantry},
		{"kikkoman soy sauce", constants.Pantry},
		{"oyster sauce", constants.Pantry},
		{"miso paste", constants.Pantry},
		{"gochujang", constants.Pantry},
		// Table sauces are condiments.
		{"ketchup", constants.Condiments},
		{"dijon mustard", constants.Condiments},
		{"sriracha", constants.Condiments},
		{"ranch dressing", constants.Condiments},
		{"hummus", constants.Condiments},
	}
	for _, tc := range tests {
		if got := RuleBased(tc.item); got != tc.want {
			t.Errorf("RuleBased(%q) = %q, want %q", tc.item, got, tc.want)
		}
	}
}

func TestRuleBasedSpecialCases(t *testing.T) {
	tests := []struct {
		item string
		want constants.GroceryType
	}{
		{"peanut butter", constants.Condiments},
		{"ice cream", constants.Frozen},
		{"dark chocolate", constants.SnacksType},
		{"trail mix", constants.SnacksType},
		{"red grapes", constants.Produce},
		{"kang kong", constants.Produce},
		{"radish cake", constants.Frozen},
		{"mid joint wings", constants.Meat},
		{"nespresso rich chocolate", constants.Beverages},
		{"canned tomatoes", constants.Pantry},
		{"chickpea fusili", constants.Staples},
	}
	for _, tc := range tests {
		if got := RuleBased(tc.item); got != tc.want {
			t.Errorf("RuleBased(%q) = %q, want %q", tc.item, got, tc.want)
		}
	}
}

func TestRuleBasedFrozenCheck(t *testing.T) {
	if got := RuleBased("frozen peas"); got != constants.Frozen {
		t.Errorf("RuleBased(frozen peas) = %q, want frozen", got)
	}
}

func TestRuleBasedKeywordTables(t *testing.T) {
	tests := []struct {
		item string
		want constants.GroceryType
	}{
		{"banana", constants.Produce},
		{"baby spinach", constants.Produce},
		{"chicken thighs", constants.Meat},
		{"salmon fillet", constants.Meat},
		{"heavy cream", constants.Dairy},
		{"cheddar cheese", constants.Dairy},
		{"jasmine rice", constants.Staples},
		{"spaghetti", constants.Staples},
		{"orange juice", constants.Beverages},
		{"sparkling water", constants.Beverages},
	}
	for _, tc := range tests {
		if got := RuleBased(tc.item); got != tc.want {
			t.Errorf("RuleBased(%q) = %q, want %q", tc.item, got, tc.want)
		}
	}
}

func TestRuleBasedBreadShelvesWithStaples(t *testing.T) {
	for _, item := range []string{"sourdough bread", "bagel", "tortilla"} {
		if got := RuleBased(item); got != constants.Staples {
			t.Errorf("RuleBased(%q) = %q, want staples", item, got)
		}
	}
}

func TestRuleBasedWholeWordBoundaries(t *testing.T) {
	// "spear" must not match the "pear" keyword.
	if got := RuleBased("spear"); got != constants.OtherGrocery {
		t.Errorf("RuleBased(spear) = %q, want other", got)
	}
	if got := RuleBased("pear"); got != constants.Produce {
		t.Errorf("RuleBased(pear) = %q, want produce", got)
	}
	if got := RuleBased("green pear"); got != constants.Produce {
		t.Errorf("RuleBased(green pear) = %q, want produce", got)
	}
}

func TestRuleBasedUnknownLandsInOther(t *testing.T) {
	if got := RuleBased("flux capacitor"); got != constants.OtherGrocery {
		t.Errorf("RuleBased(flux capacitor) = %q, want other", got)
	}
}

func TestRuleBasedIsDeterministic(t *testing.T) {
	items := []string{"chicken broth", "greek yogurt", "soy sauce", "pear", "frozen pizza"}
	for _, item := range items {
		first := RuleBased(item)
		for i := 0; i < 5; i++ {
			if got := RuleBased(item); got != first {
				t.Fatalf("RuleBased(%q) flapped: %q then %q", item, first, got)
			}
		}
	}
}
