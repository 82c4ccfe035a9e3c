package constants

import "testing"

func TestAllCategoriesOrder(t *testing.T) {
	cats := AllCategories()
	if len(cats) != 11 {
		t.Fatalf("got %d categories", len(cats))
	}
	if cats[0] != "amazon" || cats[len(cats)-1] != "other" {
		t.Errorf("unexpected ordering: %v", cats)
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		input  string
		want   Category
		wantOK bool
	}{
		{"food", Food, true},
		{"Food", Food, true},
		{"  groceries  ", Groceries, true},
		{"transportation", Uber, true},
		{"taxi", Uber, true},
		{"coffee", Food, true},
		{"clothing", Fashion, true},
		{"streaming", Subscriptions, true},
		{"beverages", Other, false},
		{"", Other, false},
	}
	for _, tc := range tests {
		got, ok := Canonicalize(tc.input)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("Canonicalize(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}
