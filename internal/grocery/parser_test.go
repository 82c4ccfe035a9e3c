package grocery

import (
	"context"
	"errors"
	"testing"

	"github.com/ithinkitschris/expense-assistant/constants"
)

type fakeGen struct {
	response string
	err      error
}

func (f *fakeGen) Generate(context.Context, string) (string, error) {
	return f.response, f.err
}

func TestParseItemsWithAI(t *testing.T) {
	gen := &fakeGen{response: `[{"item": "milk", "category": "dairy"},
		{"item": "chicken broth", "category": "made-up-shelf"}]`}
	p := NewParser(gen, nil)

	items := p.ParseItems(context.Background(), "milk and chicken broth")
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].Category != "dairy" {
		t.Errorf("first category = %q", items[0].Category)
	}
	// Invented category falls back to rules for that item only.
	if items[1].Category != string(constants.Pantry) {
		t.Errorf("second category = %q, want pantry", items[1].Category)
	}
}

func TestParseItemsFallbackSplit(t *testing.T) {
	gen := &fakeGen{err: errors.New("model offline")}
	p := NewParser(gen, nil)

	items := p.ParseItems(context.Background(), "greek yogurt, soy sauce\nbanana")
	if len(items) != 3 {
		t.Fatalf("got %d items: %v", len(items), items)
	}
	want := map[string]string{
		"greek yogurt": "dairy",
		"soy sauce":    "pantry",
		"banana":       "produce",
	}
	for _, item := range items {
		if want[item.Item] != item.Category {
			t.Errorf("%q categorized as %q, want %q", item.Item, item.Category, want[item.Item])
		}
	}
}

func TestParseItemsGarbageOutputFallsBack(t *testing.T) {
	gen := &fakeGen{response: "Sure, here are your groceries!"}
	p := NewParser(gen, nil)

	items := p.ParseItems(context.Background(), "ice cream")
	if len(items) != 1 || items[0].Category != string(constants.Frozen) {
		t.Errorf("got %v", items)
	}
}

func TestParseItemsEmptyInput(t *testing.T) {
	p := NewParser(nil, nil)
	if items := p.ParseItems(context.Background(), "   "); items != nil {
		t.Errorf("got %v, want nil", items)
	}
}

func TestCategorizeValidatesModelAnswer(t *testing.T) {
	gen := &fakeGen{response: `[{"item": "oat milk", "category": "beverages"}]`}
	p := NewParser(gen, nil)
	if got := p.Categorize(context.Background(), "oat milk"); got != constants.Beverages {
		t.Errorf("got %q, want beverages", got)
	}
}

func TestCategorizeDegradesToRules(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGen
	}{
		{"generation error", &fakeGen{err: errors.New("timeout")}},
		{"invented category", &fakeGen{response: `[{"item": "chicken broth", "category": "soups"}]`}},
		{"no generator", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var p *Parser
			if tc.gen != nil {
				p = NewParser(tc.gen, nil)
			} else {
				p = NewParser(nil, nil)
			}
			if got := p.Categorize(context.Background(), "chicken broth"); got != constants.Pantry {
				t.Errorf("got %q, want pantry", got)
			}
		})
	}
}
