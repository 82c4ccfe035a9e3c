package llm

import (
	"context"
	"time"
)

// ParsedExpense is the normalized shape the parsing pipeline hands to the
// store. Values are built once per parse call and never mutated afterwards.
type ParsedExpense struct {
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ParsedDate  time.Time `json:"parsed_date,omitempty"` // zero when the text carried no date
}

// ParsedGroceryItem is one grocery item split out of an expense description
// or a raw pantry entry.
type ParsedGroceryItem struct {
	Item     string `json:"item"`
	Category string `json:"category"`
}

// Result carries one or more parsed expenses. Single builds the one-record
// shape; Multi collapses a one-element batch back to it, so callers see a
// single shape regardless of which parsing path produced it.
type Result struct {
	Expenses []ParsedExpense
}

func Single(e ParsedExpense) Result {
	return Result{Expenses: []ParsedExpense{e}}
}

func Multi(es []ParsedExpense) Result {
	return Result{Expenses: es}
}

// IsMulti reports whether the result holds more than one expense.
func (r Result) IsMulti() bool { return len(r.Expenses) > 1 }

// Empty reports whether the result holds no expenses at all.
func (r Result) Empty() bool { return len(r.Expenses) == 0 }

// First returns the first expense. Callers must check Empty first.
func (r Result) First() ParsedExpense { return r.Expenses[0] }

// Generator is the text-generation dependency the parsers run against.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
