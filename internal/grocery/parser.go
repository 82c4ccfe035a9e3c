package grocery

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ithinkitschris/expense-assistant/constants"
	"github.com/ithinkitschris/expense-assistant/internal/llm"
)

var itemSeparators = regexp.MustCompile(`[\n,]+`)

// Parser splits grocery descriptions into items and assigns grocery types.
// The AI path runs first when a generator is present; any generator or parse
// failure degrades silently to splitting on separators plus the rule-based
// categorizer.
type Parser struct {
	gen    llm.Generator
	logger *slog.Logger
}

func NewParser(gen llm.Generator, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{gen: gen, logger: logger}
}

// ParseItems parses a string holding one or more grocery items into
// item/category pairs. Never returns an error: the rule-based fallback always
// produces something for non-empty input.
func (p *Parser) ParseItems(ctx context.Context, description string) []llm.ParsedGroceryItem {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil
	}

	if p.gen != nil {
		if items, ok := p.parseWithAI(ctx, description); ok {
			return items
		}
	}
	return splitAndCategorize(description)
}

// Categorize assigns a grocery type to a single item name: AI first when
// available, validated against the enumeration, with the rule-based result
// standing in whenever the generator misbehaves.
func (p *Parser) Categorize(ctx context.Context, itemName string) constants.GroceryType {
	if p.gen != nil {
		raw, err := p.gen.Generate(ctx, llm.BuildGroceryCategorizePrompt(itemName))
		if err == nil {
			if items, xerr := llm.ExtractGroceryItems(raw, p.logger); xerr == nil && len(items) > 0 {
				if constants.IsGroceryType(items[0].Category) {
					return constants.GroceryType(items[0].Category)
				}
			}
		}
		if err != nil {
			p.logger.Warn("grocery.categorize.generation_failed", "error", err)
		}
	}
	return RuleBased(itemName)
}

func (p *Parser) parseWithAI(ctx context.Context, description string) ([]llm.ParsedGroceryItem, bool) {
	raw, err := p.gen.Generate(ctx, llm.BuildGrocerySplitPrompt(description))
	if err != nil {
		p.logger.Warn("grocery.parse.generation_failed", "error", err)
		return nil, false
	}

	items, err := llm.ExtractGroceryItems(raw, p.logger)
	if err != nil {
		p.logger.Warn("grocery.parse.extract_failed", "error", err)
		return nil, false
	}

	// An unrecognized model category is discarded in favor of the rule-based
	// result for that item.
	for i := range items {
		if !constants.IsGroceryType(items[i].Category) {
			items[i].Category = string(RuleBased(items[i].Item))
		}
	}
	return items, true
}

// splitAndCategorize is the deterministic fallback: split on commas and
// newlines, trim, and categorize each piece with the keyword rules.
func splitAndCategorize(description string) []llm.ParsedGroceryItem {
	var items []llm.ParsedGroceryItem
	for _, part := range itemSeparators.Split(description, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, llm.ParsedGroceryItem{
			Item:     part,
			Category: string(RuleBased(part)),
		})
	}
	return items
}
