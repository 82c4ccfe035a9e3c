package recipes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ithinkitschris/expense-assistant/internal/common"
	"github.com/ithinkitschris/expense-assistant/internal/llm"
	"github.com/ithinkitschris/expense-assistant/internal/repository"
)

// Options narrow the recommendation down to what the user is in the mood for.
type Options struct {
	Cuisine    string `json:"cuisine,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	MaxMinutes int    `json:"max_minutes,omitempty"`
	Servings   int    `json:"servings,omitempty"`
	Dietary    string `json:"dietary,omitempty"`
}

// Recommendation is the model's recipe suggestion for the current pantry.
type Recommendation struct {
	Text        string   `json:"text"`
	Ingredients []string `json:"ingredients_used"`
}

type pantryLister interface {
	List(ctx context.Context, includeConsumed bool, categorize func(string) string) ([]repository.PantryItem, error)
}

// Recommender asks the model for recipes that use what is in the pantry.
// The generator it holds should carry the longer recipe retry policy, since
// recipe generation is slow and worth retrying through transport failures.
type Recommender struct {
	pantry pantryLister
	gen    llm.Generator
	logger *slog.Logger
}

func NewRecommender(pantry pantryLister, gen llm.Generator, logger *slog.Logger) *Recommender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recommender{pantry: pantry, gen: gen, logger: logger}
}

// Recommend builds a recipe suggestion from the unconsumed pantry items.
func (r *Recommender) Recommend(ctx context.Context, opts Options) (Recommendation, error) {
	items, err := r.pantry.List(ctx, false, nil)
	if err != nil {
		return Recommendation{}, err
	}
	if len(items) == 0 {
		return Recommendation{}, fmt.Errorf("%w: pantry is empty, add some ingredients first", common.ErrInvalidInput)
	}

	ingredients := make([]string, 0, len(items))
	for _, item := range items {
		ingredients = append(ingredients, item.Name)
	}

	raw, err := r.gen.Generate(ctx, buildRecipePrompt(ingredients, opts))
	if err != nil {
		r.logger.Warn("recipes.recommend.failed", "error", err)
		return Recommendation{}, common.WrapError(err, "recommend recipe")
	}

	text := strings.TrimSpace(llm.StripCodeFences(raw))
	if text == "" {
		return Recommendation{}, fmt.Errorf("%w: model returned an empty recipe", common.ErrInternal)
	}
	return Recommendation{Text: text, Ingredients: ingredients}, nil
}

func buildRecipePrompt(ingredients []string, opts Options) string {
	var b strings.Builder
	b.WriteString("You are a home cooking assistant. Suggest one recipe I can make ")
	b.WriteString("primarily from the ingredients I already have. Common staples like ")
	b.WriteString("oil, salt, pepper, and water are assumed.\n\nAvailable ingredients:\n")
	for _, ing := range ingredients {
		b.WriteString("- ")
		b.WriteString(ing)
		b.WriteString("\n")
	}

	var wants []string
	if opts.Cuisine != "" {
		wants = append(wants, fmt.Sprintf("cuisine: %s", opts.Cuisine))
	}
	if opts.Difficulty != "" {
		wants = append(wants, fmt.Sprintf("difficulty: %s", opts.Difficulty))
	}
	if opts.MaxMinutes > 0 {
		wants = append(wants, fmt.Sprintf("ready in under %d minutes", opts.MaxMinutes))
	}
	if opts.Servings > 0 {
		wants = append(wants, fmt.Sprintf("serves %d", opts.Servings))
	}
	if opts.Dietary != "" {
		wants = append(wants, fmt.Sprintf("dietary requirement: %s", opts.Dietary))
	}
	if len(wants) > 0 {
		b.WriteString("\nPreferences:\n")
		for _, w := range wants {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nRespond with the recipe name, an ingredient list with quantities, ")
	b.WriteString("and numbered steps. Plain text only.")
	return b.String()
}
