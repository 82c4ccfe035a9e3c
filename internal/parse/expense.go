package parse

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ithinkitschris/expense-assistant/constants"
	"github.com/ithinkitschris/expense-assistant/internal/llm"
)

// ErrNoAmount is the terminal failure: even the regex fallback could not find
// an amount in the input, so there is nothing to record.
var ErrNoAmount = errors.New("no amount found in input")

// Lexical cues that route an input to multi-expense parsing. Substring
// containment, not word-bounded, matching the known false-positive behavior
// ("sandwich" contains "and").
var multiCues = []string{"and", "&", "also", "plus", "then"}

var amountPattern = regexp.MustCompile(`\$?(\d+(?:\.\d{1,2})?)`)

// Parser runs the natural-language-to-expense pipeline: date extraction,
// single/multi routing, generation, JSON repair, and the regex fallback.
type Parser struct {
	gen    llm.Generator
	logger *slog.Logger
	now    func() time.Time
}

func NewParser(gen llm.Generator, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{gen: gen, logger: logger, now: time.Now}
}

// WithClock fixes the parser's notion of "now". Relative dates become
// deterministic, which the tests rely on.
func (p *Parser) WithClock(now func() time.Time) *Parser {
	clone := *p
	clone.now = now
	return &clone
}

// Parse turns free text into one or more expense records. Generation and
// JSON failures fall back down the chain and never surface to the caller;
// only a dry regex fallback returns ErrNoAmount.
func (p *Parser) Parse(ctx context.Context, input string) (llm.Result, error) {
	parsedDate, _ := ExtractDate(input, p.now())

	if looksMultiple(input) {
		p.logger.Debug("parse.expense.multi_attempt", "input_len", len(input))
		if records, err := p.parseMultiple(ctx, input, parsedDate); err == nil {
			return llm.Multi(records), nil
		}
		// Zero usable records in multi mode falls back to single-mode
		// parsing rather than failing outright.
	}

	return p.parseSingle(ctx, input, parsedDate)
}

// looksMultiple applies the lexical-cue heuristic: any cue word, or more than
// one currency marker.
func looksMultiple(input string) bool {
	lower := strings.ToLower(input)
	for _, cue := range multiCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return strings.Count(input, "$") > 1
}

func (p *Parser) parseMultiple(ctx context.Context, input string, parsedDate time.Time) ([]llm.ParsedExpense, error) {
	raw, err := p.gen.Generate(ctx, llm.BuildMultiExpensePrompt(input))
	if err != nil {
		return nil, err
	}
	return llm.ExtractExpenses(raw, llm.ShapeArray, input, parsedDate, p.logger)
}

func (p *Parser) parseSingle(ctx context.Context, input string, parsedDate time.Time) (llm.Result, error) {
	raw, err := p.gen.Generate(ctx, llm.BuildSingleExpensePrompt(input))
	if err != nil {
		p.logger.Warn("parse.expense.generation_failed", "error", err)
		return p.fallback(input, parsedDate)
	}

	records, err := llm.ExtractExpenses(raw, llm.ShapeObject, input, parsedDate, p.logger)
	if err != nil {
		p.logger.Warn("parse.expense.extract_failed", "error", err)
		return p.fallback(input, parsedDate)
	}
	return llm.Multi(records), nil
}

func (p *Parser) fallback(input string, parsedDate time.Time) (llm.Result, error) {
	exp, err := FallbackParse(input, parsedDate)
	if err != nil {
		return llm.Result{}, err
	}
	p.logger.Info("parse.expense.regex_fallback", "amount", exp.Amount)
	return llm.Single(exp), nil
}

// FallbackParse extracts a bare amount from the input and builds a minimally
// valid record. Invoked only when generation or JSON extraction definitively
// failed; a miss here is final.
func FallbackParse(input string, parsedDate time.Time) (llm.ParsedExpense, error) {
	m := amountPattern.FindStringSubmatch(input)
	if m == nil {
		return llm.ParsedExpense{}, ErrNoAmount
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil || amount <= 0 {
		return llm.ParsedExpense{}, ErrNoAmount
	}
	return llm.ParsedExpense{
		Amount:      amount,
		Category:    string(constants.Other),
		Description: llm.TruncateDescription(input),
		ParsedDate:  parsedDate,
	}, nil
}
