package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ithinkitschris/expense-assistant/constants"
)

// Shape selects which JSON payload the extractor hunts for in raw generated
// text.
type Shape int

const (
	ShapeObject Shape = iota
	ShapeArray
)

var (
	// ErrJSONParse means no parsable JSON payload could be isolated from the
	// generated text.
	ErrJSONParse = errors.New("could not parse generated JSON")
	// ErrNoValidRecords means JSON parsed but every record failed validation.
	ErrNoValidRecords = errors.New("no valid records in generated JSON")
)

// StripCodeFences removes Markdown code-fence markers from generated text.
func StripCodeFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// IsolateJSON cuts the substring from the first opening bracket/brace of the
// requested shape to the last matching closer, discarding surrounding prose.
func IsolateJSON(s string, shape Shape) (string, bool) {
	opener, closer := "{", "}"
	if shape == ShapeArray {
		opener, closer = "[", "]"
	}
	start := strings.Index(s, opener)
	end := strings.LastIndex(s, closer)
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// TruncateDescription derives a fallback description from the first 50
// characters of the user's input. Truncation counts runes so a multi-byte
// character is never split.
func TruncateDescription(input string) string {
	runes := []rune(input)
	if len(runes) > 50 {
		return string(runes[:50])
	}
	return input
}

// ExtractExpenses turns raw generated text into validated expense records.
// Per-record failures are non-fatal: an amount-invalid record is dropped,
// missing category/description are repaired in place. An empty result after
// validation is a total parse failure.
func ExtractExpenses(raw string, shape Shape, input string, parsedDate time.Time, logger *slog.Logger) ([]ParsedExpense, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cleaned := StripCodeFences(raw)

	var records []map[string]any
	if payload, ok := IsolateJSON(cleaned, shape); ok {
		records, _ = decodeRecordBatch(payload)
	}
	if records == nil {
		// The model may have answered with the other shape; coercion rules
		// say a bare object stands in for a one-element array and vice versa.
		other := ShapeObject
		if shape == ShapeObject {
			other = ShapeArray
		}
		if payload, ok := IsolateJSON(cleaned, other); ok {
			records, _ = decodeRecordBatch(payload)
		}
	}
	if records == nil {
		return nil, fmt.Errorf("%w: no JSON payload found", ErrJSONParse)
	}

	schema := BuildExpenseJSONSchema()
	out := make([]ParsedExpense, 0, len(records))
	for _, rec := range records {
		exp, ok := validateExpenseRecord(rec, schema, input, logger)
		if !ok {
			continue
		}
		exp.ParsedDate = parsedDate
		out = append(out, exp)
	}
	if len(out) == 0 {
		return nil, ErrNoValidRecords
	}
	return out, nil
}

// decodeRecordBatch decodes the payload as either an array of objects or a
// single object wrapped into a one-element batch.
func decodeRecordBatch(payload string) ([]map[string]any, error) {
	trimmed := strings.TrimSpace(payload)
	if strings.HasPrefix(trimmed, "[") {
		var records []map[string]any
		if err := json.Unmarshal([]byte(trimmed), &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrJSONParse, err)
		}
		return records, nil
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(trimmed), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSONParse, err)
	}
	return []map[string]any{record}, nil
}

// validateExpenseRecord checks one record against the schema, sanitizing and
// re-checking on failure the way the strict-then-lenient receipt flow does.
func validateExpenseRecord(rec map[string]any, schema map[string]any, input string, logger *slog.Logger) (ParsedExpense, bool) {
	doc, err := json.Marshal(rec)
	if err != nil {
		return ParsedExpense{}, false
	}
	if vErr := ValidateJSONAgainstSchema(schema, doc); vErr != nil {
		cleaned, dropped := sanitizeExpenseRecord(rec, input)
		doc, err = json.Marshal(cleaned)
		if err != nil {
			return ParsedExpense{}, false
		}
		if vErr2 := ValidateJSONAgainstSchema(schema, doc); vErr2 != nil {
			logger.Warn("llm.extract.record_dropped", "error", vErr2, "repaired", dropped)
			return ParsedExpense{}, false
		}
		if len(dropped) > 0 {
			logger.Warn("llm.extract.record_repaired", "repaired", dropped)
		}
	}

	var exp ParsedExpense
	if err := json.Unmarshal(doc, &exp); err != nil {
		return ParsedExpense{}, false
	}
	return exp, true
}

// sanitizeExpenseRecord repairs what it can: numeric strings become numbers,
// an absent or invented category becomes "other", an absent description is
// derived from the input, unknown keys are removed. Amount is never invented;
// a record without a positive amount stays invalid.
func sanitizeExpenseRecord(rec map[string]any, input string) (map[string]any, []string) {
	m := make(map[string]any, len(rec))
	var repaired []string

	switch t := rec["amount"].(type) {
	case float64:
		m["amount"] = t
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimPrefix(strings.TrimSpace(t), "$"), "%f", &f); err == nil {
			m["amount"] = f
			repaired = append(repaired, "amount(string)")
		}
	}

	cat, _ := rec["category"].(string)
	canon, ok := canonicalCategory(cat)
	if !ok {
		repaired = append(repaired, "category("+cat+")")
	}
	m["category"] = canon

	desc, _ := rec["description"].(string)
	desc = strings.TrimSpace(desc)
	if desc == "" {
		desc = TruncateDescription(input)
		repaired = append(repaired, "description(empty)")
	}
	if desc == "" {
		desc = "expense"
	}
	m["description"] = desc

	return m, repaired
}

func canonicalCategory(s string) (string, bool) {
	c, ok := constants.Canonicalize(s)
	return string(c), ok
}

// ExtractGroceryItems turns raw generated text into validated grocery items.
// Records may name the item under "item" or "name"; both are checked. Items
// whose category the model invented are returned with an empty category so
// the caller can fall back to rule-based categorization for just that item.
func ExtractGroceryItems(raw string, logger *slog.Logger) ([]ParsedGroceryItem, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cleaned := StripCodeFences(raw)

	var records []map[string]any
	if payload, ok := IsolateJSON(cleaned, ShapeArray); ok {
		records, _ = decodeRecordBatch(payload)
	}
	if records == nil {
		if payload, ok := IsolateJSON(cleaned, ShapeObject); ok {
			records, _ = decodeRecordBatch(payload)
		}
	}
	if records == nil {
		return nil, fmt.Errorf("%w: no JSON payload found", ErrJSONParse)
	}

	schema := BuildGroceryItemJSONSchema()
	out := make([]ParsedGroceryItem, 0, len(records))
	for _, rec := range records {
		name, _ := rec["item"].(string)
		if name == "" {
			name, _ = rec["name"].(string)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		category, _ := rec["category"].(string)
		category = strings.ToLower(strings.TrimSpace(category))

		item := ParsedGroceryItem{Item: name, Category: category}
		doc, mErr := json.Marshal(item)
		if mErr != nil {
			continue
		}
		if vErr := ValidateJSONAgainstSchema(schema, doc); vErr != nil {
			logger.Warn("llm.extract.grocery_category_unrecognized", "item", name, "category", category)
			item.Category = ""
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil, ErrNoValidRecords
	}
	return out, nil
}
