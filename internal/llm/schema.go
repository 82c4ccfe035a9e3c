package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ithinkitschris/expense-assistant/constants"
)

// BuildExpenseJSONSchema returns the schema one parsed expense record must
// satisfy before it is trusted. Category is pinned to the closed enumeration;
// the sanitize pass repairs records that fail this before they are re-checked.
func BuildExpenseJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"amount":      map[string]any{"type": "number", "exclusiveMinimum": 0.0},
			"category":    map[string]any{"type": "string", "enum": constants.AllCategories()},
			"description": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"amount", "category", "description"},
	}
}

// BuildGroceryItemJSONSchema returns the schema one parsed grocery item must
// satisfy.
func BuildGroceryItemJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"item":     map[string]any{"type": "string", "minLength": 1},
			"category": map[string]any{"type": "string", "enum": constants.AllGroceryTypes()},
		},
		"required": []string{"item", "category"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
