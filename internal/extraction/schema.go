package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildExtractionJSONSchema returns a JSON-Schema (draft 2020-12 subset)
// as a generic map. We pass this to the LLM as a structured output
// constraint and also use it locally as the structural gate before
// Validate runs.
func BuildExtractionJSONSchema() map[string]any {
	money := map[string]any{"type": "number"}

	categoryEntry := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"category": map[string]any{"type": "string", "minLength": 1},
			"total":    money,
			"subtotal": money,
			"tax":      money,
		},
		"required": []string{"category", "total"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"store": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"name":  map[string]any{"type": "string", "minLength": 1},
					"phone": map[string]any{"type": "string"},
				},
				"required": []string{"name"},
			},
			"receiptDate":   map[string]any{"type": "string", "minLength": 1},
			"paymentMethod": map[string]any{"type": "string"},
			"totals": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"subtotal": money,
					"tax":      money,
					"total":    money,
				},
				"required": []string{"total"},
			},
			"categoryReceipts": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    categoryEntry,
			},
			"needsReview": map[string]any{"type": "boolean"},
		},
		"required": []string{"store", "receiptDate", "totals", "categoryReceipts"},
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
