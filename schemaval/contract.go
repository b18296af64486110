package schemaval

import "github.com/reoring/jsontools/contract"

// ToolContract is the static artifact served for this engine.
var ToolContract = contract.Contract{
	Name:        "schema_validate",
	Version:     "1.0.0",
	Path:        "/tools/schema_validate",
	Description: "Validate data against a limited JSON Schema subset.",
	Determinism: contract.Pure,
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"schema": map[string]any{"type": "object"},
			"data":   map[string]any{},
		},
		"required":             []string{"schema", "data"},
		"additionalProperties": false,
	},
	OutputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"valid":  map[string]any{"type": "boolean"},
			"errors": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required":             []string{"valid", "errors"},
		"additionalProperties": false,
	},
	ErrorCodes: []contract.ErrorCode{
		{Code: "INPUT_INVALID", When: "request body invalid"},
		{Code: "SCHEMA_INVALID", When: "schema keyword payload mistyped"},
		{Code: "SCHEMA_UNSUPPORTED", When: "schema keyword outside the subset"},
	},
	NonGoals: contract.CommonNonGoals,
}
