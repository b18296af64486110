package schemamap

import "github.com/reoring/jsontools/contract"

var ToolContract = contract.Contract{
	Name:        "schema_map",
	Version:     "1.0.0",
	Path:        "/tools/schema_map",
	Description: "Deterministic object mapping with rename/drop/default/require rules.",
	Determinism: contract.Pure,
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"data": map[string]any{"type": "object"},
			"mapping": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"rename":   map[string]any{"type": "object"},
					"defaults": map[string]any{"type": "object"},
					"drop":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"require":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
				"additionalProperties": false,
			},
			"mode": map[string]any{"type": "string", "enum": []string{"strict", "lenient"}},
		},
		"required":             []string{"data", "mapping"},
		"additionalProperties": false,
	},
	OutputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ok":     map[string]any{"type": "boolean"},
			"data":   map[string]any{"type": "object"},
			"meta":   map[string]any{"type": "object"},
			"errors": map[string]any{"type": "array", "items": map[string]any{"type": "object"}},
		},
		"required":             []string{"ok"},
		"additionalProperties": false,
	},
	ErrorCodes: []contract.ErrorCode{
		{Code: "INPUT_INVALID", When: "request body invalid"},
		{Code: "MODE_INVALID", When: "mode is not strict or lenient"},
		{Code: "MAPPING_INVALID", When: "mapping path or field mistyped"},
	},
	NonGoals: contract.CommonNonGoals,
}
