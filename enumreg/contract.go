package enumreg

import "github.com/reoring/jsontools/contract"

var ToolContract = contract.Contract{
	Name:        "enum_registry",
	Version:     "1.0.0",
	Path:        "/tools/enum_registry",
	Description: "Cross-check a supplied enum value set against a canonical reference set.",
	Determinism: contract.Pure,
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reference": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"values":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"policy": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"case_fold":  map[string]any{"type": "boolean"},
					"trim":       map[string]any{"type": "boolean"},
					"max_values": map[string]any{"type": "integer"},
				},
			},
		},
		"required":             []string{"reference", "values"},
		"additionalProperties": false,
	},
	OutputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ok":         map[string]any{"type": "boolean"},
			"matched":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"missing":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"duplicates": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required":             []string{"ok", "matched", "missing", "duplicates"},
		"additionalProperties": false,
	},
	ErrorCodes: []contract.ErrorCode{
		{Code: "ENUM_EMPTY", When: "reference is empty"},
		{Code: "ENUM_INVALID", When: "reference or values is not a list of strings"},
		{Code: "TOO_MANY_VALUES", When: "values exceeds policy.max_values"},
		{Code: "POLICY_INVALID", When: "policy mistyped or carrying unknown fields"},
	},
	NonGoals: contract.CommonNonGoals,
}
