package inputgate

import "github.com/reoring/jsontools/contract"

var ToolContract = contract.Contract{
	Name:        "input_gate",
	Version:     "1.0.0",
	Path:        "/tools/input_gate",
	Description: "Pre-flight input checks for type, size, and structural limits.",
	Determinism: contract.Pure,
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"input": map[string]any{},
			"rules": map[string]any{"type": "object"},
			"mode":  map[string]any{"type": "string", "enum": []string{"strict", "lenient"}},
		},
		"required":             []string{"input"},
		"additionalProperties": false,
	},
	OutputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pass":   map[string]any{"type": "boolean"},
			"errors": map[string]any{"type": "array", "items": map[string]any{"type": "object"}},
		},
		"required":             []string{"pass"},
		"additionalProperties": false,
	},
	ErrorCodes: []contract.ErrorCode{
		{Code: "INPUT_INVALID", When: "request body invalid"},
		{Code: "RULES_INVALID", When: "rules incomplete, mistyped, or carrying unknown fields"},
		{Code: "MODE_INVALID", When: "mode is not strict or lenient"},
	},
	NonGoals: contract.CommonNonGoals,
}
