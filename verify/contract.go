package verify

import "github.com/reoring/jsontools/contract"

var ToolContract = contract.Contract{
	Name:        "verify_test",
	Version:     "1.0.0",
	Path:        "/tools/verify_test",
	Description: "Echo input text and return its length for stability verification.",
	Determinism: contract.Pure,
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
		},
		"required":             []string{"text"},
		"additionalProperties": false,
	},
	OutputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"echo":   map[string]any{"type": "string"},
			"length": map[string]any{"type": "integer"},
		},
		"required":             []string{"echo", "length"},
		"additionalProperties": false,
	},
	ErrorCodes: []contract.ErrorCode{
		{Code: "INPUT_INVALID", When: "request body invalid"},
	},
	NonGoals: contract.CommonNonGoals,
}
