package textnorm

import "github.com/reoring/jsontools/contract"

var ToolContract = contract.Contract{
	Name:        "text_normalize",
	Version:     "1.0.0",
	Path:        "/tools/text_normalize",
	Description: "Deterministically normalize text using explicit ops and options.",
	Determinism: contract.Pure,
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
			"ops": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"normalize_newlines":   map[string]any{"type": "boolean"},
					"collapse_whitespace":  map[string]any{"type": "boolean"},
					"trim":                 map[string]any{"type": "boolean"},
					"to_lower":             map[string]any{"type": "boolean"},
					"to_upper":             map[string]any{"type": "boolean"},
					"remove_control_chars": map[string]any{"type": "boolean"},
				},
				"additionalProperties": false,
			},
			"options": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"preserve_tabs":     map[string]any{"type": "boolean"},
					"preserve_newlines": map[string]any{"type": "boolean"},
				},
				"additionalProperties": false,
			},
		},
		"required":             []string{"text"},
		"additionalProperties": false,
	},
	OutputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
			"meta": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"original_length":   map[string]any{"type": "integer"},
					"normalized_length": map[string]any{"type": "integer"},
					"applied":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
				"required":             []string{"original_length", "normalized_length", "applied"},
				"additionalProperties": false,
			},
		},
		"required":             []string{"text", "meta"},
		"additionalProperties": false,
	},
	ErrorCodes: []contract.ErrorCode{
		{Code: "INPUT_INVALID", When: "input does not match schema"},
	},
	NonGoals: contract.CommonNonGoals,
}
