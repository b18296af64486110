package errclass

import "github.com/reoring/jsontools/contract"

var ToolContract = contract.Contract{
	Name:        "structured_error",
	Version:     "1.0.0",
	Path:        "/tools/structured_error",
	Description: "Normalize a raw error into a canonical class with severity, retryability, and a stable fingerprint.",
	Determinism: contract.Pure,
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"source": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tool":    map[string]any{"type": "string"},
					"stage":   map[string]any{"type": "string"},
					"version": map[string]any{"type": "string"},
				},
				"required": []string{"tool", "stage"},
			},
			"error": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"code":        map[string]any{"type": "string"},
					"message":     map[string]any{"type": "string"},
					"type":        map[string]any{"type": "string"},
					"http_status": map[string]any{"type": "integer"},
					"path":        map[string]any{"type": "string"},
					"details":     map[string]any{"type": "object"},
				},
				"required": []string{"code"},
			},
			"policy": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"max_message_length":  map[string]any{"type": "integer"},
					"include_raw_message": map[string]any{"type": "boolean"},
				},
			},
		},
		"required":             []string{"source", "error"},
		"additionalProperties": false,
	},
	OutputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ok": map[string]any{"type": "boolean"},
			"error": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"class":       map[string]any{"type": "string"},
					"code":        map[string]any{"type": "string"},
					"message":     map[string]any{"type": "string"},
					"retryable":   map[string]any{"type": "boolean"},
					"severity":    map[string]any{"type": "string"},
					"where":       map[string]any{"type": "object"},
					"http_status": map[string]any{"type": "integer"},
					"fingerprint": map[string]any{"type": "string"},
				},
			},
		},
		"required":             []string{"ok", "error"},
		"additionalProperties": false,
	},
	ErrorCodes: []contract.ErrorCode{
		{Code: "INPUT_INVALID", When: "request body invalid"},
		{Code: "POLICY_INVALID", When: "policy mistyped, out of range, or carrying unknown fields"},
		{Code: "SOURCE_INVALID", When: "source.tool or source.stage missing or empty"},
		{Code: "ERROR_INVALID", When: "error.code missing or fields mistyped"},
	},
	NonGoals: contract.CommonNonGoals,
}
