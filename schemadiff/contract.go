package schemadiff

import "github.com/reoring/jsontools/contract"

var ToolContract = contract.Contract{
	Name:        "schema_diff",
	Version:     "1.0.0",
	Path:        "/tools/schema_diff",
	Description: "Diff two schema documents into added/removed/changed paths.",
	Determinism: contract.Pure,
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"old_schema": map[string]any{"type": "object"},
			"new_schema": map[string]any{"type": "object"},
		},
		"required":             []string{"old_schema", "new_schema"},
		"additionalProperties": false,
	},
	OutputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"added":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"removed": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"changed": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required":             []string{"added", "removed", "changed"},
		"additionalProperties": false,
	},
	ErrorCodes: []contract.ErrorCode{
		{Code: "INPUT_INVALID", When: "request body invalid"},
		{Code: "SCHEMA_INVALID", When: "either document is not an object"},
		{Code: "SCHEMA_UNSUPPORTED", When: "composition keywords are present"},
	},
	NonGoals: contract.CommonNonGoals,
}
