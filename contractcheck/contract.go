package contractcheck

import "github.com/reoring/jsontools/contract"

var ToolContract = contract.Contract{
	Name:        "capability_contract",
	Version:     "1.0.0",
	Path:        "/tools/capability_contract",
	Description: "Validate or normalize a capability's declared input/output/behavior contract.",
	Determinism: contract.Pure,
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"contract": map[string]any{"type": "object"},
			"mode":     map[string]any{"type": "string", "enum": []string{"validate", "normalize"}},
		},
		"required":             []string{"contract"},
		"additionalProperties": false,
	},
	OutputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ok":       map[string]any{"type": "boolean"},
			"contract": map[string]any{"type": "object"},
			"errors":   map[string]any{"type": "array", "items": map[string]any{"type": "object"}},
		},
		"required":             []string{"ok"},
		"additionalProperties": false,
	},
	ErrorCodes: []contract.ErrorCode{
		{Code: "INPUT_INVALID", When: "request body invalid"},
		{Code: "SCHEMA_INVALID", When: "inputs.schema or outputs.schema is not an object"},
		{Code: "MODE_INVALID", When: "mode is not validate or normalize"},
	},
	NonGoals: contract.CommonNonGoals,
}
