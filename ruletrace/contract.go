package ruletrace

import "github.com/reoring/jsontools/contract"

var ToolContract = contract.Contract{
	Name:        "rule_trace",
	Version:     "1.0.0",
	Path:        "/tools/rule_trace",
	Description: "Assemble a canonical execution trace with input/output summaries and a derived status.",
	Determinism: contract.Pure,
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"run":    map[string]any{"type": "object"},
			"input":  map[string]any{"type": "object"},
			"result": map[string]any{"type": "object"},
			"policy": map[string]any{"type": "object"},
		},
		"required":             []string{"run", "input", "result"},
		"additionalProperties": false,
	},
	OutputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ok":    map[string]any{"type": "boolean"},
			"trace": map[string]any{"type": "object"},
		},
		"required":             []string{"ok", "trace"},
		"additionalProperties": false,
	},
	ErrorCodes: []contract.ErrorCode{
		{Code: "INPUT_INVALID", When: "run, input, or result shape invalid"},
		{Code: "POLICY_INVALID", When: "hash_alg is not sha256 or policy fields mistyped"},
	},
	NonGoals: contract.CommonNonGoals,
}
