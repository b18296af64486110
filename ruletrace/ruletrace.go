// Package ruletrace assembles a canonical execution-trace record from a
// run description and its rule evaluation result. The derived status has a
// strict precedence: a reject rule always wins over a plain failure, and a
// plain failure wins over success.
package ruletrace

import (
	"fmt"

	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/jsonval"
)

// Statuses.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusRejected = "rejected"
)

// Summary describes one side of the run (input or output) without
// carrying the payload itself.
type Summary struct {
	Type string `json:"type"`
	Size int    `json:"size"`
	Hash string `json:"hash"`
}

// RuleHit is one rule evaluation record, echoed into the trace verbatim
// except for message truncation.
type RuleHit struct {
	RuleID  string `json:"rule_id"`
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Input carries the request sections raw so shape failures map to their
// own envelope codes.
type Input struct {
	Run    json.RawMessage `json:"run"`
	Input  json.RawMessage `json:"input"`
	Result json.RawMessage `json:"result"`
	Policy json.RawMessage `json:"policy"`
}

// Trace is the canonical record.
type Trace struct {
	RunID       string    `json:"run_id"`
	TS          string    `json:"ts"`
	Actor       string    `json:"actor"`
	Tool        string    `json:"tool"`
	ToolVersion string    `json:"tool_version"`
	Stage       string    `json:"stage"`
	Input       Summary   `json:"input"`
	Output      Summary   `json:"output"`
	RulesHit    []RuleHit `json:"rules_hit"`
	Status      string    `json:"status"`
}

// Result wraps the trace.
type Result struct {
	OK    bool  `json:"ok"`
	Trace Trace `json:"trace"`
}

type policy struct {
	maxMessageLength int
}

type runResult struct {
	ok            bool
	outputSummary *Summary
	rulesHit      []RuleHit
}

// Build validates the sections and derives the trace.
func Build(in Input) (*Result, *jsontools.Error) {
	pol, envErr := parsePolicy(in.Policy)
	if envErr != nil {
		return nil, envErr
	}
	trace, envErr := parseRun(in.Run)
	if envErr != nil {
		return nil, envErr
	}
	inputSummary, envErr := parseInput(in.Input)
	if envErr != nil {
		return nil, envErr
	}
	res, envErr := parseResult(in.Result)
	if envErr != nil {
		return nil, envErr
	}

	rulesHit := make([]RuleHit, 0, len(res.rulesHit))
	rejected := false
	for _, hit := range res.rulesHit {
		hit.Message = jsontools.Truncate(hit.Message, pol.maxMessageLength)
		rulesHit = append(rulesHit, hit)
		if hit.Kind == "reject" {
			rejected = true
		}
	}

	status := StatusSuccess
	switch {
	case rejected:
		status = StatusRejected
	case !res.ok:
		status = StatusError
	}

	trace.Input = inputSummary
	if res.outputSummary != nil {
		trace.Output = *res.outputSummary
	}
	trace.RulesHit = rulesHit
	trace.Status = status
	return &Result{OK: true, Trace: trace}, nil
}

func parsePolicy(raw json.RawMessage) (policy, *jsontools.Error) {
	out := policy{maxMessageLength: 200}
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	obj, err := jsonval.DecodeObject(raw)
	if err != nil {
		return out, jsontools.NewError(jsontools.CodePolicyInvalid, "policy must be an object.")
	}
	for _, key := range obj.Keys() {
		value, _ := obj.Get(key)
		switch key {
		case "max_message_length":
			n, ok := jsonval.AsInt(value)
			if !ok || n <= 0 {
				return out, jsontools.NewError(jsontools.CodePolicyInvalid,
					"policy.max_message_length must be a positive integer.")
			}
			out.maxMessageLength = n
		case "hash_alg":
			alg, ok := value.(string)
			if !ok || alg != "sha256" {
				return out, jsontools.NewError(jsontools.CodePolicyInvalid, "policy.hash_alg must be sha256.")
			}
		default:
			return out, jsontools.Errorf(jsontools.CodePolicyInvalid, "policy has unknown field %q.", key)
		}
	}
	return out, nil
}

// parseRun requires the six identity fields, all strings, nothing else.
func parseRun(raw json.RawMessage) (Trace, *jsontools.Error) {
	var out Trace
	obj, envErr := section(raw, "run")
	if envErr != nil {
		return out, envErr
	}
	fields := []struct {
		key string
		dst *string
	}{
		{"run_id", &out.RunID},
		{"ts", &out.TS},
		{"actor", &out.Actor},
		{"tool", &out.Tool},
		{"tool_version", &out.ToolVersion},
		{"stage", &out.Stage},
	}
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.key] = true
	}
	for _, key := range obj.Keys() {
		if !known[key] {
			return out, inputInvalid("run has unknown field %q", key)
		}
	}
	for _, f := range fields {
		v, ok := obj.Get(f.key)
		if !ok {
			return out, inputInvalid("run.%s is required", f.key)
		}
		s, ok := v.(string)
		if !ok {
			return out, inputInvalid("run.%s must be a string", f.key)
		}
		*f.dst = s
	}
	return out, nil
}

func parseInput(raw json.RawMessage) (Summary, *jsontools.Error) {
	obj, envErr := section(raw, "input")
	if envErr != nil {
		return Summary{}, envErr
	}
	v, ok := obj.Get("summary")
	if !ok {
		return Summary{}, inputInvalid("input.summary is required")
	}
	return parseSummary(v, "input.summary")
}

func parseResult(raw json.RawMessage) (runResult, *jsontools.Error) {
	var out runResult
	obj, envErr := section(raw, "result")
	if envErr != nil {
		return out, envErr
	}
	v, present := obj.Get("ok")
	if !present {
		return out, inputInvalid("result.ok is required")
	}
	ok, isBool := v.(bool)
	if !isBool {
		return out, inputInvalid("result.ok must be a boolean")
	}
	out.ok = ok

	if v, present := obj.Get("output_summary"); present && v != nil {
		summary, envErr := parseSummary(v, "result.output_summary")
		if envErr != nil {
			return out, envErr
		}
		out.outputSummary = &summary
	}

	if v, present := obj.Get("rules_hit"); present && v != nil {
		list, isList := v.([]any)
		if !isList {
			return out, inputInvalid("result.rules_hit must be an array")
		}
		for i, item := range list {
			hit, envErr := parseRuleHit(item, i)
			if envErr != nil {
				return out, envErr
			}
			out.rulesHit = append(out.rulesHit, hit)
		}
	}
	return out, nil
}

func parseSummary(v any, where string) (Summary, *jsontools.Error) {
	var out Summary
	obj, ok := v.(*jsonval.Object)
	if !ok {
		return out, inputInvalid("%s must be an object", where)
	}
	t, ok := obj.Get("type")
	if !ok {
		return out, inputInvalid("%s.type is required", where)
	}
	if out.Type, ok = t.(string); !ok {
		return out, inputInvalid("%s.type must be a string", where)
	}
	size, ok := obj.Get("size")
	if !ok {
		return out, inputInvalid("%s.size is required", where)
	}
	if out.Size, ok = jsonval.AsInt(size); !ok || out.Size < 0 {
		return out, inputInvalid("%s.size must be a non-negative integer", where)
	}
	hash, ok := obj.Get("hash")
	if !ok {
		return out, inputInvalid("%s.hash is required", where)
	}
	if out.Hash, ok = hash.(string); !ok {
		return out, inputInvalid("%s.hash must be a string", where)
	}
	return out, nil
}

func parseRuleHit(v any, index int) (RuleHit, *jsontools.Error) {
	var out RuleHit
	obj, ok := v.(*jsonval.Object)
	if !ok {
		return out, inputInvalid("result.rules_hit[%d] must be an object", index)
	}
	fields := []struct {
		key string
		dst *string
	}{
		{"rule_id", &out.RuleID},
		{"kind", &out.Kind},
		{"path", &out.Path},
		{"code", &out.Code},
		{"message", &out.Message},
	}
	for _, f := range fields {
		v, ok := obj.Get(f.key)
		if !ok {
			return out, inputInvalid("result.rules_hit[%d].%s is required", index, f.key)
		}
		s, ok := v.(string)
		if !ok {
			return out, inputInvalid("result.rules_hit[%d].%s must be a string", index, f.key)
		}
		*f.dst = s
	}
	return out, nil
}

func section(raw json.RawMessage, name string) (*jsonval.Object, *jsontools.Error) {
	if len(raw) == 0 {
		return nil, inputInvalid("%s must be an object", name)
	}
	obj, err := jsonval.DecodeObject(raw)
	if err != nil {
		return nil, inputInvalid("%s must be an object", name)
	}
	return obj, nil
}

func inputInvalid(format string, args ...any) *jsontools.Error {
	return jsontools.NewError(jsontools.CodeInputInvalid, fmt.Sprintf(format, args...)+".")
}
