package inputgate_test

import (
	"testing"

	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/inputgate"
)

const fullRules = `{
	"max_size": 100,
	"allow_types": ["object", "array", "string", "number", "boolean", "null"],
	"string": {"min_length": 0, "max_length": 3},
	"object": {"max_depth": 2, "max_keys": 3},
	"array": {"max_length": 2}
}`

func gate(t *testing.T, input, rules, mode string) (*inputgate.Result, *jsontools.Error) {
	t.Helper()
	in := inputgate.Input{Input: json.RawMessage(input), Mode: mode}
	if rules != "" {
		in.Rules = json.RawMessage(rules)
	}
	return inputgate.Gate(in)
}

func TestGate_StringTooLong(t *testing.T) {
	res, envErr := gate(t, `"sevench"`, fullRules, "")
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	if res.Pass {
		t.Fatalf("expected failure")
	}
	if len(res.Errors) != 1 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	e := res.Errors[0]
	if e.Code != inputgate.CodeStringTooLong || e.Path != "$" || e.Message != "String length exceeds max_length." {
		t.Fatalf("unexpected violation: %+v", e)
	}
}

func TestGate_DefaultsPassOrdinaryInput(t *testing.T) {
	res, envErr := gate(t, `{"name":"ada","tags":["x","y"]}`, "", "")
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	if !res.Pass || len(res.Errors) != 0 {
		t.Fatalf("expected pass, got %v", res.Errors)
	}
}

func TestGate_CollectsAllViolations(t *testing.T) {
	// Three keys over max_keys 3 would pass, so use four; the long string
	// and the oversized array are both nested.
	input := `{"a":"toolong","b":[1,2,3],"c":1,"d":2}`
	res, envErr := gate(t, input, fullRules, "")
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	if res.Pass {
		t.Fatalf("expected failure")
	}
	codes := make(map[string]string, len(res.Errors))
	for _, e := range res.Errors {
		codes[e.Code] = e.Path
	}
	if codes[inputgate.CodeStringTooLong] != "$.a" {
		t.Fatalf("expected STRING_TOO_LONG at $.a, got %v", res.Errors)
	}
	if codes[inputgate.CodeArrayTooLong] != "$.b" {
		t.Fatalf("expected ARRAY_TOO_LONG at $.b, got %v", res.Errors)
	}
	if _, ok := codes[inputgate.CodeObjectTooManyKeys]; !ok {
		t.Fatalf("expected OBJECT_TOO_MANY_KEYS, got %v", res.Errors)
	}
}

func TestGate_ViolationOrderIsFixed(t *testing.T) {
	res, _ := gate(t, `{"a":"toolong","b":[1,2,3],"c":1,"d":2}`, fullRules, "")
	var codes []string
	for _, e := range res.Errors {
		codes = append(codes, e.Code)
	}
	want := []string{
		inputgate.CodeStringTooLong,
		inputgate.CodeArrayTooLong,
		inputgate.CodeObjectTooManyKeys,
	}
	if len(codes) != len(want) {
		t.Fatalf("unexpected codes: %v", codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes[%d] = %s, want %s", i, codes[i], want[i])
		}
	}
}

func TestGate_TypeNotAllowed(t *testing.T) {
	rules := `{
		"max_size": 100,
		"allow_types": ["object"],
		"string": {"min_length": 0, "max_length": 10},
		"object": {"max_depth": 5, "max_keys": 10},
		"array": {"max_length": 10}
	}`
	res, _ := gate(t, `"a string"`, rules, "")
	if res.Pass {
		t.Fatalf("expected failure")
	}
	if res.Errors[0].Code != inputgate.CodeTypeNotAllowed || res.Errors[0].Path != "$" {
		t.Fatalf("unexpected violation: %+v", res.Errors[0])
	}
}

func TestGate_ObjectTooDeep(t *testing.T) {
	res, _ := gate(t, `{"a":{"b":{"c":1}}}`, fullRules, "")
	found := false
	for _, e := range res.Errors {
		if e.Code == inputgate.CodeObjectTooDeep {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected OBJECT_TOO_DEEP, got %v", res.Errors)
	}
}

func TestGate_PartialRulesRejected(t *testing.T) {
	_, envErr := gate(t, `{}`, `{"max_size": 100}`, "")
	if envErr == nil || envErr.Code != jsontools.CodeRulesInvalid {
		t.Fatalf("expected RULES_INVALID, got %v", envErr)
	}
}

func TestGate_UnknownRuleFieldRejected(t *testing.T) {
	rules := `{
		"max_size": 100,
		"allow_types": ["object"],
		"string": {"min_length": 0, "max_length": 10},
		"object": {"max_depth": 5, "max_keys": 10},
		"array": {"max_length": 10},
		"surprise": true
	}`
	_, envErr := gate(t, `{}`, rules, "")
	if envErr == nil || envErr.Code != jsontools.CodeRulesInvalid {
		t.Fatalf("expected RULES_INVALID, got %v", envErr)
	}
}

func TestGate_UnknownModeRejected(t *testing.T) {
	_, envErr := gate(t, `{}`, "", "casual")
	if envErr == nil || envErr.Code != jsontools.CodeModeInvalid {
		t.Fatalf("expected MODE_INVALID, got %v", envErr)
	}
}

func TestGate_MalformedInputRejected(t *testing.T) {
	_, envErr := gate(t, `{not json`, "", "")
	if envErr == nil || envErr.Code != jsontools.CodeInputInvalid {
		t.Fatalf("expected INPUT_INVALID, got %v", envErr)
	}
}
