package contractcheck_test

import (
	"testing"

	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/contractcheck"
)

func check(t *testing.T, contract, mode string) (*contractcheck.Result, *jsontools.Error) {
	t.Helper()
	return contractcheck.Check(contractcheck.Input{
		Contract: json.RawMessage(contract),
		Mode:     mode,
	})
}

func TestCheck_ValidateForbiddenFalse(t *testing.T) {
	res, envErr := check(t,
		`{"forbidden":{"judgement":false},"behavior":{"deterministic":true}}`,
		contractcheck.ModeValidate)
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	if res.OK {
		t.Fatalf("expected failure")
	}
	if len(res.Errors) != 1 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	e := res.Errors[0]
	if e.Path != "contract.forbidden.judgement" || e.Code != jsontools.CodeForbiddenViolation {
		t.Fatalf("unexpected violation: %+v", e)
	}
	if res.Contract != nil {
		t.Fatalf("failed validate must not echo the contract")
	}
}

func TestCheck_ValidateCollectsAllViolations(t *testing.T) {
	res, _ := check(t,
		`{"forbidden":{"judgement":false,"network":true,"storage":false}}`,
		contractcheck.ModeValidate)
	if res.OK {
		t.Fatalf("expected failure")
	}
	// Two forbidden violations in declaration order, then the missing
	// deterministic flag.
	if len(res.Errors) != 3 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.Errors[0].Path != "contract.forbidden.judgement" ||
		res.Errors[1].Path != "contract.forbidden.storage" ||
		res.Errors[2].Code != jsontools.CodeBehaviorViolation {
		t.Fatalf("unexpected violation order: %+v", res.Errors)
	}
}

func TestCheck_ValidatePasses(t *testing.T) {
	res, envErr := check(t,
		`{"name":"x","forbidden":{"judgement":true},"behavior":{"deterministic":true}}`,
		contractcheck.ModeValidate)
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	if !res.OK || res.Contract == nil {
		t.Fatalf("expected ok with contract echoed")
	}
}

func TestCheck_NormalizeFillsDefaultsAndSorts(t *testing.T) {
	res, envErr := check(t, `{"zeta":1,"alpha":2}`, contractcheck.ModeNormalize)
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	if !res.OK {
		t.Fatalf("expected ok")
	}
	data, err := json.Marshal(res.Contract)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"alpha":2,"behavior":{"deterministic":true},"forbidden":{"judgement":true,"network":true,"side_effects":true,"storage":true},"zeta":1}`
	if string(data) != want {
		t.Fatalf("unexpected normalized contract:\n got %s\nwant %s", data, want)
	}
}

func TestCheck_NormalizeKeepsDeclaredValues(t *testing.T) {
	res, _ := check(t,
		`{"behavior":{"deterministic":false},"forbidden":{"network":false}}`,
		contractcheck.ModeNormalize)
	data, _ := json.Marshal(res.Contract)
	want := `{"behavior":{"deterministic":false},"forbidden":{"judgement":true,"network":false,"side_effects":true,"storage":true}}`
	if string(data) != want {
		t.Fatalf("normalize must not overwrite declared values:\n got %s\nwant %s", data, want)
	}
}

func TestCheck_NormalizeIdempotent(t *testing.T) {
	first, envErr := check(t, `{"b":{"y":1,"x":2},"a":true}`, contractcheck.ModeNormalize)
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	firstJSON, _ := json.Marshal(first.Contract)

	second, envErr := check(t, string(firstJSON), contractcheck.ModeNormalize)
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	secondJSON, _ := json.Marshal(second.Contract)
	if string(firstJSON) != string(secondJSON) {
		t.Fatalf("normalize not idempotent:\n once %s\ntwice %s", firstJSON, secondJSON)
	}
}

func TestCheck_SchemaSectionsMustBeObjects(t *testing.T) {
	_, envErr := check(t, `{"inputs":{"schema":"nope"}}`, contractcheck.ModeValidate)
	if envErr == nil || envErr.Code != jsontools.CodeSchemaInvalid {
		t.Fatalf("expected SCHEMA_INVALID, got %v", envErr)
	}

	_, envErr = check(t, `{"outputs":{"schema":[1]}}`, contractcheck.ModeNormalize)
	if envErr == nil || envErr.Code != jsontools.CodeSchemaInvalid {
		t.Fatalf("expected SCHEMA_INVALID for outputs, got %v", envErr)
	}
}

func TestCheck_UnknownModeRejected(t *testing.T) {
	_, envErr := check(t, `{}`, "audit")
	if envErr == nil || envErr.Code != jsontools.CodeModeInvalid {
		t.Fatalf("expected MODE_INVALID, got %v", envErr)
	}
}

func TestCheck_InputMustBeObject(t *testing.T) {
	_, envErr := check(t, `"contract"`, contractcheck.ModeValidate)
	if envErr == nil || envErr.Code != jsontools.CodeInputInvalid {
		t.Fatalf("expected INPUT_INVALID, got %v", envErr)
	}
}
