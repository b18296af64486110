package enumreg_test

import (
	"testing"

	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/enumreg"
)

func check(t *testing.T, reference, values, policy string) (*enumreg.Result, *jsontools.Error) {
	t.Helper()
	in := enumreg.Input{
		Reference: json.RawMessage(reference),
		Values:    json.RawMessage(values),
	}
	if policy != "" {
		in.Policy = json.RawMessage(policy)
	}
	return enumreg.Check(in)
}

func TestCheck_MatchedAndMissingFollowReferenceOrder(t *testing.T) {
	res, envErr := check(t,
		`["OPEN","CLOSED","PENDING"]`,
		`["pending","open"]`,
		"")
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	if !res.OK {
		t.Fatalf("expected ok")
	}
	if len(res.Matched) != 2 || res.Matched[0] != "OPEN" || res.Matched[1] != "PENDING" {
		t.Fatalf("unexpected matched: %v", res.Matched)
	}
	if len(res.Missing) != 1 || res.Missing[0] != "CLOSED" {
		t.Fatalf("unexpected missing: %v", res.Missing)
	}
	if len(res.Duplicates) != 0 {
		t.Fatalf("unexpected duplicates: %v", res.Duplicates)
	}
}

func TestCheck_DuplicatesByFirstDuplicateOccurrence(t *testing.T) {
	res, _ := check(t,
		`["a","b","c"]`,
		`["b","a","b","c","a","b"]`,
		"")
	// b becomes a duplicate at index 2, a at index 4; the third b adds
	// nothing new.
	if len(res.Duplicates) != 2 || res.Duplicates[0] != "b" || res.Duplicates[1] != "a" {
		t.Fatalf("unexpected duplicates: %v", res.Duplicates)
	}
}

func TestCheck_NormalizationAppliesTrimAndCaseFold(t *testing.T) {
	res, _ := check(t, `["Open"]`, `["  OPEN  "]`, "")
	if len(res.Matched) != 1 || res.Matched[0] != "Open" {
		t.Fatalf("expected normalized match, got %v", res.Matched)
	}

	res, _ = check(t, `["Open"]`, `["OPEN"]`, `{"case_fold":false}`)
	if len(res.Matched) != 0 {
		t.Fatalf("case folding disabled, expected no match, got %v", res.Matched)
	}
}

func TestCheck_DuplicatesRespectNormalization(t *testing.T) {
	res, _ := check(t, `["x"]`, `["A","a "," A"]`, "")
	if len(res.Duplicates) != 1 || res.Duplicates[0] != "a" {
		t.Fatalf("unexpected duplicates: %v", res.Duplicates)
	}
}

func TestCheck_EmptyReferenceRejected(t *testing.T) {
	_, envErr := check(t, `[]`, `["a"]`, "")
	if envErr == nil || envErr.Code != jsontools.CodeEnumEmpty {
		t.Fatalf("expected ENUM_EMPTY, got %v", envErr)
	}
}

func TestCheck_TooManyValues(t *testing.T) {
	_, envErr := check(t, `["a"]`, `["1","2","3"]`, `{"max_values":2}`)
	if envErr == nil || envErr.Code != jsontools.CodeTooManyValues {
		t.Fatalf("expected TOO_MANY_VALUES, got %v", envErr)
	}
}

func TestCheck_NonStringEntriesRejected(t *testing.T) {
	_, envErr := check(t, `["a",1]`, `[]`, "")
	if envErr == nil || envErr.Code != jsontools.CodeEnumInvalid {
		t.Fatalf("expected ENUM_INVALID for reference, got %v", envErr)
	}
	_, envErr = check(t, `["a"]`, `[true]`, "")
	if envErr == nil || envErr.Code != jsontools.CodeEnumInvalid {
		t.Fatalf("expected ENUM_INVALID for values, got %v", envErr)
	}
}

func TestCheck_PolicyValidation(t *testing.T) {
	_, envErr := check(t, `["a"]`, `["a"]`, `{"max_values":0}`)
	if envErr == nil || envErr.Code != jsontools.CodePolicyInvalid {
		t.Fatalf("expected POLICY_INVALID, got %v", envErr)
	}
	_, envErr = check(t, `["a"]`, `["a"]`, `{"fold":true}`)
	if envErr == nil || envErr.Code != jsontools.CodePolicyInvalid {
		t.Fatalf("expected POLICY_INVALID for unknown field, got %v", envErr)
	}
}

func TestCheck_EmptyListsSerializeAsArrays(t *testing.T) {
	res, _ := check(t, `["a"]`, `["a"]`, "")
	data, _ := json.Marshal(res)
	want := `{"ok":true,"matched":["a"],"missing":[],"duplicates":[]}`
	if string(data) != want {
		t.Fatalf("unexpected serialization: %s", data)
	}
}
