package schemamap_test

import (
	"testing"

	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/jsonpath"
	"github.com/reoring/jsontools/schemamap"
)

func TestApply_RenameDefaultsDropRequire(t *testing.T) {
	res, envErr := schemamap.Apply(schemamap.Input{
		Data: json.RawMessage(`{"old_name":"ada","junk":true}`),
		Mapping: schemamap.Mapping{
			Rename:   json.RawMessage(`{"old_name":"user.name"}`),
			Defaults: json.RawMessage(`{"user.role":"guest"}`),
			Drop:     []string{"junk"},
			Require:  []string{"user.name"},
		},
		Mode: schemamap.ModeStrict,
	})
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	if !res.OK {
		t.Fatalf("expected ok, got errors %v", res.Errors)
	}
	if v, ok := jsonpath.Get(res.Data, "user.name"); !ok || v != "ada" {
		t.Fatalf("expected renamed value, got %v (%v)", v, ok)
	}
	if v, ok := jsonpath.Get(res.Data, "user.role"); !ok || v != "guest" {
		t.Fatalf("expected default value, got %v (%v)", v, ok)
	}
	if jsonpath.Has(res.Data, "junk") {
		t.Fatalf("expected junk to be dropped")
	}

	want := []string{"rename:old_name->user.name", "defaults:user.role", "drop:junk"}
	if len(res.Meta.Applied) != len(want) {
		t.Fatalf("unexpected applied: %v", res.Meta.Applied)
	}
	for i := range want {
		if res.Meta.Applied[i] != want[i] {
			t.Fatalf("applied[%d] = %q, want %q", i, res.Meta.Applied[i], want[i])
		}
	}
}

func TestApply_StrictMissingSourceReturnsNoData(t *testing.T) {
	res, envErr := schemamap.Apply(schemamap.Input{
		Data: json.RawMessage(`{"a":1}`),
		Mapping: schemamap.Mapping{
			Rename: json.RawMessage(`{"missing":"b"}`),
		},
		Mode: schemamap.ModeStrict,
	})
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	if res.OK {
		t.Fatalf("expected failure")
	}
	if res.Data != nil || res.Meta != nil {
		t.Fatalf("strict failure must not carry partial data")
	}
	if len(res.Errors) != 1 || res.Errors[0].Code != jsontools.CodeSourcePathMissing {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.Errors[0].Path != "missing" {
		t.Fatalf("unexpected path: %q", res.Errors[0].Path)
	}
}

func TestApply_LenientSkipsMissingSource(t *testing.T) {
	res, envErr := schemamap.Apply(schemamap.Input{
		Data: json.RawMessage(`{"a":1}`),
		Mapping: schemamap.Mapping{
			Rename: json.RawMessage(`{"missing":"b"}`),
		},
		Mode: schemamap.ModeLenient,
	})
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	if !res.OK {
		t.Fatalf("expected ok in lenient mode")
	}
	if len(res.Errors) != 0 {
		t.Fatalf("lenient mode skips missing sources silently, got %v", res.Errors)
	}
	if len(res.Meta.Applied) != 0 {
		t.Fatalf("nothing should have applied, got %v", res.Meta.Applied)
	}
}

func TestApply_LenientRequireStillReturnsData(t *testing.T) {
	res, envErr := schemamap.Apply(schemamap.Input{
		Data: json.RawMessage(`{"a":1}`),
		Mapping: schemamap.Mapping{
			Require: []string{"b"},
		},
		Mode: schemamap.ModeLenient,
	})
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	if !res.OK || res.Data == nil {
		t.Fatalf("lenient mode returns data alongside errors")
	}
	if len(res.Errors) != 1 || res.Errors[0].Code != jsontools.CodeRequiredMissing {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func TestApply_DefaultsDoNotOverwrite(t *testing.T) {
	res, _ := schemamap.Apply(schemamap.Input{
		Data: json.RawMessage(`{"role":"admin"}`),
		Mapping: schemamap.Mapping{
			Defaults: json.RawMessage(`{"role":"guest"}`),
		},
	})
	if v, _ := jsonpath.Get(res.Data, "role"); v != "admin" {
		t.Fatalf("default overwrote existing value: %v", v)
	}
	if len(res.Meta.Applied) != 0 {
		t.Fatalf("no default should be recorded, got %v", res.Meta.Applied)
	}
}

func TestApply_InvalidPathFailsCall(t *testing.T) {
	_, envErr := schemamap.Apply(schemamap.Input{
		Data: json.RawMessage(`{}`),
		Mapping: schemamap.Mapping{
			Drop: []string{"a[0]"},
		},
	})
	if envErr == nil || envErr.Code != jsontools.CodeMappingInvalid {
		t.Fatalf("expected MAPPING_INVALID, got %v", envErr)
	}
}

func TestApply_UnknownModeRejected(t *testing.T) {
	_, envErr := schemamap.Apply(schemamap.Input{
		Data: json.RawMessage(`{}`),
		Mode: "yolo",
	})
	if envErr == nil || envErr.Code != jsontools.CodeModeInvalid {
		t.Fatalf("expected MODE_INVALID, got %v", envErr)
	}
}

func TestApply_InputDataNotMutated(t *testing.T) {
	raw := json.RawMessage(`{"a":1}`)
	res, envErr := schemamap.Apply(schemamap.Input{
		Data: raw,
		Mapping: schemamap.Mapping{
			Rename: json.RawMessage(`{"a":"b"}`),
		},
	})
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	if string(raw) != `{"a":1}` {
		t.Fatalf("input bytes were mutated: %s", raw)
	}
	if jsonpath.Has(res.Data, "a") {
		t.Fatalf("expected a to be renamed away")
	}
}
