package schemadiff_test

import (
	"testing"

	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/schemadiff"
)

func diff(t *testing.T, oldSchema, newSchema string) (*schemadiff.Result, *jsontools.Error) {
	t.Helper()
	return schemadiff.Diff(schemadiff.Input{
		OldSchema: json.RawMessage(oldSchema),
		NewSchema: json.RawMessage(newSchema),
	})
}

func TestDiff_AddedRemovedChanged(t *testing.T) {
	res, envErr := diff(t,
		`{"a":1,"b":{"c":"x"},"gone":true}`,
		`{"a":2,"b":{"c":"x"},"fresh":null}`)
	if envErr != nil {
		t.Fatalf("unexpected envelope error: %v", envErr)
	}
	if len(res.Added) != 1 || res.Added[0] != "$.fresh" {
		t.Fatalf("unexpected added: %v", res.Added)
	}
	if len(res.Removed) != 1 || res.Removed[0] != "$.gone" {
		t.Fatalf("unexpected removed: %v", res.Removed)
	}
	if len(res.Changed) != 1 || res.Changed[0] != "$.a" {
		t.Fatalf("unexpected changed: %v", res.Changed)
	}
}

func TestDiff_NestedPaths(t *testing.T) {
	res, _ := diff(t,
		`{"props":{"name":{"type":"string"},"age":{"type":"integer"}}}`,
		`{"props":{"name":{"type":"text"}}}`)
	if len(res.Changed) != 1 || res.Changed[0] != "$.props.name.type" {
		t.Fatalf("unexpected changed: %v", res.Changed)
	}
	if len(res.Removed) != 1 || res.Removed[0] != "$.props.age" {
		t.Fatalf("unexpected removed: %v", res.Removed)
	}
}

func TestDiff_EqualDocumentsYieldEmptyLists(t *testing.T) {
	res, _ := diff(t, `{"a":{"b":1}}`, `{"a":{"b":1}}`)
	if len(res.Added)+len(res.Removed)+len(res.Changed) != 0 {
		t.Fatalf("expected empty diff, got %+v", res)
	}
	data, _ := json.Marshal(res)
	if string(data) != `{"added":[],"removed":[],"changed":[]}` {
		t.Fatalf("lists must serialize as empty arrays: %s", data)
	}
}

func TestDiff_Symmetry(t *testing.T) {
	oldSchema := `{"a":1,"b":{"c":2,"d":3},"e":"x"}`
	newSchema := `{"b":{"c":9,"f":4},"e":"x","g":true}`

	fwd, _ := diff(t, oldSchema, newSchema)
	rev, _ := diff(t, newSchema, oldSchema)

	if len(fwd.Added) != len(rev.Removed) {
		t.Fatalf("added/removed asymmetry: %v vs %v", fwd.Added, rev.Removed)
	}
	seen := make(map[string]bool, len(rev.Removed))
	for _, p := range rev.Removed {
		seen[p] = true
	}
	for _, p := range fwd.Added {
		if !seen[p] {
			t.Fatalf("path %s added forward but not removed in reverse", p)
		}
	}
	if len(fwd.Changed) != len(rev.Changed) {
		t.Fatalf("changed asymmetry: %v vs %v", fwd.Changed, rev.Changed)
	}
}

func TestDiff_RejectsCompositionKeywords(t *testing.T) {
	_, envErr := diff(t, `{"a":{"anyOf":[]}}`, `{}`)
	if envErr == nil || envErr.Code != jsontools.CodeSchemaUnsupported {
		t.Fatalf("expected SCHEMA_UNSUPPORTED, got %v", envErr)
	}
	if envErr.Message != "Unsupported schema keyword: anyOf." {
		t.Fatalf("unexpected message: %q", envErr.Message)
	}

	_, envErr = diff(t, `{}`, `{"$ref":"#/x"}`)
	if envErr == nil || envErr.Code != jsontools.CodeSchemaUnsupported {
		t.Fatalf("expected SCHEMA_UNSUPPORTED for new document, got %v", envErr)
	}
}

func TestDiff_DocumentsMustBeObjects(t *testing.T) {
	_, envErr := diff(t, `[1]`, `{}`)
	if envErr == nil || envErr.Code != jsontools.CodeSchemaInvalid {
		t.Fatalf("expected SCHEMA_INVALID, got %v", envErr)
	}
}
