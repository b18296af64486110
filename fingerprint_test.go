package jsontools_test

import (
	"testing"

	jsontools "github.com/reoring/jsontools"
)

func TestFingerprint_StableAndShort(t *testing.T) {
	a := jsontools.Fingerprint("schema_map", "validate", "INPUT_INVALID", "INPUT_INVALID", 400)
	b := jsontools.Fingerprint("schema_map", "validate", "INPUT_INVALID", "INPUT_INVALID", 400)
	if a != b {
		t.Fatalf("expected identical fingerprints, got %s vs %s", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("expected 16 hex chars, got %d (%s)", len(a), a)
	}
	for _, r := range a {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Fatalf("expected lowercase hex, got %s", a)
		}
	}
}

func TestFingerprint_SensitiveToEveryField(t *testing.T) {
	base := jsontools.Fingerprint("t", "s", "UNKNOWN", "X", 400)
	variants := []string{
		jsontools.Fingerprint("t2", "s", "UNKNOWN", "X", 400),
		jsontools.Fingerprint("t", "s2", "UNKNOWN", "X", 400),
		jsontools.Fingerprint("t", "s", "INTERNAL", "X", 400),
		jsontools.Fingerprint("t", "s", "UNKNOWN", "Y", 400),
		jsontools.Fingerprint("t", "s", "UNKNOWN", "X", 500),
	}
	for i, v := range variants {
		if v == base {
			t.Fatalf("variant %d should differ from base", i)
		}
	}
}

func TestTruncate_RuneBased(t *testing.T) {
	if got := jsontools.Truncate("hello", 10); got != "hello" {
		t.Fatalf("expected untouched string, got %q", got)
	}
	if got := jsontools.Truncate("hello", 3); got != "hel" {
		t.Fatalf("expected hel, got %q", got)
	}
	if got := jsontools.Truncate("héllo", 2); got != "hé" {
		t.Fatalf("expected rune-aware cut, got %q", got)
	}
	if got := jsontools.Truncate("abc", 0); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestDecodeStrict(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	var p payload
	if err := jsontools.DecodeStrict([]byte(`{"name":"x"}`), &p); err != nil {
		t.Fatalf("expected clean decode, got %v", err)
	}
	if err := jsontools.DecodeStrict([]byte(`{"name":"x","extra":1}`), &p); err == nil {
		t.Fatalf("expected unknown field to fail")
	}
	if err := jsontools.DecodeStrict([]byte(`{"name":"x"} junk`), &p); err == nil {
		t.Fatalf("expected trailing data to fail")
	}
}
