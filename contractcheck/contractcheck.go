// Package contractcheck validates and normalizes a capability contract
// document. Validate mode collects every violation instead of stopping at
// the first; normalize mode fills the canonical defaults and re-sorts keys
// into byte order, and is idempotent.
package contractcheck

import (
	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/jsonval"
)

// Modes.
const (
	ModeValidate  = "validate"
	ModeNormalize = "normalize"
)

// forbiddenDefaults are the capability keys normalize mode guarantees are
// declared. Order matters only for readability; output order comes from
// the byte-order key sort.
var forbiddenDefaults = []string{"judgement", "network", "side_effects", "storage"}

// Input is the request shape.
type Input struct {
	Contract json.RawMessage `json:"contract"`
	Mode     string          `json:"mode"`
}

// Result is the domain outcome. Contract is present on success only.
type Result struct {
	OK       bool                  `json:"ok"`
	Contract any                   `json:"contract,omitempty"`
	Errors   []jsontools.Violation `json:"errors,omitempty"`
}

// Check runs the requested mode over the contract document.
func Check(in Input) (*Result, *jsontools.Error) {
	if len(in.Contract) == 0 {
		return nil, jsontools.NewError(jsontools.CodeInputInvalid, "capability_contract requires contract.")
	}
	doc, err := jsonval.DecodeObject(in.Contract)
	if err != nil {
		return nil, jsontools.NewError(jsontools.CodeInputInvalid, "contract must be an object.")
	}

	mode := in.Mode
	if mode == "" {
		mode = ModeValidate
	}
	if mode != ModeValidate && mode != ModeNormalize {
		return nil, jsontools.NewError(jsontools.CodeModeInvalid, "Mode must be validate or normalize.")
	}

	if envErr := checkSchemaSection(doc, "inputs"); envErr != nil {
		return nil, envErr
	}
	if envErr := checkSchemaSection(doc, "outputs"); envErr != nil {
		return nil, envErr
	}

	if mode == ModeNormalize {
		return &Result{OK: true, Contract: normalize(doc)}, nil
	}

	violations := validate(doc)
	if len(violations) > 0 {
		return &Result{OK: false, Errors: violations}, nil
	}
	return &Result{OK: true, Contract: doc}, nil
}

// checkSchemaSection requires <section>.schema to be an object when the
// section is present.
func checkSchemaSection(doc *jsonval.Object, section string) *jsontools.Error {
	v, ok := doc.Get(section)
	if !ok {
		return nil
	}
	obj, ok := v.(*jsonval.Object)
	if !ok {
		return jsontools.Errorf(jsontools.CodeSchemaInvalid, "contract.%s must be an object.", section)
	}
	schema, ok := obj.Get("schema")
	if !ok {
		return nil
	}
	if _, ok := schema.(*jsonval.Object); !ok {
		return jsontools.Errorf(jsontools.CodeSchemaInvalid, "contract.%s.schema must be an object.", section)
	}
	return nil
}

// validate collects every forbidden and behavior violation in declaration
// order.
func validate(doc *jsonval.Object) []jsontools.Violation {
	var violations []jsontools.Violation

	if v, ok := doc.Get("forbidden"); ok {
		if forbidden, ok := v.(*jsonval.Object); ok {
			for _, key := range forbidden.Keys() {
				value, _ := forbidden.Get(key)
				if b, ok := value.(bool); !ok || !b {
					violations = append(violations, jsontools.Violation{
						Path:    "contract.forbidden." + key,
						Code:    jsontools.CodeForbiddenViolation,
						Message: "Forbidden capability must be declared true.",
					})
				}
			}
		}
	}

	deterministic := false
	if v, ok := doc.Get("behavior"); ok {
		if behavior, ok := v.(*jsonval.Object); ok {
			if value, ok := behavior.Get("deterministic"); ok {
				deterministic, _ = value.(bool)
			}
		}
	}
	if !deterministic {
		violations = append(violations, jsontools.Violation{
			Path:    "contract.behavior.deterministic",
			Code:    jsontools.CodeBehaviorViolation,
			Message: "Contract behavior must declare deterministic true.",
		})
	}
	return violations
}

// normalize fills the defaults and returns the contract with every object
// key sorted in byte order. Running it on its own output is a no-op.
func normalize(doc *jsonval.Object) any {
	out := doc.Clone()

	behavior := ensureObject(out, "behavior")
	if !behavior.Has("deterministic") {
		behavior.Set("deterministic", true)
	}

	forbidden := ensureObject(out, "forbidden")
	for _, key := range forbiddenDefaults {
		if !forbidden.Has(key) {
			forbidden.Set(key, true)
		}
	}

	return jsonval.SortKeys(out)
}

func ensureObject(doc *jsonval.Object, key string) *jsonval.Object {
	if v, ok := doc.Get(key); ok {
		if obj, ok := v.(*jsonval.Object); ok {
			return obj
		}
	}
	obj := jsonval.NewObject()
	doc.Set(key, obj)
	return obj
}
