// Package schemamap applies declarative rename/default/drop/require rules
// to a JSON object via dotted paths. The processing order is fixed and the
// rename/defaults tables keep their declaration order, so the applied-tag
// trail is reproducible byte for byte.
package schemamap

import (
	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/jsonpath"
	"github.com/reoring/jsontools/jsonval"
)

// Mode names. Strict aborts on any violation and returns no data; lenient
// reports require violations but still returns the transformed data.
const (
	ModeStrict  = "strict"
	ModeLenient = "lenient"
)

// Mapping is the rule struct. Rename maps source path to destination path
// and Defaults maps path to value; both are declaration-ordered JSON
// objects, which is why they stay raw until Apply decodes them.
type Mapping struct {
	Rename   json.RawMessage `json:"rename"`
	Defaults json.RawMessage `json:"defaults"`
	Drop     []string        `json:"drop"`
	Require  []string        `json:"require"`
}

// Input is the request shape.
type Input struct {
	Data    json.RawMessage `json:"data"`
	Mapping Mapping         `json:"mapping"`
	Mode    string          `json:"mode"`
}

// Meta records which operations actually fired, in execution order.
type Meta struct {
	Applied []string `json:"applied"`
}

// Result is the domain outcome. In strict mode any violation clears Data
// and Meta; nothing partially transformed ever escapes.
type Result struct {
	OK     bool                  `json:"ok"`
	Data   *jsonval.Object       `json:"data,omitempty"`
	Meta   *Meta                 `json:"meta,omitempty"`
	Errors []jsontools.Violation `json:"errors,omitempty"`
}

// Apply runs the mapping against the data.
func Apply(in Input) (*Result, *jsontools.Error) {
	mode := in.Mode
	if mode == "" {
		mode = ModeStrict
	}
	if mode != ModeStrict && mode != ModeLenient {
		return nil, jsontools.NewError(jsontools.CodeModeInvalid, "Mode must be strict or lenient.")
	}
	if len(in.Data) == 0 {
		return nil, jsontools.NewError(jsontools.CodeInputInvalid, "schema_map requires data.")
	}
	data, err := jsonval.DecodeObject(in.Data)
	if err != nil {
		return nil, jsontools.NewError(jsontools.CodeInputInvalid, "data must be an object.")
	}

	rename, envErr := decodeTable(in.Mapping.Rename, "mapping.rename")
	if envErr != nil {
		return nil, envErr
	}
	defaults, envErr := decodeTable(in.Mapping.Defaults, "mapping.defaults")
	if envErr != nil {
		return nil, envErr
	}
	if envErr := validatePaths(rename, defaults, in.Mapping.Drop, in.Mapping.Require); envErr != nil {
		return nil, envErr
	}

	var (
		violations []jsontools.Violation
		applied    = make([]string, 0)
		strict     = mode == ModeStrict
	)

	for _, source := range rename.Keys() {
		destAny, _ := rename.Get(source)
		dest := destAny.(string)
		value, found := jsonpath.Get(data, source)
		if !found {
			if strict {
				violations = append(violations, jsontools.Violation{
					Path:    source,
					Code:    jsontools.CodeSourcePathMissing,
					Message: "Rename source path is missing.",
				})
			}
			continue
		}
		data = jsonpath.Set(data, dest, value)
		data, _ = jsonpath.Delete(data, source)
		applied = append(applied, "rename:"+source+"->"+dest)
	}

	for _, path := range defaults.Keys() {
		if jsonpath.Has(data, path) {
			continue
		}
		value, _ := defaults.Get(path)
		data = jsonpath.Set(data, path, value)
		applied = append(applied, "defaults:"+path)
	}

	for _, path := range in.Mapping.Drop {
		next, deleted := jsonpath.Delete(data, path)
		data = next
		if deleted {
			applied = append(applied, "drop:"+path)
		}
	}

	for _, path := range in.Mapping.Require {
		if !jsonpath.Has(data, path) {
			violations = append(violations, jsontools.Violation{
				Path:    path,
				Code:    jsontools.CodeRequiredMissing,
				Message: "Required path is missing.",
			})
		}
	}

	if strict && len(violations) > 0 {
		return &Result{OK: false, Errors: violations}, nil
	}
	return &Result{OK: true, Data: data, Meta: &Meta{Applied: applied}, Errors: violations}, nil
}

// decodeTable parses an ordered path-keyed object; a missing table is an
// empty one.
func decodeTable(raw json.RawMessage, field string) (*jsonval.Object, *jsontools.Error) {
	if len(raw) == 0 || string(raw) == "null" {
		return jsonval.NewObject(), nil
	}
	obj, err := jsonval.DecodeObject(raw)
	if err != nil {
		return nil, jsontools.Errorf(jsontools.CodeMappingInvalid, "%s must be an object.", field)
	}
	return obj, nil
}

func validatePaths(rename, defaults *jsonval.Object, drop, require []string) *jsontools.Error {
	for _, source := range rename.Keys() {
		dest, _ := rename.Get(source)
		destPath, ok := dest.(string)
		if !ok {
			return jsontools.Errorf(jsontools.CodeMappingInvalid, "mapping.rename values must be path strings.")
		}
		if !jsonpath.Valid(source) {
			return invalidPath(source)
		}
		if !jsonpath.Valid(destPath) {
			return invalidPath(destPath)
		}
	}
	for _, path := range defaults.Keys() {
		if !jsonpath.Valid(path) {
			return invalidPath(path)
		}
	}
	for _, path := range drop {
		if !jsonpath.Valid(path) {
			return invalidPath(path)
		}
	}
	for _, path := range require {
		if !jsonpath.Valid(path) {
			return invalidPath(path)
		}
	}
	return nil
}

func invalidPath(path string) *jsontools.Error {
	return jsontools.Errorf(jsontools.CodeMappingInvalid, "Invalid path: %s.", path)
}
