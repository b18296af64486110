// Package inputgate screens a JSON value against declared structural
// limits before it is handed to anything more expensive. Checks run in a
// fixed priority order and every applicable violation is collected; the
// gate never stops at the first finding.
package inputgate

import (
	"fmt"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/jsonval"
)

// Violation codes, in check priority order.
const (
	CodeJSONTooLarge      = "JSON_TOO_LARGE"
	CodeTypeNotAllowed    = "TYPE_NOT_ALLOWED"
	CodeStringTooShort    = "STRING_TOO_SHORT"
	CodeStringTooLong     = "STRING_TOO_LONG"
	CodeArrayTooLong      = "ARRAY_TOO_LONG"
	CodeObjectTooDeep     = "OBJECT_TOO_DEEP"
	CodeObjectTooManyKeys = "OBJECT_TOO_MANY_KEYS"
)

var allowedTypeNames = map[string]bool{
	"object":  true,
	"array":   true,
	"string":  true,
	"number":  true,
	"boolean": true,
	"null":    true,
}

// Rules is the fully resolved rule struct. When the request carries a
// rules object it must be complete and contain nothing else; a partial or
// misspelled rules object fails the call instead of being patched up.
type Rules struct {
	MaxSize    int
	AllowTypes []string
	String     StringRules
	Object     ObjectRules
	Array      ArrayRules
}

type StringRules struct {
	MinLength int
	MaxLength int
}

type ObjectRules struct {
	MaxDepth int
	MaxKeys  int
}

type ArrayRules struct {
	MaxLength int
}

// DefaultRules is used when the request omits rules entirely.
func DefaultRules() Rules {
	return Rules{
		MaxSize:    10000,
		AllowTypes: []string{"object", "array", "string", "number", "boolean", "null"},
		String:     StringRules{MinLength: 0, MaxLength: 2000},
		Object:     ObjectRules{MaxDepth: 8, MaxKeys: 100},
		Array:      ArrayRules{MaxLength: 200},
	}
}

// Input is the request shape.
type Input struct {
	Input json.RawMessage `json:"input"`
	Rules json.RawMessage `json:"rules"`
	Mode  string          `json:"mode"`
}

// Result is the domain outcome.
type Result struct {
	Pass   bool                  `json:"pass"`
	Errors []jsontools.Violation `json:"errors,omitempty"`
}

// Gate evaluates the input value against the rules.
func Gate(in Input) (*Result, *jsontools.Error) {
	if len(in.Input) == 0 {
		return nil, jsontools.NewError(jsontools.CodeInputInvalid, "input_gate requires input.")
	}
	value, err := jsonval.Decode(in.Input)
	if err != nil {
		return nil, jsontools.NewError(jsontools.CodeInputInvalid, "input must be valid JSON.")
	}

	mode := in.Mode
	if mode == "" {
		mode = "strict"
	}
	if mode != "strict" && mode != "lenient" {
		return nil, jsontools.NewError(jsontools.CodeModeInvalid, "Mode must be strict or lenient.")
	}

	rules := DefaultRules()
	if len(in.Rules) > 0 && string(in.Rules) != "null" {
		parsed, envErr := parseRules(in.Rules)
		if envErr != nil {
			return nil, envErr
		}
		rules = parsed
	}

	var violations []jsontools.Violation
	add := func(code, path, message string) {
		violations = append(violations, jsontools.Violation{Path: path, Code: code, Message: message})
	}

	size, err := jsonval.Size(value)
	if err != nil {
		return nil, jsontools.NewError(jsontools.CodeInputInvalid, "input must be valid JSON.")
	}
	if size > rules.MaxSize {
		add(CodeJSONTooLarge, "$", "JSON size exceeds max_size.")
	}

	typeName := jsonval.TypeName(value)
	allowed := false
	for _, t := range rules.AllowTypes {
		if t == typeName {
			allowed = true
			break
		}
	}
	if !allowed {
		add(CodeTypeNotAllowed, "$", "Input type is not allowed.")
	}

	walkStrings(value, "$", rules.String, add)
	walkArrays(value, "$", rules.Array, add)

	if jsonval.Depth(value) > rules.Object.MaxDepth {
		add(CodeObjectTooDeep, "$", "Object depth exceeds max_depth.")
	}
	if jsonval.MaxKeys(value) > rules.Object.MaxKeys {
		add(CodeObjectTooManyKeys, "$", "Object key count exceeds max_keys.")
	}

	if len(violations) > 0 {
		return &Result{Pass: false, Errors: violations}, nil
	}
	return &Result{Pass: true}, nil
}

// walkStrings visits every string in the tree depth-first, objects in key
// order, arrays by index, and records length violations.
func walkStrings(v any, path string, limits StringRules, add func(code, path, message string)) {
	switch t := v.(type) {
	case string:
		length := utf8.RuneCountInString(t)
		if length < limits.MinLength {
			add(CodeStringTooShort, path, "String length is below min_length.")
		}
		if length > limits.MaxLength {
			add(CodeStringTooLong, path, "String length exceeds max_length.")
		}
	case *jsonval.Object:
		for _, key := range t.Keys() {
			child, _ := t.Get(key)
			walkStrings(child, path+"."+key, limits, add)
		}
	case []any:
		for i, item := range t {
			walkStrings(item, fmt.Sprintf("%s[%d]", path, i), limits, add)
		}
	}
}

func walkArrays(v any, path string, limits ArrayRules, add func(code, path, message string)) {
	switch t := v.(type) {
	case *jsonval.Object:
		for _, key := range t.Keys() {
			child, _ := t.Get(key)
			walkArrays(child, path+"."+key, limits, add)
		}
	case []any:
		if len(t) > limits.MaxLength {
			add(CodeArrayTooLong, path, "Array length exceeds max_length.")
		}
		for i, item := range t {
			walkArrays(item, fmt.Sprintf("%s[%d]", path, i), limits, add)
		}
	}
}

// parseRules validates the rules object field by field. Every field must
// be present with the right type and nothing unknown may appear; any
// deviation fails the whole call with RULES_INVALID.
func parseRules(raw json.RawMessage) (Rules, *jsontools.Error) {
	var zero Rules
	obj, err := jsonval.DecodeObject(raw)
	if err != nil {
		return zero, rulesInvalid("rules must be an object")
	}
	if envErr := exactKeys(obj, "rules", "max_size", "allow_types", "string", "object", "array"); envErr != nil {
		return zero, envErr
	}

	var out Rules
	maxSize, ok := intField(obj, "max_size")
	if !ok || maxSize <= 0 {
		return zero, rulesInvalid("rules.max_size must be a positive integer")
	}
	out.MaxSize = maxSize

	rawTypes, _ := obj.Get("allow_types")
	list, ok := rawTypes.([]any)
	if !ok || len(list) == 0 {
		return zero, rulesInvalid("rules.allow_types must be a non-empty array")
	}
	for _, item := range list {
		name, ok := item.(string)
		if !ok || !allowedTypeNames[name] {
			return zero, rulesInvalid("rules.allow_types entries must be JSON type names")
		}
		out.AllowTypes = append(out.AllowTypes, name)
	}

	strObj, envErr := objectField(obj, "rules", "string", "min_length", "max_length")
	if envErr != nil {
		return zero, envErr
	}
	if out.String.MinLength, ok = intField(strObj, "min_length"); !ok || out.String.MinLength < 0 {
		return zero, rulesInvalid("rules.string.min_length must be a non-negative integer")
	}
	if out.String.MaxLength, ok = intField(strObj, "max_length"); !ok || out.String.MaxLength < 0 {
		return zero, rulesInvalid("rules.string.max_length must be a non-negative integer")
	}

	objRules, envErr := objectField(obj, "rules", "object", "max_depth", "max_keys")
	if envErr != nil {
		return zero, envErr
	}
	if out.Object.MaxDepth, ok = intField(objRules, "max_depth"); !ok || out.Object.MaxDepth < 0 {
		return zero, rulesInvalid("rules.object.max_depth must be a non-negative integer")
	}
	if out.Object.MaxKeys, ok = intField(objRules, "max_keys"); !ok || out.Object.MaxKeys < 0 {
		return zero, rulesInvalid("rules.object.max_keys must be a non-negative integer")
	}

	arrRules, envErr := objectField(obj, "rules", "array", "max_length")
	if envErr != nil {
		return zero, envErr
	}
	if out.Array.MaxLength, ok = intField(arrRules, "max_length"); !ok || out.Array.MaxLength < 0 {
		return zero, rulesInvalid("rules.array.max_length must be a non-negative integer")
	}
	return out, nil
}

func exactKeys(obj *jsonval.Object, field string, want ...string) *jsontools.Error {
	required := make(map[string]bool, len(want))
	for _, k := range want {
		required[k] = true
	}
	for _, k := range obj.Keys() {
		if !required[k] {
			return rulesInvalid(fmt.Sprintf("%s has unknown field %q", field, k))
		}
	}
	for _, k := range want {
		if !obj.Has(k) {
			return rulesInvalid(fmt.Sprintf("%s is missing field %q", field, k))
		}
	}
	return nil
}

func objectField(obj *jsonval.Object, parent, key string, want ...string) (*jsonval.Object, *jsontools.Error) {
	v, _ := obj.Get(key)
	child, ok := v.(*jsonval.Object)
	if !ok {
		return nil, rulesInvalid(fmt.Sprintf("%s.%s must be an object", parent, key))
	}
	if envErr := exactKeys(child, parent+"."+key, want...); envErr != nil {
		return nil, envErr
	}
	return child, nil
}

func intField(obj *jsonval.Object, key string) (int, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return 0, false
	}
	return jsonval.AsInt(v)
}

func rulesInvalid(detail string) *jsontools.Error {
	return jsontools.Errorf(jsontools.CodeRulesInvalid, "Rules are invalid: %s.", detail)
}
