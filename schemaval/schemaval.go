// Package schemaval validates a JSON value against a deliberately small
// JSON Schema subset: type, properties, required, and minLength for
// strings. Anything else anywhere in the schema tree fails the call before
// the data is looked at, so a schema silently using an unsupported keyword
// can never appear to pass.
package schemaval

import (
	"fmt"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/jsonval"
)

// Input is the request shape. Schema must be a JSON object; Data may be
// any JSON value.
type Input struct {
	Schema json.RawMessage `json:"schema"`
	Data   json.RawMessage `json:"data"`
}

// Result reports the outcome of a structurally valid call. Errors are
// "<path>: <reason>" strings in visit order: depth-first, required keys
// first, then properties in schema declaration order.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

var schemaTypes = map[string]bool{
	"object":  true,
	"array":   true,
	"string":  true,
	"number":  true,
	"integer": true,
	"boolean": true,
	"null":    true,
}

// Validate matches Data against Schema.
func Validate(in Input) (*Result, *jsontools.Error) {
	if len(in.Schema) == 0 || len(in.Data) == 0 {
		return nil, jsontools.NewError(jsontools.CodeInputInvalid, "schema_validate requires schema and data.")
	}
	schema, err := jsonval.DecodeObject(in.Schema)
	if err != nil {
		return nil, jsontools.NewError(jsontools.CodeSchemaInvalid, "Schema must be an object.")
	}
	data, err := jsonval.Decode(in.Data)
	if err != nil {
		return nil, jsontools.NewError(jsontools.CodeInputInvalid, "Data must be valid JSON.")
	}
	if envErr := scanSchema(schema); envErr != nil {
		return nil, envErr
	}

	errs := make([]string, 0)
	walk(schema, data, "$", &errs)
	return &Result{Valid: len(errs) == 0, Errors: errs}, nil
}

// scanSchema rejects unsupported or mistyped keywords before any data is
// evaluated. Keys are visited in declaration order so the reported keyword
// is deterministic.
func scanSchema(schema *jsonval.Object) *jsontools.Error {
	for _, key := range schema.Keys() {
		value, _ := schema.Get(key)
		switch key {
		case "type":
			name, ok := value.(string)
			if !ok || !schemaTypes[name] {
				return jsontools.NewError(jsontools.CodeSchemaInvalid, "Invalid schema type.")
			}
		case "properties":
			props, ok := value.(*jsonval.Object)
			if !ok {
				return jsontools.NewError(jsontools.CodeSchemaInvalid, "properties must be an object.")
			}
			for _, name := range props.Keys() {
				child, _ := props.Get(name)
				childSchema, ok := child.(*jsonval.Object)
				if !ok {
					return jsontools.NewError(jsontools.CodeSchemaInvalid, "properties values must be objects.")
				}
				if envErr := scanSchema(childSchema); envErr != nil {
					return envErr
				}
			}
		case "required":
			list, ok := value.([]any)
			if !ok {
				return jsontools.NewError(jsontools.CodeSchemaInvalid, "required must be an array of strings.")
			}
			for _, item := range list {
				if _, ok := item.(string); !ok {
					return jsontools.NewError(jsontools.CodeSchemaInvalid, "required must be an array of strings.")
				}
			}
		case "minLength":
			n, ok := jsonval.AsInt(value)
			if !ok || n < 0 {
				return jsontools.NewError(jsontools.CodeSchemaInvalid, "minLength must be a non-negative integer.")
			}
		default:
			return jsontools.Errorf(jsontools.CodeSchemaUnsupported, "Unsupported schema keyword: %s.", key)
		}
	}
	return nil
}

func walk(schema *jsonval.Object, data any, path string, errs *[]string) {
	if typ, ok := schema.Get("type"); ok {
		name := typ.(string)
		if !typeMatches(name, data) {
			*errs = append(*errs, fmt.Sprintf("%s: expected %s", path, name))
			return
		}
	}

	if s, ok := data.(string); ok {
		if ml, found := schema.Get("minLength"); found {
			min, _ := jsonval.AsInt(ml)
			if utf8.RuneCountInString(s) < min {
				*errs = append(*errs, fmt.Sprintf("%s: minLength %d", path, min))
			}
		}
	}

	obj, isObj := data.(*jsonval.Object)
	if !isObj {
		return
	}
	if req, found := schema.Get("required"); found {
		for _, item := range req.([]any) {
			key := item.(string)
			if !obj.Has(key) {
				*errs = append(*errs, fmt.Sprintf("%s.%s: required", path, key))
			}
		}
	}
	if props, found := schema.Get("properties"); found {
		propsObj := props.(*jsonval.Object)
		for _, key := range propsObj.Keys() {
			value, present := obj.Get(key)
			if !present {
				continue
			}
			child, _ := propsObj.Get(key)
			walk(child.(*jsonval.Object), value, path+"."+key, errs)
		}
	}
}

func typeMatches(name string, data any) bool {
	switch name {
	case "object":
		return jsonval.KindOf(data) == jsonval.KindObject
	case "array":
		return jsonval.KindOf(data) == jsonval.KindArray
	case "string":
		return jsonval.KindOf(data) == jsonval.KindString
	case "boolean":
		return jsonval.KindOf(data) == jsonval.KindBool
	case "null":
		return jsonval.KindOf(data) == jsonval.KindNull
	case "number":
		return jsonval.KindOf(data) == jsonval.KindNumber
	case "integer":
		_, ok := jsonval.AsInt(data)
		return ok
	default:
		return false
	}
}
