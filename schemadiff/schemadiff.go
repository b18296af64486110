// Package schemadiff structurally diffs two schema documents into added,
// removed and changed path sets. Traversal is depth-first with old-schema
// key order first and new-only keys in new-schema order, so the output
// ordering is identical across runs; diff(A,B).added always mirrors
// diff(B,A).removed.
package schemadiff

import (
	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/jsonval"
)

// Composition keywords the differ refuses to interpret. They are rejected
// up front in either document so the comparison stays purely structural.
var forbiddenKeywords = []string{"$ref", "anyOf", "oneOf", "allOf", "not", "if", "then", "else"}

// Input carries the two schema documents.
type Input struct {
	OldSchema json.RawMessage `json:"old_schema"`
	NewSchema json.RawMessage `json:"new_schema"`
}

// Result lists dotted paths rooted at "$".
type Result struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Changed []string `json:"changed"`
}

// Diff compares the documents.
func Diff(in Input) (*Result, *jsontools.Error) {
	if len(in.OldSchema) == 0 || len(in.NewSchema) == 0 {
		return nil, jsontools.NewError(jsontools.CodeInputInvalid, "schema_diff requires old_schema and new_schema.")
	}
	oldDoc, err := jsonval.DecodeObject(in.OldSchema)
	if err != nil {
		return nil, jsontools.NewError(jsontools.CodeSchemaInvalid, "old_schema must be an object.")
	}
	newDoc, err := jsonval.DecodeObject(in.NewSchema)
	if err != nil {
		return nil, jsontools.NewError(jsontools.CodeSchemaInvalid, "new_schema must be an object.")
	}
	kw := findForbidden(oldDoc)
	if kw == "" {
		kw = findForbidden(newDoc)
	}
	if kw != "" {
		return nil, jsontools.Errorf(jsontools.CodeSchemaUnsupported, "Unsupported schema keyword: %s.", kw)
	}

	res := &Result{Added: []string{}, Removed: []string{}, Changed: []string{}}
	walk(oldDoc, newDoc, "$", res)
	return res, nil
}

func findForbidden(v any) string {
	switch t := v.(type) {
	case *jsonval.Object:
		for _, key := range t.Keys() {
			for _, kw := range forbiddenKeywords {
				if key == kw {
					return key
				}
			}
			child, _ := t.Get(key)
			if found := findForbidden(child); found != "" {
				return found
			}
		}
	case []any:
		for _, item := range t {
			if found := findForbidden(item); found != "" {
				return found
			}
		}
	}
	return ""
}

func walk(oldObj, newObj *jsonval.Object, path string, res *Result) {
	inOld := make(map[string]bool, oldObj.Len())
	for _, key := range oldObj.Keys() {
		inOld[key] = true
		child := path + "." + key
		oldVal, _ := oldObj.Get(key)
		newVal, present := newObj.Get(key)
		if !present {
			res.Removed = append(res.Removed, child)
			continue
		}
		oldChild, oldIsObj := oldVal.(*jsonval.Object)
		newChild, newIsObj := newVal.(*jsonval.Object)
		if oldIsObj && newIsObj {
			walk(oldChild, newChild, child, res)
			continue
		}
		if !jsonval.Equal(oldVal, newVal) {
			res.Changed = append(res.Changed, child)
		}
	}
	for _, key := range newObj.Keys() {
		if !inOld[key] {
			res.Added = append(res.Added, path+"."+key)
		}
	}
}
