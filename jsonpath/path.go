// Package jsonpath implements dotted-path addressing over jsonval trees.
// A path is a dot-separated list of identifier segments ("user.name");
// array indexing is not part of the syntax. Lookups fail softly when an
// intermediate segment is absent or not an object. Mutations are pure: Set
// and Delete clone the root and return the new tree, leaving the argument
// untouched.
package jsonpath

import (
	"strings"

	"github.com/reoring/jsontools/jsonval"
)

// Valid reports whether path is a well-formed dotted path: non-empty, no
// leading/trailing/empty segments, every segment an identifier.
func Valid(path string) bool {
	if path == "" || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") {
		return false
	}
	for _, seg := range strings.Split(path, ".") {
		if !isIdentifier(seg) {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Get resolves path against root. ok is false when any segment is absent
// or an intermediate value is not an object.
func Get(root *jsonval.Object, path string) (any, bool) {
	var current any = root
	for _, seg := range strings.Split(path, ".") {
		obj, isObj := current.(*jsonval.Object)
		if !isObj {
			return nil, false
		}
		v, found := obj.Get(seg)
		if !found {
			return nil, false
		}
		current = v
	}
	return current, true
}

// Has reports whether path resolves.
func Has(root *jsonval.Object, path string) bool {
	_, ok := Get(root, path)
	return ok
}

// Set returns a copy of root with the value stored at path, creating
// intermediate objects as needed. An intermediate that exists but is not an
// object is replaced by a fresh one.
func Set(root *jsonval.Object, path string, value any) *jsonval.Object {
	out := root.Clone()
	if out == nil {
		out = jsonval.NewObject()
	}
	segs := strings.Split(path, ".")
	current := out
	for _, seg := range segs[:len(segs)-1] {
		next, found := current.Get(seg)
		obj, isObj := next.(*jsonval.Object)
		if !found || !isObj {
			obj = jsonval.NewObject()
			current.Set(seg, obj)
		}
		current = obj
	}
	current.Set(segs[len(segs)-1], value)
	return out
}

// Delete returns a copy of root with the value at path removed. The second
// result reports whether anything was deleted; when nothing resolves the
// copy is structurally identical to the input.
func Delete(root *jsonval.Object, path string) (*jsonval.Object, bool) {
	out := root.Clone()
	if out == nil {
		return nil, false
	}
	segs := strings.Split(path, ".")
	current := out
	for _, seg := range segs[:len(segs)-1] {
		next, found := current.Get(seg)
		if !found {
			return out, false
		}
		obj, isObj := next.(*jsonval.Object)
		if !isObj {
			return out, false
		}
		current = obj
	}
	return out, current.Delete(segs[len(segs)-1])
}
