package jsonval

import (
	"sort"
	"strconv"

	json "github.com/goccy/go-json"
)

// Equal reports deep structural equality. Object key order is ignored;
// numbers compare by numeric value so 1, 1.0 and "1e0" are equal.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			bvv, ok := bv.Get(k)
			if !ok {
				return false
			}
			if !Equal(av.values[k], bvv) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	default:
		if an, ok := numberOf(a); ok {
			bn, bok := numberOf(b)
			return bok && an == bn
		}
		return a == b
	}
}

func numberOf(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Depth measures the maximum nesting of object/array containers. Scalars
// are depth 0; an empty object or array is depth 1.
func Depth(v any) int {
	switch t := v.(type) {
	case *Object:
		max := 1
		for _, k := range t.keys {
			if d := Depth(t.values[k]) + 1; d > max {
				max = d
			}
		}
		return max
	case []any:
		max := 1
		for _, item := range t {
			if d := Depth(item) + 1; d > max {
				max = d
			}
		}
		return max
	default:
		return 0
	}
}

// MaxKeys returns the largest key count of any object in the tree.
func MaxKeys(v any) int {
	switch t := v.(type) {
	case *Object:
		max := t.Len()
		for _, k := range t.keys {
			if n := MaxKeys(t.values[k]); n > max {
				max = n
			}
		}
		return max
	case []any:
		max := 0
		for _, item := range t {
			if n := MaxKeys(item); n > max {
				max = n
			}
		}
		return max
	default:
		return 0
	}
}

// Size is the byte length of the canonical JSON encoding of v.
func Size(v any) (int, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// SortKeys deep-copies v with every object's keys sorted in byte order.
// This is the canonical ordering used wherever a stable key sort is part of
// the contract; applying it twice is a no-op.
func SortKeys(v any) any {
	switch t := v.(type) {
	case *Object:
		keys := t.Keys()
		sort.Strings(keys)
		out := NewObject()
		for _, k := range keys {
			out.Set(k, SortKeys(t.values[k]))
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = SortKeys(item)
		}
		return out
	default:
		return v
	}
}

// AsInt extracts an integral value from a decoded number. It fails for
// fractions and non-numbers.
func AsInt(v any) (int, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return int(i), true
}
