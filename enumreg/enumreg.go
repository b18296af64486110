// Package enumreg cross-checks a supplied enum value set against a
// canonical reference set. Matched and missing follow the reference order;
// duplicates follow the supplied order of the occurrence that first made a
// value a duplicate. Comparison runs over normalized values (trim, then
// case fold) while output echoes reference entries verbatim.
package enumreg

import (
	"strings"

	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/jsonval"
)

// Policy controls value normalization and set size.
type Policy struct {
	CaseFold  bool
	Trim      bool
	MaxValues int
}

// DefaultPolicy is used when the request omits policy.
func DefaultPolicy() Policy {
	return Policy{CaseFold: true, Trim: true, MaxValues: 100}
}

// Input is the request shape.
type Input struct {
	Reference json.RawMessage `json:"reference"`
	Values    json.RawMessage `json:"values"`
	Policy    json.RawMessage `json:"policy"`
}

// Result is the domain outcome.
type Result struct {
	OK         bool     `json:"ok"`
	Matched    []string `json:"matched"`
	Missing    []string `json:"missing"`
	Duplicates []string `json:"duplicates"`
}

// Check validates the request and computes the three sets.
func Check(in Input) (*Result, *jsontools.Error) {
	pol, envErr := parsePolicy(in.Policy)
	if envErr != nil {
		return nil, envErr
	}
	reference, envErr := stringList(in.Reference, "reference")
	if envErr != nil {
		return nil, envErr
	}
	if len(reference) == 0 {
		return nil, jsontools.NewError(jsontools.CodeEnumEmpty, "reference is empty.")
	}
	values, envErr := stringList(in.Values, "values")
	if envErr != nil {
		return nil, envErr
	}
	if len(values) > pol.MaxValues {
		return nil, jsontools.NewError(jsontools.CodeTooManyValues, "values exceeds policy.max_values.")
	}

	supplied := make(map[string]int, len(values))
	duplicates := []string{}
	for _, value := range values {
		normalized := normalize(value, pol)
		supplied[normalized]++
		if supplied[normalized] == 2 {
			duplicates = append(duplicates, normalized)
		}
	}

	matched := []string{}
	missing := []string{}
	for _, ref := range reference {
		if supplied[normalize(ref, pol)] > 0 {
			matched = append(matched, ref)
		} else {
			missing = append(missing, ref)
		}
	}

	return &Result{OK: true, Matched: matched, Missing: missing, Duplicates: duplicates}, nil
}

func normalize(value string, pol Policy) string {
	if pol.Trim {
		value = strings.TrimSpace(value)
	}
	if pol.CaseFold {
		value = strings.ToLower(value)
	}
	return value
}

func parsePolicy(raw json.RawMessage) (Policy, *jsontools.Error) {
	out := DefaultPolicy()
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	obj, err := jsonval.DecodeObject(raw)
	if err != nil {
		return out, jsontools.NewError(jsontools.CodePolicyInvalid, "policy must be an object.")
	}
	for _, key := range obj.Keys() {
		value, _ := obj.Get(key)
		switch key {
		case "case_fold":
			b, ok := value.(bool)
			if !ok {
				return out, jsontools.NewError(jsontools.CodePolicyInvalid, "policy.case_fold must be a boolean.")
			}
			out.CaseFold = b
		case "trim":
			b, ok := value.(bool)
			if !ok {
				return out, jsontools.NewError(jsontools.CodePolicyInvalid, "policy.trim must be a boolean.")
			}
			out.Trim = b
		case "max_values":
			n, ok := jsonval.AsInt(value)
			if !ok || n <= 0 {
				return out, jsontools.NewError(jsontools.CodePolicyInvalid, "policy.max_values must be a positive integer.")
			}
			out.MaxValues = n
		default:
			return out, jsontools.Errorf(jsontools.CodePolicyInvalid, "policy has unknown field %q.", key)
		}
	}
	return out, nil
}

func stringList(raw json.RawMessage, field string) ([]string, *jsontools.Error) {
	if len(raw) == 0 {
		return nil, jsontools.Errorf(jsontools.CodeEnumInvalid, "%s must be a list of strings.", field)
	}
	value, err := jsonval.Decode(raw)
	if err != nil {
		return nil, jsontools.Errorf(jsontools.CodeEnumInvalid, "%s must be a list of strings.", field)
	}
	list, ok := value.([]any)
	if !ok {
		return nil, jsontools.Errorf(jsontools.CodeEnumInvalid, "%s must be a list of strings.", field)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, jsontools.Errorf(jsontools.CodeEnumInvalid, "%s must be a list of strings.", field)
		}
		out = append(out, s)
	}
	return out, nil
}
