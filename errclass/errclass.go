// Package errclass maps a raw error description onto a canonical class,
// retryability, severity and a stable fingerprint. Classification is an
// explicit ordered rule table evaluated top to bottom, first match wins;
// nothing about the outcome depends on map iteration or on the message
// text.
package errclass

import (
	"strings"

	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/jsonval"
)

// Canonical classes.
const (
	ClassInputInvalid      = "INPUT_INVALID"
	ClassRulesInvalid      = "RULES_INVALID"
	ClassPolicyInvalid     = "POLICY_INVALID"
	ClassSchemaUnsupported = "SCHEMA_UNSUPPORTED"
	ClassNotFound          = "NOT_FOUND"
	ClassRateLimit         = "RATE_LIMIT"
	ClassTimeout           = "TIMEOUT"
	ClassUpstream          = "UPSTREAM"
	ClassInternal          = "INTERNAL"
	ClassUnknown           = "UNKNOWN"
)

// classRule is one row of the priority table.
type classRule struct {
	class string
	match func(code string, status int) bool
}

// classRules is the documented priority order. Order is load-bearing:
// the first matching row decides the class.
var classRules = []classRule{
	{ClassInputInvalid, func(c string, _ int) bool { return strings.HasPrefix(c, "INPUT_") }},
	{ClassRulesInvalid, func(c string, _ int) bool { return strings.Contains(c, "RULES_") }},
	{ClassPolicyInvalid, func(c string, _ int) bool { return strings.Contains(c, "POLICY_") }},
	{ClassSchemaUnsupported, func(c string, _ int) bool { return strings.Contains(c, "SCHEMA_") }},
	{ClassNotFound, func(c string, s int) bool { return s == 404 || strings.Contains(c, "NOT_FOUND") }},
	{ClassRateLimit, func(c string, s int) bool { return s == 429 || strings.Contains(c, "RATE_LIMIT") }},
	{ClassTimeout, func(c string, _ int) bool { return strings.Contains(c, "TIMEOUT") }},
	{ClassUpstream, func(c string, s int) bool {
		return strings.Contains(c, "UPSTREAM") || s == 502 || s == 503 || s == 504
	}},
	{ClassInternal, func(c string, s int) bool { return strings.Contains(c, "INTERNAL") || s == 500 }},
}

func classify(code string, status int) string {
	for _, rule := range classRules {
		if rule.match(code, status) {
			return rule.class
		}
	}
	return ClassUnknown
}

func retryable(class string) bool {
	switch class {
	case ClassRateLimit, ClassTimeout, ClassUpstream:
		return true
	}
	return false
}

func severity(class string) string {
	switch class {
	case ClassInputInvalid, ClassRulesInvalid, ClassPolicyInvalid, ClassSchemaUnsupported:
		return "low"
	case ClassInternal:
		return "high"
	default:
		return "medium"
	}
}

// Input carries the three request sections raw so each can fail with its
// own envelope code.
type Input struct {
	Source json.RawMessage `json:"source"`
	Error  json.RawMessage `json:"error"`
	Policy json.RawMessage `json:"policy"`
}

// Where locates the error origin.
type Where struct {
	Tool  string `json:"tool"`
	Stage string `json:"stage"`
	Path  string `json:"path"`
}

// Classified is the normalized error record.
type Classified struct {
	Class       string `json:"class"`
	Code        string `json:"code"`
	Message     string `json:"message"`
	Retryable   bool   `json:"retryable"`
	Severity    string `json:"severity"`
	Where       Where  `json:"where"`
	HTTPStatus  int    `json:"http_status"`
	Fingerprint string `json:"fingerprint"`
}

// Result always carries ok:false; a classified error is still an error.
type Result struct {
	OK    bool       `json:"ok"`
	Error Classified `json:"error"`
}

type policy struct {
	maxMessageLength  int
	includeRawMessage bool
}

// Classify validates the request sections in order (policy, source,
// error), then derives the canonical record.
func Classify(in Input) (*Result, *jsontools.Error) {
	pol, envErr := parsePolicy(in.Policy)
	if envErr != nil {
		return nil, envErr
	}
	tool, stage, envErr := parseSource(in.Source)
	if envErr != nil {
		return nil, envErr
	}
	code, message, status, path, envErr := parseError(in.Error)
	if envErr != nil {
		return nil, envErr
	}

	class := classify(code, status)
	msg := ""
	if pol.includeRawMessage {
		msg = jsontools.Truncate(message, pol.maxMessageLength)
	}

	return &Result{
		OK: false,
		Error: Classified{
			Class:       class,
			Code:        code,
			Message:     msg,
			Retryable:   retryable(class),
			Severity:    severity(class),
			Where:       Where{Tool: tool, Stage: stage, Path: path},
			HTTPStatus:  status,
			Fingerprint: jsontools.Fingerprint(tool, stage, class, code, status),
		},
	}, nil
}

func parsePolicy(raw json.RawMessage) (policy, *jsontools.Error) {
	out := policy{maxMessageLength: 300, includeRawMessage: true}
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
		case "max_message_length":
			n, ok := jsonval.AsInt(value)
			if !ok || n < 1 || n > 5000 {
				return out, jsontools.NewError(jsontools.CodePolicyInvalid,
					"policy.max_message_length must be an integer between 1 and 5000.")
			}
			out.maxMessageLength = n
		case "include_raw_message":
			b, ok := value.(bool)
			if !ok {
				return out, jsontools.NewError(jsontools.CodePolicyInvalid,
					"policy.include_raw_message must be a boolean.")
			}
			out.includeRawMessage = b
		default:
			return out, jsontools.Errorf(jsontools.CodePolicyInvalid, "policy has unknown field %q.", key)
		}
	}
	return out, nil
}

func parseSource(raw json.RawMessage) (tool, stage string, envErr *jsontools.Error) {
	if len(raw) == 0 {
		return "", "", jsontools.NewError(jsontools.CodeSourceInvalid, "source must be an object.")
	}
	obj, err := jsonval.DecodeObject(raw)
	if err != nil {
		return "", "", jsontools.NewError(jsontools.CodeSourceInvalid, "source must be an object.")
	}
	for _, key := range obj.Keys() {
		value, _ := obj.Get(key)
		switch key {
		case "tool":
			tool, _ = value.(string)
		case "stage":
			stage, _ = value.(string)
		case "version":
			if _, ok := value.(string); !ok {
				return "", "", jsontools.NewError(jsontools.CodeSourceInvalid, "source.version must be a string.")
			}
		default:
			return "", "", jsontools.Errorf(jsontools.CodeSourceInvalid, "source has unknown field %q.", key)
		}
	}
	if strings.TrimSpace(tool) == "" {
		return "", "", jsontools.NewError(jsontools.CodeSourceInvalid, "source.tool must be a non-empty string.")
	}
	if strings.TrimSpace(stage) == "" {
		return "", "", jsontools.NewError(jsontools.CodeSourceInvalid, "source.stage must be a non-empty string.")
	}
	return tool, stage, nil
}

func parseError(raw json.RawMessage) (code, message string, status int, path string, envErr *jsontools.Error) {
	if len(raw) == 0 {
		return "", "", 0, "", jsontools.NewError(jsontools.CodeErrorInvalid, "error must be an object.")
	}
	obj, err := jsonval.DecodeObject(raw)
	if err != nil {
		return "", "", 0, "", jsontools.NewError(jsontools.CodeErrorInvalid, "error must be an object.")
	}
	for _, key := range obj.Keys() {
		value, _ := obj.Get(key)
		switch key {
		case "code":
			code, _ = value.(string)
		case "message":
			s, ok := value.(string)
			if !ok {
				return "", "", 0, "", jsontools.NewError(jsontools.CodeErrorInvalid, "error.message must be a string.")
			}
			message = s
		case "type":
			if _, ok := value.(string); !ok {
				return "", "", 0, "", jsontools.NewError(jsontools.CodeErrorInvalid, "error.type must be a string.")
			}
		case "http_status":
			n, ok := jsonval.AsInt(value)
			if !ok || n < 0 {
				return "", "", 0, "", jsontools.NewError(jsontools.CodeErrorInvalid, "error.http_status must be a non-negative integer.")
			}
			status = n
		case "path":
			s, ok := value.(string)
			if !ok {
				return "", "", 0, "", jsontools.NewError(jsontools.CodeErrorInvalid, "error.path must be a string.")
			}
			path = s
		case "details":
			if _, ok := value.(*jsonval.Object); !ok {
				return "", "", 0, "", jsontools.NewError(jsontools.CodeErrorInvalid, "error.details must be an object.")
			}
		default:
			return "", "", 0, "", jsontools.Errorf(jsontools.CodeErrorInvalid, "error has unknown field %q.", key)
		}
	}
	if strings.TrimSpace(code) == "" {
		return "", "", 0, "", jsontools.NewError(jsontools.CodeErrorInvalid, "error.code must be a non-empty string.")
	}
	return code, message, status, path, nil
}
