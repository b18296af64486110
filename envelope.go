package jsontools

import "fmt"

// Structural failure codes (exported consts for IDE completion and type
// safety by convention). Engines return these when the request itself does
// not match the shape the tool requires, as opposed to a domain-level
// finding about the evaluated data.
const (
	CodeInputInvalid      = "INPUT_INVALID"
	CodeRulesInvalid      = "RULES_INVALID"
	CodePolicyInvalid     = "POLICY_INVALID"
	CodeModeInvalid       = "MODE_INVALID"
	CodeMappingInvalid    = "MAPPING_INVALID"
	CodeSchemaInvalid     = "SCHEMA_INVALID"
	CodeSchemaUnsupported = "SCHEMA_UNSUPPORTED"
	CodeSourceInvalid     = "SOURCE_INVALID"
	CodeErrorInvalid      = "ERROR_INVALID"
	CodeEnumInvalid       = "ENUM_INVALID"
	CodeEnumEmpty         = "ENUM_EMPTY"
	CodeTooManyValues     = "TOO_MANY_VALUES"
)

// Domain-level violation codes shared across engines.
const (
	CodeSourcePathMissing  = "SOURCE_PATH_MISSING"
	CodeRequiredMissing    = "REQUIRED_MISSING"
	CodeForbiddenViolation = "FORBIDDEN_VIOLATION"
	CodeBehaviorViolation  = "BEHAVIOR_VIOLATION"
)

// Error is the uniform envelope for structural failures. A nil *Error from
// an engine means the request was well formed; the engine's Result then
// carries the domain outcome, which may itself be negative.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

// NewError builds an envelope with a fixed message.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf builds an envelope with a formatted message.
func Errorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Violation is a single domain-level finding. Engines collect violations
// instead of short-circuiting; order is part of each engine's contract.
type Violation struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
