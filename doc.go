// Package jsontools provides:
//
//   - A set of small, deterministic JSON validation/transformation engines
//     (schemaval, schemamap, schemadiff, inputgate, errclass, contractcheck,
//     ruletrace, enumreg, textnorm, verify)
//   - A stable two-tier error model: *Error for structural failures of the
//     request itself, Violation lists for domain-level findings
//   - Order-preserving JSON value handling via jsonval and dotted-path
//     addressing via jsonpath
//
// Design policy:
//
//   - Keep only shared primitives in the root package; each engine lives in
//     its own package and exposes a single pure entry point.
//   - Engines never perform I/O and never call each other; jsonval and
//     jsonpath are the only shared leaves.
//   - The HTTP surface under internal/httpapi is a thin shim: decode, call,
//     encode. All policy lives in the engines.
//
// Typical usage:
//
//	res, envErr := schemaval.Validate(in)
//	if envErr != nil {
//		// the request itself was malformed (envErr.Code, envErr.Message)
//	}
//	// res.Valid / res.Errors carry the domain outcome
package jsontools
