package jsontools

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// DecodeStrict unmarshals data into v, rejecting unknown fields and
// trailing garbage. Engines use it at the boundary so that a misspelled
// rule or policy field fails the whole call instead of being ignored.
func DecodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errTrailingData
	}
	return nil
}

var errTrailingData = NewError(CodeInputInvalid, "Unexpected trailing data after JSON value.")
