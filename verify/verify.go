// Package verify is the stability probe: it echoes the supplied text and
// its rune length. Useful for checking that the transport and codec do
// not alter payloads.
package verify

import (
	"unicode/utf8"

	jsontools "github.com/reoring/jsontools"
)

// Input is the request shape.
type Input struct {
	Text string `json:"text"`
}

// Result echoes the text.
type Result struct {
	Echo   string `json:"echo"`
	Length int    `json:"length"`
}

// Echo returns the text and its rune count.
func Echo(in Input) (*Result, *jsontools.Error) {
	return &Result{Echo: in.Text, Length: utf8.RuneCountInString(in.Text)}, nil
}
