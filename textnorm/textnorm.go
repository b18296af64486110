// Package textnorm applies a fixed pipeline of text normalization ops.
// Ops run in a single documented order regardless of how the request
// spells them, and an op is reported in applied only when it changed the
// text, so running the output through the same request again is a no-op.
package textnorm

import (
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	jsontools "github.com/reoring/jsontools"
	"github.com/reoring/jsontools/jsonval"
)

// Ops selects which normalization steps run. The zero value runs nothing.
type Ops struct {
	NormalizeNewlines  bool `json:"normalize_newlines"`
	CollapseWhitespace bool `json:"collapse_whitespace"`
	Trim               bool `json:"trim"`
	ToLower            bool `json:"to_lower"`
	ToUpper            bool `json:"to_upper"`
	RemoveControlChars bool `json:"remove_control_chars"`
}

// Options tunes how whitespace-touching ops treat tabs and newlines.
type Options struct {
	PreserveTabs     bool `json:"preserve_tabs"`
	PreserveNewlines bool `json:"preserve_newlines"`
}

// DefaultOptions preserves both.
func DefaultOptions() Options {
	return Options{PreserveTabs: true, PreserveNewlines: true}
}

// Input is the resolved request shape. Parse fills the option defaults;
// callers constructing Input directly pass resolved values.
type Input struct {
	Text    string  `json:"text"`
	Ops     Ops     `json:"ops"`
	Options Options `json:"options"`
}

// Meta reports rune lengths and the ops that changed the text, in
// pipeline order.
type Meta struct {
	OriginalLength   int      `json:"original_length"`
	NormalizedLength int      `json:"normalized_length"`
	Applied          []string `json:"applied"`
}

// Result is the domain outcome.
type Result struct {
	Text string `json:"text"`
	Meta Meta   `json:"meta"`
}

// Parse decodes a raw request into a resolved Input. Unknown or mistyped
// fields anywhere fail the call; omitted ops stay off and omitted options
// preserve tabs and newlines.
func Parse(raw json.RawMessage) (Input, *jsontools.Error) {
	var zero Input
	obj, err := jsonval.DecodeObject(raw)
	if err != nil {
		return zero, invalid()
	}

	out := Input{Options: DefaultOptions()}
	sawText := false
	for _, key := range obj.Keys() {
		value, _ := obj.Get(key)
		switch key {
		case "text":
			s, ok := value.(string)
			if !ok {
				return zero, invalid()
			}
			out.Text = s
			sawText = true
		case "ops":
			child, ok := value.(*jsonval.Object)
			if !ok {
				return zero, invalid()
			}
			flags := map[string]*bool{
				"normalize_newlines":   &out.Ops.NormalizeNewlines,
				"collapse_whitespace":  &out.Ops.CollapseWhitespace,
				"trim":                 &out.Ops.Trim,
				"to_lower":             &out.Ops.ToLower,
				"to_upper":             &out.Ops.ToUpper,
				"remove_control_chars": &out.Ops.RemoveControlChars,
			}
			if envErr := boolFields(child, flags); envErr != nil {
				return zero, envErr
			}
		case "options":
			child, ok := value.(*jsonval.Object)
			if !ok {
				return zero, invalid()
			}
			flags := map[string]*bool{
				"preserve_tabs":     &out.Options.PreserveTabs,
				"preserve_newlines": &out.Options.PreserveNewlines,
			}
			if envErr := boolFields(child, flags); envErr != nil {
				return zero, envErr
			}
		default:
			return zero, invalid()
		}
	}
	if !sawText {
		return zero, invalid()
	}
	return out, nil
}

func boolFields(obj *jsonval.Object, dst map[string]*bool) *jsontools.Error {
	for _, key := range obj.Keys() {
		target, known := dst[key]
		if !known {
			return invalid()
		}
		value, _ := obj.Get(key)
		b, ok := value.(bool)
		if !ok {
			return invalid()
		}
		*target = b
	}
	return nil
}

func invalid() *jsontools.Error {
	return jsontools.NewError(jsontools.CodeInputInvalid, "Input must match the text_normalize schema.")
}

// step is one pipeline stage.
type step struct {
	name  string
	apply func(text string, opts Options) string
}

// pipeline is the fixed op order.
var pipeline = []step{
	{"normalize_newlines", func(text string, _ Options) string {
		return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
	}},
	{"remove_control_chars", removeControlChars},
	{"collapse_whitespace", collapseWhitespace},
	{"trim", func(text string, _ Options) string { return strings.TrimSpace(text) }},
	{"to_lower", func(text string, _ Options) string { return strings.ToLower(text) }},
	{"to_upper", func(text string, _ Options) string { return strings.ToUpper(text) }},
}

// Normalize runs the selected ops over the text.
func Normalize(in Input) (*Result, *jsontools.Error) {
	selected := map[string]bool{
		"normalize_newlines":   in.Ops.NormalizeNewlines,
		"remove_control_chars": in.Ops.RemoveControlChars,
		"collapse_whitespace":  in.Ops.CollapseWhitespace,
		"trim":                 in.Ops.Trim,
		"to_lower":             in.Ops.ToLower,
		"to_upper":             in.Ops.ToUpper,
	}

	text := in.Text
	applied := []string{}
	for _, s := range pipeline {
		if !selected[s.name] {
			continue
		}
		normalized := s.apply(text, in.Options)
		if normalized != text {
			applied = append(applied, s.name)
		}
		text = normalized
	}

	return &Result{
		Text: text,
		Meta: Meta{
			OriginalLength:   utf8.RuneCountInString(in.Text),
			NormalizedLength: utf8.RuneCountInString(text),
			Applied:          applied,
		},
	}, nil
}

// removeControlChars drops runes below 0x20, keeping tabs and newlines
// only when the options preserve them.
func removeControlChars(text string, opts Options) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= 32 {
			b.WriteRune(r)
			continue
		}
		if r == '\t' && opts.PreserveTabs {
			b.WriteRune(r)
			continue
		}
		if r == '\n' && opts.PreserveNewlines {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseWhitespace squeezes runs of spaces (and tabs, unless preserved)
// into a single space. With newlines preserved each line is collapsed
// independently so line structure survives.
func collapseWhitespace(text string, opts Options) string {
	if opts.PreserveNewlines {
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = collapseLine(line, opts.PreserveTabs)
		}
		return strings.Join(lines, "\n")
	}
	return collapseLine(text, opts.PreserveTabs)
}

func collapseLine(line string, preserveTabs bool) string {
	var b strings.Builder
	b.Grow(len(line))
	run := false
	for _, r := range line {
		squeeze := r == ' ' || (r == '\t' && !preserveTabs)
		if squeeze {
			if !run {
				b.WriteRune(' ')
				run = true
			}
			continue
		}
		run = false
		b.WriteRune(r)
	}
	return b.String()
}
