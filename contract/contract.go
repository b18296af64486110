// Package contract defines the static capability contract every engine
// publishes: the same input/output/error shapes the engine enforces at
// runtime, described declaratively so external tooling can retrieve them.
package contract

// Determinism states the behavioral guarantees of an engine. Every engine
// in this module sets all four the same way; the struct exists so the
// guarantee is part of the retrievable artifact rather than folklore.
type Determinism struct {
	SameInputSameOutput bool `json:"same_input_same_output"`
	SideEffects         bool `json:"side_effects"`
	Network             bool `json:"network"`
	Storage             bool `json:"storage"`
}

// Pure is the determinism profile shared by all engines.
var Pure = Determinism{SameInputSameOutput: true}

// ErrorCode documents one structural failure code and when it fires.
type ErrorCode struct {
	Code string `json:"code"`
	When string `json:"when"`
}

// Contract is the per-tool artifact served at /contracts/<name>.
type Contract struct {
	Name         string         `json:"name"`
	Version      string         `json:"version"`
	Path         string         `json:"path"`
	Description  string         `json:"description"`
	Determinism  Determinism    `json:"determinism"`
	InputSchema  map[string]any `json:"input_schema"`
	OutputSchema map[string]any `json:"output_schema"`
	ErrorCodes   []ErrorCode    `json:"error_codes"`
	NonGoals     []string       `json:"non_goals"`
}

// Summary is the list entry served at /contracts.
type Summary struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Summarize projects a contract onto its list entry.
func (c Contract) Summarize() Summary {
	return Summary{Name: c.Name, Version: c.Version, Path: c.Path, Description: c.Description}
}

// NonGoals shared by every engine: these tools transform and report, they
// never decide.
var CommonNonGoals = []string{"no advice", "no decisions", "no inference", "no external calls"}
