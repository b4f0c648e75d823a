// Package pipeline parses the textual step grammar of an ambient profile.
//
// A step is either a bare operator name or a name followed by parameters:
//
//	noise_pink
//	filter_lp:cut=500,gain=0.5
//
// Values that read as floating-point numbers become numbers; everything else
// stays text.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedStep indicates a step string that does not follow the grammar.
var ErrMalformedStep = errors.New("malformed step")

// Step is one parsed pipeline entry.
type Step struct {
	Name   string
	Params Params
	Raw    string // original step text, for diagnostics
}

// String formats the step in canonical grammar.
func (s Step) String() string {
	if s.Params.Len() == 0 {
		return s.Name
	}
	return s.Name + nameSeparator + s.Params.String()
}

// ParseStep parses a single step string.
//
// The text before the first ':' is the operator name; the rest is split on
// ',' into key=value pairs. Empty segments are skipped. A segment without
// exactly one '=' or with an empty key is an error.
func ParseStep(raw string) (Step, error) {
	name, args, hasArgs := strings.Cut(raw, nameSeparator)
	name = strings.TrimSpace(name)
	if name == "" {
		return Step{}, fmt.Errorf("%w: %q: empty operator name", ErrMalformedStep, raw)
	}

	step := Step{Name: name, Params: NewParams(), Raw: raw}
	if !hasArgs {
		return step, nil
	}

	for _, segment := range strings.Split(args, paramSeparator) {
		if segment == "" {
			continue
		}
		if strings.Count(segment, valueSeparator) != 1 {
			return Step{}, fmt.Errorf("%w: %q: parameter %q must be key=value", ErrMalformedStep, raw, segment)
		}
		key, value, _ := strings.Cut(segment, valueSeparator)
		key = strings.TrimSpace(key)
		if key == "" {
			return Step{}, fmt.Errorf("%w: %q: parameter %q has an empty key", ErrMalformedStep, raw, segment)
		}
		step.Params.Set(key, ParseValue(value))
	}

	return step, nil
}

// ParseSteps parses every step, stopping at the first error. The error
// carries the index of the offending step.
func ParseSteps(raw []string) ([]Step, error) {
	steps := make([]Step, 0, len(raw))
	for i, r := range raw {
		s, err := ParseStep(r)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, s)
	}
	return steps, nil
}
