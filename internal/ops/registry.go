package ops

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownOperator is returned when a step names an unregistered operator.
var ErrUnknownOperator = errors.New("unknown operator")

var errDuplicateOperator = errors.New("duplicate operator")

// UnknownOperatorError reports the offending name and the valid names.
type UnknownOperatorError struct {
	Name  string
	Known []string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("%s %q (known: %s)", ErrUnknownOperator, e.Name, strings.Join(e.Known, ", "))
}

// Unwrap makes errors.Is(err, ErrUnknownOperator) hold.
func (e *UnknownOperatorError) Unwrap() error {
	return ErrUnknownOperator
}

// Registry maps operator names to implementations. It is filled once and
// only read afterwards, so a populated registry is safe for concurrent
// Resolve calls. Register must not race with Resolve.
type Registry struct {
	ops map[string]Operator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Operator)}
}

// Register adds an operator under name.
func (r *Registry) Register(name string, op Operator) error {
	if name == "" {
		return errors.New("empty operator name")
	}

	if op == nil {
		return errors.New("nil operator")
	}

	if _, exists := r.ops[name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateOperator, name)
	}

	r.ops[name] = op

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, op Operator) {
	if err := r.Register(name, op); err != nil {
		panic("ops registry: " + err.Error())
	}
}

// Resolve returns the operator registered under name.
func (r *Registry) Resolve(name string) (Operator, error) {
	if op, ok := r.ops[name]; ok {
		return op, nil
	}
	return nil, &UnknownOperatorError{Name: name, Known: r.Names()}
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Kind enumerates the built-in operators.
type Kind int

const (
	KindNoisePink Kind = iota
	KindFilterLP
	KindFilterHP
	KindFilterBP
	KindEnvLFO
	KindBursts
	KindStereoDecor
	KindToneIso
	KindToneBinaural
	KindFade
	KindGain
	kindCount
)

// builtins is indexed by Kind.
var builtins = [kindCount]struct {
	name string
	op   Operator
}{
	KindNoisePink:    {NameNoisePink, noisePink},
	KindFilterLP:     {NameFilterLP, filterLP},
	KindFilterHP:     {NameFilterHP, filterHP},
	KindFilterBP:     {NameFilterBP, filterBP},
	KindEnvLFO:       {NameEnvLFO, envLFO},
	KindBursts:       {NameBursts, bursts},
	KindStereoDecor:  {NameStereoDecor, stereoDecor},
	KindToneIso:      {NameToneIso, toneIso},
	KindToneBinaural: {NameToneBinaural, toneBinaural},
	KindFade:         {NameFade, fade},
	KindGain:         {NameGain, gain},
}

// String returns the operator name for k.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return builtins[k].name
}

// Operator returns the implementation for k, or nil for an invalid kind.
func (k Kind) Operator() Operator {
	if k < 0 || k >= kindCount {
		return nil
	}
	return builtins[k].op
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry of built-in operators. It is
// built on first use and never modified afterwards.
func Default() *Registry {
	defaultOnce.Do(func() {
		r := NewRegistry()
		for k := range kindCount {
			r.MustRegister(k.String(), k.Operator())
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// NewDefaultRegistry returns a fresh registry holding the built-in operators.
// Callers may Register additional operators on it.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for k := range kindCount {
		r.MustRegister(k.String(), k.Operator())
	}
	return r
}
