package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParam indicates a parameter value of the wrong kind or range.
var ErrInvalidParam = errors.New("invalid parameter")

// Params is an ordered mapping from parameter name to Value. Later
// assignments to the same key replace the value but keep its position.
type Params struct {
	keys   []string
	values map[string]Value
}

// NewParams creates an empty parameter map.
func NewParams() Params {
	return Params{
		keys:   make([]string, 0, defaultParamCapacity),
		values: make(map[string]Value, defaultParamCapacity),
	}
}

// Set assigns key to v.
func (p *Params) Set(key string, v Value) {
	if p.values == nil {
		p.values = make(map[string]Value, defaultParamCapacity)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
}

// Get returns the value for key.
func (p Params) Get(key string) (Value, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns parameter names in insertion order.
func (p Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of parameters.
func (p Params) Len() int {
	return len(p.keys)
}

// Number returns the numeric parameter key, or def when it is absent.
// A text value or a non-finite number is an ErrInvalidParam.
func (p Params) Number(key string, def float64) (float64, error) {
	v, ok := p.values[key]
	if !ok {
		return def, nil
	}
	f, isNum := v.Float()
	if !isNum {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidParam, key, v.text)
	}
	if !isFinite(f) {
		return 0, fmt.Errorf("%w: %s=%v is not finite", ErrInvalidParam, key, f)
	}
	return f, nil
}

// String formats the parameters as they appear after the step name.
func (p Params) String() string {
	parts := make([]string, 0, len(p.keys))
	for _, k := range p.keys {
		parts = append(parts, k+valueSeparator+p.values[k].String())
	}
	return strings.Join(parts, paramSeparator)
}
