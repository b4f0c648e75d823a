// Package ops implements the named pipeline operators and the registry that
// resolves operator names to implementations.
//
// An operator takes the current buffer, the shared run state and its parsed
// parameters, and returns a new buffer with the same frame count. Operators
// ignore parameters they do not recognize.
package ops

import (
	"math/rand/v2"

	"github.com/tphakala/go-ambient/internal/dsp"
	"github.com/tphakala/go-ambient/internal/pipeline"
)

// Operator transforms a buffer. It must not change the frame count and may
// only change the channel count from mono to stereo.
type Operator func(buf dsp.Buffer, st *State, p pipeline.Params) (dsp.Buffer, error)

// State is shared by every operator of one pipeline run. SampleRate and the
// seed are fixed for the run; only the random generator advances.
type State struct {
	SampleRate float64

	seed   int64
	seeded bool
	rng    *rand.Rand
}

// NewState creates run state. A nil seed draws a random one.
func NewState(sampleRate float64, seed *int64) *State {
	st := &State{SampleRate: sampleRate}
	if seed != nil {
		st.seed = *seed
		st.seeded = true
		st.rng = rand.New(rand.NewPCG(uint64(*seed), seedStream))
	} else {
		st.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return st
}

// Rand returns the run's random generator.
func (s *State) Rand() *rand.Rand {
	return s.rng
}

// Seed returns the configured seed and whether one was set.
func (s *State) Seed() (int64, bool) {
	return s.seed, s.seeded
}

// paramReader extracts numeric parameters and keeps the first error.
type paramReader struct {
	p   pipeline.Params
	err error
}

func (r *paramReader) num(key string, def float64) float64 {
	if r.err != nil {
		return def
	}
	v, err := r.p.Number(key, def)
	if err != nil {
		r.err = err
		return def
	}
	return v
}

// eachChannel applies fn to every channel of buf.
func eachChannel(buf dsp.Buffer, fn func(x []float32) []float32) (dsp.Buffer, error) {
	return buf.MapChannels(func(_ int, x []float32) ([]float32, error) {
		return fn(x), nil
	})
}

// frameCount converts a sample count to int, clamped to [0, limit]. The clamp
// happens in float64 so huge or infinite counts never overflow.
func frameCount(samples float64, limit int) int {
	if samples <= 0 {
		return 0
	}
	if samples >= float64(limit) {
		return limit
	}
	return int(samples)
}
