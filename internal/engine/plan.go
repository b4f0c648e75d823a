package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-ambient/internal/dsp"
	"github.com/tphakala/go-ambient/internal/log"
	"github.com/tphakala/go-ambient/internal/ops"
	"github.com/tphakala/go-ambient/internal/pipeline"
)

// Errors returned by Compile and Run.
var (
	ErrShapeChanged    = errors.New("operator changed buffer shape")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidLevel    = errors.New("invalid level")
	ErrInvalidRate     = errors.New("invalid sample rate")
)

type compiledStep struct {
	step pipeline.Step
	op   ops.Operator
}

// Plan is a parsed and resolved pipeline. It holds no per-run state and may
// be run any number of times, concurrently.
type Plan struct {
	steps []compiledStep
}

// Compile parses every step and resolves its operator. Nothing is rendered,
// so an invalid pipeline fails before any buffer is allocated. A nil
// registry means ops.Default().
func Compile(raw []string, reg *ops.Registry) (*Plan, error) {
	if reg == nil {
		reg = ops.Default()
	}

	steps, err := pipeline.ParseSteps(raw)
	if err != nil {
		return nil, err
	}

	plan := &Plan{steps: make([]compiledStep, 0, len(steps))}
	for i, s := range steps {
		op, err := reg.Resolve(s.Name)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		plan.steps = append(plan.steps, compiledStep{step: s, op: op})
	}
	return plan, nil
}

// Steps returns the parsed steps in order.
func (p *Plan) Steps() []pipeline.Step {
	out := make([]pipeline.Step, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.step
	}
	return out
}

// Len returns the number of steps.
func (p *Plan) Len() int {
	return len(p.steps)
}

// Frames returns the frame count of a render of the given length.
func Frames(seconds, sampleRate float64) int {
	return int(seconds * sampleRate)
}

// Run renders seconds of audio. See RunContext.
func (p *Plan) Run(seconds float64, opts ...Option) (dsp.Buffer, error) {
	return p.RunContext(context.Background(), seconds, opts...)
}

// RunContext renders seconds of audio: it starts from int(seconds·rate)
// frames of mono silence, applies every step in order, duplicates a mono
// result to stereo and peak-normalizes to the target level. The returned
// buffer is always stereo. ctx is checked between steps.
func (p *Plan) RunContext(ctx context.Context, seconds float64, opts ...Option) (dsp.Buffer, error) {
	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	level := DefaultLevel
	if cfg.level != nil {
		level = *cfg.level
	}
	if err := validate(seconds, cfg.sampleRate, level); err != nil {
		return dsp.Buffer{}, err
	}

	n := Frames(seconds, cfg.sampleRate)
	st := ops.NewState(cfg.sampleRate, cfg.seed)
	logger := cfg.logger.WithField(log.FieldRunID, log.NewID())
	fields := logrus.Fields{
		"frames": n,
		"steps":  len(p.steps),
		"level":  level,
	}
	if seed, ok := st.Seed(); ok {
		fields["seed"] = seed
	}
	logger.WithFields(fields).Debug("run started")

	buf := dsp.NewMono(n)
	for i, s := range p.steps {
		if err := ctx.Err(); err != nil {
			return dsp.Buffer{}, err
		}

		start := time.Now()
		out, err := s.op(buf, st, s.step.Params)
		if err != nil {
			return dsp.Buffer{}, fmt.Errorf("step %d (%s): %w", i, s.step.Name, err)
		}
		if err := checkShape(buf, out, n); err != nil {
			return dsp.Buffer{}, fmt.Errorf("step %d (%s): %w", i, s.step.Name, err)
		}
		buf = out

		logger.WithFields(logrus.Fields{
			log.FieldStep: s.step.String(),
			"channels":    buf.Channels,
			"elapsed":     time.Since(start),
		}).Debug("step applied")
	}

	stereo, err := buf.ToStereo()
	if err != nil {
		return dsp.Buffer{}, err
	}

	peak := dsp.Peak(stereo.Data)
	out := dsp.Normalize(stereo, level)
	logger.WithField("peak", peak).Debug("run finished")

	return out, nil
}

func validate(seconds, sampleRate, level float64) error {
	if math.IsNaN(seconds) || seconds < 0 || seconds > MaxSeconds {
		return fmt.Errorf("%w: %v seconds", ErrInvalidDuration, seconds)
	}
	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRate, sampleRate)
	}
	if math.IsNaN(level) || math.IsInf(level, 0) || level < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, level)
	}
	return nil
}

// checkShape enforces that an operator keeps the frame count and only ever
// widens mono to stereo.
func checkShape(in, out dsp.Buffer, frames int) error {
	switch out.Channels {
	case dsp.MonoChannels, dsp.StereoChannels:
	default:
		return fmt.Errorf("%w: %d channels", ErrShapeChanged, out.Channels)
	}
	if in.IsStereo() && !out.IsStereo() {
		return fmt.Errorf("%w: stereo became mono", ErrShapeChanged)
	}
	if len(out.Data) != frames*out.Channels {
		return fmt.Errorf("%w: %d samples, want %d frames of %d channels",
			ErrShapeChanged, len(out.Data), frames, out.Channels)
	}
	return nil
}
