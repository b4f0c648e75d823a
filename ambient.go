package ambient

import (
	"context"
	"fmt"

	"github.com/tphakala/go-ambient/internal/dsp"
	"github.com/tphakala/go-ambient/internal/engine"
	"github.com/tphakala/go-ambient/internal/log"
	"github.com/tphakala/go-ambient/internal/ops"
	"github.com/tphakala/go-ambient/internal/pipeline"
)

// Errors reported while compiling or rendering a profile.
var (
	ErrMalformedStep   = pipeline.ErrMalformedStep
	ErrUnknownOperator = ops.ErrUnknownOperator
	ErrInvalidParam    = pipeline.ErrInvalidParam
	ErrShapeChanged    = engine.ErrShapeChanged
	ErrInvalidDuration = engine.ErrInvalidDuration
	ErrInvalidLevel    = engine.ErrInvalidLevel
)

// Types re-exported for callers outside this module.
type (
	// Buffer is a rendered block of interleaved float32 samples.
	Buffer = dsp.Buffer

	// UnknownOperatorError lists the valid operators alongside the bad name.
	UnknownOperatorError = ops.UnknownOperatorError

	// Registry maps operator names to implementations.
	Registry = ops.Registry

	// Operator is a single pipeline step implementation.
	Operator = ops.Operator

	// State is the per-run state handed to every operator.
	State = ops.State

	// Params holds the parsed parameters of a step.
	Params = pipeline.Params
)

// NewRegistry returns a registry holding the built-in operators, ready for
// custom operators to be added.
func NewRegistry() *Registry {
	return ops.NewDefaultRegistry()
}

// Operators lists the built-in operator names.
func Operators() []string {
	return ops.Default().Names()
}

// Option configures a render.
type Option func(*options)

type options struct {
	seed       *int64
	level      *float64
	sampleRate float64
	logger     log.Logger
	registry   *ops.Registry
}

func collectOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSeed makes the render reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithLevel overrides the profile level.
func WithLevel(level float64) Option {
	return func(o *options) {
		o.level = &level
	}
}

// WithSampleRate renders at a rate other than SampleRate. Intended for
// tests and analysis tools.
func WithSampleRate(sr float64) Option {
	return func(o *options) {
		o.sampleRate = sr
	}
}

// WithLogger sets the logger used for step tracing.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRegistry resolves operators from r instead of the built-in set.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// RunProfile renders minutes of audio from p. The result is stereo with
// int(minutes·60·SampleRate) frames, peak-normalized to the level.
func RunProfile(p *Profile, minutes float64, opts ...Option) (Buffer, error) {
	return RunProfileContext(context.Background(), p, minutes, opts...)
}

// RunProfileContext is RunProfile with cancellation between steps.
func RunProfileContext(ctx context.Context, p *Profile, minutes float64, opts ...Option) (Buffer, error) {
	return RunContext(ctx, p, minutes*secondsPerMinute, opts...)
}

// Run renders seconds of audio from p.
func Run(p *Profile, seconds float64, opts ...Option) (Buffer, error) {
	return RunContext(context.Background(), p, seconds, opts...)
}

// RunContext renders seconds of audio from p. The level is taken from
// WithLevel, then the profile, then DefaultLevel. The pipeline is compiled
// before any audio is allocated.
func RunContext(ctx context.Context, p *Profile, seconds float64, opts ...Option) (Buffer, error) {
	if p == nil {
		return Buffer{}, fmt.Errorf("%w: nil profile", ErrInvalidProfile)
	}
	if err := p.checkLevel(); err != nil {
		return Buffer{}, err
	}

	o := collectOptions(opts)
	plan, err := engine.Compile(p.Pipeline, o.registry)
	if err != nil {
		return Buffer{}, profileError(p, err)
	}

	level := p.EffectiveLevel()
	if o.level != nil {
		level = *o.level
	}

	engineOpts := []engine.Option{engine.WithLevel(level)}
	if o.seed != nil {
		engineOpts = append(engineOpts, engine.WithSeed(*o.seed))
	}
	if o.sampleRate != 0 {
		engineOpts = append(engineOpts, engine.WithSampleRate(o.sampleRate))
	}
	if o.logger != nil {
		logger := o.logger
		if p.Name != "" {
			logger = logger.WithField("profile", p.Name)
		}
		engineOpts = append(engineOpts, engine.WithLogger(logger))
	}

	buf, err := plan.RunContext(ctx, seconds, engineOpts...)
	if err != nil {
		return Buffer{}, profileError(p, err)
	}
	return buf, nil
}

func profileError(p *Profile, err error) error {
	if p.Name == "" {
		return err
	}
	return fmt.Errorf("profile %s: %w", p.Name, err)
}
