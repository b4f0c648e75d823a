package engine

import (
	"github.com/tphakala/go-ambient/internal/dsp"
	"github.com/tphakala/go-ambient/internal/log"
)

// Option configures a single run.
type Option func(*runConfig)

type runConfig struct {
	sampleRate float64
	seed       *int64
	level      *float64
	logger     log.Logger
}

func defaultRunConfig() runConfig {
	return runConfig{
		sampleRate: dsp.DefaultSampleRate,
		logger:     log.GetLogger(),
	}
}

// WithSeed makes the run reproducible.
func WithSeed(seed int64) Option {
	return func(c *runConfig) {
		c.seed = &seed
	}
}

// WithLevel sets the peak target of the final normalization.
func WithLevel(level float64) Option {
	return func(c *runConfig) {
		c.level = &level
	}
}

// WithSampleRate overrides the rendering rate. Profiles are authored for
// dsp.DefaultSampleRate; other rates are meant for tests and tools.
func WithSampleRate(sr float64) Option {
	return func(c *runConfig) {
		c.sampleRate = sr
	}
}

// WithLogger sets the logger for step tracing.
func WithLogger(l log.Logger) Option {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
