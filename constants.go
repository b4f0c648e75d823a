package ambient

import (
	"github.com/tphakala/go-ambient/internal/dsp"
	"github.com/tphakala/go-ambient/internal/engine"
)

// Rendering constants.
const (
	// SampleRate is the rate every profile renders at.
	SampleRate = dsp.DefaultSampleRate

	// DefaultLevel is the peak level used when a profile sets none.
	DefaultLevel = engine.DefaultLevel

	// Channels is the channel count of every rendered buffer.
	Channels = dsp.StereoChannels

	secondsPerMinute = 60.0
)

// Profile file extensions.
const (
	extJSON = ".json"
	extYAML = ".yaml"
	extYML  = ".yml"
)
