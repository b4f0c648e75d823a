// Package dsp implements the signal buffer and the DSP primitives the
// ambient operators are built from: one-pole filters, pink-noise coloring,
// sine LFOs, stereo decorrelation and peak normalization.
//
// Every stateful filter is an explicit sequential scan over the buffer. The
// recurrences carry a true data dependency from sample to sample and are not
// vectorized, so results are stable across platforms.
package dsp

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-ambient/internal/simdops"
)

// ErrChannelLayout indicates an unsupported channel count.
var ErrChannelLayout = errors.New("unsupported channel layout")

// Buffer is a block of float32 samples, mono or interleaved stereo.
// Values are nominally in [-1, 1] but are not clipped until output.
type Buffer struct {
	Data     []float32
	Channels int
}

// NewMono allocates a silent mono buffer of n frames.
func NewMono(n int) Buffer {
	if n < 0 {
		n = 0
	}
	return Buffer{Data: make([]float32, n), Channels: MonoChannels}
}

// Mono wraps samples as a mono buffer without copying.
func Mono(samples []float32) Buffer {
	return Buffer{Data: samples, Channels: MonoChannels}
}

// Stereo interleaves left and right into a new stereo buffer.
// Both channels must have the same length.
func Stereo(left, right []float32) (Buffer, error) {
	if len(left) != len(right) {
		return Buffer{}, fmt.Errorf("%w: channel lengths differ (%d != %d)", ErrChannelLayout, len(left), len(right))
	}
	data := make([]float32, len(left)*StereoChannels)
	if len(left) > 0 {
		simdops.Float32Ops().Interleave2(data, left, right)
	}
	return Buffer{Data: data, Channels: StereoChannels}, nil
}

// Frames returns the number of sample frames (samples per channel).
func (b Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}
	return len(b.Data) / b.Channels
}

// IsStereo reports whether the buffer holds two channels.
func (b Buffer) IsStereo() bool {
	return b.Channels == StereoChannels
}

// Clone returns a deep copy.
func (b Buffer) Clone() Buffer {
	data := make([]float32, len(b.Data))
	copy(data, b.Data)
	return Buffer{Data: data, Channels: b.Channels}
}

// Channel returns a copy of channel ch.
func (b Buffer) Channel(ch int) []float32 {
	frames := b.Frames()
	out := make([]float32, frames)
	if ch < 0 || ch >= b.Channels {
		return out
	}
	if b.Channels == MonoChannels {
		copy(out, b.Data)
		return out
	}
	for i := range frames {
		out[i] = b.Data[i*b.Channels+ch]
	}
	return out
}

// ToStereo duplicates a mono buffer into both channels. A stereo buffer is
// returned as a copy.
func (b Buffer) ToStereo() (Buffer, error) {
	switch b.Channels {
	case StereoChannels:
		return b.Clone(), nil
	case MonoChannels:
		return Stereo(b.Data, b.Data)
	default:
		return Buffer{}, fmt.Errorf("%w: %d channels", ErrChannelLayout, b.Channels)
	}
}

// MapChannels applies fn to every channel independently and reassembles a
// buffer with the same layout. fn must return a slice of the same length.
func (b Buffer) MapChannels(fn func(ch int, x []float32) ([]float32, error)) (Buffer, error) {
	switch b.Channels {
	case MonoChannels:
		out, err := fn(0, b.Data)
		if err != nil {
			return Buffer{}, err
		}
		if len(out) != len(b.Data) {
			return Buffer{}, fmt.Errorf("%w: channel 0 length %d, want %d", ErrChannelLayout, len(out), len(b.Data))
		}
		return Mono(out), nil
	case StereoChannels:
		left, err := fn(0, b.Channel(0))
		if err != nil {
			return Buffer{}, err
		}
		right, err := fn(1, b.Channel(1))
		if err != nil {
			return Buffer{}, err
		}
		if len(left) != b.Frames() || len(right) != b.Frames() {
			return Buffer{}, fmt.Errorf("%w: channel lengths %d/%d, want %d", ErrChannelLayout, len(left), len(right), b.Frames())
		}
		return Stereo(left, right)
	default:
		return Buffer{}, fmt.Errorf("%w: %d channels", ErrChannelLayout, b.Channels)
	}
}
