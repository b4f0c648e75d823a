// Package analysis measures rendered buffers: level statistics per channel
// and the spectral slope used to check noise color.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tphakala/go-ambient/internal/dsp"
	"github.com/tphakala/go-ambient/internal/simdops"
)

// DefaultSegment is the Welch segment length used by SpectralSlope.
const DefaultSegment = 4096

// Errors returned by the spectral functions.
var (
	ErrTooShort     = errors.New("signal too short")
	ErrInvalidRange = errors.New("invalid frequency range")
)

// ChannelStats holds level measurements of one channel.
type ChannelStats struct {
	Peak  float64 // maximum absolute value
	RMS   float64
	Crest float64 // Peak/RMS, 0 for silence
	DC    float64 // mean value
}

// PeakDBFS returns the peak in dB relative to full scale.
func (c ChannelStats) PeakDBFS() float64 {
	return 20 * math.Log10(c.Peak)
}

// Stats summarizes a buffer.
type Stats struct {
	Frames   int
	Seconds  float64
	Channels []ChannelStats
}

// Summarize measures every channel of buf.
func Summarize(buf dsp.Buffer, sampleRate float64) Stats {
	s := Stats{
		Frames:   buf.Frames(),
		Seconds:  float64(buf.Frames()) / sampleRate,
		Channels: make([]ChannelStats, buf.Channels),
	}
	for ch := range buf.Channels {
		s.Channels[ch] = channelStats(toFloat64(buf.Channel(ch)))
	}
	return s
}

func channelStats(x []float64) ChannelStats {
	if len(x) == 0 {
		return ChannelStats{}
	}

	var c ChannelStats
	c.Peak = math.Max(floats.Max(x), -floats.Min(x))
	c.DC = simdops.Float64Ops().Sum(x) / float64(len(x))
	c.RMS = math.Sqrt(simdops.Float64Ops().DotProductUnsafe(x, x) / float64(len(x)))
	if c.RMS > 0 {
		c.Crest = c.Peak / c.RMS
	}
	return c
}

func toFloat64(x []float32) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}
	return out
}

// PSD estimates the one-sided power spectrum of x with Welch's method:
// Hann-windowed segments of length segment with 50% overlap, averaged.
// It returns the bin frequencies and their power.
func PSD(x []float32, sampleRate float64, segment int) (freqs, power []float64, err error) {
	if segment < 2 {
		return nil, nil, fmt.Errorf("%w: segment length %d", ErrTooShort, segment)
	}
	if len(x) < segment {
		return nil, nil, fmt.Errorf("%w: %d samples, need %d", ErrTooShort, len(x), segment)
	}

	fft := fourier.NewFFT(segment)
	bins := segment/2 + 1
	power = make([]float64, bins)
	block := make([]float64, segment)
	var coeffs []complex128

	hop := segment / 2
	count := 0
	for start := 0; start+segment <= len(x); start += hop {
		for i := range block {
			block[i] = float64(x[start+i])
		}
		window.Hann(block)

		coeffs = fft.Coefficients(coeffs, block)
		for k, c := range coeffs {
			power[k] += real(c)*real(c) + imag(c)*imag(c)
		}
		count++
	}
	floats.Scale(1/float64(count), power)

	freqs = make([]float64, bins)
	for k := range freqs {
		freqs[k] = fft.Freq(k) * sampleRate
	}
	return freqs, power, nil
}

// SpectralSlope fits log10(power) against log10(frequency) over [lo, hi] Hz
// and returns the slope. Pink noise is about -1, white noise about 0.
func SpectralSlope(x []float32, sampleRate, lo, hi float64) (float64, error) {
	if lo <= 0 || hi <= lo || hi > sampleRate/2 {
		return 0, fmt.Errorf("%w: [%v, %v] Hz", ErrInvalidRange, lo, hi)
	}

	freqs, power, err := PSD(x, sampleRate, DefaultSegment)
	if err != nil {
		return 0, err
	}

	var logF, logP []float64
	for k, f := range freqs {
		if f < lo || f > hi || power[k] <= 0 {
			continue
		}
		logF = append(logF, math.Log10(f))
		logP = append(logP, math.Log10(power[k]))
	}
	if len(logF) < 2 {
		return 0, fmt.Errorf("%w: fewer than two bins in [%v, %v] Hz", ErrInvalidRange, lo, hi)
	}

	_, slope := stat.LinearRegression(logF, logP, nil, false)
	return slope, nil
}
