package dsp

import (
	"math"
	"math/rand/v2"
)

// DecorrelationParams controls mono to stereo decorrelation.
type DecorrelationParams struct {
	Spread   float64 // level of the low-passed spread noise
	PanRate  float64 // pan LFO frequency in Hz
	PanDepth float64 // pan LFO depth
}

// Decorrelate derives a stereo pair from mono:
//
//	left  = (mono + 0.5·spread) · (1 + pan)
//	right = (mono - 0.5·spread) · (1 - pan)
//
// spread is normal noise scaled by p.Spread and low-passed at 1200 Hz, and
// pan is a p.PanRate sine with a random start phase. Both draws come from
// rng, spread first, so a seeded rng reproduces the result.
func Decorrelate(mono []float32, sampleRate float64, rng *rand.Rand, p DecorrelationParams) (left, right []float32) {
	n := len(mono)

	spread := OnePoleLowpass(WhiteNoise(rng, n, p.Spread), decorrelationCutoff, sampleRate)
	phase := rng.Float64() * 2 * math.Pi
	pan := LFO(n, sampleRate, p.PanRate, p.PanDepth, phase)

	left = make([]float32, n)
	right = make([]float32, n)
	for i, m := range mono {
		d := decorrelationMix * spread[i]
		left[i] = (m + d) * (1 + pan[i])
		right[i] = (m - d) * (1 - pan[i])
	}
	return left, right
}
