package dsp

import "math"

// LFO evaluates depth·sin(2π·freq·t + phase) for t = i/sampleRate.
// It is stateless, so any sub-range can be regenerated independently.
func LFO(n int, sampleRate, freq, depth, phase float64) []float32 {
	out := make([]float32, max(n, 0))
	w := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = float32(depth * math.Sin(w*float64(i)+phase))
	}
	return out
}

// Oscillator evaluates amplitude·sin(2π·freq·t) at the audio rate. It shares
// the LFO evaluation; the name marks carrier use.
func Oscillator(n int, sampleRate, freq, amplitude float64) []float32 {
	return LFO(n, sampleRate, freq, amplitude, 0)
}

// Fade multiplies x in place by a linear fade-in over the first fadeIn
// samples and a fade-out over the last fadeOut samples. The fades are skipped
// when they would overlap.
func Fade(x []float32, fadeIn, fadeOut int) {
	fadeIn = min(max(fadeIn, 0), len(x))
	fadeOut = min(max(fadeOut, 0), len(x))
	if fadeIn+fadeOut >= len(x) {
		return
	}
	for i, g := range Linspace(0, 1, fadeIn) {
		x[i] *= g
	}
	start := len(x) - fadeOut
	for i, g := range Linspace(1, 0, fadeOut) {
		x[start+i] *= g
	}
}
