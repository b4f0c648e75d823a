package dsp

import "math/rand/v2"

// WhiteNoise draws n standard-normal samples from rng, scaled by amplitude.
func WhiteNoise(rng *rand.Rand, n int, amplitude float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(rng.NormFloat64() * amplitude)
	}
	return out
}

// Pinkish colors white noise with a fixed 7-tap IIR bank so that the power
// spectrum falls at roughly -3 dB per octave. State is float32 and carried
// across the whole buffer.
func Pinkish(white []float32) []float32 {
	var b [7]float32
	pink := make([]float32, len(white))

	for i, w := range white {
		for k := range pinkPoles {
			b[k] = pinkPoles[k]*b[k] + w*pinkGains[k]
		}
		pink[i] = b[0] + b[1] + b[2] + b[3] + b[4] + b[5] + b[6] + w*pinkDirectGain
		b[6] = w * pinkDelayedGain
	}
	return pink
}

// Ramp returns n values falling linearly from 1 to 0 inclusive.
// A single-sample ramp is {1}.
func Ramp(n int) []float32 {
	return Linspace(1, 0, n)
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float32 {
	if n <= 0 {
		return nil
	}
	out := make([]float32, n)
	if n == 1 {
		out[0] = float32(start)
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range n - 1 {
		out[i] = float32(start + float64(i)*step)
	}
	out[n-1] = float32(stop)
	return out
}
