package dsp

import "math"

// OnePoleCoefficient returns the feedback coefficient a = exp(-2π·cutoff/sampleRate).
func OnePoleCoefficient(cutoff, sampleRate float64) float64 {
	return math.Exp(-2 * math.Pi * cutoff / sampleRate)
}

// OnePoleLowpass applies y[0] = x[0], y[i] = (1-a)·x[i] + a·y[i-1].
// Coefficient arithmetic runs in float64; each output is stored as float32,
// which the next iteration reads back.
func OnePoleLowpass(x []float32, cutoff, sampleRate float64) []float32 {
	y := make([]float32, len(x))
	if len(x) == 0 {
		return y
	}

	a := OnePoleCoefficient(cutoff, sampleRate)
	b := 1 - a

	y[0] = x[0]
	for i := 1; i < len(x); i++ {
		y[i] = float32(b*float64(x[i]) + a*float64(y[i-1]))
	}
	return y
}

// OnePoleHighpass applies y[0] = x[0], y[i] = a·(y[i-1] + x[i] - x[i-1]).
func OnePoleHighpass(x []float32, cutoff, sampleRate float64) []float32 {
	y := make([]float32, len(x))
	if len(x) == 0 {
		return y
	}

	a := OnePoleCoefficient(cutoff, sampleRate)

	y[0] = x[0]
	for i := 1; i < len(x); i++ {
		y[i] = float32(a * (float64(y[i-1]) + float64(x[i]) - float64(x[i-1])))
	}
	return y
}

// Complement returns x - LowPass(x, cutoff), the residual high band used by
// the filter_hp operator.
func Complement(x []float32, cutoff, sampleRate float64) []float32 {
	lp := OnePoleLowpass(x, cutoff, sampleRate)
	for i := range lp {
		lp[i] = x[i] - lp[i]
	}
	return lp
}

// Bandpass returns LowPass(x, hi) - LowPass(x, lo). Both passes read the
// same input independently.
func Bandpass(x []float32, lo, hi, sampleRate float64) []float32 {
	upper := OnePoleLowpass(x, hi, sampleRate)
	lower := OnePoleLowpass(x, lo, sampleRate)
	for i := range upper {
		upper[i] -= lower[i]
	}
	return upper
}
