package dsp

import "github.com/tphakala/go-ambient/internal/simdops"

// Peak returns the maximum absolute sample value.
func Peak(x []float32) float32 {
	var peak float32
	for _, v := range x {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Normalize scales the whole buffer so its peak equals target. An all-zero
// buffer is returned unchanged; silence is valid output.
func Normalize(b Buffer, target float64) Buffer {
	peak := Peak(b.Data)
	if peak == 0 {
		return b
	}
	out := Buffer{Data: make([]float32, len(b.Data)), Channels: b.Channels}
	simdops.Float32Ops().Scale(out.Data, b.Data, float32(target/float64(peak)))
	return out
}

// Gain returns x scaled by g.
func Gain(x []float32, g float64) []float32 {
	out := make([]float32, len(x))
	if len(x) > 0 {
		simdops.Float32Ops().Scale(out, x, float32(g))
	}
	return out
}

// AddScaled returns x + g·y. Both slices must have the same length.
func AddScaled(x, y []float32, g float64) []float32 {
	out := Gain(y, g)
	for i := range out {
		out[i] += x[i]
	}
	return out
}

// Clip limits v to [-1, 1].
func Clip(v float32) float32 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
