package ops

import (
	"github.com/tphakala/go-ambient/internal/dsp"
	"github.com/tphakala/go-ambient/internal/pipeline"
)

// envLFO multiplies the signal by bias + depth·sin(2π·f·t + phase).
func envLFO(buf dsp.Buffer, st *State, p pipeline.Params) (dsp.Buffer, error) {
	r := paramReader{p: p}
	freq := r.num("f", defaultLFOFreq)
	depth := r.num("depth", defaultLFODepth)
	bias := r.num("bias", defaultLFOBias)
	phase := r.num("phase", 0)
	if r.err != nil {
		return dsp.Buffer{}, r.err
	}

	env := dsp.LFO(buf.Frames(), st.SampleRate, freq, depth, phase)
	for i := range env {
		env[i] += float32(bias)
	}

	return eachChannel(buf, func(x []float32) []float32 {
		out := make([]float32, len(x))
		for i, v := range x {
			out[i] = v * env[i]
		}
		return out
	})
}

// fade applies linear fades of in and out seconds to both ends.
func fade(buf dsp.Buffer, st *State, p pipeline.Params) (dsp.Buffer, error) {
	r := paramReader{p: p}
	in := r.num("in", defaultFadeSeconds)
	out := r.num("out", defaultFadeSeconds)
	if r.err != nil {
		return dsp.Buffer{}, r.err
	}

	fadeIn := frameCount(in*st.SampleRate, buf.Frames())
	fadeOut := frameCount(out*st.SampleRate, buf.Frames())
	return eachChannel(buf, func(x []float32) []float32 {
		y := make([]float32, len(x))
		copy(y, x)
		dsp.Fade(y, fadeIn, fadeOut)
		return y
	})
}

// gain scales every sample.
func gain(buf dsp.Buffer, _ *State, p pipeline.Params) (dsp.Buffer, error) {
	r := paramReader{p: p}
	g := r.num("gain", defaultGain)
	if r.err != nil {
		return dsp.Buffer{}, r.err
	}

	return eachChannel(buf, func(x []float32) []float32 {
		return dsp.Gain(x, g)
	})
}
