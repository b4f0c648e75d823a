package ops

import (
	"github.com/tphakala/go-ambient/internal/dsp"
	"github.com/tphakala/go-ambient/internal/pipeline"
)

// filterLP mixes a low-passed copy back in: x + LP(x, cut)·gain.
func filterLP(buf dsp.Buffer, st *State, p pipeline.Params) (dsp.Buffer, error) {
	r := paramReader{p: p}
	cut := r.num("cut", defaultCutoff)
	g := r.num("gain", defaultGain)
	if r.err != nil {
		return dsp.Buffer{}, r.err
	}

	return eachChannel(buf, func(x []float32) []float32 {
		return dsp.AddScaled(x, dsp.OnePoleLowpass(x, cut, st.SampleRate), g)
	})
}

// filterHP mixes the complement of a low-pass back in: x + (x - LP(x, cut))·gain.
func filterHP(buf dsp.Buffer, st *State, p pipeline.Params) (dsp.Buffer, error) {
	r := paramReader{p: p}
	cut := r.num("cut", defaultCutoff)
	g := r.num("gain", defaultGain)
	if r.err != nil {
		return dsp.Buffer{}, r.err
	}

	return eachChannel(buf, func(x []float32) []float32 {
		return dsp.AddScaled(x, dsp.Complement(x, cut, st.SampleRate), g)
	})
}

// filterBP mixes a band-passed copy back in: x + (LP(hi) - LP(lo))·gain.
func filterBP(buf dsp.Buffer, st *State, p pipeline.Params) (dsp.Buffer, error) {
	r := paramReader{p: p}
	lo := r.num("lo", defaultBandLo)
	hi := r.num("hi", defaultBandHi)
	g := r.num("gain", defaultGain)
	if r.err != nil {
		return dsp.Buffer{}, r.err
	}

	return eachChannel(buf, func(x []float32) []float32 {
		return dsp.AddScaled(x, dsp.Bandpass(x, lo, hi, st.SampleRate), g)
	})
}
