package ops

import (
	"github.com/tphakala/go-ambient/internal/dsp"
	"github.com/tphakala/go-ambient/internal/pipeline"
)

// toneIso adds an isochronic tone: a carrier gated by a raised sine at the
// beat rate, amp·½(1 + sin(2π·beat·t))·sin(2π·carrier·t).
func toneIso(buf dsp.Buffer, st *State, p pipeline.Params) (dsp.Buffer, error) {
	r := paramReader{p: p}
	carrier := r.num("carrier", defaultIsoCarrier)
	beat := r.num("beat", defaultIsoBeat)
	amp := r.num("amp", defaultToneAmp)
	if r.err != nil {
		return dsp.Buffer{}, r.err
	}

	n := buf.Frames()
	tone := dsp.Oscillator(n, st.SampleRate, carrier, amp)
	gate := dsp.LFO(n, st.SampleRate, beat, 0.5, 0)
	for i := range tone {
		tone[i] *= 0.5 + gate[i]
	}

	return eachChannel(buf, func(x []float32) []float32 {
		return dsp.AddScaled(x, tone, 1)
	})
}

// toneBinaural adds a carrier at left Hz to the left channel and at right Hz
// to the right channel. A mono buffer is duplicated to stereo first.
func toneBinaural(buf dsp.Buffer, st *State, p pipeline.Params) (dsp.Buffer, error) {
	r := paramReader{p: p}
	left := r.num("left", defaultBinauralLeft)
	right := r.num("right", defaultBinauralRight)
	amp := r.num("amp", defaultToneAmp)
	if r.err != nil {
		return dsp.Buffer{}, r.err
	}

	stereo, err := buf.ToStereo()
	if err != nil {
		return dsp.Buffer{}, err
	}

	n := stereo.Frames()
	carriers := [dsp.StereoChannels][]float32{
		dsp.Oscillator(n, st.SampleRate, left, amp),
		dsp.Oscillator(n, st.SampleRate, right, amp),
	}
	return stereo.MapChannels(func(ch int, x []float32) ([]float32, error) {
		return dsp.AddScaled(x, carriers[ch], 1), nil
	})
}

