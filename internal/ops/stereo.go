package ops

import (
	"github.com/tphakala/go-ambient/internal/dsp"
	"github.com/tphakala/go-ambient/internal/pipeline"
)

// stereoDecor widens a mono buffer into a decorrelated stereo pair. A buffer
// that is already stereo is passed through unchanged.
func stereoDecor(buf dsp.Buffer, st *State, p pipeline.Params) (dsp.Buffer, error) {
	if buf.IsStereo() {
		return buf.Clone(), nil
	}

	r := paramReader{p: p}
	params := dsp.DecorrelationParams{
		Spread:   r.num("spread", defaultSpread),
		PanRate:  r.num("pan_rate", defaultPanRate),
		PanDepth: r.num("pan_depth", defaultPanDepth),
	}
	if r.err != nil {
		return dsp.Buffer{}, r.err
	}

	left, right := dsp.Decorrelate(buf.Data, st.SampleRate, st.Rand(), params)
	return dsp.Stereo(left, right)
}
