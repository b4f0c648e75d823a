package ops

import (
	"github.com/tphakala/go-ambient/internal/dsp"
	"github.com/tphakala/go-ambient/internal/pipeline"
)

// noisePink adds pink-colored noise scaled by gain. Each channel gets its
// own noise draw.
func noisePink(buf dsp.Buffer, st *State, p pipeline.Params) (dsp.Buffer, error) {
	r := paramReader{p: p}
	g := r.num("gain", defaultGain)
	if r.err != nil {
		return dsp.Buffer{}, r.err
	}

	rng := st.Rand()
	return eachChannel(buf, func(x []float32) []float32 {
		pink := dsp.Pinkish(dsp.WhiteNoise(rng, len(x), 1))
		return dsp.AddScaled(x, pink, g)
	})
}

// bursts adds a track of sparse decaying clicks. About density bursts per
// minute start at random positions; each is a linear 1→0 ramp of random
// length in [min_ms, max_ms) and amplitude in [amp_lo, amp_hi). The summed
// track is high-passed at 2 kHz and added to every channel scaled by gain.
// There is at most one burst per frame.
func bursts(buf dsp.Buffer, st *State, p pipeline.Params) (dsp.Buffer, error) {
	r := paramReader{p: p}
	density := r.num("density", defaultBurstDensity)
	minMs := r.num("min_ms", defaultBurstMinMs)
	maxMs := r.num("max_ms", defaultBurstMaxMs)
	ampLo := r.num("amp_lo", defaultBurstAmpLo)
	ampHi := r.num("amp_hi", defaultBurstAmpHi)
	g := r.num("gain", defaultGain)
	if r.err != nil {
		return dsp.Buffer{}, r.err
	}

	track := burstTrack(buf.Frames(), st, burstShape{
		density: density,
		minLen:  burstFrames(st.SampleRate * minMs / msPerSecond),
		maxLen:  burstFrames(st.SampleRate * maxMs / msPerSecond),
		ampLo:   ampLo,
		ampHi:   ampHi,
	})
	track = dsp.Complement(track, burstShapeCutoff, st.SampleRate)

	return eachChannel(buf, func(x []float32) []float32 {
		return dsp.AddScaled(x, track, g)
	})
}

type burstShape struct {
	density        float64
	minLen, maxLen int64
	ampLo, ampHi   float64
}

func burstTrack(n int, st *State, s burstShape) []float32 {
	track := make([]float32, n)
	total := frameCount(s.density*(float64(n)/st.SampleRate)/secondsPerMinute, n)
	if total <= 0 {
		return track
	}

	rng := st.Rand()
	posRange := max(1, n-int(st.SampleRate)/burstTailDivisor)
	for range total {
		pos := rng.IntN(posRange)

		length := s.minLen
		if s.maxLen > s.minLen {
			length += rng.Int64N(s.maxLen - s.minLen)
		}

		amp := s.ampLo + (s.ampHi-s.ampLo)*rng.Float64()
		addRamp(track[pos:], length, float32(amp))
	}
	return track
}

// burstFrames converts a burst length to frames, clamped to
// [0, maxBurstFrames].
func burstFrames(samples float64) int64 {
	if samples <= 0 {
		return 0
	}
	if samples >= maxBurstFrames {
		return maxBurstFrames
	}
	return int64(samples)
}

// addRamp adds amp times a linear 1→0 ramp of length samples to the start
// of dst. The part of the ramp past the end of dst is dropped, so only
// len(dst) values are ever computed.
func addRamp(dst []float32, length int64, amp float32) {
	if length <= 0 || len(dst) == 0 {
		return
	}
	if length == 1 {
		dst[0] += amp
		return
	}
	step := -1 / float64(length-1)
	end := int(min(length, int64(len(dst))))
	for k := range end {
		v := float32(1 + float64(k)*step)
		if int64(k) == length-1 {
			v = 0
		}
		dst[k] += amp * v
	}
}
