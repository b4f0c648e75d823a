package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-ambient/internal/dsp"
	"github.com/tphakala/go-ambient/internal/pipeline"
	"github.com/tphakala/go-ambient/internal/testutil"
)

const testSampleRate = dsp.DefaultSampleRate

func newTestState(seed int64) *State {
	return NewState(testSampleRate, &seed)
}

// apply parses raw, resolves it from the default registry and runs it.
func apply(t *testing.T, raw string, buf dsp.Buffer, st *State) (dsp.Buffer, error) {
	t.Helper()
	step, err := pipeline.ParseStep(raw)
	require.NoError(t, err)
	op, err := Default().Resolve(step.Name)
	require.NoError(t, err)
	return op(buf, st, step.Params)
}

func mustApply(t *testing.T, raw string, buf dsp.Buffer, st *State) dsp.Buffer {
	t.Helper()
	out, err := apply(t, raw, buf, st)
	require.NoError(t, err)
	require.Equal(t, buf.Frames(), out.Frames(), "frame count changed")
	return out
}

func TestNewState(t *testing.T) {
	st := newTestState(7)
	seed, ok := st.Seed()
	assert.True(t, ok)
	assert.Equal(t, int64(7), seed)
	assert.InDelta(t, testSampleRate, st.SampleRate, 0)

	unseeded := NewState(testSampleRate, nil)
	_, ok = unseeded.Seed()
	assert.False(t, ok)
	assert.NotNil(t, unseeded.Rand())
}

func TestNewState_SameSeedSameSequence(t *testing.T) {
	a := newTestState(42).Rand()
	b := newTestState(42).Rand()
	for range 10 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestFilterLP(t *testing.T) {
	out := mustApply(t, "filter_lp:cut=500,gain=0.5", dsp.Mono(testutil.Impulse(64)), newTestState(1))

	// y[0] of the low-pass equals x[0], so the first sample is 1 + 0.5.
	assert.InDelta(t, 1.5, out.Data[0], testutil.Float32Tolerance)
	assert.Greater(t, out.Data[1], float32(0))
}

func TestFilterLP_SilenceStaysSilent(t *testing.T) {
	out := mustApply(t, "filter_lp", dsp.NewMono(256), newTestState(1))
	testutil.AssertAllZero(t, out.Data)
}

func TestFilterHP_DCUnchanged(t *testing.T) {
	in := dsp.Mono(testutil.Constant(512, 0.25))
	out := mustApply(t, "filter_hp:cut=200", in, newTestState(1))

	for i, v := range out.Data {
		require.InDelta(t, 0.25, v, testutil.Float32Tolerance, "sample %d", i)
	}
}

func TestFilterBP_DCUnchanged(t *testing.T) {
	in := dsp.Mono(testutil.Constant(512, 0.5))
	out := mustApply(t, "filter_bp:lo=100,hi=2000,gain=2", in, newTestState(1))

	for i, v := range out.Data {
		require.InDelta(t, 0.5, v, testutil.Float32Tolerance, "sample %d", i)
	}
}

func TestFilter_Stereo(t *testing.T) {
	left := testutil.Impulse(32)
	right := make([]float32, 32)
	in, err := dsp.Stereo(left, right)
	require.NoError(t, err)

	out := mustApply(t, "filter_lp:gain=1", in, newTestState(1))
	require.Equal(t, dsp.StereoChannels, out.Channels)
	assert.InDelta(t, 2.0, out.Channel(0)[0], testutil.Float32Tolerance)
	testutil.AssertAllZero(t, out.Channel(1))
}

func TestOperators_TextForNumericParam(t *testing.T) {
	steps := []string{
		"noise_pink:gain=loud",
		"filter_lp:cut=low",
		"filter_hp:gain=x",
		"filter_bp:lo=a",
		"env_lfo:f=slow",
		"bursts:density=many",
		"stereo_decor:spread=wide",
		"tone_iso:beat=x",
		"tone_binaural:left=x",
		"fade:in=x",
		"gain:gain=x",
	}
	for _, raw := range steps {
		t.Run(raw, func(t *testing.T) {
			_, err := apply(t, raw, dsp.NewMono(16), newTestState(1))
			assert.ErrorIs(t, err, pipeline.ErrInvalidParam)
		})
	}
}

func TestOperators_IgnoreUnknownKeys(t *testing.T) {
	a := mustApply(t, "filter_lp:cut=300", dsp.Mono(testutil.Impulse(32)), newTestState(1))
	b := mustApply(t, "filter_lp:cut=300,mode=warm,q=3", dsp.Mono(testutil.Impulse(32)), newTestState(1))
	assert.Equal(t, a.Data, b.Data)
}

func TestNoisePink(t *testing.T) {
	n := 4096
	a := mustApply(t, "noise_pink", dsp.NewMono(n), newTestState(3))
	b := mustApply(t, "noise_pink", dsp.NewMono(n), newTestState(3))
	c := mustApply(t, "noise_pink", dsp.NewMono(n), newTestState(4))

	assert.Equal(t, a.Data, b.Data, "same seed must reproduce")
	assert.NotEqual(t, a.Data, c.Data)
	testutil.AssertNoNaNOrInf(t, a.Data)
	assert.Greater(t, dsp.Peak(a.Data), float32(0))
}

func TestNoisePink_GainZero(t *testing.T) {
	out := mustApply(t, "noise_pink:gain=0", dsp.NewMono(128), newTestState(3))
	testutil.AssertAllZero(t, out.Data)
}

func TestNoisePink_StereoChannelsIndependent(t *testing.T) {
	in, err := dsp.NewMono(1024).ToStereo()
	require.NoError(t, err)

	out := mustApply(t, "noise_pink", in, newTestState(9))
	assert.NotEqual(t, out.Channel(0), out.Channel(1))
}

func TestEnvLFO(t *testing.T) {
	in := dsp.Mono(testutil.Constant(100, 1))
	out := mustApply(t, "env_lfo:depth=0,bias=0.25", in, newTestState(1))
	for _, v := range out.Data {
		require.InDelta(t, 0.25, v, testutil.Float32Tolerance)
	}

	// Default envelope ranges over [0, 1].
	long := dsp.Mono(testutil.Constant(testSampleRate*10, 1))
	out = mustApply(t, "env_lfo", long, newTestState(1))
	testutil.AssertAllInRange(t, out.Data, 0, 1+testutil.Float32Tolerance)
	assert.InDelta(t, 0.5, out.Data[0], testutil.Float32Tolerance)
}

func TestBursts(t *testing.T) {
	n := testSampleRate * 10

	silent := mustApply(t, "bursts:density=0", dsp.NewMono(n), newTestState(5))
	testutil.AssertAllZero(t, silent.Data)

	a := mustApply(t, "bursts:density=120", dsp.NewMono(n), newTestState(5))
	b := mustApply(t, "bursts:density=120", dsp.NewMono(n), newTestState(5))
	assert.Equal(t, a.Data, b.Data)
	assert.Greater(t, dsp.Peak(a.Data), float32(0))
	testutil.AssertNoNaNOrInf(t, a.Data)
}

func TestBursts_ShortBuffer(t *testing.T) {
	// Fewer frames than the onset guard and bursts longer than the buffer.
	out := mustApply(t, "bursts:density=100000,min_ms=500,max_ms=900", dsp.NewMono(100), newTestState(5))
	testutil.AssertNoNaNOrInf(t, out.Data)
}

func TestBursts_OversizedLengths(t *testing.T) {
	steps := []string{
		"bursts:density=600,min_ms=1e13,max_ms=1e13",
		"bursts:density=600,min_ms=1e12",
		"bursts:density=600,min_ms=-2e17,max_ms=2e17",
		"bursts:density=600,min_ms=1e300,max_ms=1e300",
		"bursts:density=1e300",
	}
	for _, raw := range steps {
		t.Run(raw, func(t *testing.T) {
			out := mustApply(t, raw, dsp.NewMono(testSampleRate), newTestState(3))
			testutil.AssertNoNaNOrInf(t, out.Data)
		})
	}
}

func TestBursts_InvertedRangeUsesMinimum(t *testing.T) {
	// With min above max every burst has the minimum length, so the result
	// matches a fixed-length run drawing the same positions and amplitudes.
	a := mustApply(t, "bursts:density=300,min_ms=150,max_ms=20", dsp.NewMono(testSampleRate), newTestState(9))
	b := mustApply(t, "bursts:density=300,min_ms=150,max_ms=150", dsp.NewMono(testSampleRate), newTestState(9))
	assert.Equal(t, b.Data, a.Data)
}

func TestAddRamp_MatchesTruncatedRamp(t *testing.T) {
	tests := []struct {
		name   string
		length int64
		size   int
	}{
		{"inside", 5, 10},
		{"exact", 8, 8},
		{"truncated", 20, 8},
		{"single", 1, 4},
		{"empty", 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := make([]float32, tt.size)
			for i, v := range dsp.Ramp(int(tt.length)) {
				if i < tt.size {
					want[i] = 0.5 * v
				}
			}

			got := make([]float32, tt.size)
			addRamp(got, tt.length, 0.5)
			assert.Equal(t, want, got)
		})
	}
}

func TestAddRamp_HugeLength(t *testing.T) {
	dst := make([]float32, 16)
	addRamp(dst, maxBurstFrames, 1)
	assert.Equal(t, float32(1), dst[0])
	testutil.AssertAllInRange(t, dst, 1-testutil.Float32Tolerance, 1)
}

func TestBursts_SameTrackOnBothChannels(t *testing.T) {
	in, err := dsp.NewMono(testSampleRate * 5).ToStereo()
	require.NoError(t, err)

	out := mustApply(t, "bursts:density=200", in, newTestState(2))
	assert.Equal(t, out.Channel(0), out.Channel(1))
}

func TestBursts_ClickTrackHasNoDC(t *testing.T) {
	n := testSampleRate * 20
	out := mustApply(t, "bursts:density=300,min_ms=100,max_ms=100", dsp.NewMono(n), newTestState(11))

	var sum float64
	for _, v := range out.Data {
		sum += float64(v)
	}
	assert.InDelta(t, 0, sum/float64(n), 0.01)
}

func TestStereoDecor(t *testing.T) {
	n := 2048
	in := dsp.Mono(testutil.Sine(n, 220, testSampleRate))
	out := mustApply(t, "stereo_decor", in, newTestState(8))

	require.Equal(t, dsp.StereoChannels, out.Channels)
	assert.Equal(t, n, out.Frames())
	assert.NotEqual(t, out.Channel(0), out.Channel(1))
}

func TestStereoDecor_StereoPassThrough(t *testing.T) {
	in, err := dsp.Stereo(testutil.Sine(64, 100, testSampleRate), testutil.Sine(64, 300, testSampleRate))
	require.NoError(t, err)

	out := mustApply(t, "stereo_decor:spread=0.5", in, newTestState(8))
	assert.Equal(t, in.Data, out.Data)
	assert.NotSame(t, &in.Data[0], &out.Data[0])

	// Parameters are not read once the signal is stereo.
	out = mustApply(t, "stereo_decor:spread=wide", in, newTestState(8))
	assert.Equal(t, in.Data, out.Data)
}

func TestToneIso(t *testing.T) {
	n := testSampleRate
	out := mustApply(t, "tone_iso:carrier=400,beat=4,amp=0.3", dsp.NewMono(n), newTestState(1))

	assert.InDelta(t, 0, out.Data[0], testutil.Float32Tolerance)
	testutil.AssertAllInRange(t, out.Data, -0.3-testutil.Float32Tolerance, 0.3+testutil.Float32Tolerance)
	assert.Greater(t, dsp.Peak(out.Data), float32(0.25))
}

func TestToneBinaural(t *testing.T) {
	n := testSampleRate / 2
	out := mustApply(t, "tone_binaural:left=200,right=210,amp=0.5", dsp.NewMono(n), newTestState(1))

	require.Equal(t, dsp.StereoChannels, out.Channels)
	left, right := out.Channel(0), out.Channel(1)
	assert.NotEqual(t, left, right)
	testutil.AssertPeak(t, left, 0.5, 1e-3)
	testutil.AssertPeak(t, right, 0.5, 1e-3)
}

func TestFade(t *testing.T) {
	n := testSampleRate
	out := mustApply(t, "fade:in=0.1,out=0.2", dsp.Mono(testutil.Constant(n, 1)), newTestState(1))

	assert.InDelta(t, 0, out.Data[0], testutil.Float32Tolerance)
	assert.InDelta(t, 1, out.Data[n/2], testutil.Float32Tolerance)
	assert.InDelta(t, 0, out.Data[n-1], testutil.Float32Tolerance)
	testutil.AssertMonotonicDecreasing(t, out.Data[n-n/5:])
}

func TestFade_TooLongIsSkipped(t *testing.T) {
	in := dsp.Mono(testutil.Constant(100, 1))
	out := mustApply(t, "fade:in=1,out=1", in, newTestState(1))
	assert.Equal(t, in.Data, out.Data)
}

func TestFade_HugeDurationsAreSkipped(t *testing.T) {
	in := dsp.Mono(testutil.Constant(100, 1))
	for _, raw := range []string{
		"fade:in=1.5e14,out=1.5e14",
		"fade:in=1e300,out=1e300",
		"fade:in=1e300,out=0",
	} {
		t.Run(raw, func(t *testing.T) {
			out := mustApply(t, raw, in, newTestState(1))
			assert.Equal(t, in.Data, out.Data)
		})
	}
}

func TestFrameCount(t *testing.T) {
	assert.Equal(t, 0, frameCount(-5, 10))
	assert.Equal(t, 4, frameCount(4.9, 10))
	assert.Equal(t, 10, frameCount(10, 10))
	assert.Equal(t, 10, frameCount(6.6e18, 10))
}

func TestGain(t *testing.T) {
	in := dsp.Mono([]float32{1, -0.5, 0.25})
	out := mustApply(t, "gain:gain=0.5", in, newTestState(1))
	assert.InDeltaSlice(t, []float32{0.5, -0.25, 0.125}, out.Data, 1e-7)
	assert.Equal(t, []float32{1, -0.5, 0.25}, in.Data, "input must not be modified")
}
