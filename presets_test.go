package ambient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-ambient/internal/testutil"
)

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{
		"rain", "sea", "silence", "snow", "theta_binaural", "theta_iso", "trees", "wind",
	}, PresetNames())
}

func TestPresets_Render(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			p, err := Preset(name)
			require.NoError(t, err)
			assert.Equal(t, name, p.Name)
			assert.NotEmpty(t, p.Description)
			require.NoError(t, p.Validate())

			buf, err := Run(p, 0.25, WithSeed(5))
			require.NoError(t, err)
			assert.Equal(t, Channels, buf.Channels)
			testutil.AssertNoNaNOrInf(t, buf.Data)

			if len(p.Pipeline) == 0 {
				testutil.AssertAllZero(t, buf.Data)
				return
			}
			testutil.AssertPeak(t, buf.Data, p.EffectiveLevel(), testutil.LevelTolerance)
		})
	}
}

func TestPreset_ReturnsCopy(t *testing.T) {
	a, err := Preset("rain")
	require.NoError(t, err)
	a.Pipeline[0] = "gain"

	b, err := Preset("rain")
	require.NoError(t, err)
	assert.Equal(t, "noise_pink", b.Pipeline[0])
}

func TestPreset_Unknown(t *testing.T) {
	_, err := Preset("thunder")
	require.ErrorIs(t, err, ErrUnknownPreset)
	assert.Contains(t, err.Error(), "rain")

	_, err = Preset("../go")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}
