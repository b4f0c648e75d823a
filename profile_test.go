package ambient

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		format    Format
		wantLevel float64
		wantSteps []string
	}{
		{
			name:      "json",
			data:      `{"level": 0.3, "pipeline": ["noise_pink", "filter_lp:cut=500,gain=0.5"]}`,
			format:    FormatJSON,
			wantLevel: 0.3,
			wantSteps: []string{"noise_pink", "filter_lp:cut=500,gain=0.5"},
		},
		{
			name:      "yaml",
			data:      "level: 0.1\npipeline:\n  - noise_pink\n  - stereo_decor\n",
			format:    FormatYAML,
			wantLevel: 0.1,
			wantSteps: []string{"noise_pink", "stereo_decor"},
		},
		{
			name:      "default level",
			data:      `{"pipeline": ["noise_pink"]}`,
			format:    FormatJSON,
			wantLevel: DefaultLevel,
			wantSteps: []string{"noise_pink"},
		},
		{
			name:      "legacy ops key",
			data:      `{"level": 0.2, "ops": ["noise_pink", "bursts"]}`,
			format:    FormatJSON,
			wantLevel: 0.2,
			wantSteps: []string{"noise_pink", "bursts"},
		},
		{
			name:      "pipeline wins over ops",
			data:      "pipeline: [gain]\nops: [noise_pink]\n",
			format:    FormatYAML,
			wantLevel: DefaultLevel,
			wantSteps: []string{"gain"},
		},
		{
			name:      "empty document",
			data:      `{}`,
			format:    FormatJSON,
			wantLevel: DefaultLevel,
		},
		{
			name:      "empty yaml document",
			data:      "",
			format:    FormatYAML,
			wantLevel: DefaultLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseProfile([]byte(tt.data), tt.format)
			require.NoError(t, err)

			assert.InDelta(t, tt.wantLevel, p.EffectiveLevel(), 0)
			assert.Equal(t, tt.wantSteps, p.Pipeline)
			assert.Nil(t, p.Ops)
		})
	}
}

func TestParseProfile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"bad json", `{"pipeline": [`, FormatJSON},
		{"bad yaml", "pipeline: [noise_pink\n", FormatYAML},
		{"pipeline not a list", `{"pipeline": "noise_pink"}`, FormatJSON},
		{"negative level", `{"level": -1}`, FormatJSON},
		{"misspelled json key", `{"pipline": ["noise_pink"]}`, FormatJSON},
		{"misspelled yaml key", "level: 0.2\npipline:\n  - noise_pink\n", FormatYAML},
		{"empty json", ``, FormatJSON},
		{"unknown format", `{}`, Format(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfile([]byte(tt.data), tt.format)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "brook.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"level": 0.4, "pipeline": ["noise_pink"]}`), 0o600))

	p, err := LoadProfile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "brook", p.Name)
	assert.InDelta(t, 0.4, p.EffectiveLevel(), 0)

	yamlPath := filepath.Join(dir, "named.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: hum\npipeline: [noise_pink]\n"), 0o600))

	p, err = LoadProfile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "hum", p.Name)
}

func TestLoadProfile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadProfile(filepath.Join(dir, "profile.toml"))
	assert.ErrorIs(t, err, ErrInvalidProfile)

	_, err = LoadProfile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o600))
	_, err = LoadProfile(bad)
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.Contains(t, err.Error(), bad)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("a/b/c.JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = FormatFromPath("x.yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	assert.Equal(t, "yaml", f.String())

	_, err = FormatFromPath("noext")
	assert.Error(t, err)
}

func TestProfile_Validate(t *testing.T) {
	good := &Profile{Pipeline: []string{"noise_pink", "filter_bp:lo=100,hi=900"}}
	require.NoError(t, good.Validate())

	unknown := &Profile{Pipeline: []string{"frobnicate"}}
	assert.ErrorIs(t, unknown.Validate(), ErrUnknownOperator)

	malformed := &Profile{Pipeline: []string{"filter_lp:cut"}}
	assert.ErrorIs(t, malformed.Validate(), ErrMalformedStep)

	level := -0.5
	badLevel := &Profile{Level: &level}
	assert.ErrorIs(t, badLevel.Validate(), ErrInvalidProfile)
}
