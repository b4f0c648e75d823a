package main

import (
	"bytes"
	"io"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-ambient/internal/dsp"
	"github.com/tphakala/go-ambient/internal/wavout"
)

func TestRun(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	pink := dsp.Pinkish(dsp.WhiteNoise(rng, 1<<15, 0.05))
	buf, err := dsp.Mono(pink).ToStereo()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pink.wav")
	require.NoError(t, wavout.WriteFile(path, buf, dsp.DefaultSampleRate))

	var stdout bytes.Buffer
	require.NoError(t, run([]string{path, path}, &stdout))

	report := stdout.String()
	assert.Contains(t, report, "44100 Hz, 2 channels")
	assert.Contains(t, report, "32768 frames")
	assert.Contains(t, report, "right")
}

func TestRun_Errors(t *testing.T) {
	assert.ErrorIs(t, run(nil, io.Discard), errUsage)

	err := run([]string{filepath.Join(t.TempDir(), "missing.wav")}, io.Discard)
	assert.Error(t, err)
}
