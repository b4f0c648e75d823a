package log

import (
	"bytes"
	"testing"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerbose(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, Verbose().GetLevel())
}

func TestGetLogger_LevelFollowsEnv(t *testing.T) {
	want := logrus.InfoLevel
	if debug {
		want = logrus.DebugLevel
	}
	assert.Equal(t, want, GetLogger().GetLevel())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Info("dropped")
	l.WithField(FieldRunID, NewID()).Warn("dropped")
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := Verbose()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	var logger Logger = l
	logger.WithField(FieldStep, "noise_pink").Debug("applied")

	assert.Contains(t, buf.String(), "step=noise_pink")
	assert.Contains(t, buf.String(), "level=debug")
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)

	_, err := xid.FromString(a)
	require.NoError(t, err)
}
