// Package log provides the logrus loggers used by the engine and commands.
// Setting AMBIENT_DEBUG to a true value enables debug output.
package log

import (
	"io"
	"os"
	"strconv"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

// DebugEnv is the environment variable that enables debug logging.
const DebugEnv = "AMBIENT_DEBUG"

// Field names shared by log statements.
const (
	FieldRunID = "run_id"
	FieldJob   = "job"
	FieldStep  = "step"
)

var debug bool

// Logger is the logging interface accepted by the engine and batch renderer.
type Logger = logrus.FieldLogger

func init() {
	var err error
	debug, err = strconv.ParseBool(os.Getenv(DebugEnv))
	if err != nil {
		debug = false
	}
}

// GetLogger returns a new logger writing to stderr.
func GetLogger() *logrus.Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Verbose returns a debug-level logger regardless of the environment.
func Verbose() *logrus.Logger {
	l := GetLogger()
	l.SetLevel(logrus.DebugLevel)
	return l
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// NewID returns a new unique run or job identifier.
func NewID() string {
	return xid.New().String()
}
