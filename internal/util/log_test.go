package util

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// saveLoggerState saves the current logger state for restoration
func saveLoggerState() (io.Writer, logrus.Level, logrus.Formatter) {
	return Logger.Out, Logger.Level, Logger.Formatter
}

// restoreLoggerState restores the logger to its previous state
func restoreLoggerState(out io.Writer, level logrus.Level, formatter logrus.Formatter) {
	Logger.SetOutput(out)
	Logger.SetLevel(level)
	Logger.SetFormatter(formatter)
}

func TestSetLogLevel(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	for _, tt := range []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"invalid", true},
	} {
		t.Run(tt.level, func(t *testing.T) {
			err := SetLogLevel(tt.level)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestSetVerbosity(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	for verbosity, want := range map[int]logrus.Level{
		0: logrus.InfoLevel,
		1: logrus.DebugLevel,
		2: logrus.InfoLevel,
		3: logrus.DebugLevel,
	} {
		SetVerbosity(verbosity)
		assert.Equal(t, want, Logger.Level, "verbosity %d", verbosity)
	}
}

func TestWithDevice(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetJSONFormat()

	WithDevice("10.0.0.2").Info("connected")
	assert.Contains(t, buf.String(), `"device":"10.0.0.2"`)
	assert.Contains(t, buf.String(), `"msg":"connected"`)
}
