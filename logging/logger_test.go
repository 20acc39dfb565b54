package logging

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoggerWritesToConfiguredWriter(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, &buffer)

	logger.Info("compilation finished")
	assert.Contains(t, buffer.String(), "compilation finished")
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, &buffer)

	// Debug events are below the configured level and must not be written.
	logger.Debug("hidden")
	assert.NotContains(t, buffer.String(), "hidden")

	logger.SetLevel(zerolog.DebugLevel)
	logger.Debug("visible")
	assert.Contains(t, buffer.String(), "visible")
}

func TestSubLoggerCarriesContextKey(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, &buffer).NewSubLogger("module", "compiler")

	logger.Info("ready")
	assert.Contains(t, buffer.String(), `"module":"compiler"`)
}

func TestLoggerChainsErrorsAndStructuredInfo(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, &buffer)

	logger.Error("invocation failed", errors.New("boom"), StructuredLogInfo{"source": "stdin"})
	assert.Contains(t, buffer.String(), "invocation failed")
	assert.Contains(t, buffer.String(), "boom")
	assert.Contains(t, buffer.String(), `"source":"stdin"`)
}
