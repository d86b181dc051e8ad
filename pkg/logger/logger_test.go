package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Success(t *testing.T) {
	logger := New("test-package")

	assert.NotNil(t, logger)
	assert.IsType(t, &SlogLogger{}, logger)
}

func TestNewWithConfig_Formats(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatText} {
		logger := NewWithConfig(Config{
			Name:   "test-service",
			Format: format,
			Level:  slog.LevelDebug,
		})

		assert.NotNil(t, logger)
		assert.IsType(t, &SlogLogger{}, logger)
	}
}

func TestNewWithContext_NoTraceID(t *testing.T) {
	logger := NewWithContext(context.Background(), "test-service")

	assert.NotNil(t, logger)
	assert.IsType(t, &SlogLogger{}, logger)
}

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "trace-123")

	assert.Equal(t, "trace-123", TraceIDFromContext(ctx))
	assert.Equal(t, "", TraceIDFromContext(context.Background()))
}

func TestErr_ReturnsPassedError(t *testing.T) {
	logger := New("test")

	original := errors.New("boom")
	returned := logger.Err("something failed", original, "key", "value")

	assert.Equal(t, original, returned)
}

func TestErrMsg_CreatesError(t *testing.T) {
	logger := New("test")

	err := logger.ErrMsg("bad state")

	assert.Error(t, err)
	assert.Equal(t, "bad state", err.Error())
}

func TestError_ReturnsMessageError(t *testing.T) {
	logger := New("test")

	err := logger.Error("operation failed", "key", "value")

	assert.Error(t, err)
	assert.Equal(t, "operation failed", err.Error())
}

func TestChainedScoping(t *testing.T) {
	logger := New("test").File("some_file").Function("SomeFunc").WithTraceID("abc")

	assert.NotNil(t, logger)
	// Chained loggers must be usable immediately.
	logger.Info("scoped message", "key", "value")
}

func TestTimer_ReturnsStopFunc(t *testing.T) {
	logger := New("test")

	stop := logger.Timer("timed operation")
	assert.NotNil(t, stop)
	stop()
}
