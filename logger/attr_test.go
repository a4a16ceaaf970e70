package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/resilience/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	t.Run("nil error yields empty attr", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.Attr{}, logger.Error(nil))
	})

	t.Run("non-nil error", func(t *testing.T) {
		t.Parallel()
		attr := logger.Error(errors.New("boom"))
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, "boom", attr.Value.Any().(error).Error())
	})
}

func TestComponent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Component(""))

	attr := logger.Component("ratelimiter")
	assert.Equal(t, "component", attr.Key)
	assert.Equal(t, "ratelimiter", attr.Value.String())
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.RequestID(""))

	attr := logger.RequestID("req-123")
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "req-123", attr.Value.String())
}

func TestKeyAndAttempt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Key(""))
	assert.Equal(t, "key", logger.Key("user:1").Key)

	attr := logger.Attempt(3)
	assert.Equal(t, "attempt", attr.Key)
	assert.Equal(t, int64(3), attr.Value.Int64())
}

func TestDurationAndElapsed(t *testing.T) {
	t.Parallel()

	attr := logger.Duration(time.Second)
	assert.Equal(t, "duration", attr.Key)
	assert.Equal(t, time.Second, attr.Value.Duration())

	elapsed := logger.Elapsed(time.Now().Add(-time.Second))
	assert.Equal(t, "elapsed", elapsed.Key)
	assert.GreaterOrEqual(t, elapsed.Value.Duration(), time.Second)
}
