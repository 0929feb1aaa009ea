package observe

import (
	"bytes"
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"weather-dashboard/pkg/logger"
)

func newTestHook(appEnv string) (*SentryHook, *[]*sentry.Event) {
	var captured []*sentry.Event
	return &SentryHook{
		appEnv:  appEnv,
		appName: "test-app",
		capture: func(e *sentry.Event) { captured = append(captured, e) },
	}, &captured
}

func TestSentryHook_ForwardsErrorRecords(t *testing.T) {
	hook, captured := newTestHook("production")
	var buf bytes.Buffer
	l := logger.New(logger.Options{AppName: "test-app", AppEnv: "production", Level: "debug"}, &buf, hook)

	l.Info("ignored")
	l.Error(errors.New("forecast request failed"))

	require.Len(t, *captured, 1)
	event := (*captured)[0]
	assert.Equal(t, sentry.LevelError, event.Level)
	assert.Equal(t, "forecast request failed", event.Message)
	assert.Equal(t, "test-app", event.Extra["AppName"])
	assert.False(t, event.Timestamp.IsZero())
}

func TestSentryHook_SkipsOtherEnvironments(t *testing.T) {
	hook, captured := newTestHook("test")

	n, err := hook.Write([]byte(`{"level":"error","msg":"boom"}`))
	require.NoError(t, err)
	assert.Equal(t, len(`{"level":"error","msg":"boom"}`), n)
	assert.Empty(t, *captured)
}

func TestSentryHook_MapLevel(t *testing.T) {
	hook, _ := newTestHook("production")

	assert.Equal(t, sentry.LevelWarning, hook.mapLevel(zapcore.WarnLevel))
	assert.Equal(t, sentry.LevelFatal, hook.mapLevel(zapcore.FatalLevel))
	assert.Equal(t, sentry.LevelDebug, hook.mapLevel(zapcore.InvalidLevel))
}
