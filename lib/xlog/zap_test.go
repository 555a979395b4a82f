package xlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/benz9527/xtree/lib/infra"
)

func TestLogLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LogLevelDebug.String())
	require.Equal(t, "INFO", LogLevelInfo.String())
	require.Equal(t, "WARN", LogLevelWarn.String())
	require.Equal(t, "ERROR", LogLevelError.String())
	require.Equal(t, zapcore.DebugLevel, LogLevelDebug.zapLevel())
	require.Equal(t, zapcore.InfoLevel, LogLevelInfo.zapLevel())
	require.Equal(t, zapcore.WarnLevel, LogLevelWarn.zapLevel())
	require.Equal(t, zapcore.ErrorLevel, LogLevelError.zapLevel())
	require.Equal(t, zapcore.DebugLevel, LogLevel("unknown").zapLevel())
}

func TestGetLogLevelOrDefault(t *testing.T) {
	testcases := []struct {
		level    string
		expected zapcore.Level
	}{
		{"", zapcore.DebugLevel},
		{"  ", zapcore.DebugLevel},
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{"Error", zapcore.ErrorLevel},
		{"fatal", zapcore.DebugLevel},
	}
	for _, tc := range testcases {
		require.Equal(t, tc.expected, getLogLevelOrDefault(tc.level), tc.level)
	}
}

func TestXLoggerOptions(t *testing.T) {
	cfg := &loggerCfg{}
	require.Error(t, WithXLoggerWriter(_writerMax)(cfg))
	require.Error(t, WithXLoggerEncoder(_encMax)(cfg))
	require.Error(t, WithXLoggerCore(nil)(cfg))
	require.NoError(t, WithXLoggerWriter(StdErr)(cfg))
	require.NoError(t, WithXLoggerEncoder(PlainText)(cfg))
	require.NoError(t, WithXLoggerName(" avl ")(cfg))
	require.Equal(t, "avl", cfg.name)
	require.Equal(t, StdErr, cfg.writerType)
	require.Equal(t, PlainText, cfg.encoderType)

	require.Panics(t, func() {
		NewXLogger(WithXLoggerWriter(_writerMax))
	})
}

func TestXLoggerEnvLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Setenv("XLOG_LVL", "warn")
	logger := NewXLogger(WithXLoggerCore(core))
	logger.Info("filtered by env level")
	logger.Warn("warn")
	require.Equal(t, 1, logs.Len())
}

func TestXLoggerConsoleCore(t *testing.T) {
	logger := NewXLogger(
		WithXLoggerWriter(StdErr),
		WithXLoggerEncoder(PlainText),
		WithXLoggerLevel(LogLevelInfo),
	)
	logger.Debug("invisible")
	logger.Info("visible", zap.String("case", "console"))
	_ = logger.Sync()
}

func TestXLoggerCustomCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewXLogger(
		WithXLoggerCore(core),
		WithXLoggerLevel(LogLevelInfo),
		WithXLoggerName("avl"),
	)

	logger.Debug("filtered by xlogger level")
	logger.Info("info", zap.Int("n", 1))
	logger.Warn("warn")
	logger.Error(errors.New("plain"), "error")
	require.Equal(t, 3, logs.Len())

	entries := logs.TakeAll()
	require.Equal(t, "info", entries[0].Message)
	require.Equal(t, "avl", entries[0].LoggerName)
	require.Equal(t, int64(1), entries[0].ContextMap()["n"])
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, "plain", entries[2].ContextMap()["error"])

	logger.IncreaseLogLevel(zapcore.ErrorLevel)
	logger.Info("filtered")
	logger.Warn("filtered")
	require.Equal(t, 0, logs.Len())

	// Decrease is ignored.
	logger.IncreaseLogLevel(zapcore.DebugLevel)
	logger.Info("still filtered")
	require.Equal(t, 0, logs.Len())
}

var errXLogSentinel = errors.New("xlog sentinel")

func TestXLoggerErrorStack(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewXLogger(
		WithXLoggerCore(core),
		WithXLoggerLevel(LogLevelDebug),
	)

	logger.ErrorStack(infra.WrapErrorStackWithMessage(errXLogSentinel, "wrapped"), "error stack")
	logger.ErrorStack(errXLogSentinel, "plain error")
	require.Equal(t, 2, logs.Len())

	entries := logs.TakeAll()
	ctxMap := entries[0].ContextMap()
	require.Equal(t, "wrapped: xlog sentinel", ctxMap["error"])
	frames, ok := ctxMap["errorStack"].([]any)
	require.True(t, ok)
	require.Greater(t, len(frames), 0)
	require.Equal(t, "xlog sentinel", entries[1].ContextMap()["error"])
}
