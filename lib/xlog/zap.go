package xlog

import (
	"os"
	"runtime"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
)

type xLogger struct {
	logger     atomic.Pointer[zap.Logger]
	lvlEnabler zap.AtomicLevel
}

var _ XLogger = (*xLogger)(nil)

func (l *xLogger) IncreaseLogLevel(level zapcore.Level) {
	if level > l.lvlEnabler.Level() {
		l.lvlEnabler.SetLevel(level)
	}
}

func (l *xLogger) Sync() error {
	return l.logger.Load().Sync()
}

func (l *xLogger) Debug(msg string, fields ...zap.Field) {
	l.logger.Load().Debug(msg, fields...)
}

func (l *xLogger) Info(msg string, fields ...zap.Field) {
	l.logger.Load().Info(msg, fields...)
}

func (l *xLogger) Warn(msg string, fields ...zap.Field) {
	l.logger.Load().Warn(msg, fields...)
}

func (l *xLogger) Error(err error, msg string, fields ...zap.Field) {
	newFields := []zap.Field{
		zap.String("error", err.Error()),
	}
	newFields = append(newFields, fields...)
	l.logger.Load().Error(msg, newFields...)
}

func (l *xLogger) ErrorStack(err error, msg string, fields ...zap.Field) {
	newFields := errorStackFields(err)
	newFields = append(newFields, fields...)
	l.logger.Load().Error(msg, newFields...)
}

// The outermost error stack is inlined, plain errors fall back to
// the error message only.
func errorStackFields(err error) []zap.Field {
	if err == nil {
		return []zap.Field{}
	}
	if es, ok := err.(infra.ErrorStack); ok && es != nil {
		return []zap.Field{zap.Inline(es)}
	}
	return []zap.Field{zap.String("error", err.Error())}
}

type loggerCfg struct {
	writerType  LogOutWriterType
	encoderType LogEncoderType
	level       *zapcore.Level
	name        string
	core        xLogCore
}

type XLoggerOption func(*loggerCfg) error

// NewXLogger writes JSON into the stdout by default. The level is read
// from XLOG_LVL if it is not set by option.
func NewXLogger(opts ...XLoggerOption) XLogger {
	cfg := &loggerCfg{
		writerType:  StdOut,
		encoderType: JSON,
	}
	for _, o := range opts {
		if err := o(cfg); err != nil {
			panic(err)
		}
	}
	if cfg.level == nil {
		lvl := getLogLevelOrDefault(os.Getenv("XLOG_LVL"))
		cfg.level = &lvl
	}
	if cfg.core == nil {
		cfg.core = &consoleCore{}
	}

	xl := &xLogger{
		lvlEnabler: zap.NewAtomicLevelAt(*cfg.level),
	}
	core, stop, err := cfg.core.Build(xl.lvlEnabler, cfg.encoderType, cfg.writerType)
	if err != nil {
		panic(err)
	}
	if stop != nil {
		runtime.SetFinalizer(xl, func(xl *xLogger) {
			_ = stop()
		})
	}

	// Disable zap logger error stack.
	l := zap.New(
		core,
		zap.AddCallerSkip(1), // Use caller filename as service
		zap.AddCaller(),
	)
	if len(cfg.name) > 0 {
		l = l.Named(cfg.name)
	}
	xl.logger.Store(l)
	return xl
}

func WithXLoggerWriter(w LogOutWriterType) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if w >= _writerMax {
			return infra.NewErrorStack("unknown xlogger writer")
		}
		cfg.writerType = w
		return nil
	}
}

func WithXLoggerEncoder(logEnc LogEncoderType) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if logEnc >= _encMax {
			return infra.NewErrorStack("unknown xlogger encoder")
		}
		cfg.encoderType = logEnc
		return nil
	}
}

func WithXLoggerLevel(lvl LogLevel) XLoggerOption {
	return func(cfg *loggerCfg) error {
		_lvl := lvl.zapLevel()
		cfg.level = &_lvl
		return nil
	}
}

func WithXLoggerName(name string) XLoggerOption {
	return func(cfg *loggerCfg) error {
		cfg.name = strings.TrimSpace(name)
		return nil
	}
}

// WithXLoggerCore writes the entries into the given core instead of
// the console. The level of xlogger still filters the entries.
func WithXLoggerCore(core zapcore.Core) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if core == nil {
			return infra.NewErrorStack("[XLogger] custom core is nil")
		}
		cfg.core = &customCore{core: core}
		return nil
	}
}

func getLogLevelOrDefault(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LogLevelInfo.String():
		return zapcore.InfoLevel
	case LogLevelWarn.String():
		return zapcore.WarnLevel
	case LogLevelError.String():
		return zapcore.ErrorLevel
	default:
	}
	return zapcore.DebugLevel
}
