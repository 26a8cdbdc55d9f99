package logger

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar atomic.Pointer[zap.SugaredLogger]
)

func init() {
	sugar.Store(build(false))
}

func build(development bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// Init rebuilds the process logger. Console encoding is used when development is true.
func Init(lvl string, development bool) {
	SetLevel(lvl)
	sugar.Store(build(development))
}

// SetLevel accepts debug, info, warn or error. Anything else means info.
func SetLevel(lvl string) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "warn", "warning":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

func IsDebugEnabled() bool {
	return level.Enabled(zapcore.DebugLevel)
}

// L exposes the underlying sugared logger for structured key/value logging.
func L() *zap.SugaredLogger {
	return sugar.Load()
}

func Debugf(format string, v ...any) { sugar.Load().Debugf(format, v...) }

func Infof(format string, v ...any) { sugar.Load().Infof(format, v...) }

func Warnf(format string, v ...any) { sugar.Load().Warnf(format, v...) }

func Errorf(format string, v ...any) { sugar.Load().Errorf(format, v...) }

func Fatalf(format string, v ...any) { sugar.Load().Fatalf(format, v...) }

func Sync() {
	_ = sugar.Load().Sync()
}
