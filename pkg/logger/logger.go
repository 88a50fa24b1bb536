// Package logger carries a zap logger through context.Context. Handlers and
// services enrich the logger with request scoped fields via WithFields and
// log through the package helpers, which fall back to the process wide
// logger configured by Setup.
package logger

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment selects a verbose, human readable console logger.
	DevelopmentEnvironment = "development"
	// ProductionEnvironment selects an info level JSON logger.
	ProductionEnvironment = "production"
)

var defaultLogger = zap.NewNop() //nolint: gochecknoglobals

// Setup builds the process wide logger for the given environment. Records
// emitted through log/slog by third-party code end up in the same zap core.
func Setup(environment string) {
	var err error
	if environment == ProductionEnvironment {
		defaultLogger, err = zap.NewProduction()
	} else {
		defaultLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		defaultLogger = zap.NewNop()
	}

	slog.SetDefault(slog.New(zapslog.NewHandler(defaultLogger.Core())))
}

type key struct{}

// Get returns the logger stored in ctx or the default one.
func Get(ctx context.Context) *zap.Logger {
	if l, _ := ctx.Value(key{}).(*zap.Logger); l != nil {
		return l
	}

	return defaultLogger
}

// WithLogger stores l in a derived context.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, l)
}

// WithFields derives a context whose logger always emits fields.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// IsDebug reports whether the context logger emits debug records.
func IsDebug(ctx context.Context) bool {
	return Get(ctx).Core().Enabled(zap.DebugLevel)
}

func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}

// Fatal logs at fatal level and exits the process.
func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Fatal(msg, fields...)
}
