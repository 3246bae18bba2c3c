package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

// New создаёт sugared logger нужного уровня; debug включает development-конфиг.
func New(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return l.Sugar(), nil
}

// ToContext кладёт logger в context
func ToContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext достаёт logger из context, без него возвращает no-op logger
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok && l != nil {
		return l
	}
	return zap.NewNop().Sugar()
}

func Debugf(ctx context.Context, template string, args ...interface{}) {
	FromContext(ctx).Debugf(template, args...)
}

func Infof(ctx context.Context, template string, args ...interface{}) {
	FromContext(ctx).Infof(template, args...)
}

func Errorf(ctx context.Context, template string, args ...interface{}) {
	FromContext(ctx).Errorf(template, args...)
}
