package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newZapLogger(cfg logConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Pretty {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

// zapAdapter bridges zap's sugared logger onto the auth.Logger interface
type zapAdapter struct {
	sugar *zap.SugaredLogger
}

func (z zapAdapter) Debug(format string, args ...any) {
	z.sugar.Debugw(format, args...)
}

func (z zapAdapter) Info(format string, args ...any) {
	z.sugar.Infow(format, args...)
}

func (z zapAdapter) Warn(format string, args ...any) {
	z.sugar.Warnw(format, args...)
}

func (z zapAdapter) Error(format string, args ...any) {
	z.sugar.Errorw(format, args...)
}
