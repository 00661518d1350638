package bapps

import (
	"go.uber.org/zap"

	"github.com/dirwatcher/dirwatcher/framework"
)

// BApp interface for dirwatcher application
type BApp interface {
	Run(framework.State)
}

// AppOption application setup option function.
type AppOption func(*appOption)

type appOption struct {
	logger *zap.Logger
}

func defaultAppOption() *appOption {
	return &appOption{
		logger: zap.NewNop(),
	}
}

// WithLogger returns AppOption to setup application logger.
func WithLogger(logger *zap.Logger) AppOption {
	return func(opt *appOption) {
		opt.logger = logger
	}
}
