package logger

import (
	"go.uber.org/zap"

	"github.com/medisite/cms/internal/pkg/env"
)

// New builds the application logger. APP_ENV=dev switches to the
// human-readable development encoder at debug level.
func New() (*zap.Logger, error) {
	if env.IsDev() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Must is New that falls back to a no-op logger instead of failing
func Must() *zap.Logger {
	log, err := New()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
