package bootstrap

import (
	"go-hrms/internal/config"

	"go.uber.org/zap"
)

// NewLogger returns a production logger when APP_ENV=production and a
// development logger otherwise.
func NewLogger(cfg *config.Config) *zap.Logger {
	build := zap.NewDevelopment
	if cfg.IsProduction() {
		build = zap.NewProduction
	}
	logger, err := build()
	if err != nil {
		panic(err)
	}
	return logger
}
