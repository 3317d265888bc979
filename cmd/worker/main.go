package main

import (
	"fmt"
	"os"

	"go-hrms/internal/app"
	"go-hrms/internal/bootstrap"
	"go-hrms/internal/config"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	logger := bootstrap.NewLogger(cfg).With(zap.String("process", "worker"))
	zap.ReplaceGlobals(logger)

	if err := app.RunWorker(cfg, logger); err != nil {
		logger.Error("worker exited", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}
