package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/exp/slog"

	"windkey/internal/app/server/app"
	"windkey/internal/app/server/config"
	"windkey/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init app", logger.Err(err))
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("failed to close app", logger.Err(err))
		}
	}()

	if err := a.Run(ctx); err != nil {
		log.Error("server stopped with error", logger.Err(err))
		return
	}

	log.Info("server stopped", slog.String("env", cfg.Env))
}
