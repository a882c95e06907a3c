package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/safeonboard/internal/app"
	"github.com/nfrund/safeonboard/internal/config"
	"github.com/nfrund/safeonboard/internal/logging"
	"github.com/nfrund/safeonboard/internal/server"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

	s, err := server.New(cfg, logger, app.NewModules())
	if err != nil {
		logger.Error("Failed to build server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Start(ctx); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
