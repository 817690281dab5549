package main

import (
	"log/slog"
	"os"

	"skirmish/internal/config"
	"skirmish/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, logger)

	logger.Info("starting skirmish server", "addr", cfg.Addr)
	if err := srv.Start(cfg.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
