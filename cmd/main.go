package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/magabrotheeeer/slot-booker/docs"
	"github.com/magabrotheeeer/slot-booker/internal/app/slotbooker"
	"github.com/magabrotheeeer/slot-booker/internal/config"
)

// @title Slot Booker API
// @version 1.0
// @description Сервис бронирования временных слотов: регистрация, аутентификация и бронь.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting slot-booker", slog.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := slotbooker.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init application", slog.Any("error", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}
