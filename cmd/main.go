package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"civic-sights/internal/server"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	srv := server.New(logger)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Start()
	}()

	select {
	case err := <-errs:
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	case sig := <-shutdown:
		logger.Info("Received shutdown signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
