package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/roomtimes/internal/command"
	"github.com/example/roomtimes/internal/config"
	httptransport "github.com/example/roomtimes/internal/http"
	"github.com/example/roomtimes/internal/r25ws"
	"github.com/example/roomtimes/internal/schedule"
	"github.com/example/roomtimes/internal/spaces"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := spaces.Open(cfg.SpacesDSN)
	if err != nil {
		logger.Error("failed to open space database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close space database", "error", cerr)
		}
	}()

	directory, err := store.Directory(ctx)
	if err != nil {
		logger.Error("failed to load space directory", "error", err)
		os.Exit(1)
	}
	logger.Info("space directory loaded", "spaces", directory.Len())

	reservations := r25ws.NewClient(r25ws.Config{
		BaseURL:   cfg.R25BaseURL,
		Username:  cfg.R25Username,
		Password:  cfg.R25Password,
		Timeout:   cfg.UpstreamTimeout,
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
	}, logger)

	slash := httptransport.NewSlashHandler(httptransport.SlashHandlerConfig{
		Token:           cfg.SlackToken,
		Interpreter:     command.NewInterpreter(directory, time.Now),
		Reservations:    reservations,
		Formatter:       schedule.NewFormatter(time.Now),
		Poster:          httptransport.NewResponsePoster(cfg.DeliveryTimeout),
		DeliveryTimeout: cfg.DeliveryTimeout,
		Logger:          logger,
	})

	handler := httptransport.NewRouter(httptransport.RouterConfig{
		Slash: slash,
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("room times service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
