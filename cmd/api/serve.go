package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/library-service/cmd/api/book"
	"github.com/library-service/cmd/api/config"
	"github.com/library-service/cmd/api/database"
	bookhttp "github.com/library-service/cmd/api/http"
	"github.com/library-service/cmd/api/inmemory"
	"github.com/library-service/cmd/api/notifications"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), *cfg)
		},
	}
	cmd.Flags().IntVar(&cfg.HTTPPort, "port", cfg.HTTPPort, "http port")
	cmd.Flags().DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "deadline of every request")
	cmd.Flags().Float64Var(&cfg.RateLimitRPS, "rate-limit-rps", cfg.RateLimitRPS, "requests per second per client, 0 disables the limit")
	cmd.Flags().IntVar(&cfg.RateLimitBurst, "rate-limit-burst", cfg.RateLimitBurst, "burst size per client")
	cmd.Flags().BoolVar(&cfg.NotificationsEnabled, "notifications", cfg.NotificationsEnabled, "publish circulation events to ntfy")
	return cmd
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (book.Repository, func(), error) {
	if cfg.Store == config.StoreMemory {
		store, err := inmemory.NewInMemoryStore()
		if err != nil {
			return nil, nil, fmt.Errorf("creating in-memory store: %w", err)
		}
		logger.Info("using in-memory store")
		return store, func() {}, nil
	}

	dbObject, err := database.ConnectDb(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting with db: %w", err)
	}
	store := database.NewStore(dbObject)
	err = database.MigrationUp(store, cfg.DatabaseMigrationsPath)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		dbObject.Close()
		return nil, nil, fmt.Errorf("migrating: %w", err)
	}
	logger.Info("using postgres store", zap.String("migrations", cfg.DatabaseMigrationsPath))
	return store, func() { dbObject.Close() }, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var ntfy book.Notifier
	if cfg.NotificationsEnabled {
		ntfy = notifications.NewNtfy(true, cfg.NotificationsBaseURL, &http.Client{Timeout: cfg.NotificationsTimeout})
	}

	bookService := book.NewService(store, ntfy, cfg.NotificationsTimeout, book.WithLogger(logger))
	bookHandler := bookhttp.NewBookHandler(bookService, logger)

	server := bookhttp.NewServer(bookhttp.ServerConfig{
		Port:           cfg.HTTPPort,
		RequestTimeout: cfg.RequestTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, bookHandler)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("unexpected http server error: %w", err)
		}
		close(serverErr)
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sc)

	select {
	case err := <-serverErr:
		return err
	case sig := <-sc:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownRelease()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP shutdown error: %w", err)
	}
	logger.Info("graceful shutdown complete")
	return nil
}
