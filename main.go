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

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leveluplife/config"
	"leveluplife/database"
	"leveluplife/routes"
	"leveluplife/utils"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "leveluplife",
		Short:         "LevelUpLife API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap loads config, builds the logger and connects to the database.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}
	log, err := utils.NewLogger(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build logger: %w", err)
	}
	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, log, db, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info("migration completed")
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if port != "" {
				cfg.Server.Port = port
			}
			return serve(cmd.Context(), cfg, log, db)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger, db *gorm.DB) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.AutoMigrate {
		log.Info("performing auto-migration")
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	revoked, err := revocationStore(ctx, cfg, log, db)
	if err != nil {
		return err
	}
	tokens, err := utils.NewTokenManager(cfg.JWT, revoked)
	if err != nil {
		return err
	}

	var storage utils.ObjectStorage
	s3Storage, err := utils.NewS3Storage(ctx, cfg.Storage)
	switch {
	case errors.Is(err, utils.ErrStorageDisabled):
		log.Info("S3_BUCKET not set, image uploads disabled")
	case err != nil:
		return fmt.Errorf("object storage: %w", err)
	default:
		storage = s3Storage
	}

	api := routes.New(cfg, db, log, tokens, storage)
	defer api.Close()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      api.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Server.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

// revocationStore prefers Redis when REDIS_ADDR is set and falls back to the
// revoked_tokens table, purging expired rows hourly.
func revocationStore(ctx context.Context, cfg *config.Config, log *zap.Logger, db *gorm.DB) (utils.RevocationStore, error) {
	if cfg.Redis.Addr != "" {
		client, err := utils.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		go func() {
			<-ctx.Done()
			_ = client.Close()
		}()
		log.Info("token revocation backed by redis", zap.String("addr", cfg.Redis.Addr))
		return utils.NewRedisRevocationStore(client), nil
	}

	store := utils.NewGormRevocationStore(db)
	go func() {
		tick := time.NewTicker(time.Hour)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				n, err := store.PurgeExpired(ctx)
				if err != nil {
					log.Warn("purge revoked tokens", zap.Error(err))
					continue
				}
				log.Debug("purged revoked tokens", zap.Int64("rows", n))
			}
		}
	}()
	return store, nil
}
