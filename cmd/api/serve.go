package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"petplus/internal/adapters/auth/jwtauth"
	"petplus/internal/adapters/cache/rediscache"
	"petplus/internal/adapters/media/cloudinary"
	pg "petplus/internal/adapters/storage/postgres"
	"petplus/internal/config"
	"petplus/internal/domain/services"
	"petplus/internal/platform/logger"
	portmedia "petplus/internal/ports/media"
	"petplus/internal/router"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta la API HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if s, ok := log.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	jwt, err := jwtauth.NewManager(cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("jwt: %w", err)
	}

	var db *sqlx.DB
	if cfg.DatabaseURL != "" {
		db, err = pg.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer db.Close()

		if cfg.AutoMigrate {
			if err := pg.Migrate(db.DB); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info("migrations applied", nil)
		}
	} else {
		log.Warn("DATABASE_URL not set: using in-memory storage", nil)
	}

	var uploader portmedia.Uploader
	if cfg.Cloudinary.Configured() {
		uploader, err = cloudinary.New(cloudinary.Config{
			CloudName:  cfg.Cloudinary.CloudName,
			APIKey:     cfg.Cloudinary.APIKey,
			APISecret:  cfg.Cloudinary.APISecret,
			FolderRoot: cfg.AppName,
		})
		if err != nil {
			return fmt.Errorf("cloudinary: %w", err)
		}
	} else {
		log.Warn("cloudinary not configured: using in-memory media relay", nil)
	}

	var cache services.Cache
	if cfg.RedisAddr != "" {
		rc := rediscache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rc.Close()

		pingCtx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable: services cache will miss", map[string]any{"error": err.Error()})
		}
		cancel()
		cache = rc
	}

	handler := router.NewRouter(router.Options{
		Logger:             log,
		Verifier:           jwt,
		Issuer:             jwt,
		Uploader:           uploader,
		UploadMaxBytes:     cfg.UploadMaxBytes,
		Cache:              cache,
		ServicesCacheTTL:   cfg.ServicesCacheTTL,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		DB:                 db,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
