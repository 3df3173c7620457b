// Command server starts the classroom gateway HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/classroom-gateway/internal/config"
	"github.com/and161185/classroom-gateway/internal/migrate"
	"github.com/and161185/classroom-gateway/internal/repository/postgres"
	"github.com/and161185/classroom-gateway/internal/server/httpapi"
	"github.com/and161185/classroom-gateway/internal/service"
	s3storage "github.com/and161185/classroom-gateway/internal/storage/s3"
	"github.com/and161185/classroom-gateway/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and starts the HTTP server.
// Missing required configuration (signing secret, store or bucket
// credentials) aborts startup before any traffic is served.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	bucket, err := s3storage.New(ctx, s3storage.Options{
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		Endpoint:      cfg.S3Endpoint,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		logger.Fatal("s3 client", zap.Error(err))
	}

	// Services
	tokens := token.New([]byte(cfg.JWTSecret), cfg.TokenTTL)
	accountSvc := service.NewAccountService(postgres.NewAccountRepo(db), tokens)
	fileSvc := service.NewFileService(bucket)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.New(accountSvc, fileSvc, tokens, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
