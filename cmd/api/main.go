package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stegavault/stegavault/internal/api/server"
	"github.com/stegavault/stegavault/internal/api/shared/constants"
	"github.com/stegavault/stegavault/internal/api/shared/executor"
	"github.com/stegavault/stegavault/internal/auth"
	"github.com/stegavault/stegavault/internal/bootstrap"
	"github.com/stegavault/stegavault/internal/config"
	"github.com/stegavault/stegavault/internal/logger"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         constants.SERVICE_NAME,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": constants.SERVICE_NAME,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting StegaVault API")

	db, err := bootstrap.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open database", zap.Error(err))
	}

	core, err := bootstrap.NewCore(ctx, db, bootstrap.CoreConfig{
		ClaimSecret: cfg.Claim.SigningSecret,
		Stego:       cfg.Stego,
		Storage:     cfg.Storage,
		NATS:        cfg.NATS,
		Verifier:    cfg.Verifier,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize ledger components", zap.Error(err))
	}
	defer core.Close()

	sessions, err := auth.NewSessionManager(auth.Config{
		Secret:       cfg.Auth.SessionSecret,
		TTL:          cfg.Auth.SessionTTL,
		ExpiryMargin: cfg.Auth.ExpiryMargin,
	}, core.Store, core.Clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize session manager", zap.Error(err))
	}

	// Serve stored images directly when they live on local disk
	var mediaDir string
	if cfg.Storage.Provider == config.StorageProviderLocal {
		mediaDir = cfg.Storage.LocalDir
	}

	serverConfig := server.Config{
		Debug:            cfg.Debug,
		Host:             cfg.Server.Host,
		Port:             cfg.Server.Port,
		ReadTimeout:      time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:     time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:      time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CORSAllowOrigins: cfg.Server.CORSAllowOrigins,
		MediaDir:         mediaDir,
	}

	limiter, err := bootstrap.NewRateLimiter(ctx, cfg.RateLimit, core.Clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize rate limiter", zap.Error(err))
	}
	if limiter != nil {
		defer func() {
			if err := limiter.Close(); err != nil {
				logger.Warn("Failed to close rate limiter", zap.Error(err))
			}
		}()
	}

	exec := executor.NewExecutor(core.Store, core.Orchestrator, core.Verifier)
	srv := server.New(serverConfig, exec, sessions, limiter)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
