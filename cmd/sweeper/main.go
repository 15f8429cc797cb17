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

	"github.com/stegavault/stegavault/internal/bootstrap"
	"github.com/stegavault/stegavault/internal/config"
	"github.com/stegavault/stegavault/internal/logger"
	"github.com/stegavault/stegavault/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Canceled on SIGINT or SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "stegavault-sweeper",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "stegavault-sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

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

	claimSweeper := sweeper.NewClaimSweeper(sweeper.ClaimSweeperConfig{
		BatchSize:      cfg.ClaimSweeper.BatchSize,
		WorkerPoolSize: cfg.ClaimSweeper.Worker.WorkerPoolSize,
		Interval:       cfg.ClaimSweeper.Interval,
	}, core.Store, core.Verifier, core.Orchestrator, core.Clock)

	logger.InfoCtx(ctx, "Initialized claim sweeper (continuous mode)",
		zap.Int("batch_size", cfg.ClaimSweeper.BatchSize),
		zap.Int("worker_pool_size", cfg.ClaimSweeper.Worker.WorkerPoolSize),
		zap.Duration("interval", cfg.ClaimSweeper.Interval),
	)

	if err := sweeper.Run(ctx, claimSweeper, 5*time.Second); err != nil {
		logger.ErrorCtx(ctx, err)
	}

	logger.InfoCtx(context.Background(), "Sweeper stopped")
}
