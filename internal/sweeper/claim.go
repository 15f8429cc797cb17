package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/logger"
	"github.com/stegavault/stegavault/internal/store"
	"github.com/stegavault/stegavault/internal/store/schema"
	"github.com/stegavault/stegavault/internal/transfer"
	"github.com/stegavault/stegavault/internal/verifier"
)

const (
	DefaultBatchSize      = 100
	DefaultWorkerPoolSize = 4
	DefaultInterval       = 15 * time.Minute
)

// ClaimSweeperConfig holds configuration for the claim sweeper
type ClaimSweeperConfig struct {
	BatchSize      int           // Assets scanned per batch
	WorkerPoolSize int           // Concurrent verifications
	Interval       time.Duration // Pause between full passes
	// ListRetryMaxElapsed bounds retries of a failing batch listing
	ListRetryMaxElapsed time.Duration
}

// sweepStats counts the outcomes of one full pass
type sweepStats struct {
	scanned  atomic.Int32
	verified atomic.Int32
	repaired atomic.Int32
	skipped  atomic.Int32
	failed   atomic.Int32
}

// claimSweeper re-embeds claims whose image no longer agrees with the ledger
type claimSweeper struct {
	config       ClaimSweeperConfig
	store        store.Store
	verifier     verifier.Verifier
	orchestrator transfer.Orchestrator
	clock        adapter.Clock
	running      atomic.Bool
	stopChan     chan struct{}
	stoppedCh    chan struct{}
}

// NewClaimSweeper creates a new claim reconciliation sweeper
func NewClaimSweeper(
	config ClaimSweeperConfig,
	st store.Store,
	v verifier.Verifier,
	orchestrator transfer.Orchestrator,
	clock adapter.Clock,
) Sweeper {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = DefaultWorkerPoolSize
	}
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	if config.ListRetryMaxElapsed <= 0 {
		config.ListRetryMaxElapsed = time.Minute
	}

	return &claimSweeper{
		config:       config,
		store:        st,
		verifier:     v,
		orchestrator: orchestrator,
		clock:        clock,
		stopChan:     make(chan struct{}),
		stoppedCh:    make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *claimSweeper) Name() string {
	return "claim-sweeper"
}

// Start runs full passes over all minted assets until stopped
func (s *claimSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting claim sweeper",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("interval", s.config.Interval),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Claim sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Claim sweeper stop requested")
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}

			s.sleep(ctx, s.config.Interval)
		}
	}
}

// Stop gracefully stops the sweeper, waiting for the in-flight batch
func (s *claimSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping claim sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Claim sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Claim sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle scans every minted asset once in keyset order
func (s *claimSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()
	logger.InfoCtx(ctx, "Starting sweep cycle")

	var stats sweepStats
	afterID := ""
	for {
		if s.stopping(ctx) {
			return ctx.Err()
		}

		assets, err := s.listBatchWithRetry(ctx, afterID)
		if err != nil {
			return fmt.Errorf("failed to list assets after %q: %w", afterID, err)
		}
		if len(assets) == 0 {
			break
		}

		s.sweepBatch(ctx, assets, &stats)

		afterID = assets[len(assets)-1].ID
		if len(assets) < s.config.BatchSize {
			break
		}
	}

	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int32("scanned", stats.scanned.Load()),
		zap.Int32("verified", stats.verified.Load()),
		zap.Int32("repaired", stats.repaired.Load()),
		zap.Int32("skipped", stats.skipped.Load()),
		zap.Int32("failed", stats.failed.Load()),
	)

	return nil
}

// sweepBatch checks one batch of assets on a worker pool and waits for it to finish
func (s *claimSweeper) sweepBatch(ctx context.Context, assets []schema.Asset, stats *sweepStats) {
	pool := pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(len(assets)),
		pond.WithContext(ctx),
	)

	for _, asset := range assets {
		pool.Submit(func() {
			s.checkAsset(ctx, asset, stats)
		})
	}

	pool.StopAndWait()
}

// checkAsset verifies one asset against its ledger owner and re-embeds a stale claim
func (s *claimSweeper) checkAsset(ctx context.Context, asset schema.Asset, stats *sweepStats) {
	stats.scanned.Add(1)

	result, err := s.verifier.Verify(ctx, asset.ID, asset.OwnerID)
	if err != nil {
		stats.failed.Add(1)
		logger.ErrorCtx(ctx, fmt.Errorf("failed to verify asset: %w", err), zap.String("assetID", asset.ID))
		return
	}

	if result.Valid {
		stats.verified.Add(1)
		return
	}

	// The asset changed hands since it was listed, the next pass sees the new owner
	if result.Source != verifier.SourceEmbedded {
		stats.skipped.Add(1)
		return
	}

	logger.WarnCtx(ctx, "Embedded claim disagrees with ledger, re-embedding",
		zap.String("assetID", asset.ID),
		zap.String("reason", result.Reason),
	)

	if _, err := s.orchestrator.Reembed(ctx, asset.ID); err != nil {
		stats.failed.Add(1)
		logger.ErrorCtx(ctx, fmt.Errorf("failed to re-embed claim: %w", err), zap.String("assetID", asset.ID))
		return
	}

	stats.repaired.Add(1)
	logger.InfoCtx(ctx, "Claim repaired", zap.String("assetID", asset.ID))
}

// listBatchWithRetry lists the next batch with exponential backoff
func (s *claimSweeper) listBatchWithRetry(ctx context.Context, afterID string) ([]schema.Asset, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 15 * time.Second
	b.MaxElapsedTime = s.config.ListRetryMaxElapsed

	var assets []schema.Asset
	operation := func() error {
		var err error
		assets, err = s.store.ListAssetsAfter(ctx, afterID, s.config.BatchSize)
		return err
	}

	notifyOnError := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Listing assets failed, retrying",
			zap.Error(err),
			zap.Duration("next_retry_in", next),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return nil, err
	}

	return assets, nil
}

// stopping reports whether a stop was requested or the context is done
func (s *claimSweeper) stopping(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-s.stopChan:
		return true
	default:
		return false
	}
}

// sleep sleeps for the given duration but can be interrupted
// Returns true if sleep completed normally
func (s *claimSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
