package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/stegavault/stegavault/internal/logger"
)

// Sweeper is a background reconciliation loop over the ledger
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start runs passes until ctx is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop ends the loop after the in-flight batch
	Stop(ctx context.Context) error

	Name() string
}

// Run starts s and blocks until ctx is done or s exits on its own,
// then stops it, allowing stopTimeout for the in-flight batch.
func Run(ctx context.Context, s Sweeper, stopTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start(ctx)
	}()

	var runErr error
	exited := false
	select {
	case <-ctx.Done():
		logger.InfoCtx(ctx, "Shutting down sweeper", zap.String("sweeper", s.Name()))
	case runErr = <-errCh:
		exited = true
	}

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
	defer cancel()

	if err := s.Stop(stopCtx); err != nil {
		return err
	}
	if !exited {
		select {
		case runErr = <-errCh:
		case <-stopCtx.Done():
		}
	}
	return runErr
}
