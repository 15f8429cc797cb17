package messaging

import (
	"context"

	"github.com/stegavault/stegavault/internal/domain"
)

// Publisher defines the interface for publishing ownership events after a ledger commit
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishOwnershipEvent publishes an ownership event to the message broker
	PublishOwnershipEvent(ctx context.Context, event domain.OwnershipEvent) error
	// Close closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event, used when no broker is configured
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishOwnershipEvent(context.Context, domain.OwnershipEvent) error {
	return nil
}

func (noopPublisher) Close() {}
