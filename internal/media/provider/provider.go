package mediaprovider

import (
	"context"
)

// Provider defines the interface for media storage providers.
// Stored bytes must be served back unmodified, transforming CDNs would destroy embedded claims.
//
//go:generate mockgen -source=provider.go -destination=../../mocks/media_provider.go -package=mocks -mock_names=Provider=MockMediaProvider
type Provider interface {
	// Store persists data and returns the URL it can be fetched from
	Store(ctx context.Context, data []byte, contentType string) (string, error)

	// Fetch returns the bytes stored at url
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Delete removes an object previously returned by Store
	Delete(ctx context.Context, url string) error

	// Name returns the provider name
	Name() string
}
