package adapter

import (
	"context"

	"github.com/cloudflare/cloudflare-go"
)

// CloudflareClient is the subset of the Cloudflare Images API used for claim-bearing images
//
//go:generate mockgen -source=cloudflare.go -destination=../mocks/cloudflare.go -package=mocks -mock_names=CloudflareClient=MockCloudflareClient
type CloudflareClient interface {
	// UploadImage uploads one image and returns its delivery variants
	UploadImage(ctx context.Context, rc *cloudflare.ResourceContainer, params cloudflare.UploadImageParams) (cloudflare.Image, error)

	// DeleteImage removes an uploaded image by its Cloudflare ID
	DeleteImage(ctx context.Context, rc *cloudflare.ResourceContainer, imageID string) error
}

// RealCloudflareClient calls the Cloudflare API through cloudflare-go
type RealCloudflareClient struct {
	api *cloudflare.API
}

// NewCloudflareClient creates a client authenticated with an API token
func NewCloudflareClient(apiToken string) (CloudflareClient, error) {
	api, err := cloudflare.NewWithAPIToken(apiToken)
	if err != nil {
		return nil, err
	}
	return &RealCloudflareClient{api: api}, nil
}

func (c *RealCloudflareClient) UploadImage(ctx context.Context, rc *cloudflare.ResourceContainer, params cloudflare.UploadImageParams) (cloudflare.Image, error) {
	return c.api.UploadImage(ctx, rc, params)
}

func (c *RealCloudflareClient) DeleteImage(ctx context.Context, rc *cloudflare.ResourceContainer, imageID string) error {
	return c.api.DeleteImage(ctx, rc, imageID)
}
