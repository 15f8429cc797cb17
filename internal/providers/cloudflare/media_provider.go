package cloudflare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/cloudflare/cloudflare-go"
	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/downloader"
	"github.com/stegavault/stegavault/internal/logger"
	mediaprovider "github.com/stegavault/stegavault/internal/media/provider"
)

const CLOUDFLARE_PROVIDER_NAME = "cloudflare"

// Config holds configuration for Cloudflare Images
type Config struct {
	// AccountID is the Cloudflare account ID for Images
	AccountID string
	// APIToken is the API token for authentication
	APIToken string
	// Variant names the delivery variant to return. It must not resize or re-encode.
	Variant string
}

// mediaProvider implements the media provider interface for Cloudflare Images
type mediaProvider struct {
	cfClient   adapter.CloudflareClient
	config     *Config
	rc         *cloudflare.ResourceContainer
	downloader downloader.Downloader
}

// NewMediaProvider creates a new Cloudflare Images provider
func NewMediaProvider(cfClient adapter.CloudflareClient, config *Config, dl downloader.Downloader) (mediaprovider.Provider, error) {
	if config.AccountID == "" {
		return nil, errors.New("cloudflare account id is required")
	}
	if config.Variant == "" {
		config.Variant = "public"
	}

	return &mediaProvider{
		cfClient:   cfClient,
		config:     config,
		downloader: dl,
		rc: &cloudflare.ResourceContainer{
			Level:      cloudflare.AccountRouteLevel,
			Identifier: config.AccountID,
		},
	}, nil
}

// Store uploads data to Cloudflare Images and returns the configured variant URL
func (p *mediaProvider) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	filename := ulid.Make().String() + extensionFor(contentType)

	image, err := p.cfClient.UploadImage(ctx, p.rc, cloudflare.UploadImageParams{
		File: io.NopCloser(bytes.NewReader(data)),
		Name: filename,
		Metadata: map[string]interface{}{
			"content_type": contentType,
		},
	})
	if err != nil {
		return "", domain.NewError(domain.KindExternalIO, "failed to upload image", err)
	}

	for _, variantURL := range image.Variants {
		if path.Base(variantURL) == p.config.Variant {
			logger.InfoCtx(ctx, "Uploaded image to Cloudflare Images",
				zap.String("imageID", image.ID),
				zap.String("url", variantURL),
			)
			return variantURL, nil
		}
	}

	return "", domain.NewError(domain.KindExternalIO, "image variant not available",
		fmt.Errorf("variant %q missing from upload %s", p.config.Variant, image.ID))
}

// Fetch downloads the image at url
func (p *mediaProvider) Fetch(ctx context.Context, url string) ([]byte, error) {
	result, err := p.downloader.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	return result.Data, nil
}

// Delete removes the uploaded image behind a delivery URL.
// Delivery URLs end in /<image id>/<variant>.
func (p *mediaProvider) Delete(ctx context.Context, rawURL string) error {
	imageID, err := imageIDFromURL(rawURL)
	if err != nil {
		return domain.NewError(domain.KindExternalIO, "invalid image url", err)
	}

	if err := p.cfClient.DeleteImage(ctx, p.rc, imageID); err != nil {
		return domain.NewError(domain.KindExternalIO, "failed to delete image", err)
	}

	logger.InfoCtx(ctx, "Deleted image from Cloudflare Images", zap.String("imageID", imageID))
	return nil
}

// Name returns the provider name
func (p *mediaProvider) Name() string {
	return CLOUDFLARE_PROVIDER_NAME
}

func imageIDFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-2] == "" {
		return "", fmt.Errorf("no image id in %q", rawURL)
	}
	return segments[len(segments)-2], nil
}

func extensionFor(contentType string) string {
	if mtype := mimetype.Lookup(contentType); mtype != nil && mtype.Extension() != "" {
		return mtype.Extension()
	}
	return ".png"
}
