package downloader

import (
	"context"
	"errors"
	"mime"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/logger"
)

// DefaultMaxSize caps downloads when no limit is configured
const DefaultMaxSize int64 = 32 << 20

// DownloadResult holds a downloaded media file
type DownloadResult struct {
	Data []byte
	// ContentType is the declared media type, or the sniffed one when the server declares none
	ContentType string
}

// Size returns the size of the downloaded file
func (d *DownloadResult) Size() int64 {
	return int64(len(d.Data))
}

// Downloader defines the interface for downloading media files
//
//go:generate mockgen -source=downloader.go -destination=../mocks/downloader.go -package=mocks -mock_names=Downloader=MockDownloader
type Downloader interface {
	// Download fetches a media file from a URL into memory
	Download(ctx context.Context, url string) (*DownloadResult, error)
}

type downloader struct {
	httpClient adapter.HTTPClient
	maxSize    int64
}

// NewDownloader creates a downloader rejecting files larger than maxSize bytes
func NewDownloader(httpClient adapter.HTTPClient, maxSize int64) Downloader {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &downloader{
		httpClient: httpClient,
		maxSize:    maxSize,
	}
}

// Download fetches a media file from a URL into memory
func (d *downloader) Download(ctx context.Context, url string) (*DownloadResult, error) {
	logger.DebugCtx(ctx, "Downloading file", zap.String("url", url))

	data, contentType, err := d.httpClient.GetBytes(ctx, url, d.maxSize)
	if err != nil {
		if errors.Is(err, adapter.ErrResponseTooLarge) {
			return nil, domain.NewError(domain.KindExternalIO, "media file exceeds size limit", err)
		}
		return nil, domain.NewError(domain.KindExternalIO, "failed to download media file", err)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = mimetype.Detect(data).String()
	}

	logger.DebugCtx(ctx, "Download finished",
		zap.String("url", url),
		zap.String("contentType", mediaType),
		zap.Int("size", len(data)),
	)

	return &DownloadResult{
		Data:        data,
		ContentType: mediaType,
	}, nil
}
