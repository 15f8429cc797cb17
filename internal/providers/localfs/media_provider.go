package localfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/downloader"
	"github.com/stegavault/stegavault/internal/logger"
	mediaprovider "github.com/stegavault/stegavault/internal/media/provider"
)

const (
	LOCALFS_PROVIDER_NAME = "localfs"

	// MediaRoute is the HTTP path prefix the API serves stored files under
	MediaRoute = "/media"
)

// Config holds configuration for the local filesystem provider
type Config struct {
	// Dir is the directory files are written to
	Dir string
	// PublicBaseURL is the externally reachable base URL of the API, e.g. http://localhost:8080
	PublicBaseURL string
}

type mediaProvider struct {
	dir        string
	urlPrefix  string
	fs         adapter.FileSystem
	downloader downloader.Downloader
}

// NewMediaProvider creates a provider storing files on the local filesystem
func NewMediaProvider(cfg Config, fsys adapter.FileSystem, dl downloader.Downloader) (mediaprovider.Provider, error) {
	if cfg.Dir == "" {
		return nil, errors.New("media directory is required")
	}
	if err := fsys.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	return &mediaProvider{
		dir:        cfg.Dir,
		urlPrefix:  strings.TrimRight(cfg.PublicBaseURL, "/") + MediaRoute + "/",
		fs:         fsys,
		downloader: dl,
	}, nil
}

// Store writes data under a fresh ULID file name and returns its public URL
func (p *mediaProvider) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	name := ulid.Make().String() + extensionFor(contentType)

	if err := p.fs.WriteFile(filepath.Join(p.dir, name), data, 0o644); err != nil { //nolint:gosec,G306
		return "", domain.NewError(domain.KindExternalIO, "failed to store media file", err)
	}

	url := p.urlPrefix + name
	logger.DebugCtx(ctx, "Stored media file", zap.String("url", url), zap.Int("size", len(data)))

	return url, nil
}

// Fetch reads own URLs straight from disk and downloads anything else
func (p *mediaProvider) Fetch(ctx context.Context, url string) ([]byte, error) {
	name, ok := strings.CutPrefix(url, p.urlPrefix)
	if !ok {
		result, err := p.downloader.Download(ctx, url)
		if err != nil {
			return nil, err
		}
		return result.Data, nil
	}
	if err := validName(name); err != nil {
		return nil, err
	}

	data, err := p.fs.ReadFile(filepath.Join(p.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewError(domain.KindExternalIO, "media file not found", err)
		}
		return nil, domain.NewError(domain.KindExternalIO, "failed to read media file", err)
	}

	return data, nil
}

// Delete removes a file this provider stored
func (p *mediaProvider) Delete(ctx context.Context, url string) error {
	name, ok := strings.CutPrefix(url, p.urlPrefix)
	if !ok {
		return domain.NewError(domain.KindExternalIO, "media file not owned by this provider", fmt.Errorf("url %q", url))
	}
	if err := validName(name); err != nil {
		return err
	}

	if err := p.fs.Remove(filepath.Join(p.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.NewError(domain.KindExternalIO, "failed to delete media file", err)
	}

	logger.DebugCtx(ctx, "Deleted media file", zap.String("url", url))
	return nil
}

// Name returns the provider name
func (p *mediaProvider) Name() string {
	return LOCALFS_PROVIDER_NAME
}

// validName rejects anything but a plain file name inside the media directory
func validName(name string) error {
	if name == "" || path.Base(name) != name || name == "." || name == ".." {
		return domain.NewError(domain.KindExternalIO, "invalid media file name", fmt.Errorf("name %q", name))
	}
	return nil
}

func extensionFor(contentType string) string {
	if mtype := mimetype.Lookup(contentType); mtype != nil && mtype.Extension() != "" {
		return mtype.Extension()
	}
	return ".png"
}
