package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/claim"
	"github.com/stegavault/stegavault/internal/config"
	"github.com/stegavault/stegavault/internal/downloader"
	"github.com/stegavault/stegavault/internal/logger"
	mediaprovider "github.com/stegavault/stegavault/internal/media/provider"
	"github.com/stegavault/stegavault/internal/messaging"
	"github.com/stegavault/stegavault/internal/providers/cloudflare"
	"github.com/stegavault/stegavault/internal/providers/jetstream"
	"github.com/stegavault/stegavault/internal/providers/localfs"
	"github.com/stegavault/stegavault/internal/ratelimit"
	"github.com/stegavault/stegavault/internal/stego"
	"github.com/stegavault/stegavault/internal/store"
	"github.com/stegavault/stegavault/internal/transfer"
	"github.com/stegavault/stegavault/internal/verifier"
)

// OpenDatabase connects to the primary, registers the read replica when configured and sizes the pool
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.ReadHost != "" {
		if err := store.RegisterReadReplica(db, postgres.Open(cfg.ReadDSN())); err != nil {
			return nil, fmt.Errorf("failed to register read replica: %w", err)
		}
		logger.InfoCtx(ctx, "Registered read replica", zap.String("read_host", cfg.ReadHost))
	}

	if err := store.ConfigureConnectionPool(db, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime); err != nil {
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	logger.InfoCtx(ctx, "Connected to database",
		zap.String("host", cfg.Host),
		zap.String("dbname", cfg.DBName),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)

	return db, nil
}

// NewMediaProvider builds the configured media provider
func NewMediaProvider(cfg config.StorageConfig) (mediaprovider.Provider, error) {
	httpClient := adapter.NewHTTPClient(cfg.FetchTimeout, 2*cfg.FetchTimeout)
	dl := downloader.NewDownloader(httpClient, cfg.MaxFetchSize)

	switch cfg.Provider {
	case config.StorageProviderCloudflare:
		cfClient, err := adapter.NewCloudflareClient(cfg.Cloudflare.APIToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloudflare client: %w", err)
		}
		return cloudflare.NewMediaProvider(cfClient, &cloudflare.Config{
			AccountID: cfg.Cloudflare.AccountID,
			APIToken:  cfg.Cloudflare.APIToken,
			Variant:   cfg.Cloudflare.Variant,
		}, dl)
	case config.StorageProviderLocal:
		return localfs.NewMediaProvider(localfs.Config{
			Dir:           cfg.LocalDir,
			PublicBaseURL: cfg.PublicBaseURL,
		}, adapter.NewFileSystem(), dl)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// NewPublisher connects the JetStream publisher, events are dropped when NATS is not configured
func NewPublisher(ctx context.Context, cfg config.NATSConfig) (messaging.Publisher, error) {
	if cfg.URL == "" {
		logger.WarnCtx(ctx, "NATS is not configured, ownership events will not be published")
		return messaging.NewNoopPublisher(), nil
	}

	return jetstream.NewPublisher(ctx, jetstream.Config{
		URL:            cfg.URL,
		StreamName:     cfg.StreamName,
		MaxReconnects:  cfg.MaxReconnects,
		ReconnectWait:  cfg.ReconnectWait,
		ConnectionName: cfg.ConnectionName,
		SigningSecret:  cfg.SigningSecret,
		PublishTimeout: cfg.PublishTimeout,
	}, adapter.NewNatsJetStream(), adapter.NewJSON(), adapter.NewJCS())
}

// NewRateLimiter builds the API rate limiter, nil when rate limiting is disabled
func NewRateLimiter(ctx context.Context, cfg config.RateLimitConfig, clock adapter.Clock) (ratelimit.Limiter, error) {
	if !cfg.Enabled {
		logger.WarnCtx(ctx, "Rate limiting is disabled")
		return nil, nil
	}

	var rc adapter.RedisClient
	if cfg.RedisAddr != "" {
		rc = adapter.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}

	limiter, err := ratelimit.NewLimiter(cfg, rc, clock)
	if err != nil {
		if rc != nil {
			_ = rc.Close()
		}
		return nil, err
	}
	return limiter, nil
}

// CoreConfig selects the settings the ledger components need
type CoreConfig struct {
	ClaimSecret string
	Stego       config.StegoConfig
	Storage     config.StorageConfig
	NATS        config.NATSConfig
	Verifier    config.VerifierConfig
}

// Core bundles the ledger components shared by every program
type Core struct {
	Clock        adapter.Clock
	Store        store.Store
	Codec        claim.Codec
	Channel      stego.Channel
	Media        mediaprovider.Provider
	Publisher    messaging.Publisher
	Orchestrator transfer.Orchestrator
	Verifier     verifier.Verifier
}

// NewCore wires the ledger components on top of an open database
func NewCore(ctx context.Context, db *gorm.DB, cfg CoreConfig) (*Core, error) {
	clock := adapter.NewClock()

	codec, err := claim.NewCodec(cfg.ClaimSecret, clock)
	if err != nil {
		return nil, err
	}

	media, err := NewMediaProvider(cfg.Storage)
	if err != nil {
		return nil, err
	}

	publisher, err := NewPublisher(ctx, cfg.NATS)
	if err != nil {
		return nil, err
	}

	dataStore := store.NewPGStore(db)
	channel := stego.NewChannel(adapter.NewImageEncoder(), cfg.Stego.MaxPixels)

	orchestrator := transfer.NewOrchestrator(transfer.Config{
		MinDimension:  cfg.Stego.MinDimension,
		MaxUploadSize: cfg.Stego.MaxUploadSize,
		FetchTimeout:  cfg.Storage.FetchTimeout,
	}, dataStore, codec, channel, media, publisher, clock)

	logger.InfoCtx(ctx, "Initialized ledger components",
		zap.String("media_provider", media.Name()),
		zap.Int("min_dimension", cfg.Stego.MinDimension),
		zap.Int64("max_pixels", cfg.Stego.MaxPixels),
	)

	return &Core{
		Clock:        clock,
		Store:        dataStore,
		Codec:        codec,
		Channel:      channel,
		Media:        media,
		Publisher:    publisher,
		Orchestrator: orchestrator,
		Verifier:     verifier.NewVerifier(dataStore, codec, channel, media, cfg.Verifier.FetchTimeout),
	}, nil
}

// Close releases the connections held by the core
func (c *Core) Close() {
	c.Publisher.Close()
}
