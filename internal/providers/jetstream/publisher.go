package jetstream

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/stegavault/stegavault/internal/adapter"
	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/logger"
	"github.com/stegavault/stegavault/internal/messaging"
)

const (
	// SubjectPrefix is the subject namespace of ownership events
	SubjectPrefix = "stegavault.assets"
	// SignatureHeader carries the HMAC-SHA256 of the canonical event body
	SignatureHeader = "Stegavault-Signature"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	// SigningSecret signs event bodies, events are unsigned when empty
	SigningSecret string
	// PublishTimeout bounds a single publish
	PublishTimeout time.Duration
}

type publisher struct {
	nc             adapter.NatsConn
	js             adapter.JetStream
	json           adapter.JSON
	jcs            adapter.JCS
	secret         []byte
	publishTimeout time.Duration
}

// NewPublisher connects to NATS, ensures the event stream exists and returns a publisher
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON, jcsAdapter adapter.JCS) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if cfg.StreamName != "" {
		err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     cfg.StreamName,
			Subjects: []string{SubjectPrefix + ".>"},
		})
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
		}
	}

	publishTimeout := cfg.PublishTimeout
	if publishTimeout <= 0 {
		publishTimeout = 5 * time.Second
	}

	return &publisher{
		nc:             nc,
		js:             js,
		json:           jsonAdapter,
		jcs:            jcsAdapter,
		secret:         []byte(cfg.SigningSecret),
		publishTimeout: publishTimeout,
	}, nil
}

// PublishOwnershipEvent publishes an ownership event to NATS JetStream
func (p *publisher) PublishOwnershipEvent(ctx context.Context, event domain.OwnershipEvent) error {
	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	canonical, err := p.jcs.Transform(data)
	if err != nil {
		return fmt.Errorf("failed to canonicalize event: %w", err)
	}

	msg := nats.NewMsg(BuildSubject(event.Type))
	msg.Data = canonical
	if len(p.secret) > 0 {
		msg.Header.Set(SignatureHeader, Sign(p.secret, canonical))
	}

	ctx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()

	if _, err := p.js.PublishMsg(ctx, msg, jetstream.WithMsgID(event.EventID)); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	logger.DebugCtx(ctx, "Published ownership event",
		zap.String("subject", msg.Subject),
		zap.String("eventID", event.EventID),
		zap.String("assetID", event.AssetID))

	return nil
}

// Close drains and closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	if err := p.nc.Drain(); err != nil {
		logger.Warn("Failed to drain NATS connection", zap.Error(err))
		p.nc.Close()
	}
}

// BuildSubject returns the subject of an event type, e.g. stegavault.assets.minted
func BuildSubject(eventType domain.OwnershipEventType) string {
	return fmt.Sprintf("%s.%s", SubjectPrefix, strings.TrimPrefix(string(eventType), "asset."))
}

// Sign returns the hex HMAC-SHA256 signature header value of body
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
