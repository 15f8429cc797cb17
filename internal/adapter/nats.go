package adapter

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NatsConn is the connection handle the event publisher shuts down
//
//go:generate mockgen -source=nats.go -destination=../mocks/nats.go -package=mocks -mock_names=NatsConn=MockNatsConn,JetStream=MockJetStream,NatsJetStream=MockNatsJetStream
type NatsConn interface {
	// Drain flushes pending publishes before closing
	Drain() error
	Close()
}

// JetStream publishes ownership events and provisions their stream
type JetStream interface {
	// PublishMsg publishes msg, headers included, and waits for the stream ack
	PublishMsg(ctx context.Context, msg *nats.Msg, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)

	// CreateOrUpdateStream ensures a stream exists with cfg
	CreateOrUpdateStream(ctx context.Context, cfg jetstream.StreamConfig) error
}

// NatsJetStream dials NATS and opens a JetStream context on the connection
type NatsJetStream interface {
	Connect(url string, options ...nats.Option) (NatsConn, JetStream, error)
}

// RealNatsJetStream dials with nats.go
type RealNatsJetStream struct{}

func NewNatsJetStream() NatsJetStream {
	return &RealNatsJetStream{}
}

// Connect closes the connection again when JetStream is unavailable
func (n *RealNatsJetStream) Connect(url string, options ...nats.Option) (NatsConn, JetStream, error) {
	nc, err := nats.Connect(url, options...)
	if err != nil {
		return nil, nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}

	return nc, &streamPublisher{js: js}, nil
}

// streamPublisher narrows jetstream.JetStream to the JetStream interface
type streamPublisher struct {
	js jetstream.JetStream
}

func (s *streamPublisher) PublishMsg(ctx context.Context, msg *nats.Msg, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	return s.js.PublishMsg(ctx, msg, opts...)
}

func (s *streamPublisher) CreateOrUpdateStream(ctx context.Context, cfg jetstream.StreamConfig) error {
	_, err := s.js.CreateOrUpdateStream(ctx, cfg)
	return err
}
