package messaging

import "context"

// NoopPublisher is used when no Kafka brokers are configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishMessage(_ context.Context, _ string, _ []byte) error {
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
