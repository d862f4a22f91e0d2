package infrastructure

import "context"

// MessagePublisher abstracts the event queue (Kafka) so services can be
// tested without a broker.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
