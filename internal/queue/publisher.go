package queue

import "context"

// Publisher pushes domain events to the broker. Implementations must be safe
// for concurrent use by handlers.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, event any, reqID string) error
	Close() error
}

// NoopPub drops every event. Used in tests and when no broker is configured.
type NoopPub struct{}

func NewNoop() Publisher { return NoopPub{} }

func (NoopPub) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	return nil
}
func (NoopPub) Close() error { return nil }
