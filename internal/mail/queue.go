package mail

import (
	"context"

	"github.com/quillcms/quill/internal/queue"
)

// QueueSender hands delivery off to the notifier by publishing an
// EmailRequested event. The broker ack is the only delivery guarantee the
// producing operation sees.
type QueueSender struct {
	pub      queue.Publisher
	exchange string
}

func NewQueueSender(pub queue.Publisher, exchange string) *QueueSender {
	return &QueueSender{pub: pub, exchange: exchange}
}

func (q *QueueSender) Send(ctx context.Context, m Message) error {
	return q.pub.Publish(ctx, q.exchange, queue.KeyEmailRequested, queue.EmailRequested{
		To:      m.To,
		Subject: m.Subject,
		HTML:    m.HTML,
	}, RequestIDFrom(ctx))
}

type ctxKey struct{}

// WithRequestID stamps the request id onto ctx so queue publishes keep their
// correlation header across the async boundary.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, reqID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}
