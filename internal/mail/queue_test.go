package mail

import (
	"context"
	"testing"

	"github.com/quillcms/quill/internal/queue"
)

type recordedPublish struct {
	exchange string
	key      string
	event    any
	reqID    string
}

type recPublisher struct{ published []recordedPublish }

func (r *recPublisher) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	r.published = append(r.published, recordedPublish{exchange, key, event, reqID})
	return nil
}

func (r *recPublisher) Close() error { return nil }

func TestQueueSenderPublishesEmailRequested(t *testing.T) {
	pub := &recPublisher{}
	s := NewQueueSender(pub, "cms.events")

	ctx := WithRequestID(context.Background(), "req-42")
	err := s.Send(ctx, Message{
		To:      []string{"jo@example.com"},
		Subject: "Reset your password",
		HTML:    "<p>link</p>",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if len(pub.published) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.published))
	}
	p := pub.published[0]
	if p.exchange != "cms.events" || p.key != queue.KeyEmailRequested {
		t.Fatalf("routed to %s/%s", p.exchange, p.key)
	}
	if p.reqID != "req-42" {
		t.Fatalf("request id = %q", p.reqID)
	}

	ev, ok := p.event.(queue.EmailRequested)
	if !ok {
		t.Fatalf("event type %T", p.event)
	}
	if ev.To[0] != "jo@example.com" || ev.Subject != "Reset your password" || ev.HTML != "<p>link</p>" {
		t.Fatalf("event payload: %+v", ev)
	}
}

func TestRequestIDFromMissing(t *testing.T) {
	if got := RequestIDFrom(context.Background()); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}
