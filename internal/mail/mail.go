package mail

import "context"

// Message is one rendered email, ready for transport. From defaults to the
// sender's configured address when empty.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sender delivers a message. Whether delivery is awaited by the operation
// that produced the message is the caller's choice (see the EMAIL_SYNC
// configuration flag).
type Sender interface {
	Send(ctx context.Context, m Message) error
}
