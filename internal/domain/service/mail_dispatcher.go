package service

import "context"

// Mail is a fully rendered outbound message. Templating is the caller's
// concern; the dispatcher only transports what it is given.
type Mail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// MailDispatcher defines the interface for sending a single outbound email.
// Sends are not retried; a failure surfaces to the caller as-is.
type MailDispatcher interface {
	Send(ctx context.Context, mail *Mail) error
}
