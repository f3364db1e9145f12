// Package email renders and delivers re-engagement messages.
package email

import "context"

// Message is a rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Dispatcher hands a rendered message to a delivery provider.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}
