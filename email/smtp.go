package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPDispatcher delivers through a plain SMTP relay. Used in environments
// without a transactional email provider.
type SMTPDispatcher struct {
	dialer *gomail.Dialer
	from   string
}

var _ Dispatcher = (*SMTPDispatcher)(nil)

// NewSMTPDispatcher builds a dispatcher for the given relay.
func NewSMTPDispatcher(host string, port int, username, password, from string) *SMTPDispatcher {
	return &SMTPDispatcher{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers one message. gomail dials per message; the pipeline's batch
// sizes are small enough that connection reuse is not worth the state.
func (d *SMTPDispatcher) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := d.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}
