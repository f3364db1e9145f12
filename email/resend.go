package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendDispatcher delivers through the Resend transactional email API.
type ResendDispatcher struct {
	client *resend.Client
	from   string
}

var _ Dispatcher = (*ResendDispatcher)(nil)

// NewResendDispatcher builds a dispatcher with the given API key and
// sender address.
func NewResendDispatcher(apiKey, from string) *ResendDispatcher {
	return &ResendDispatcher{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers one message. The provider's error message is preserved for
// the per-recipient error accounting.
func (d *ResendDispatcher) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    d.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if _, err := d.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send to %s: %w", msg.To, err)
	}
	return nil
}
