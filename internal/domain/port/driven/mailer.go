package driven

import "context"

// Mailer defines the driven port for outbound notification email. The call
// is synchronous with no retry; a delivery failure surfaces to the caller,
// who must resubmit explicitly.
type Mailer interface {
	// Send delivers an HTML email and returns the provider's message ID.
	Send(ctx context.Context, from string, to []string, subject, html string) (string, error)
}
