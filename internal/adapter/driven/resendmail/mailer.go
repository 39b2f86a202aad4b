// Package resendmail implements the Mailer port against the Resend email API.
package resendmail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/ericfisherdev/licensepanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Mailer = (*Mailer)(nil)

// Mailer sends notification email through Resend. There is no retry or
// backoff; a provider failure surfaces directly to the caller.
type Mailer struct {
	client *resend.Client
}

// New creates a Mailer with the given API key. An empty key produces a
// client whose sends fail at the provider, which the caller surfaces as a
// delivery error.
func New(apiKey string) *Mailer {
	return &Mailer{client: resend.NewClient(apiKey)}
}

// Send delivers an HTML email and returns Resend's message ID.
func (m *Mailer) Send(ctx context.Context, from string, to []string, subject, html string) (string, error) {
	params := &resend.SendEmailRequest{
		From:    from,
		To:      to,
		Subject: subject,
		Html:    html,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}

	return sent.Id, nil
}
