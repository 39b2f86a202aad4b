package application

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ericfisherdev/licensepanel/internal/domain/port/driven"
)

// RequestService relays developer-access requests to the manager's inbox.
// The call is synchronous with no retry; a failed delivery requires the
// requester to resubmit.
type RequestService struct {
	mailer       driven.Mailer
	managerEmail string
	senderEmail  string
	policy       *bluemonday.Policy
}

// NewRequestService creates a RequestService. managerEmail may be empty, in
// which case every request fails with ErrManagerEmailNotConfigured.
func NewRequestService(mailer driven.Mailer, managerEmail, senderEmail string) *RequestService {
	return &RequestService{
		mailer:       mailer,
		managerEmail: managerEmail,
		senderEmail:  senderEmail,
		policy:       bluemonday.StrictPolicy(),
	}
}

// RequestDeveloperAccess emails the manager asking for credentials to be
// created for the named requester. The requester-supplied name and email are
// stripped of any markup before being interpolated into the HTML body.
// Returns the provider's message ID on success.
func (s *RequestService) RequestDeveloperAccess(ctx context.Context, name, email string) (string, error) {
	if s.managerEmail == "" {
		return "", ErrManagerEmailNotConfigured
	}

	name = s.policy.Sanitize(name)
	email = s.policy.Sanitize(email)

	subject := fmt.Sprintf("[License Panel] New Developer Access Request: %s", name)
	html := fmt.Sprintf(
		`<p>A new user has requested Developer access to the License Panel:</p>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p>Please log in to the Manager Dashboard to create credentials for them.</p>`,
		name, email,
	)

	id, err := s.mailer.Send(ctx, s.senderEmail, []string{s.managerEmail}, subject, html)
	if err != nil {
		return "", fmt.Errorf("send developer access request: %w", err)
	}

	return id, nil
}
