package application

import "errors"

// Sentinel errors surfaced by the application services. All are recoverable
// at the call site that triggered them; none is fatal to the process.
var (
	// ErrInvalidCredentials covers both an unknown identity and a password
	// mismatch so callers cannot distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoSession indicates no active session exists for the presented token.
	ErrNoSession = errors.New("no active session")

	// ErrManagerEmailNotConfigured indicates the manager notification
	// address was not supplied via configuration.
	ErrManagerEmailNotConfigured = errors.New("manager email not configured")
)

// ValidationError reports a rejected input field on license creation or user
// registration. It is recovered locally and surfaced as an inline message;
// the user corrects the input and resubmits.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
