package application

import "github.com/ericfisherdev/licensepanel/internal/domain/model"

// Decision is the outcome of an authorization check for a role-gated view.
type Decision int

const (
	// DecisionAllow permits the request.
	DecisionAllow Decision = iota
	// DecisionRedirect sends an authenticated identity to its own
	// dashboard instead of the one it requested.
	DecisionRedirect
	// DecisionDeny rejects an unauthenticated request back to the entry point.
	DecisionDeny
)

// Authorize gates a view declared for requiredRole. The returned location is
// the entry point for a deny, the session role's own dashboard for a
// redirect, and empty for an allow. The check runs server-side on every
// request; the client holds no role state the server trusts.
func Authorize(requiredRole model.Role, session *model.Session) (Decision, string) {
	if session == nil {
		return DecisionDeny, "/"
	}
	if session.Role != requiredRole {
		return DecisionRedirect, session.Role.DashboardPath()
	}
	return DecisionAllow, ""
}
