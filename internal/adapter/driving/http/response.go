package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/licensepanel/internal/application"
	"github.com/ericfisherdev/licensepanel/internal/domain/model"
)

// expiredDisplay is the fixed string shown to end users for expired
// licenses. The status engine's internal EXPIRED signal is never rendered
// directly; this zero-valued display replaces it.
const expiredDisplay = "0y, 0m, 0d, 0hrs, 0mins"

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse mirrors the notification boundary's configuration-error
// body, which uses a "message" key rather than "error".
type messageResponse struct {
	Message string `json:"message"`
}

// redirectResponse accompanies a 303 when an authenticated identity requests
// another role's view. Location is also set as a header.
type redirectResponse struct {
	Redirect string `json:"redirect"`
}

// LoginRequest is the JSON body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is the JSON representation of the active session.
type SessionResponse struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	Dashboard string `json:"dashboard"`
}

// CreateLicenseRequest is the JSON body for the create license endpoint.
type CreateLicenseRequest struct {
	Name           string `json:"name" validate:"required"`
	StartDate      string `json:"start_date" validate:"required"`
	ExpirationDate string `json:"expiration_date" validate:"required"`
}

// LicenseResponse is the JSON representation of a license with its derived
// presentation state.
type LicenseResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	StartDate      string `json:"start_date"`
	ExpirationDate string `json:"expiration_date"`
	AddedBy        string `json:"added_by"`
	Status         string `json:"status"`
	TimeRemaining  string `json:"time_remaining"`
	CreatedAt      string `json:"created_at"`
}

// RegisterUserRequest is the JSON body for the register user endpoint.
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// UserResponse is the JSON representation of a stored credential. The
// password hash is never serialized.
type UserResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RequestDeveloperRequest is the JSON body for the developer-access request
// endpoint.
type RequestDeveloperRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// DashboardResponse is the role-gated view payload. Users is populated only
// for the manager dashboard.
type DashboardResponse struct {
	Role     string            `json:"role"`
	Email    string            `json:"email"`
	Licenses []LicenseResponse `json:"licenses"`
	Users    []UserResponse    `json:"users,omitempty"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toLicenseResponse converts an annotated license view to its JSON
// representation. For expired licenses the displayed remaining time is the
// fixed zero-valued string, not the engine's internal signal.
func toLicenseResponse(v application.LicenseView) LicenseResponse {
	remaining := v.Remaining
	if v.Status == model.StatusExpired {
		remaining = expiredDisplay
	}

	return LicenseResponse{
		ID:             v.License.ID,
		Name:           v.License.Name,
		StartDate:      v.License.StartDate.UTC().Format(time.RFC3339),
		ExpirationDate: v.License.ExpirationDate.UTC().Format(time.RFC3339),
		AddedBy:        v.License.AddedBy,
		Status:         string(v.Status),
		TimeRemaining:  remaining,
		CreatedAt:      v.License.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// toUserResponse converts a stored credential to its JSON representation.
func toUserResponse(u model.User) UserResponse {
	return UserResponse{
		Email: u.Email,
		Role:  string(u.Role),
	}
}

// toSessionResponse converts a session to its JSON representation.
func toSessionResponse(s model.Session) SessionResponse {
	return SessionResponse{
		Email:     s.Email,
		Role:      string(s.Role),
		Dashboard: s.Role.DashboardPath(),
	}
}
