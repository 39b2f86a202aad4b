// Package httphandler implements the JSON API driving adapter. The external
// presentation layer (dashboard pages, forms) consumes these endpoints; no
// HTML is rendered here.
package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ericfisherdev/licensepanel/internal/application"
	"github.com/ericfisherdev/licensepanel/internal/domain/model"
	"github.com/ericfisherdev/licensepanel/internal/domain/port/driven"
)

// sessionCookieName is the cookie carrying the opaque session token. The
// cookie is HTTP-only; the browser never reads role state out of it.
const sessionCookieName = "licensepanel_session"

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	licenseSvc *application.LicenseService
	authSvc    *application.AuthService
	requestSvc *application.RequestService
	userStore  driven.UserStore
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	licenseSvc *application.LicenseService,
	authSvc *application.AuthService,
	requestSvc *application.RequestService,
	userStore driven.UserStore,
	logger *slog.Logger,
) *Handler {
	v := validator.New()

	// Report JSON field names in validation errors, not Go struct fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		licenseSvc: licenseSvc,
		authSvc:    authSvc,
		requestSvc: requestSvc,
		userStore:  userStore,
		validate:   v,
		logger:     logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/login", h.Login)
	mux.HandleFunc("POST /api/v1/logout", h.Logout)
	mux.HandleFunc("GET /api/v1/session", h.Session)
	mux.HandleFunc("GET /api/v1/licenses", h.requireSession(h.ListLicenses))
	mux.HandleFunc("POST /api/v1/licenses", h.requireRole(model.RoleLegalOfficer, h.CreateLicense))
	mux.HandleFunc("GET /api/v1/users", h.requireRole(model.RoleManager, h.ListUsers))
	mux.HandleFunc("POST /api/v1/users", h.requireRole(model.RoleManager, h.RegisterUser))
	mux.HandleFunc("GET /api/v1/dashboard/{role}", h.Dashboard)
	mux.HandleFunc("POST /api/v1/request-developer", h.RequestDeveloper)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Login authenticates a credential and sets the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.authSvc.Authenticate(r.Context(), req.Email, req.Password)
	if errors.Is(err, application.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials or user not found.")
		return
	}
	if err != nil {
		h.logger.Error("failed to authenticate", "email", req.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// Logout ends the current session and clears the cookie. Logging out without
// a session is a no-op.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if err := h.authSvc.EndSession(r.Context(), c.Value); err != nil {
			h.logger.Error("failed to end session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

// Session returns the current session, or 401 when none is active.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	session := h.sessionFromRequest(r)
	if session == nil {
		writeError(w, http.StatusUnauthorized, "no active session")
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(*session))
}

// ListLicenses returns all licenses annotated with status and remaining
// time. Every authenticated role may view licenses.
func (h *Handler) ListLicenses(w http.ResponseWriter, r *http.Request) {
	views, err := h.licenseSvc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list licenses", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]LicenseResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toLicenseResponse(v))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateLicense creates a new license record. Gated to the legal officer
// role; the creator identity is taken from the session, not the body.
func (h *Handler) CreateLicense(w http.ResponseWriter, r *http.Request) {
	session := h.sessionFromRequest(r)
	if session == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateLicenseRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lic, err := h.licenseSvc.Create(r.Context(), application.CreateLicenseInput{
		Name:           req.Name,
		StartDate:      req.StartDate,
		ExpirationDate: req.ExpirationDate,
		AddedBy:        session.Email,
	})

	var verr *application.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to create license", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	now := time.Now()
	writeJSON(w, http.StatusCreated, toLicenseResponse(application.LicenseView{
		License:   lic,
		Status:    lic.StatusAt(now),
		Remaining: lic.RemainingAt(now),
	}))
}

// ListUsers returns all registered credentials. Manager only.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}

	writeJSON(w, http.StatusOK, resp)
}

// RegisterUser creates or overwrites a credential. Manager only; an existing
// credential for the same email is replaced wholesale.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authSvc.Register(r.Context(), req.Email, req.Password, role)

	var verr *application.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to register user", "email", req.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// Dashboard serves the role-gated view data. The guard re-derives the
// session on every request: an unknown role 404s, an absent session is
// denied to the entry point, and a mismatched role is redirected to its own
// dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	role, err := model.ParseRole(r.PathValue("role"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown dashboard")
		return
	}

	session := h.sessionFromRequest(r)

	decision, location := application.Authorize(role, session)
	switch decision {
	case application.DecisionDeny:
		w.Header().Set("Location", location)
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	case application.DecisionRedirect:
		w.Header().Set("Location", location)
		writeJSON(w, http.StatusSeeOther, redirectResponse{Redirect: location})
		return
	}

	views, err := h.licenseSvc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list licenses", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	licenses := make([]LicenseResponse, 0, len(views))
	for _, v := range views {
		licenses = append(licenses, toLicenseResponse(v))
	}

	resp := DashboardResponse{
		Role:     string(session.Role),
		Email:    session.Email,
		Licenses: licenses,
	}

	// User administration is part of the manager view only.
	if session.Role == model.RoleManager {
		users, err := h.userStore.ListAll(r.Context())
		if err != nil {
			h.logger.Error("failed to list users", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		resp.Users = make([]UserResponse, 0, len(users))
		for _, u := range users {
			resp.Users = append(resp.Users, toUserResponse(u))
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// RequestDeveloper relays a developer-access request to the manager's inbox.
// Public endpoint; failures are terminal and require manual resubmission.
func (h *Handler) RequestDeveloper(w http.ResponseWriter, r *http.Request) {
	var req RequestDeveloperRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.requestSvc.RequestDeveloperAccess(r.Context(), req.Name, req.Email)
	if errors.Is(err, application.ErrManagerEmailNotConfigured) {
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Manager email not configured."})
		return
	}
	if err != nil {
		h.logger.Error("failed to send developer access request", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to send email request.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": map[string]string{"id": id}})
}

// Health returns a liveness response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// sessionFromRequest resolves the session cookie to an active session, or
// nil when the cookie is missing, stale, or invalid.
func (h *Handler) sessionFromRequest(r *http.Request) *model.Session {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	session, err := h.authSvc.CurrentSession(r.Context(), c.Value)
	if err != nil {
		return nil
	}

	return &session
}

// decodeAndValidate decodes the JSON body into v and validates it against
// its struct tags, reporting the first failing field by its JSON name.
func (h *Handler) decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}

	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "required" {
				return fmt.Errorf("%s is required", fe.Field())
			}
			return fmt.Errorf("%s must be a valid %s", fe.Field(), fe.Tag())
		}
		return err
	}

	return nil
}
