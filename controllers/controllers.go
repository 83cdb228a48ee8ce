package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/lanauthgate/authenticator"
	"github.com/blogem/lanauthgate/services"
	"github.com/blogem/lanauthgate/sessions"
	"github.com/blogem/lanauthgate/stream"
)

// maxBodyBytes caps JSON request bodies; imports are the largest payloads
const maxBodyBytes = 10 << 20

// errorResponse is the body of every non-2xx JSON response
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// messageResponse acknowledges an operation
type messageResponse struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, status int, code services.Kind, message string) {
	writeJSON(w, status, errorResponse{Error: string(code), Message: message})
}

// writeServiceError maps a service error to its HTTP status. Internal errors
// are logged with their cause and answered with a generic message only.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error, operation string) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		svcErr = &services.Error{Kind: services.KindInternal, Message: "An internal error occurred", Err: err}
	}

	status := statusFor(svcErr.Kind)
	if status == http.StatusInternalServerError {
		logger.Error("operation failed", "operation", operation, "error", err)
		writeError(w, status, services.KindInternal, "An internal error occurred")
		return
	}

	writeError(w, status, svcErr.Kind, svcErr.Message)
}

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindUnauthenticated:
		return http.StatusUnauthorized
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	case services.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// readBody returns the raw request body
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return io.ReadAll(r.Body)
}

// parseID reads the {id} URL parameter
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid ID")
	}
	return id, nil
}

// Options carries the collaborators the controllers need besides the services
type Options struct {
	Sessions      sessions.Store
	SessionTTL    time.Duration
	SecureCookies bool
	Tailer        *stream.Tailer
	SSOProvider   authenticator.Provider
	SSOAllowed    []string
	Logger        *slog.Logger
}

// Controllers holds all controller instances
type Controllers struct {
	Auth  *AuthController
	Rules *RuleController
	Audit *AuditController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, opts Options) *Controllers {
	return &Controllers{
		Auth:  NewAuthController(services, opts),
		Rules: NewRuleController(services, opts.Logger),
		Audit: NewAuditController(services, opts.Tailer, opts.Logger),
	}
}
