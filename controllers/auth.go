package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gitea.com/go-chi/session"

	"github.com/blogem/lanauthgate/authenticator"
	"github.com/blogem/lanauthgate/middleware"
	"github.com/blogem/lanauthgate/models"
	"github.com/blogem/lanauthgate/services"
	"github.com/blogem/lanauthgate/sessions"
	"github.com/blogem/lanauthgate/userctx"
)

// AdminPrincipal is the principal of password logins
const AdminPrincipal = "admin"

const ssoStateKey = "sso_state"

// loginRequest is the login payload
type loginRequest struct {
	Password string `json:"password"`
}

// checkSessionResponse reports the caller's login state
type checkSessionResponse struct {
	LoggedIn  bool   `json:"logged_in"`
	SessionID string `json:"session_id,omitempty"`
	User      string `json:"user,omitempty"`
	Message   string `json:"message,omitempty"`
}

type AuthController struct {
	services      *services.Services
	sessions      sessions.Store
	ttl           time.Duration
	secureCookies bool
	sso           authenticator.Provider
	ssoAllowed    []string
	logger        *slog.Logger
}

func NewAuthController(services *services.Services, opts Options) *AuthController {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = sessions.DefaultTTL
	}
	return &AuthController{
		services:      services,
		sessions:      opts.Sessions,
		ttl:           ttl,
		secureCookies: opts.SecureCookies,
		sso:           opts.SSOProvider,
		ssoAllowed:    opts.SSOAllowed,
		logger:        opts.Logger,
	}
}

// SSOEnabled reports whether an OpenID provider is configured
func (ac *AuthController) SSOEnabled() bool {
	return ac.sso != nil
}

// Login verifies the admin password and issues a session cookie
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, services.KindValidation, err.Error())
		return
	}

	ok, err := ac.services.Credentials.Authenticate(r.Context(), req.Password)
	if err != nil {
		writeServiceError(w, ac.logger, err, "login")
		return
	}
	if !ok {
		ac.audit(r, models.ActionLogin, "success=false")
		writeError(w, http.StatusUnauthorized, services.KindUnauthenticated, "Incorrect password")
		return
	}

	if err := ac.startSession(w, AdminPrincipal); err != nil {
		writeServiceError(w, ac.logger, err, "login")
		return
	}

	ac.audit(r, models.ActionLogin, "success=true")
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Login successful"})
}

// Logout drops the caller's session, or every session of the caller with ?all=true
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	principal := userctx.GetPrincipal(r.Context())

	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))
	if all {
		n := ac.sessions.InvalidateByPrincipal(principal)
		ac.audit(r, models.ActionLogout, fmt.Sprintf("user=%s, sessions=%d", principal, n))
	} else {
		ac.sessions.Invalidate(userctx.GetSessionToken(r.Context()))
		ac.audit(r, models.ActionLogout, "user="+principal)
	}

	ac.clearCookie(w)
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Logged out successfully"})
}

// ChangePassword replaces the admin password. Existing sessions stay valid.
func (ac *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var form models.PasswordChangeForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeError(w, http.StatusBadRequest, services.KindValidation, err.Error())
		return
	}

	if err := ac.services.Credentials.ChangePassword(r.Context(), &form); err != nil {
		writeServiceError(w, ac.logger, err, "change password")
		return
	}

	ac.audit(r, models.ActionChangePassword, "Password changed")
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Password changed successfully"})
}

// PasswordHint tells the login page whether the default password is active
func (ac *AuthController) PasswordHint(w http.ResponseWriter, r *http.Request) {
	hint, err := ac.services.Credentials.PasswordHint(r.Context())
	if err != nil {
		writeServiceError(w, ac.logger, err, "password hint")
		return
	}
	writeJSON(w, http.StatusOK, hint)
}

// CheckSession reports whether the request carries a live session
func (ac *AuthController) CheckSession(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil {
		if sess, lookupErr := ac.sessions.Lookup(cookie.Value); lookupErr == nil {
			writeJSON(w, http.StatusOK, checkSessionResponse{
				LoggedIn:  true,
				SessionID: tokenPrefix(sess.Token),
				User:      sess.Principal,
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, checkSessionResponse{LoggedIn: false, Message: "Not logged in"})
}

// SSOLogin redirects to the OpenID provider
func (ac *AuthController) SSOLogin(w http.ResponseWriter, r *http.Request) {
	if ac.sso == nil {
		writeError(w, http.StatusNotFound, services.KindNotFound, "SSO is not configured")
		return
	}

	state, err := generateRandomState()
	if err != nil {
		writeServiceError(w, ac.logger, err, "sso login")
		return
	}

	// Save the state in the session to validate in callback
	sess := session.GetSession(r)
	if err := sess.Set(ssoStateKey, state); err != nil {
		writeServiceError(w, ac.logger, err, "sso login")
		return
	}

	http.Redirect(w, r, ac.sso.GetAuthURL(state), http.StatusTemporaryRedirect)
}

// SSOCallback completes the OpenID flow and issues a gate session for an
// allowed identity
func (ac *AuthController) SSOCallback(w http.ResponseWriter, r *http.Request) {
	if ac.sso == nil {
		writeError(w, http.StatusNotFound, services.KindNotFound, "SSO is not configured")
		return
	}

	sess := session.GetSession(r)
	storedState, _ := sess.Get(ssoStateKey).(string)
	if storedState == "" {
		writeError(w, http.StatusBadRequest, services.KindValidation, "State not found in session")
		return
	}
	_ = sess.Delete(ssoStateKey)

	if r.URL.Query().Get("state") != storedState {
		writeError(w, http.StatusBadRequest, services.KindValidation, "Invalid state parameter")
		return
	}

	token, err := ac.sso.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		ac.logger.Warn("sso code exchange failed", "error", err)
		writeError(w, http.StatusUnauthorized, services.KindUnauthenticated, "Failed to exchange authorization code")
		return
	}

	claims, err := ac.sso.GetClaims(r.Context(), token)
	if err != nil {
		ac.logger.Warn("sso token verification failed", "error", err)
		writeError(w, http.StatusUnauthorized, services.KindUnauthenticated, "Failed to verify ID token")
		return
	}

	principal, err := authenticator.Principal(claims, ac.ssoAllowed)
	if err != nil {
		ac.audit(r, models.ActionLogin, fmt.Sprintf("sso=true, user=%s, success=false", claims.Identity()))
		if errors.Is(err, authenticator.ErrNotAllowed) {
			writeError(w, http.StatusUnauthorized, services.KindUnauthenticated, "User is not allowed")
			return
		}
		writeError(w, http.StatusUnauthorized, services.KindUnauthenticated, "Failed to verify ID token")
		return
	}

	if err := ac.startSession(w, principal); err != nil {
		writeServiceError(w, ac.logger, err, "sso callback")
		return
	}

	ac.audit(r, models.ActionLogin, fmt.Sprintf("sso=true, user=%s, success=true", principal))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (ac *AuthController) startSession(w http.ResponseWriter, principal string) error {
	sess, err := ac.sessions.Create(principal)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(ac.ttl.Seconds()),
		HttpOnly: true,
		Secure:   ac.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (ac *AuthController) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ac.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// audit writes to the audit log; a failed write never fails the request
func (ac *AuthController) audit(r *http.Request, action models.ActionKind, details string) {
	if _, err := ac.services.Audit.Record(r.Context(), action, details); err != nil {
		ac.logger.Warn("failed to write audit entry", "action", action, "error", err)
	}
}

// tokenPrefix shows enough of a token to tell sessions apart
func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
