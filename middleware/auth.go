package middleware

import (
	"net/http"

	"github.com/blogem/lanauthgate/sessions"
	"github.com/blogem/lanauthgate/userctx"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "session_id"

// RequireAuth ensures the caller holds a live session.
// If not authenticated, it answers 401 before the handler runs.
func RequireAuth(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "Not logged in")
				return
			}

			session, err := store.Lookup(cookie.Value)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "Session expired, please log in again")
				return
			}

			// Add principal and token to request context for use in handlers
			ctx := userctx.SetPrincipal(r.Context(), session.Principal)
			ctx = userctx.SetSessionToken(ctx, session.Token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
