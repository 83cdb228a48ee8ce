package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/blogem/lanauthgate/controllers"
	"github.com/blogem/lanauthgate/middleware"
)

const (
	requestTimeout  = 60 * time.Second
	ssoCookieName   = "lanauthgate_sso"
	ssoStateSeconds = 600
)

// setupRouter configures all routes
func (a *App) setupRouter(ctrl *controllers.Controllers) (http.Handler, error) {
	r := chi.NewRouter()

	// Middleware shared by every route, streams included
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.ClientIP(a.Config.TrustProxyHeaders))
	r.Use(middleware.RequestLogger(a.logger))
	r.Use(a.Metrics.Instrument)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "lanauthgate"}`)
	})
	r.Handle("/metrics", a.Metrics.Handler())

	requireAuth := middleware.RequireAuth(a.Sessions)

	// Session middleware carries the OAuth state between login and callback
	var sessionHandler func(http.Handler) http.Handler
	if ctrl.Auth.SSOEnabled() {
		handler, err := session.Sessioner(session.Options{
			Provider:       "memory",
			ProviderConfig: "",
			CookieName:     ssoCookieName,
			Secure:         a.Config.UseHTTPS,
			Gclifetime:     ssoStateSeconds,
			Maxlifetime:    ssoStateSeconds,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize session: %w", err)
		}
		sessionHandler = handler
	}

	r.Route("/api/auth", func(r chi.Router) {
		// Long-lived audit streams must not be buffered or cut off
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(a.endOnShutdown)
			r.Get("/logs/stream", ctrl.Audit.Stream)
			r.Get("/logs/ws", ctrl.Audit.WebSocket)
		})

		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(requestTimeout))
			r.Use(chimiddleware.Compress(5, "application/json"))

			// PUBLIC ROUTES (no authentication required)
			r.With(a.loginLimiter).Post("/login", ctrl.Auth.Login)
			r.Get("/password-hint", ctrl.Auth.PasswordHint)
			r.Get("/check-session", ctrl.Auth.CheckSession)
			r.Post("/check", ctrl.Rules.Check)
			r.Get("/check/get", ctrl.Rules.CheckGet)

			// PROTECTED ROUTES (authentication required)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)

				r.Post("/logout", ctrl.Auth.Logout)
				r.Post("/change-password", ctrl.Auth.ChangePassword)

				r.Get("/list", ctrl.Rules.List)
				r.Post("/add", ctrl.Rules.Add)
				r.Put("/update/{id}", ctrl.Rules.Update)
				r.Delete("/delete/{id}", ctrl.Rules.Delete)
				r.Get("/export", ctrl.Rules.Export)
				r.Post("/import", ctrl.Rules.Import)
				r.Post("/reset-call-count/{id}", ctrl.Rules.ResetCallCount)
				r.Post("/reset-all-call-counts", ctrl.Rules.ResetAllCallCounts)

				r.Get("/logs", ctrl.Audit.List)
				r.Delete("/clear-logs", ctrl.Audit.Clear)
			})
		})

		if sessionHandler != nil {
			r.Group(func(r chi.Router) {
				r.Use(sessionHandler)
				r.Use(chimiddleware.Timeout(requestTimeout))
				r.With(a.loginLimiter).Get("/sso/login", ctrl.Auth.SSOLogin)
				r.Get("/sso/callback", ctrl.Auth.SSOCallback)
			})
		}
	})

	return r, nil
}

// endOnShutdown cancels the request context once the server starts shutting
// down. Shutdown does not wait for hijacked connections.
func (a *App) endOnShutdown(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		stop := context.AfterFunc(a.streams, cancel)
		defer stop()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loginLimiter throttles login attempts per client IP when configured
func (a *App) loginLimiter(next http.Handler) http.Handler {
	if a.limiter == nil {
		return next
	}
	return a.limiter.Middleware(next)
}
