// Package app wires configuration, storage, services and HTTP routes into a
// runnable gate.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/blogem/lanauthgate/authenticator"
	"github.com/blogem/lanauthgate/config"
	"github.com/blogem/lanauthgate/controllers"
	"github.com/blogem/lanauthgate/database"
	"github.com/blogem/lanauthgate/metrics"
	"github.com/blogem/lanauthgate/middleware"
	"github.com/blogem/lanauthgate/repositories"
	"github.com/blogem/lanauthgate/services"
	"github.com/blogem/lanauthgate/sessions"
	"github.com/blogem/lanauthgate/stream"
)

const (
	shutdownTimeout    = 10 * time.Second
	limiterPruneEvery  = time.Minute
	readHeaderTimeout  = 10 * time.Second
	ssoDiscoverTimeout = 15 * time.Second
)

// App is a fully wired gate
type App struct {
	Config   *config.Config
	DB       *sql.DB
	Services *services.Services
	Sessions *sessions.MemoryStore
	Metrics  *metrics.Metrics
	Hub      *stream.Hub

	limiter *middleware.RateLimiter
	handler http.Handler
	logger  *slog.Logger

	// streams is cancelled when the server starts shutting down
	streams     context.Context
	stopStreams context.CancelFunc
}

// New opens the database, runs migrations and builds every component.
// The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	hasher, err := services.NewHasher(cfg.PasswordHasher)
	if err != nil {
		return nil, err
	}

	db, err := database.InitializeDatabase(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	a, err := build(ctx, cfg, db, hasher, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func build(ctx context.Context, cfg *config.Config, db *sql.DB, hasher services.CredentialHasher, logger *slog.Logger) (*App, error) {
	m := metrics.New()
	hub := stream.NewHub()

	repos := repositories.NewRepositories(db)
	srvs := services.NewServices(repos, services.Options{
		Hasher:          hasher,
		DefaultPassword: cfg.DefaultPassword,
		Publisher:       hub,
		Metrics:         m,
		Logger:          logger,
	})

	if cfg.SeedExampleRules {
		if err := srvs.Registry.SeedExamples(ctx); err != nil {
			return nil, fmt.Errorf("failed to seed example rules: %w", err)
		}
	}

	var sso authenticator.Provider
	if cfg.OIDC.Enabled() {
		discoverCtx, cancel := context.WithTimeout(ctx, ssoDiscoverTimeout)
		defer cancel()

		provider, err := authenticator.NewOpenIDProvider(discoverCtx, authenticator.Config{
			IssuerURL:    cfg.OIDC.Issuer,
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			RedirectURL:  cfg.OIDC.RedirectURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SSO provider: %w", err)
		}
		sso = provider
	}

	store := sessions.NewMemoryStore(cfg.SessionTTL, logger)
	tailer := stream.NewTailer(srvs.Audit, hub, stream.Settings{
		BatchLimit: cfg.Stream.BatchLimit,
		BatchDelay: cfg.Stream.BatchDelay,
		IdleDelay:  cfg.Stream.IdleDelay,
	}, m, logger)

	ctrl := controllers.NewControllers(srvs, controllers.Options{
		Sessions:      store,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.UseHTTPS,
		Tailer:        tailer,
		SSOProvider:   sso,
		SSOAllowed:    cfg.OIDC.AllowedUsers,
		Logger:        logger,
	})

	var limiter *middleware.RateLimiter
	if cfg.LoginRatePerMinute > 0 {
		limiter = middleware.NewLoginRateLimiter(cfg.LoginRatePerMinute)
	}

	streams, stopStreams := context.WithCancel(context.Background())
	a := &App{
		Config:      cfg,
		DB:          db,
		Services:    srvs,
		Sessions:    store,
		Metrics:     m,
		Hub:         hub,
		limiter:     limiter,
		logger:      logger,
		streams:     streams,
		stopStreams: stopStreams,
	}

	handler, err := a.setupRouter(ctrl)
	if err != nil {
		return nil, err
	}
	a.handler = handler

	return a, nil
}

// Handler returns the root HTTP handler
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves HTTP on the configured port until ctx is done, then shuts down
// gracefully. Background maintenance runs for the lifetime of the server.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Sessions.Run(ctx, sessions.CleanupInterval)
	}()
	if a.limiter != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.limiter.Run(ctx, limiterPruneEvery)
		}()
	}

	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           a.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	// Streams never finish on their own, so they are ended while ordinary
	// requests drain
	srv.RegisterOnShutdown(a.stopStreams)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("LanAuthGate starting", "addr", srv.Addr, "db", a.Config.DBPath, "sso", a.Config.OIDC.Enabled())
		errCh <- srv.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("failed to serve: %w", err)
		}
	case <-ctx.Done():
		a.logger.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			runErr = fmt.Errorf("failed to shut down: %w", err)
		}
	}

	cancel()
	wg.Wait()
	return runErr
}

// Close ends open audit streams and releases the database
func (a *App) Close() error {
	a.stopStreams()
	return a.DB.Close()
}
