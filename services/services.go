package services

import (
	"log/slog"

	"github.com/blogem/lanauthgate/metrics"
	"github.com/blogem/lanauthgate/repositories"
)

// Options carries the collaborators shared by the services
type Options struct {
	Hasher          CredentialHasher
	DefaultPassword string
	Publisher       AuditPublisher
	Metrics         *metrics.Metrics
	Logger          *slog.Logger
}

// Services holds all service instances
type Services struct {
	Credentials CredentialService
	Registry    RegistryService
	Audit       AuditService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, opts Options) *Services {
	audit := NewAuditService(repos.Audit, opts.Publisher, opts.Metrics, opts.Logger)

	return &Services{
		Credentials: NewCredentialService(repos.Config, opts.Hasher, opts.DefaultPassword, opts.Logger),
		Registry:    NewRegistryService(repos.Rules, audit, opts.Metrics, opts.Logger),
		Audit:       audit,
	}
}
