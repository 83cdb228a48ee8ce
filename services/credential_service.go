package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blogem/lanauthgate/models"
	"github.com/blogem/lanauthgate/repositories"
)

// AdminPasswordKey is the app_config key holding the admin password hash
const AdminPasswordKey = "admin_password"

const adminPasswordDescription = "Administrator password"

// CredentialService interface defines admin password management.
// None of its operations write to the audit log; callers decide what to audit.
type CredentialService interface {
	GetHash(ctx context.Context) (string, error)
	SetPassword(ctx context.Context, password string) error
	Verify(candidate, hash string) bool
	IsDefault(ctx context.Context) (bool, error)
	Authenticate(ctx context.Context, password string) (bool, error)
	ChangePassword(ctx context.Context, form *models.PasswordChangeForm) error
	PasswordHint(ctx context.Context) (*models.PasswordHint, error)
}

// credentialService implements CredentialService interface
type credentialService struct {
	configRepo      repositories.ConfigRepository
	hasher          CredentialHasher
	defaultPassword string
	logger          *slog.Logger
}

// NewCredentialService creates a new credential service
func NewCredentialService(configRepo repositories.ConfigRepository, hasher CredentialHasher, defaultPassword string, logger *slog.Logger) CredentialService {
	return &credentialService{
		configRepo:      configRepo,
		hasher:          hasher,
		defaultPassword: defaultPassword,
		logger:          logger,
	}
}

// GetHash returns the stored admin hash, initializing it from the default
// password on first use
func (s *credentialService) GetHash(ctx context.Context) (string, error) {
	hash, err := s.configRepo.Get(ctx, AdminPasswordKey)
	if err == nil {
		return hash, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return "", fromRepository(err, "Password not configured")
	}

	defaultHash, err := s.hasher.Hash(s.defaultPassword)
	if err != nil {
		return "", newError(KindInternal, "An internal error occurred", err)
	}

	hash, err = s.configRepo.GetOrInit(ctx, AdminPasswordKey, defaultHash, adminPasswordDescription)
	if err != nil {
		return "", fromRepository(err, "Password not configured")
	}

	return hash, nil
}

// SetPassword replaces the stored hash with the hash of password
func (s *credentialService) SetPassword(ctx context.Context, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return newError(KindInternal, "An internal error occurred", err)
	}

	if err := s.configRepo.Set(ctx, AdminPasswordKey, hash, adminPasswordDescription); err != nil {
		return fromRepository(err, "Password not configured")
	}

	return nil
}

// Verify checks candidate against hash
func (s *credentialService) Verify(candidate, hash string) bool {
	return s.hasher.Verify(candidate, hash)
}

// IsDefault reports whether the admin password is still the factory default
func (s *credentialService) IsDefault(ctx context.Context) (bool, error) {
	hash, err := s.GetHash(ctx)
	if err != nil {
		return false, err
	}
	return s.Verify(s.defaultPassword, hash), nil
}

// Authenticate verifies password against the stored hash. A hash written by a
// weaker scheme is upgraded in place after a successful match.
func (s *credentialService) Authenticate(ctx context.Context, password string) (bool, error) {
	hash, err := s.GetHash(ctx)
	if err != nil {
		return false, err
	}

	if !s.Verify(password, hash) {
		return false, nil
	}

	if s.hasher.NeedsRehash(hash) {
		if err := s.SetPassword(ctx, password); err != nil {
			s.logger.Warn("failed to upgrade password hash", "error", err)
		}
	}

	return true, nil
}

// ChangePassword validates the form, checks the current password and stores the new one
func (s *credentialService) ChangePassword(ctx context.Context, form *models.PasswordChangeForm) error {
	if errs := form.Validate(); errs.HasErrors() {
		return newError(KindValidation, errs.GetMessages()[0], errs)
	}

	ok, err := s.Authenticate(ctx, form.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return newError(KindUnauthenticated, "Current password incorrect", nil)
	}

	if err := s.SetPassword(ctx, form.NewPassword); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	return nil
}

// PasswordHint reveals the default password only while it is still in use
func (s *credentialService) PasswordHint(ctx context.Context) (*models.PasswordHint, error) {
	isDefault, err := s.IsDefault(ctx)
	if err != nil {
		return nil, err
	}

	if isDefault {
		return &models.PasswordHint{IsDefault: true, Hint: "Initial password: " + s.defaultPassword}, nil
	}
	return &models.PasswordHint{IsDefault: false, Hint: "Please enter the admin password"}, nil
}
