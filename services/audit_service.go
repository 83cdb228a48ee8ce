package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/blogem/lanauthgate/metrics"
	"github.com/blogem/lanauthgate/models"
	"github.com/blogem/lanauthgate/repositories"
	"github.com/blogem/lanauthgate/userctx"
)

// DefaultAuditListLimit is the number of entries listed when no limit is given
const DefaultAuditListLimit = 50

// maxAuditListLimit caps a single listing
const maxAuditListLimit = 1000

// AuditPublisher is notified after an entry has been persisted
type AuditPublisher interface {
	Publish(entry models.AuditEntry)
}

// AuditService interface defines the append-only audit log
type AuditService interface {
	Record(ctx context.Context, action models.ActionKind, details string) (*models.AuditEntry, error)
	Tail(ctx context.Context, sinceID int64, limit int) ([]models.AuditEntry, error)
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
	Clear(ctx context.Context) (int64, error)
}

// auditService implements AuditService interface
type auditService struct {
	auditRepo repositories.AuditRepository
	publisher AuditPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuditService creates a new audit service. publisher and m may be nil.
func NewAuditService(auditRepo repositories.AuditRepository, publisher AuditPublisher, m *metrics.Metrics, logger *slog.Logger) AuditService {
	return &auditService{
		auditRepo: auditRepo,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// Record persists an audited action with the caller's IP taken from ctx.
// Actions outside the audited set are dropped and (nil, nil) is returned.
func (s *auditService) Record(ctx context.Context, action models.ActionKind, details string) (*models.AuditEntry, error) {
	if !action.IsAllowed() {
		s.metrics.ObserveAuditDropped()
		return nil, nil
	}

	entry := &models.AuditEntry{
		Timestamp: s.now().Format(models.TimestampLayout),
		IPAddress: userctx.GetClientIP(ctx),
		Action:    action,
		Details:   details,
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return nil, newError(KindInternal, "An internal error occurred", err)
	}

	s.logger.Info("audit", "id", entry.ID, "ip", entry.IPAddress, "action", string(action), "details", details)
	s.metrics.ObserveAuditRecord(string(action))
	if s.publisher != nil {
		s.publisher.Publish(*entry)
	}

	return entry, nil
}

// Tail returns entries newer than sinceID in ascending ID order
func (s *auditService) Tail(ctx context.Context, sinceID int64, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		return []models.AuditEntry{}, nil
	}
	if sinceID < 0 {
		sinceID = 0
	}

	entries, err := s.auditRepo.Since(ctx, sinceID, limit)
	if err != nil {
		return nil, fromRepository(err, "Audit log not found")
	}
	return entries, nil
}

// Recent returns the newest entries, newest first
func (s *auditService) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultAuditListLimit
	}
	if limit > maxAuditListLimit {
		limit = maxAuditListLimit
	}

	entries, err := s.auditRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fromRepository(err, "Audit log not found")
	}
	return entries, nil
}

// Clear empties the audit log
func (s *auditService) Clear(ctx context.Context) (int64, error) {
	removed, err := s.auditRepo.Clear(ctx)
	if err != nil {
		return 0, fromRepository(err, "Audit log not found")
	}

	s.logger.Warn("audit log cleared", "removed", removed, "principal", userctx.GetPrincipal(ctx), "ip", userctx.GetClientIP(ctx))
	return removed, nil
}
