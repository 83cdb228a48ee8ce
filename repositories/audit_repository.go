package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/lanauthgate/models"
)

// AuditRepository handles audit log persistence
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditEntry) error
	Since(ctx context.Context, sinceID int64, limit int) ([]models.AuditEntry, error)
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
	Clear(ctx context.Context) (int64, error)
}

type sqliteAuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &sqliteAuditRepository{db: db}
}

// Create inserts a new audit log entry and fills in its ID and timestamp
func (r *sqliteAuditRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	query := `
		INSERT INTO action_logs (timestamp, ip_address, action, details)
		VALUES (?, ?, ?, ?)
	`

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format(models.TimestampLayout)
	}

	result, err := r.db.ExecContext(ctx, query,
		entry.Timestamp,
		entry.IPAddress,
		string(entry.Action),
		entry.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	entry.ID = id
	return nil
}

// Since returns up to limit entries with an ID greater than sinceID, oldest first
func (r *sqliteAuditRepository) Since(ctx context.Context, sinceID int64, limit int) ([]models.AuditEntry, error) {
	query := `
		SELECT id, timestamp, ip_address, action, details
		FROM action_logs
		WHERE id > ?
		ORDER BY id ASC
		LIMIT ?
	`
	return r.query(ctx, query, sinceID, limit)
}

// Recent returns the newest limit entries, newest first
func (r *sqliteAuditRepository) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	query := `
		SELECT id, timestamp, ip_address, action, details
		FROM action_logs
		ORDER BY id DESC
		LIMIT ?
	`
	return r.query(ctx, query, limit)
}

// Clear deletes every audit entry. IDs keep increasing afterwards.
func (r *sqliteAuditRepository) Clear(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM action_logs`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear audit log: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (r *sqliteAuditRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var entry models.AuditEntry
		var ip, details sql.NullString
		var action string
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &ip, &action, &details); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.IPAddress = ip.String
		entry.Action = models.ActionKind(action)
		entry.Details = details.String
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log: %w", err)
	}

	return entries, nil
}
