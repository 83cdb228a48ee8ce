package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blogem/lanauthgate/models"
)

// RuleRepository interface defines API rule database operations
type RuleRepository interface {
	GetAll(ctx context.Context) ([]models.Rule, error)
	GetByID(ctx context.Context, id int64) (*models.Rule, error)
	Create(ctx context.Context, rule *models.Rule) error
	Update(ctx context.Context, id int64, patch models.RulePatch) (*models.Rule, error)
	Delete(ctx context.Context, id int64) (*models.Rule, error)
	CheckAndCount(ctx context.Context, path string) (*models.CheckResult, error)
	ResetCallCount(ctx context.Context, id int64) (*models.Rule, error)
	ResetAllCallCounts(ctx context.Context) (int64, error)
	Export(ctx context.Context) ([]models.ExportItem, error)
	UpsertBatch(ctx context.Context, items []models.ExportItem) ([]error, int, error)
	InsertMissing(ctx context.Context, items []models.ExportItem) error
	Count(ctx context.Context) (int, error)
}

// ruleRepository implements RuleRepository interface
type ruleRepository struct {
	db *sql.DB
}

// NewRuleRepository creates a new rule repository
func NewRuleRepository(db *sql.DB) RuleRepository {
	return &ruleRepository{db: db}
}

const ruleColumns = `id, api_path, enabled, description, call_count, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*models.Rule, error) {
	var rule models.Rule
	var description sql.NullString
	var callCount sql.NullInt64
	var createdAt sqliteTime

	err := row.Scan(
		&rule.ID,
		&rule.Path,
		&rule.Enabled,
		&description,
		&callCount,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	// Convert NULL values to zero values
	rule.Description = description.String
	rule.CallCount = callCount.Int64
	if createdAt.Valid {
		rule.CreatedAt = createdAt.Time
	}

	return &rule, nil
}

// GetAll retrieves all rules, newest first
func (r *ruleRepository) GetAll(ctx context.Context) ([]models.Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM api_auth ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	rules := []models.Rule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, *rule)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}

	return rules, nil
}

// GetByID retrieves a rule by ID
func (r *ruleRepository) GetByID(ctx context.Context, id int64) (*models.Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM api_auth WHERE id = ?`

	rule, err := scanRule(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rule with ID %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}

	return rule, nil
}

// Create inserts a new rule with a zero call count
func (r *ruleRepository) Create(ctx context.Context, rule *models.Rule) error {
	query := `
		INSERT INTO api_auth (api_path, enabled, description, call_count, created_at)
		VALUES (?, ?, ?, 0, ?)
	`

	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query,
		rule.Path,
		rule.Enabled,
		rule.Description,
		rule.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("rule with path %s: %w", rule.Path, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	rule.ID = id
	rule.CallCount = 0
	return nil
}

// Update applies the supplied fields of patch and returns the updated rule
func (r *ruleRepository) Update(ctx context.Context, id int64, patch models.RulePatch) (*models.Rule, error) {
	var sets []string
	var args []interface{}

	if patch.Enabled != nil {
		sets = append(sets, "enabled = ?")
		args = append(args, *patch.Enabled)
	}
	if patch.Path != nil {
		sets = append(sets, "api_path = ?")
		args = append(args, *patch.Path)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	args = append(args, id)
	query := `UPDATE api_auth SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("rule with path %s: %w", *patch.Path, ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("rule with ID %d: %w", id, ErrNotFound)
	}

	rule, err := scanRule(tx.QueryRowContext(ctx, `SELECT `+ruleColumns+` FROM api_auth WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to reload rule: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rule update: %w", err)
	}

	return rule, nil
}

// Delete removes a rule by ID and returns what was removed
func (r *ruleRepository) Delete(ctx context.Context, id int64) (*models.Rule, error) {
	query := `DELETE FROM api_auth WHERE id = ? RETURNING ` + ruleColumns

	rule, err := scanRule(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rule with ID %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete rule: %w", err)
	}

	return rule, nil
}

// CheckAndCount increments the call counter of path and returns its enabled
// flag in a single statement, so concurrent checks never lose an increment.
// Returns ErrNotFound when no rule matches; nothing is counted in that case.
func (r *ruleRepository) CheckAndCount(ctx context.Context, path string) (*models.CheckResult, error) {
	query := `
		UPDATE api_auth SET call_count = COALESCE(call_count, 0) + 1
		WHERE api_path = ?
		RETURNING enabled, call_count
	`

	result := models.CheckResult{Path: path}
	err := r.db.QueryRowContext(ctx, query, path).Scan(&result.Enabled, &result.CallCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rule with path %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check rule: %w", err)
	}

	result.Authorized = result.Enabled
	return &result, nil
}

// ResetCallCount zeroes the call counter of one rule
func (r *ruleRepository) ResetCallCount(ctx context.Context, id int64) (*models.Rule, error) {
	query := `UPDATE api_auth SET call_count = 0 WHERE id = ? RETURNING ` + ruleColumns

	rule, err := scanRule(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rule with ID %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reset call count: %w", err)
	}

	return rule, nil
}

// ResetAllCallCounts zeroes every call counter and returns the number of rules touched
func (r *ruleRepository) ResetAllCallCounts(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE api_auth SET call_count = 0`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset call counts: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// Export returns path, enabled and description of every rule in storage order
func (r *ruleRepository) Export(ctx context.Context) ([]models.ExportItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT api_path, enabled, description FROM api_auth ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules for export: %w", err)
	}
	defer rows.Close()

	items := []models.ExportItem{}
	for rows.Next() {
		var item models.ExportItem
		var description sql.NullString
		if err := rows.Scan(&item.Path, &item.Enabled, &description); err != nil {
			return nil, fmt.Errorf("failed to scan exported rule: %w", err)
		}
		item.Description = description.String
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exported rules: %w", err)
	}

	return items, nil
}

// UpsertBatch inserts or replaces every item by path inside one transaction.
// A failing item does not stop the batch: its error is returned at the same
// index of the first result, nil marking success. The second result is the
// number of rules stored once the batch is committed.
func (r *ruleRepository) UpsertBatch(ctx context.Context, items []models.ExportItem) ([]error, int, error) {
	query := `
		INSERT INTO api_auth (api_path, enabled, description, call_count, created_at)
		VALUES (?, ?, ?, 0, ?)
		ON CONFLICT(api_path) DO UPDATE SET
			enabled = excluded.enabled,
			description = excluded.description
	`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to prepare import statement: %w", err)
	}
	defer stmt.Close()

	itemErrs := make([]error, len(items))
	now := time.Now().UTC()
	for i, item := range items {
		if _, err := stmt.ExecContext(ctx, item.Path, item.Enabled, item.Description, now); err != nil {
			itemErrs[i] = fmt.Errorf("database error: %w", err)
		}
	}

	var total int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM api_auth`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rules after import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit import: %w", err)
	}

	return itemErrs, total, nil
}

// InsertMissing inserts items whose path is not stored yet and leaves existing rules alone
func (r *ruleRepository) InsertMissing(ctx context.Context, items []models.ExportItem) error {
	query := `
		INSERT OR IGNORE INTO api_auth (api_path, enabled, description, call_count, created_at)
		VALUES (?, ?, ?, 0, ?)
	`

	now := time.Now().UTC()
	for _, item := range items {
		if _, err := r.db.ExecContext(ctx, query, item.Path, item.Enabled, item.Description, now); err != nil {
			return fmt.Errorf("failed to insert rule %s: %w", item.Path, err)
		}
	}

	return nil
}

// Count returns the total number of rules
func (r *ruleRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM api_auth`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rules: %w", err)
	}

	return count, nil
}
