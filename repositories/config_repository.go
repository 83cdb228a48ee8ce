package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ConfigRepository stores single-row-per-key application settings
type ConfigRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value, description string) error
	GetOrInit(ctx context.Context, key, value, description string) (string, error)
}

type configRepository struct {
	db *sql.DB
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(db *sql.DB) ConfigRepository {
	return &configRepository{db: db}
}

// Get returns the value stored under key
func (r *configRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT config_value FROM app_config WHERE config_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("config key %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get config value: %w", err)
	}

	return value, nil
}

// Set stores value under key, replacing any prior value
func (r *configRepository) Set(ctx context.Context, key, value, description string) error {
	query := `
		INSERT INTO app_config (config_key, config_value, description, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(config_key) DO UPDATE SET
			config_value = excluded.config_value,
			description = excluded.description,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, key, value, description); err != nil {
		return fmt.Errorf("failed to set config value: %w", err)
	}

	return nil
}

// GetOrInit returns the value under key, storing value first when the key is
// absent. Concurrent callers all observe the single value that won the insert.
func (r *configRepository) GetOrInit(ctx context.Context, key, value, description string) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO app_config (config_key, config_value, description)
		VALUES (?, ?, ?)
		ON CONFLICT(config_key) DO NOTHING
	`, key, value, description)
	if err != nil {
		return "", fmt.Errorf("failed to initialize config value: %w", err)
	}

	var stored string
	if err := tx.QueryRowContext(ctx, `SELECT config_value FROM app_config WHERE config_key = ?`, key).Scan(&stored); err != nil {
		return "", fmt.Errorf("failed to get config value: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit config value: %w", err)
	}

	return stored, nil
}
