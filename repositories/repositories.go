package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Rules  RuleRepository
	Audit  AuditRepository
	Config ConfigRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Rules:  NewRuleRepository(db),
		Audit:  NewAuditRepository(db),
		Config: NewConfigRepository(db),
	}
}
