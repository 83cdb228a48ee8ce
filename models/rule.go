package models

import (
	"strings"
	"time"
)

// Rule represents one gated API path
type Rule struct {
	ID          int64     `json:"id"`
	Path        string    `json:"api_path"`
	Enabled     bool      `json:"enabled"`
	Description string    `json:"description"`
	CallCount   int64     `json:"call_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// RuleForm represents the payload for creating a rule.
// Enabled defaults to true when omitted.
type RuleForm struct {
	Path        string `json:"api_path"`
	Description string `json:"description"`
	Enabled     *bool  `json:"enabled"`
}

// IsEnabled returns the requested enabled flag, defaulting to true
func (f *RuleForm) IsEnabled() bool {
	return f.Enabled == nil || *f.Enabled
}

// MaxPathLength is the longest accepted API path
const MaxPathLength = 2048

// PathTooLongMessage is reported for a path longer than MaxPathLength
const PathTooLongMessage = "API path must be less than 2048 characters"

// Validate validates the rule form data
func (f *RuleForm) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(f.Path) == "" {
		errs = append(errs, ValidationError{Field: "api_path", Message: "API path cannot be empty"})
	}

	if len(strings.TrimSpace(f.Path)) > MaxPathLength {
		errs = append(errs, ValidationError{Field: "api_path", Message: PathTooLongMessage})
	}

	return errs
}

// RulePatch carries a partial update; nil fields are left untouched
type RulePatch struct {
	Path        *string `json:"api_path,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p RulePatch) IsEmpty() bool {
	return p.Path == nil && p.Enabled == nil && p.Description == nil
}

// IsToggle reports whether the patch only flips the enabled flag
func (p RulePatch) IsToggle() bool {
	return p.Enabled != nil && p.Path == nil && p.Description == nil
}

// ExportItem is one element of the exported rule configuration
type ExportItem struct {
	Path        string `json:"api_path"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}

// ImportResult summarizes a best-effort import batch
type ImportResult struct {
	Message         string   `json:"message"`
	ImportedCount   int      `json:"imported_count"`
	ErrorCount      int      `json:"error_count"`
	TotalInDatabase int      `json:"total_in_database"`
	Errors          []string `json:"errors"`
}

// CheckResult is the outcome of a check-and-count on one path
type CheckResult struct {
	Path       string `json:"api_path"`
	Authorized bool   `json:"authorized"`
	Enabled    bool   `json:"enabled"`
	CallCount  int64  `json:"call_count"`
}
