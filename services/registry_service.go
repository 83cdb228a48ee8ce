package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/blogem/lanauthgate/metrics"
	"github.com/blogem/lanauthgate/models"
	"github.com/blogem/lanauthgate/repositories"
)

const (
	// importErrorsInMessage is how many item errors are spelled out in the import message
	importErrorsInMessage = 5
	// importErrorsInResult is how many item errors are returned to the caller
	importErrorsInResult = 10
)

// ExampleRules are inserted on first run when seeding is enabled
var ExampleRules = []models.ExportItem{
	{Path: "/api/fastdem/v1", Enabled: true, Description: "Fast Demo API V1"},
	{Path: "/api/fastdem/v2", Enabled: false, Description: "Fast Demo API V2"},
	{Path: "/api/fastfault/v1", Enabled: true, Description: "Fast Fault API V1"},
}

// RegistryService interface defines the API path authorization registry
type RegistryService interface {
	AddRule(ctx context.Context, form *models.RuleForm) (*models.Rule, error)
	UpdateRule(ctx context.Context, id int64, patch models.RulePatch) (*models.Rule, error)
	DeleteRule(ctx context.Context, id int64) (*models.Rule, error)
	ListRules(ctx context.Context) ([]models.Rule, error)
	CheckAndCount(ctx context.Context, path string) (*models.CheckResult, error)
	Check(ctx context.Context, path string, action models.ActionKind) (*models.CheckResult, error)
	ResetCallCount(ctx context.Context, id int64) (*models.Rule, error)
	ResetAllCallCounts(ctx context.Context) (int64, error)
	Export(ctx context.Context) ([]models.ExportItem, error)
	Import(ctx context.Context, data []byte) (*models.ImportResult, error)
	ImportItems(ctx context.Context, items []json.RawMessage) (*models.ImportResult, error)
	SeedExamples(ctx context.Context) error
}

// registryService implements RegistryService interface
type registryService struct {
	ruleRepo repositories.RuleRepository
	audit    AuditService
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewRegistryService creates a new registry service
func NewRegistryService(ruleRepo repositories.RuleRepository, audit AuditService, m *metrics.Metrics, logger *slog.Logger) RegistryService {
	return &registryService{
		ruleRepo: ruleRepo,
		audit:    audit,
		metrics:  m,
		logger:   logger,
	}
}

// NormalizePath returns the canonical form of an API path: surrounding
// whitespace is dropped and it always begins with "/"
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// AddRule creates a rule for the canonical form of form.Path
func (s *registryService) AddRule(ctx context.Context, form *models.RuleForm) (*models.Rule, error) {
	if errs := form.Validate(); errs.HasErrors() {
		return nil, newError(KindValidation, errs.GetMessages()[0], errs)
	}

	path := NormalizePath(form.Path)
	if !strings.HasPrefix(path, "/") {
		return nil, newError(KindValidation, "API path must start with a slash (/)", nil)
	}

	rule := &models.Rule{
		Path:        path,
		Enabled:     form.IsEnabled(),
		Description: form.Description,
	}

	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, fromRepository(err, "API not found")
	}

	s.record(ctx, models.ActionAddAPI, fmt.Sprintf("path=%s, enabled=%t", rule.Path, rule.Enabled))
	return rule, nil
}

// UpdateRule applies only the supplied fields; the call count is preserved
func (s *registryService) UpdateRule(ctx context.Context, id int64, patch models.RulePatch) (*models.Rule, error) {
	if patch.Path != nil {
		if strings.TrimSpace(*patch.Path) == "" {
			return nil, newError(KindValidation, "API path cannot be empty", nil)
		}
		path := NormalizePath(*patch.Path)
		if len(path) > models.MaxPathLength {
			return nil, newError(KindValidation, models.PathTooLongMessage, nil)
		}
		patch.Path = &path
	}

	rule, err := s.ruleRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fromRepository(err, "API not found")
	}

	if !patch.IsEmpty() {
		action := models.ActionUpdateAPI
		if patch.IsToggle() {
			action = models.ActionToggleAPI
		}
		s.record(ctx, action, fmt.Sprintf("id=%d, path=%s, enabled=%t", rule.ID, rule.Path, rule.Enabled))
	}

	return rule, nil
}

// DeleteRule removes a rule and returns it
func (s *registryService) DeleteRule(ctx context.Context, id int64) (*models.Rule, error) {
	rule, err := s.ruleRepo.Delete(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "API not found")
	}

	s.record(ctx, models.ActionDeleteAPI, fmt.Sprintf("id=%d, path=%s", rule.ID, rule.Path))
	return rule, nil
}

// ListRules returns every rule, newest first
func (s *registryService) ListRules(ctx context.Context) ([]models.Rule, error) {
	rules, err := s.ruleRepo.GetAll(ctx)
	if err != nil {
		return nil, fromRepository(err, "API not found")
	}
	return rules, nil
}

// CheckAndCount reports whether path is authorized and counts the call.
// An unknown path is unauthorized and not counted; that is not an error.
func (s *registryService) CheckAndCount(ctx context.Context, path string) (*models.CheckResult, error) {
	canonical := NormalizePath(path)

	result, err := s.ruleRepo.CheckAndCount(ctx, canonical)
	if errors.Is(err, repositories.ErrNotFound) {
		s.metrics.ObserveCheck(metrics.CheckUnknown)
		return &models.CheckResult{Path: canonical}, nil
	}
	if err != nil {
		return nil, fromRepository(err, "API not found")
	}

	if result.Authorized {
		s.metrics.ObserveCheck(metrics.CheckAuthorized)
	} else {
		s.metrics.ObserveCheck(metrics.CheckDenied)
	}
	return result, nil
}

// Check runs CheckAndCount and records the check under action
func (s *registryService) Check(ctx context.Context, path string, action models.ActionKind) (*models.CheckResult, error) {
	if strings.TrimSpace(path) == "" {
		return nil, newError(KindValidation, "Missing path parameter", nil)
	}

	result, err := s.CheckAndCount(ctx, path)
	if err != nil {
		return nil, err
	}

	s.record(ctx, action, fmt.Sprintf("path=%s, authorized=%t", path, result.Authorized))
	return result, nil
}

// ResetCallCount zeroes one rule's counter
func (s *registryService) ResetCallCount(ctx context.Context, id int64) (*models.Rule, error) {
	rule, err := s.ruleRepo.ResetCallCount(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "API not found")
	}

	s.record(ctx, models.ActionResetCallCount, fmt.Sprintf("id=%d, path=%s", rule.ID, rule.Path))
	return rule, nil
}

// ResetAllCallCounts zeroes every counter
func (s *registryService) ResetAllCallCounts(ctx context.Context) (int64, error) {
	n, err := s.ruleRepo.ResetAllCallCounts(ctx)
	if err != nil {
		return 0, fromRepository(err, "API not found")
	}

	s.record(ctx, models.ActionResetCallCount, fmt.Sprintf("all, rules=%d", n))
	return n, nil
}

// Export returns the rule configuration without ids, counters or timestamps
func (s *registryService) Export(ctx context.Context) ([]models.ExportItem, error) {
	items, err := s.ruleRepo.Export(ctx)
	if err != nil {
		return nil, fromRepository(err, "API not found")
	}

	s.record(ctx, models.ActionExportConfig, fmt.Sprintf("count=%d", len(items)))
	return items, nil
}

// Import parses data as a JSON array and imports it item by item
func (s *registryService) Import(ctx context.Context, data []byte) (*models.ImportResult, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		var doc interface{}
		if jsonErr := json.Unmarshal(data, &doc); jsonErr != nil {
			return nil, newError(KindValidation, "JSON parse failed: "+jsonErr.Error(), jsonErr)
		}
		return nil, newError(KindValidation, "Configuration file format error: expected an array", err)
	}
	if items == nil {
		return nil, newError(KindValidation, "Configuration file format error: expected an array", nil)
	}

	return s.ImportItems(ctx, items)
}

// ImportItems validates every item on its own and upserts the valid ones by
// path. Invalid items are reported with their 1-based position; the batch
// always runs to completion.
func (s *registryService) ImportItems(ctx context.Context, raw []json.RawMessage) (*models.ImportResult, error) {
	var (
		valid     []models.ExportItem
		positions []int
		errs      []string
	)

	for i, item := range raw {
		parsed, reason := parseImportItem(item)
		if reason != "" {
			errs = append(errs, fmt.Sprintf("Item %d: %s", i+1, reason))
			continue
		}
		valid = append(valid, parsed)
		positions = append(positions, i)
	}

	var (
		total     int
		succeeded int
	)
	if len(valid) > 0 {
		itemErrs, count, err := s.ruleRepo.UpsertBatch(ctx, valid)
		if err != nil {
			return nil, fromRepository(err, "API not found")
		}
		total = count
		for j, itemErr := range itemErrs {
			if itemErr != nil {
				errs = append(errs, fmt.Sprintf("Item %d: %v", positions[j]+1, itemErr))
				continue
			}
			succeeded++
		}
	} else {
		count, err := s.ruleRepo.Count(ctx)
		if err != nil {
			return nil, fromRepository(err, "API not found")
		}
		total = count
	}

	result := &models.ImportResult{
		ImportedCount:   succeeded,
		ErrorCount:      len(raw) - succeeded,
		TotalInDatabase: total,
		Errors:          firstN(errs, importErrorsInResult),
	}
	result.Message = fmt.Sprintf("API import completed: success %d, failed %d", result.ImportedCount, result.ErrorCount)
	if len(errs) > 0 {
		result.Message += "\nFirst 5 errors: " + strings.Join(firstN(errs, importErrorsInMessage), ", ")
	}

	s.record(ctx, models.ActionImportConfig, fmt.Sprintf("success=%d, errors=%d, total_in_db=%d", result.ImportedCount, result.ErrorCount, result.TotalInDatabase))
	return result, nil
}

// SeedExamples inserts the example rules that are not stored yet
func (s *registryService) SeedExamples(ctx context.Context) error {
	if err := s.ruleRepo.InsertMissing(ctx, ExampleRules); err != nil {
		return fromRepository(err, "API not found")
	}
	return nil
}

// record writes an audit entry. A failed audit write is logged and does not
// fail the operation that triggered it.
func (s *registryService) record(ctx context.Context, action models.ActionKind, details string) {
	if _, err := s.audit.Record(ctx, action, details); err != nil {
		s.logger.Error("failed to record audit entry", "action", string(action), "error", err)
	}
}

// parseImportItem decodes one import element. A non-empty reason means the
// item is rejected.
func parseImportItem(raw json.RawMessage) (models.ExportItem, string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return models.ExportItem{}, "not an object"
	}

	pathRaw, ok := fields["api_path"]
	if !ok {
		return models.ExportItem{}, "missing api_path field"
	}

	var item models.ExportItem
	if err := json.Unmarshal(pathRaw, &item.Path); err != nil {
		return models.ExportItem{}, "api_path must be a string"
	}
	item.Path = strings.TrimSpace(item.Path)
	if !strings.HasPrefix(item.Path, "/") {
		return models.ExportItem{}, fmt.Sprintf("API path must start with '/': %s", item.Path)
	}
	if len(item.Path) > models.MaxPathLength {
		return models.ExportItem{}, models.PathTooLongMessage
	}

	item.Enabled = true
	if enabledRaw, ok := fields["enabled"]; ok {
		enabled, err := decodeLooseBool(enabledRaw)
		if err != nil {
			return models.ExportItem{}, "enabled must be a boolean"
		}
		item.Enabled = enabled
	}

	if descRaw, ok := fields["description"]; ok {
		var description *string
		if err := json.Unmarshal(descRaw, &description); err != nil {
			return models.ExportItem{}, "description must be a string"
		}
		if description != nil {
			item.Description = *description
		}
	}

	return item, ""
}

// decodeLooseBool accepts JSON booleans, numbers (non-zero is true) and null (true)
func decodeLooseBool(raw json.RawMessage) (bool, error) {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return false, err
	}

	switch v := value.(type) {
	case nil:
		return true, nil
	case bool:
		return v, nil
	case float64:
		return v != 0, nil
	default:
		return false, fmt.Errorf("unexpected %T", value)
	}
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	if values == nil {
		return []string{}
	}
	return values
}
