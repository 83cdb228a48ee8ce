package controllers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/blogem/lanauthgate/models"
	"github.com/blogem/lanauthgate/services"
)

// ExportFilename is the attachment name of an exported configuration
const ExportFilename = "api_auth_export.json"

// checkRequest is the POST check payload
type checkRequest struct {
	Path string `json:"api_path"`
}

// checkResponse is the outcome of an authorization check
type checkResponse struct {
	Path       string `json:"api_path"`
	Authorized bool   `json:"authorized"`
	Enabled    bool   `json:"enabled"`
	Message    string `json:"message"`
	Status     string `json:"status"`
}

type addRuleResponse struct {
	Message string `json:"message"`
	Path    string `json:"api_path"`
	Enabled bool   `json:"enabled"`
	ID      int64  `json:"id"`
}

type ruleResponse struct {
	Message string       `json:"message"`
	Rule    *models.Rule `json:"api"`
}

type deleteRuleResponse struct {
	Message    string `json:"message"`
	DeletedAPI string `json:"deleted_api"`
}

type RuleController struct {
	services *services.Services
	logger   *slog.Logger
}

func NewRuleController(services *services.Services, logger *slog.Logger) *RuleController {
	return &RuleController{
		services: services,
		logger:   logger,
	}
}

// Check answers an authorization query from a JSON body
func (rc *RuleController) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, services.KindValidation, err.Error())
		return
	}
	rc.check(w, r, req.Path, models.ActionAPICheck)
}

// CheckGet answers an authorization query from the path query parameter
func (rc *RuleController) CheckGet(w http.ResponseWriter, r *http.Request) {
	rc.check(w, r, r.URL.Query().Get("path"), models.ActionAPICheckGet)
}

func (rc *RuleController) check(w http.ResponseWriter, r *http.Request, path string, action models.ActionKind) {
	result, err := rc.services.Registry.Check(r.Context(), path, action)
	if err != nil {
		writeServiceError(w, rc.logger, err, "check")
		return
	}

	message := "API not authorized"
	if result.Authorized {
		message = "API authorized"
	}
	writeJSON(w, http.StatusOK, checkResponse{
		Path:       result.Path,
		Authorized: result.Authorized,
		Enabled:    result.Enabled,
		Message:    message,
		Status:     "success",
	})
}

// List returns every rule, newest first
func (rc *RuleController) List(w http.ResponseWriter, r *http.Request) {
	rules, err := rc.services.Registry.ListRules(r.Context())
	if err != nil {
		writeServiceError(w, rc.logger, err, "list rules")
		return
	}
	if rules == nil {
		rules = []models.Rule{}
	}
	writeJSON(w, http.StatusOK, rules)
}

// Add creates a rule
func (rc *RuleController) Add(w http.ResponseWriter, r *http.Request) {
	var form models.RuleForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeError(w, http.StatusBadRequest, services.KindValidation, err.Error())
		return
	}

	rule, err := rc.services.Registry.AddRule(r.Context(), &form)
	if err != nil {
		writeServiceError(w, rc.logger, err, "add rule")
		return
	}

	writeJSON(w, http.StatusOK, addRuleResponse{
		Message: "API added successfully",
		Path:    rule.Path,
		Enabled: rule.Enabled,
		ID:      rule.ID,
	})
}

// Update applies a partial update to a rule
func (rc *RuleController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, services.KindValidation, err.Error())
		return
	}

	var patch models.RulePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, services.KindValidation, err.Error())
		return
	}

	rule, err := rc.services.Registry.UpdateRule(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, rc.logger, err, "update rule")
		return
	}

	writeJSON(w, http.StatusOK, ruleResponse{Message: "API updated successfully", Rule: rule})
}

// Delete removes a rule
func (rc *RuleController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, services.KindValidation, err.Error())
		return
	}

	rule, err := rc.services.Registry.DeleteRule(r.Context(), id)
	if err != nil {
		writeServiceError(w, rc.logger, err, "delete rule")
		return
	}

	writeJSON(w, http.StatusOK, deleteRuleResponse{Message: "API deleted successfully", DeletedAPI: rule.Path})
}

// Export downloads the rule configuration as a JSON array
func (rc *RuleController) Export(w http.ResponseWriter, r *http.Request) {
	items, err := rc.services.Registry.Export(r.Context())
	if err != nil {
		writeServiceError(w, rc.logger, err, "export rules")
		return
	}
	if items == nil {
		items = []models.ExportItem{}
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	writeJSON(w, http.StatusOK, items)
}

// Import upserts rules from an uploaded JSON array
func (rc *RuleController) Import(w http.ResponseWriter, r *http.Request) {
	data, err := readImportPayload(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, services.KindValidation, err.Error())
		return
	}

	result, err := rc.services.Registry.Import(r.Context(), data)
	if err != nil {
		writeServiceError(w, rc.logger, err, "import rules")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ResetCallCount zeroes one rule's counter
func (rc *RuleController) ResetCallCount(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, services.KindValidation, err.Error())
		return
	}

	rule, err := rc.services.Registry.ResetCallCount(r.Context(), id)
	if err != nil {
		writeServiceError(w, rc.logger, err, "reset call count")
		return
	}

	writeJSON(w, http.StatusOK, ruleResponse{Message: "Call count reset", Rule: rule})
}

// ResetAllCallCounts zeroes every counter
func (rc *RuleController) ResetAllCallCounts(w http.ResponseWriter, r *http.Request) {
	if _, err := rc.services.Registry.ResetAllCallCounts(r.Context()); err != nil {
		writeServiceError(w, rc.logger, err, "reset all call counts")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "All API call counts reset"})
}

// readImportPayload accepts either a multipart upload in the "file" field or
// a raw JSON body
func readImportPayload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return readBody(w, r)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	defer file.Close()

	return io.ReadAll(file)
}
