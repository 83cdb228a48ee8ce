package models

// TimestampLayout is the wall-clock format stored in action_logs.timestamp
const TimestampLayout = "2006-01-02 15:04:05"

// ActionKind identifies the kind of an audited action
type ActionKind string

// Audited action kinds. Anything else passed to the audit log is dropped.
const (
	ActionAPICheck       ActionKind = "API_CHECK"
	ActionAPICheckGet    ActionKind = "API_CHECK_GET"
	ActionExportConfig   ActionKind = "EXPORT_CONFIG"
	ActionImportConfig   ActionKind = "IMPORT_CONFIG"
	ActionAddAPI         ActionKind = "ADD_API"
	ActionUpdateAPI      ActionKind = "UPDATE_API"
	ActionDeleteAPI      ActionKind = "DELETE_API"
	ActionToggleAPI      ActionKind = "TOGGLE_API"
	ActionResetCallCount ActionKind = "RESET_CALL_COUNT"
	ActionChangePassword ActionKind = "CHANGE_PASSWORD"
	ActionLogin          ActionKind = "LOGIN"
	ActionLogout         ActionKind = "LOGOUT"
)

var allowedActions = map[ActionKind]struct{}{
	ActionAPICheck:       {},
	ActionAPICheckGet:    {},
	ActionExportConfig:   {},
	ActionImportConfig:   {},
	ActionAddAPI:         {},
	ActionUpdateAPI:      {},
	ActionDeleteAPI:      {},
	ActionToggleAPI:      {},
	ActionResetCallCount: {},
	ActionChangePassword: {},
	ActionLogin:          {},
	ActionLogout:         {},
}

// IsAllowed reports whether the action kind belongs to the audited set
func (a ActionKind) IsAllowed() bool {
	_, ok := allowedActions[a]
	return ok
}

// AuditEntry represents a single recorded security-relevant action
type AuditEntry struct {
	ID        int64      `json:"id"`
	Timestamp string     `json:"timestamp"`
	IPAddress string     `json:"ip_address"`
	Action    ActionKind `json:"action"`
	Details   string     `json:"details"`
}
