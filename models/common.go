package models

import "strings"

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// HasErrors returns true if there are validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// GetMessages returns all error messages as a slice of strings
func (ve ValidationErrors) GetMessages() []string {
	messages := make([]string, len(ve))
	for i, err := range ve {
		messages[i] = err.Message
	}
	return messages
}

// Error joins the messages so the set can travel as an error
func (ve ValidationErrors) Error() string {
	return strings.Join(ve.GetMessages(), ", ")
}

// PasswordChangeForm represents the change-password payload
type PasswordChangeForm struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// MinPasswordLength is the shortest accepted admin password
const MinPasswordLength = 4

// Validate validates the password change form
func (f *PasswordChangeForm) Validate() ValidationErrors {
	var errs ValidationErrors

	if f.CurrentPassword == "" || f.NewPassword == "" || f.ConfirmPassword == "" {
		return append(errs, ValidationError{Message: "All fields are required"})
	}

	if f.NewPassword != f.ConfirmPassword {
		errs = append(errs, ValidationError{Field: "confirm_password", Message: "New password and confirmation do not match"})
	}

	if len(f.NewPassword) < MinPasswordLength {
		errs = append(errs, ValidationError{Field: "new_password", Message: "Password must be at least 4 characters"})
	}

	return errs
}

// PasswordHint reports whether the factory default password is still active
type PasswordHint struct {
	IsDefault bool   `json:"is_default"`
	Hint      string `json:"hint"`
}
