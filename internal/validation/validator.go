package validation

import (
	"strings"
	"unicode/utf8"

	"taskboard/internal/config"
	"taskboard/internal/domain"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{config: nil}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTitleLength checks the trimmed title against the configured maximum, counted in runes
func (v *Validator) IsValidTitleLength(title string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(title)) <= v.TitleMaxLength()
}

// IsValidTaskID checks if a task ID is valid (positive)
func (v *Validator) IsValidTaskID(id int64) bool {
	return id > 0
}

// IsValidPriority accepts the empty value, meaning "use the default"
func (v *Validator) IsValidPriority(p domain.Priority) bool {
	return p == "" || p.IsValid()
}

// IsValidCategory accepts the empty value, meaning "use the default"
func (v *Validator) IsValidCategory(c domain.Category) bool {
	return c == "" || c.IsValid()
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TitleMaxLength returns configured maximum title length or default
func (v *Validator) TitleMaxLength() int {
	if v.config != nil && v.config.Validation.TitleMaxLength > 0 {
		return v.config.Validation.TitleMaxLength
	}
	return 255
}
