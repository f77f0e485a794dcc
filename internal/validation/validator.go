package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"assignment-tracker/internal/config"
	"assignment-tracker/internal/domain"
)

const defaultNameMaxLength = 255

// Validator holds the field checks shared by the input validators.
// A nil config means built-in limits.
type Validator struct {
	config *config.Config
}

func NewValidator() *Validator { return &Validator{} }

func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength counts runes after trimming and checks lo <= n <= hi.
func (v *Validator) IsValidStringLength(s string, lo, hi int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return lo <= n && n <= hi
}

// IsValidNameLength checks if an assignment name is within the configured limit
func (v *Validator) IsValidNameLength(name string) bool {
	return v.IsValidStringLength(name, 1, v.NameMaxLength())
}

// IsValidDueDate checks if s is a YYYY-MM-DD calendar date
func (v *Validator) IsValidDueDate(s string) bool {
	_, err := time.Parse(domain.DueDateLayout, strings.TrimSpace(s))
	return err == nil
}

// IsValidPriority checks if s names a known priority, ignoring case
func (v *Validator) IsValidPriority(s string) bool {
	_, ok := domain.ParsePriority(NormalizePriority(s))
	return ok
}

// IsValidGrade checks if a grade is within the inclusive 0..100 range
func (v *Validator) IsValidGrade(grade int) bool {
	return grade >= domain.MinGrade && grade <= domain.MaxGrade
}

// NameMaxLength returns the configured maximum name length or the default
func (v *Validator) NameMaxLength() int {
	if v.config != nil && v.config.Validation.NameMaxLength > 0 {
		return v.config.Validation.NameMaxLength
	}
	return defaultNameMaxLength
}

// NormalizePriority trims and lower-cases priority input.
func NormalizePriority(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
