package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"assignment-tracker/internal/config"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	v := NewValidator()

	for in, want := range map[string]bool{
		"":          false,
		"   ":       false,
		"\t\n":      false,
		"Essay":     true,
		"  Essay  ": true,
	} {
		assert.Equal(t, want, v.IsNonEmptyString(in), "%q", in)
	}
}

func TestValidator_IsValidStringLength(t *testing.T) {
	v := NewValidator()

	assert.False(t, v.IsValidStringLength("", 1, 10))
	assert.False(t, v.IsValidStringLength("very long string", 1, 5))
	assert.True(t, v.IsValidStringLength("essay", 1, 5))
	assert.True(t, v.IsValidStringLength("  essay  ", 1, 5), "trimmed before counting")
	assert.True(t, v.IsValidStringLength("ééééé", 1, 5), "counts runes")
}

func TestValidator_IsValidNameLength(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.NameMaxLength = 10
	v := NewValidatorWithConfig(cfg)

	assert.True(t, v.IsValidNameLength("Lab report"))
	assert.False(t, v.IsValidNameLength("Lab reports"))
	assert.True(t, NewValidator().IsValidNameLength(strings.Repeat("a", 255)))
	assert.False(t, NewValidator().IsValidNameLength(strings.Repeat("a", 256)))
}

func TestValidator_IsValidDueDate(t *testing.T) {
	v := NewValidator()

	for in, want := range map[string]bool{
		"2024-02-29":   true,
		" 2024-02-05 ": true,
		"2023-02-29":   false,
		"2024-13-01":   false,
		"02/05/2024":   false,
		"tomorrow":     false,
	} {
		assert.Equal(t, want, v.IsValidDueDate(in), "%q", in)
	}
}

func TestValidator_IsValidPriority(t *testing.T) {
	v := NewValidator()

	for _, p := range []string{"high", "medium", "low", "HIGH", " Low "} {
		assert.True(t, v.IsValidPriority(p), "%q", p)
	}
	for _, p := range []string{"", "urgent", "h"} {
		assert.False(t, v.IsValidPriority(p), "%q", p)
	}
}

func TestValidator_IsValidGrade(t *testing.T) {
	v := NewValidator()

	for grade, want := range map[int]bool{-1: false, 0: true, 85: true, 100: true, 101: false} {
		assert.Equal(t, want, v.IsValidGrade(grade), "grade %d", grade)
	}
}
