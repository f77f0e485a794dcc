package validation

import (
	"fmt"
	"strings"

	"assignment-tracker/internal/config"
	"assignment-tracker/internal/domain"
)

// AssignmentValidator validates user input for new assignments
type AssignmentValidator struct {
	validator *Validator
}

// NewAssignmentValidator creates a new assignment validator
func NewAssignmentValidator() *AssignmentValidator {
	return &AssignmentValidator{
		validator: NewValidator(),
	}
}

// NewAssignmentValidatorWithConfig creates a new assignment validator with configuration
func NewAssignmentValidatorWithConfig(cfg *config.Config) *AssignmentValidator {
	return &AssignmentValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateInput checks every field and returns all problems at once.
// A nil return means the input is acceptable.
func (av *AssignmentValidator) ValidateInput(input domain.AssignmentInput) *ValidationError {
	errs := NewValidationError()

	if !av.validator.IsNonEmptyString(input.Name) {
		errs.Required("name")
	} else if !av.validator.IsValidNameLength(input.Name) {
		errs.BadLength("name", input.Name, 1, av.validator.NameMaxLength())
	}

	if !av.validator.IsNonEmptyString(input.DueDate) {
		errs.Required("dueDate")
	} else if !av.validator.IsValidDueDate(input.DueDate) {
		errs.BadFormat("dueDate", input.DueDate, "YYYY-MM-DD")
	}

	if !av.validator.IsNonEmptyString(input.Subject) {
		errs.Required("subject")
	}

	if !av.validator.IsNonEmptyString(input.Priority) {
		errs.Required("priority")
	} else if !av.validator.IsValidPriority(input.Priority) {
		errs.BadValue("priority", input.Priority, "must be one of "+priorityList())
	}

	if input.Grade != nil && !av.validator.IsValidGrade(*input.Grade) {
		errs.OutOfRange("grade", *input.Grade,
			fmt.Sprintf("must be between %d and %d", domain.MinGrade, domain.MaxGrade))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Clean returns the input with whitespace trimmed and priority lower-cased.
// The grade pointer is copied so callers cannot mutate the stored value.
func (av *AssignmentValidator) Clean(input domain.AssignmentInput) domain.AssignmentInput {
	cleaned := domain.AssignmentInput{
		Name:        strings.TrimSpace(input.Name),
		DueDate:     strings.TrimSpace(input.DueDate),
		Subject:     strings.TrimSpace(input.Subject),
		Priority:    NormalizePriority(input.Priority),
		Description: strings.TrimSpace(input.Description),
	}
	if input.Grade != nil {
		g := *input.Grade
		cleaned.Grade = &g
	}
	return cleaned
}

// ValidateID checks that an id or id prefix was supplied
func (av *AssignmentValidator) ValidateID(id string) *ValidationError {
	if !av.validator.IsNonEmptyString(id) {
		errs := NewValidationError()
		errs.Required("id")
		return errs
	}
	return nil
}

func priorityList() string {
	names := make([]string, len(domain.Priorities))
	for i, p := range domain.Priorities {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
