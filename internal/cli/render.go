package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"assignment-tracker/internal/domain"
	"assignment-tracker/internal/errors"
	"assignment-tracker/internal/repository"
	"assignment-tracker/internal/services"
)

// Output formats
const (
	FormatTable = "table"
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatCSV   = "csv"
)

// parseFormat lower-cases format and checks it against allowed
func parseFormat(format string, allowed ...string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(format))
	for _, a := range allowed {
		if normalized == a {
			return normalized, nil
		}
	}
	return "", errors.NewInvalidInputError("format", format, "must be one of "+strings.Join(allowed, ", "))
}

// statusMarker is [x] for completed, [!] for overdue and [ ] otherwise
func statusMarker(a domain.Assignment, ts services.TimeService) string {
	switch {
	case a.Completed:
		return "[x]"
	case ts.IsOverdue(a.DueDate):
		return "[!]"
	default:
		return "[ ]"
	}
}

// formatAssignmentLine renders one listing line, e.g.
// [ ] 3f2a9c1b  Feb 20, 2024 (5 days from now)  high    Math: Essay  (92/100)
func formatAssignmentLine(a domain.Assignment, ts services.TimeService) string {
	due := ts.FormatDisplayDate(a.DueDate)
	if rel := ts.FormatRelativeDue(a.DueDate); rel != "" && !a.Completed {
		due = fmt.Sprintf("%s (%s)", due, rel)
	}

	line := fmt.Sprintf("%s %-8s  %s  %-6s  %s: %s",
		statusMarker(a, ts), a.ShortID(), due, a.Priority, ts.FormatSubjectLabel(a.Subject), a.Name)
	if a.HasGrade() {
		line += fmt.Sprintf("  (%d/%d)", *a.Grade, domain.MaxGrade)
	}
	return line
}

// printAssignments writes assignments one per line, or a placeholder when empty
func printAssignments(w io.Writer, assignments []domain.Assignment, ts services.TimeService) {
	if len(assignments) == 0 {
		fmt.Fprintln(w, "No assignments found")
		return
	}
	for _, a := range assignments {
		fmt.Fprintln(w, formatAssignmentLine(a, ts))
		if a.Description != "" {
			fmt.Fprintf(w, "    %s\n", a.Description)
		}
	}
}

// toRecords converts assignments to their persisted field layout for export
func toRecords(assignments []domain.Assignment) []repository.Record {
	return domain.NewAssignmentMapper().ToRecords(assignments)
}

// writeStructured encodes v as JSON or YAML
func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.NewInvalidInputError("format", format, "unsupported structured format")
	}
}
