package domain

import (
	"time"

	"assignment-tracker/internal/repository"
)

// AssignmentMapper handles conversion between domain assignments and persisted records.
type AssignmentMapper struct{}

// NewAssignmentMapper creates a new AssignmentMapper instance.
func NewAssignmentMapper() *AssignmentMapper {
	return &AssignmentMapper{}
}

// ToRecord converts a domain Assignment to its persisted form.
func (m *AssignmentMapper) ToRecord(a Assignment) repository.Record {
	var grade *int
	if a.Grade != nil {
		g := *a.Grade
		grade = &g
	}
	var createdAt string
	if !a.CreatedAt.IsZero() {
		createdAt = a.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return repository.Record{
		ID:          a.ID,
		Name:        a.Name,
		DueDate:     a.DueDate,
		Subject:     a.Subject,
		Priority:    string(a.Priority),
		Description: a.Description,
		Grade:       grade,
		Completed:   a.Completed,
		CreatedAt:   createdAt,
	}
}

// FromRecord converts a persisted record to a domain Assignment.
// An unparseable createdAt becomes the zero time; it drives no logic.
func (m *AssignmentMapper) FromRecord(r repository.Record) Assignment {
	var grade *int
	if r.Grade != nil {
		g := *r.Grade
		grade = &g
	}
	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	return Assignment{
		ID:          r.ID,
		Name:        r.Name,
		DueDate:     r.DueDate,
		Subject:     r.Subject,
		Priority:    Priority(r.Priority),
		Description: r.Description,
		Grade:       grade,
		Completed:   r.Completed,
		CreatedAt:   createdAt,
	}
}

// ToRecords converts a slice of domain Assignments to records.
func (m *AssignmentMapper) ToRecords(assignments []Assignment) []repository.Record {
	records := make([]repository.Record, len(assignments))
	for i, a := range assignments {
		records[i] = m.ToRecord(a)
	}
	return records
}

// FromRecords converts a slice of records to domain Assignments.
func (m *AssignmentMapper) FromRecords(records []repository.Record) []Assignment {
	assignments := make([]Assignment, len(records))
	for i, r := range records {
		assignments[i] = m.FromRecord(r)
	}
	return assignments
}
