package domain

import "time"

// Priority is the urgency of an assignment.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// unknownPriorityRank places unrecognised priorities after low.
const unknownPriorityRank = 4

// Priorities lists the valid priorities from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank returns the sort rank of the priority: high=1, medium=2, low=3.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return unknownPriorityRank
	}
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	return p.Rank() != unknownPriorityRank
}

// ParsePriority converts user input into a Priority.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(s)
	return p, p.IsValid()
}

// DueDateLayout is the storage and input layout of due dates.
const DueDateLayout = "2006-01-02"

// Grade bounds, inclusive.
const (
	MinGrade = 0
	MaxGrade = 100
)

// Assignment is a single trackable homework record.
// DueDate is a calendar date in YYYY-MM-DD form and is compared as a string
// when bucketing into calendar days.
type Assignment struct {
	ID          string
	Name        string
	DueDate     string
	Subject     string
	Priority    Priority
	Description string
	Grade       *int
	Completed   bool
	CreatedAt   time.Time
}

// HasGrade reports whether a grade has been recorded.
func (a Assignment) HasGrade() bool {
	return a.Grade != nil
}

// Clone returns a copy that shares no memory with a.
func (a Assignment) Clone() Assignment {
	if a.Grade != nil {
		g := *a.Grade
		a.Grade = &g
	}
	return a
}

// String returns the assignment name for display purposes.
func (a Assignment) String() string {
	return a.Name
}

// ShortID returns the leading characters of the id shown in listings.
func (a Assignment) ShortID() string {
	if len(a.ID) <= ShortIDLength {
		return a.ID
	}
	return a.ID[:ShortIDLength]
}

// ShortIDLength is the number of id characters shown to users.
const ShortIDLength = 8

// CloneAll deep-copies a slice of assignments.
func CloneAll(assignments []Assignment) []Assignment {
	out := make([]Assignment, len(assignments))
	for i, a := range assignments {
		out[i] = a.Clone()
	}
	return out
}

// AssignmentInput carries the fields a user submits when adding an assignment.
// Priority is kept as raw text so it can be validated.
type AssignmentInput struct {
	Name        string
	DueDate     string
	Subject     string
	Priority    string
	Description string
	Grade       *int
}
