package services

import (
	"context"
	"time"

	"assignment-tracker/internal/domain"
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

// Stats is the aggregate view of a collection
type Stats struct {
	Total        int            `json:"total" yaml:"total"`
	Completed    int            `json:"completed" yaml:"completed"`
	Pending      int            `json:"pending" yaml:"pending"`
	AverageGrade *int           `json:"averageGrade" yaml:"averageGrade"`
	Overdue      int            `json:"overdue" yaml:"overdue"`
	BySubject    map[string]int `json:"bySubject" yaml:"bySubject"`
}

// StatusFilter restricts a listing by completion state
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
	StatusOverdue   StatusFilter = "overdue" // pending and past due
)

// Filter represents criteria for narrowing an assignment listing.
// Zero values match everything.
type Filter struct {
	Subject string       `json:"subject,omitempty"`
	Text    string       `json:"text,omitempty"`
	Status  StatusFilter `json:"status,omitempty"`
}

// TimeService handles due date parsing and presentation
type TimeService interface {
	ParseDueDate(s string) (time.Time, bool)
	IsOverdue(dueDate string) bool
	FormatDisplayDate(dueDate string) string
	FormatSubjectLabel(subject string) string
	FormatRelativeDue(dueDate string) string
	Now() time.Time
}

// Store is the assignment collection as seen by callers
type Store interface {
	Add(ctx context.Context, input domain.AssignmentInput) (*domain.Assignment, error)
	ToggleComplete(ctx context.Context, id string) (*domain.Assignment, error)
	Delete(ctx context.Context, id string) error
	ReplaceOrder(ctx context.Context, ordered []domain.Assignment) error
	Sort(ctx context.Context, strategy domain.SortStrategy) ([]domain.Assignment, error)
	Load(ctx context.Context) []domain.Assignment
	List() []domain.Assignment
	Get(id string) (*domain.Assignment, error)
	Resolve(idOrPrefix string) (*domain.Assignment, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService TimeService
	Store       Store
	Calendar    *CalendarService
}
