package domain

// SortStrategy selects how the collection is ordered.
type SortStrategy string

const (
	SortByDate     SortStrategy = "date"
	SortByPriority SortStrategy = "priority"
)

// Action is a user request emitted by the view. The concrete types below
// are the only implementations.
type Action interface {
	ActionName() string
}

// AddAction creates a new assignment.
type AddAction struct {
	Input AssignmentInput
}

// ToggleAction flips the completed flag of one assignment.
type ToggleAction struct {
	ID string
}

// DeleteAction removes one assignment.
type DeleteAction struct {
	ID string
}

// SortAction reorders the collection.
type SortAction struct {
	Strategy SortStrategy
}

// NavigateMonthAction moves the calendar by Delta months.
type NavigateMonthAction struct {
	Delta int
}

func (AddAction) ActionName() string           { return "add" }
func (ToggleAction) ActionName() string        { return "toggle" }
func (DeleteAction) ActionName() string        { return "delete" }
func (SortAction) ActionName() string          { return "sort" }
func (NavigateMonthAction) ActionName() string { return "navigate_month" }
