package services

import (
	"sort"
	"strings"
	"time"

	"assignment-tracker/internal/domain"
	"assignment-tracker/internal/errors"
)

// SortAssignments returns a reordered copy of assignments. The input slice is
// left untouched. The sort is stable so equal keys keep their relative order.
//
// By date, due dates ascend and unparseable dates go last. By priority,
// high < medium < low < unknown, with ties broken by date.
func SortAssignments(assignments []domain.Assignment, strategy domain.SortStrategy) ([]domain.Assignment, error) {
	var less func(a, b sortKey) bool
	switch strategy {
	case domain.SortByDate:
		less = lessByDate
	case domain.SortByPriority:
		less = lessByPriority
	default:
		return nil, errors.NewInvalidInputError("strategy", string(strategy), "must be one of date, priority")
	}

	sorted := domain.CloneAll(assignments)
	keys := make([]sortKey, len(sorted))
	for i, a := range sorted {
		keys[i] = newSortKey(a)
	}

	// Sort an index permutation so keys and assignments stay paired.
	order := make([]int, len(sorted))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return less(keys[order[i]], keys[order[j]])
	})

	result := make([]domain.Assignment, len(sorted))
	for i, idx := range order {
		result[i] = sorted[idx]
	}
	return result, nil
}

// ParseSortStrategy converts user input into a SortStrategy
func ParseSortStrategy(s string) (domain.SortStrategy, error) {
	strategy := domain.SortStrategy(strings.ToLower(strings.TrimSpace(s)))
	switch strategy {
	case domain.SortByDate, domain.SortByPriority:
		return strategy, nil
	default:
		return "", errors.NewInvalidInputError("strategy", s, "must be one of date, priority")
	}
}

type sortKey struct {
	due      time.Time
	validDue bool
	rank     int
}

func newSortKey(a domain.Assignment) sortKey {
	due, ok := ParseDueDate(a.DueDate)
	return sortKey{due: due, validDue: ok, rank: a.Priority.Rank()}
}

func lessByDate(a, b sortKey) bool {
	switch {
	case a.validDue && b.validDue:
		return a.due.Before(b.due)
	case a.validDue != b.validDue:
		return a.validDue
	default:
		return false
	}
}

func lessByPriority(a, b sortKey) bool {
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	return lessByDate(a, b)
}

// ParseStatusFilter converts user input into a StatusFilter. Empty input means all.
func ParseStatusFilter(s string) (StatusFilter, error) {
	status := StatusFilter(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case "":
		return StatusAll, nil
	case StatusAll, StatusPending, StatusCompleted, StatusOverdue:
		return status, nil
	default:
		return "", errors.NewInvalidInputError("status", s, "must be one of all, pending, completed, overdue")
	}
}

// FilterAssignments narrows assignments using the current time for overdue checks.
func FilterAssignments(assignments []domain.Assignment, filter Filter) []domain.Assignment {
	return FilterAssignmentsAt(assignments, filter, time.Now())
}

// FilterAssignmentsAt returns copies of the assignments matching every set
// criterion, in input order. Subject matches case-insensitively; Text is a
// case-insensitive substring of name, subject or description.
func FilterAssignmentsAt(assignments []domain.Assignment, filter Filter, now time.Time) []domain.Assignment {
	subject := strings.TrimSpace(filter.Subject)
	text := strings.ToLower(strings.TrimSpace(filter.Text))

	result := make([]domain.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if subject != "" && !strings.EqualFold(a.Subject, subject) {
			continue
		}
		if text != "" && !matchesText(a, text) {
			continue
		}
		if !matchesStatus(a, filter.Status, now) {
			continue
		}
		result = append(result, a.Clone())
	}
	return result
}

func matchesText(a domain.Assignment, lowered string) bool {
	return strings.Contains(strings.ToLower(a.Name), lowered) ||
		strings.Contains(strings.ToLower(a.Subject), lowered) ||
		strings.Contains(strings.ToLower(a.Description), lowered)
}

func matchesStatus(a domain.Assignment, status StatusFilter, now time.Time) bool {
	switch status {
	case StatusPending:
		return !a.Completed
	case StatusCompleted:
		return a.Completed
	case StatusOverdue:
		return !a.Completed && IsOverdue(a.DueDate, now)
	default:
		return true
	}
}
