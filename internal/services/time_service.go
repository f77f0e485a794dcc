package services

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"assignment-tracker/internal/domain"
)

// DefaultDisplayLayout renders due dates as e.g. "Feb 5, 2024".
const DefaultDisplayLayout = "Jan 2, 2006"

const day = 24 * time.Hour

// ParseDueDate parses a YYYY-MM-DD date at local midnight.
func ParseDueDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(domain.DueDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsOverdue reports whether dueDate is strictly before the calendar date of now.
// A due date equal to today is not overdue. Unparseable dates are never overdue.
func IsOverdue(dueDate string, now time.Time) bool {
	due, err := time.ParseInLocation(domain.DueDateLayout, dueDate, now.Location())
	if err != nil {
		return false
	}
	return due.Before(startOfDay(now))
}

// FormatDisplayDate renders dueDate with the default layout.
func FormatDisplayDate(dueDate string) string {
	return FormatDisplayDateWithLayout(dueDate, DefaultDisplayLayout)
}

// FormatDisplayDateWithLayout renders dueDate with layout. Unparseable input is
// returned unchanged.
func FormatDisplayDateWithLayout(dueDate, layout string) string {
	due, err := time.Parse(domain.DueDateLayout, dueDate)
	if err != nil {
		return dueDate
	}
	return due.Format(layout)
}

// FormatSubjectLabel upper-cases the first character of subject.
func FormatSubjectLabel(subject string) string {
	r, size := utf8.DecodeRuneInString(subject)
	if r == utf8.RuneError {
		return subject
	}
	return string(unicode.ToUpper(r)) + subject[size:]
}

// FormatRelativeDue describes dueDate relative to the calendar date of now,
// e.g. "3 days from now", "1 day ago" or "today".
func FormatRelativeDue(dueDate string, now time.Time) string {
	days, ok := DaysUntil(dueDate, now)
	switch {
	case !ok:
		return ""
	case days == 0:
		return "today"
	}
	today := utcDate(now)
	return humanize.RelTime(today.Add(time.Duration(days)*day), today, "ago", "from now")
}

// DaysUntil returns the whole days between today and dueDate; negative when past.
func DaysUntil(dueDate string, now time.Time) (int, bool) {
	due, err := time.Parse(domain.DueDateLayout, dueDate)
	if err != nil {
		return 0, false
	}
	return int(due.Sub(utcDate(now)) / day), true
}

// utcDate is now's calendar date at UTC midnight, so DST shifts never
// produce fractional days.
func utcDate(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	displayLayout string
	clock         Clock
}

// NewTimeService creates a new TimeService instance. An empty layout uses
// DefaultDisplayLayout and a nil clock uses time.Now.
func NewTimeService(displayLayout string, clock Clock) TimeService {
	if strings.TrimSpace(displayLayout) == "" {
		displayLayout = DefaultDisplayLayout
	}
	if clock == nil {
		clock = time.Now
	}
	return &timeServiceImpl{
		displayLayout: displayLayout,
		clock:         clock,
	}
}

func (t *timeServiceImpl) ParseDueDate(s string) (time.Time, bool) {
	return ParseDueDate(s)
}

func (t *timeServiceImpl) IsOverdue(dueDate string) bool {
	return IsOverdue(dueDate, t.clock())
}

func (t *timeServiceImpl) FormatDisplayDate(dueDate string) string {
	return FormatDisplayDateWithLayout(dueDate, t.displayLayout)
}

func (t *timeServiceImpl) FormatSubjectLabel(subject string) string {
	return FormatSubjectLabel(subject)
}

func (t *timeServiceImpl) FormatRelativeDue(dueDate string) string {
	return FormatRelativeDue(dueDate, t.clock())
}

func (t *timeServiceImpl) Now() time.Time {
	return t.clock()
}
