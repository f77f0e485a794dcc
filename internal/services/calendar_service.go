package services

import (
	"sync"
	"time"

	"assignment-tracker/internal/domain"
)

// DaysPerWeek is the width of a calendar row.
const DaysPerWeek = 7

// DayCell is one cell of a month grid. Leading blank cells have InMonth false
// and no other fields set.
type DayCell struct {
	Day         int                 `json:"day"`
	Date        string              `json:"date"`
	IsToday     bool                `json:"isToday"`
	InMonth     bool                `json:"inMonth"`
	Assignments []domain.Assignment `json:"assignments"`
}

// CalendarGrid is the projection of a collection onto one month.
type CalendarGrid struct {
	Year          int        `json:"year"`
	Month         time.Month `json:"month"`
	LeadingBlanks int        `json:"leadingBlanks"`
	Days          []DayCell  `json:"days"`
}

// ProjectMonth buckets assignments into the days of the given month.
// LeadingBlanks is the weekday of the 1st with Sunday as 0. An assignment lands
// on a day only when its DueDate string equals that day's YYYY-MM-DD date, so
// unparseable dates never appear. Within a day, collection order is kept.
func ProjectMonth(assignments []domain.Assignment, year int, month time.Month, now time.Time) *CalendarGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	year, month = first.Year(), first.Month()

	byDate := make(map[string][]domain.Assignment)
	for _, a := range assignments {
		byDate[a.DueDate] = append(byDate[a.DueDate], a.Clone())
	}

	today := now.Format(domain.DueDateLayout)
	count := DaysInMonth(year, month)
	grid := &CalendarGrid{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]DayCell, count),
	}
	for d := 1; d <= count; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(domain.DueDateLayout)
		grid.Days[d-1] = DayCell{
			Day:         d,
			Date:        date,
			IsToday:     date == today,
			InMonth:     true,
			Assignments: byDate[date],
		}
	}
	return grid
}

// DaysInMonth returns the number of days in month, accounting for leap years.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Cells returns the leading blanks followed by the days. There are no
// trailing blanks.
func (g *CalendarGrid) Cells() []DayCell {
	cells := make([]DayCell, g.LeadingBlanks, g.LeadingBlanks+len(g.Days))
	return append(cells, g.Days...)
}

// Weeks splits Cells into rows of seven; the last row may be shorter.
func (g *CalendarGrid) Weeks() [][]DayCell {
	cells := g.Cells()
	weeks := make([][]DayCell, 0, (len(cells)+DaysPerWeek-1)/DaysPerWeek)
	for start := 0; start < len(cells); start += DaysPerWeek {
		end := min(start+DaysPerWeek, len(cells))
		weeks = append(weeks, cells[start:end])
	}
	return weeks
}

// Day returns the cell for day d (1-based) or nil when out of range.
func (g *CalendarGrid) Day(d int) *DayCell {
	if d < 1 || d > len(g.Days) {
		return nil
	}
	return &g.Days[d-1]
}

// Title renders the grid heading, e.g. "February 2024".
func (g *CalendarGrid) Title() string {
	return time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// MonthCursor identifies a displayed month.
type MonthCursor struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// CursorFor returns the cursor for the month containing t.
func CursorFor(t time.Time) MonthCursor {
	return MonthCursor{Year: t.Year(), Month: t.Month()}
}

// Navigate returns the cursor moved by delta months, rolling the year over
// in either direction.
func (c MonthCursor) Navigate(delta int) MonthCursor {
	moved := time.Date(c.Year, c.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return CursorFor(moved)
}

// CalendarService tracks the displayed month and projects collections onto it.
// It is safe for concurrent use.
type CalendarService struct {
	mu     sync.Mutex
	clock  Clock
	cursor MonthCursor
}

// NewCalendarService creates a CalendarService showing the current month.
func NewCalendarService(clock Clock) *CalendarService {
	if clock == nil {
		clock = time.Now
	}
	return &CalendarService{
		clock:  clock,
		cursor: CursorFor(clock()),
	}
}

// Cursor returns the displayed month.
func (c *CalendarService) Cursor() MonthCursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Navigate moves the displayed month by delta and returns the new cursor.
func (c *CalendarService) Navigate(delta int) MonthCursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursor = c.cursor.Navigate(delta)
	return c.cursor
}

// SetCursor jumps to an explicit month.
func (c *CalendarService) SetCursor(cursor MonthCursor) MonthCursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursor = cursor.Navigate(0)
	return c.cursor
}

// Reset returns to the current month.
func (c *CalendarService) Reset() MonthCursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursor = CursorFor(c.clock())
	return c.cursor
}

// Project projects assignments onto the displayed month.
func (c *CalendarService) Project(assignments []domain.Assignment) *CalendarGrid {
	cursor := c.Cursor()
	return ProjectMonth(assignments, cursor.Year, cursor.Month, c.clock())
}
