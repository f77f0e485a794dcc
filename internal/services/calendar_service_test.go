package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assignment-tracker/internal/domain"
)

func TestProjectMonth_February2024(t *testing.T) {
	grid := ProjectMonth(nil, 2024, time.February, fixedNow())

	assert.Equal(t, 2024, grid.Year)
	assert.Equal(t, time.February, grid.Month)
	assert.Len(t, grid.Days, 29)
	assert.Equal(t, 4, grid.LeadingBlanks, "Feb 1 2024 is a Thursday")
	assert.Equal(t, "2024-02-01", grid.Days[0].Date)
	assert.Equal(t, "2024-02-29", grid.Days[28].Date)
	assert.Equal(t, "February 2024", grid.Title())
}

func TestProjectMonth_Lengths(t *testing.T) {
	tests := []struct {
		year   int
		month  time.Month
		days   int
		blanks int
	}{
		{2023, time.February, 28, 3},
		{2024, time.January, 31, 1},
		{2024, time.April, 30, 1},
		{2024, time.September, 30, 0},
		{2000, time.February, 29, 2},
		{1900, time.February, 28, 4},
	}

	for _, tt := range tests {
		t.Run(time.Date(tt.year, tt.month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006"), func(t *testing.T) {
			grid := ProjectMonth(nil, tt.year, tt.month, fixedNow())
			assert.Len(t, grid.Days, tt.days)
			assert.Equal(t, tt.blanks, grid.LeadingBlanks)
			assert.Equal(t, tt.days, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestProjectMonth_Bucketing(t *testing.T) {
	assignments := []domain.Assignment{
		{ID: "b", DueDate: "2024-02-05"},
		{ID: "other-month", DueDate: "2024-03-05"},
		{ID: "a", DueDate: "2024-02-05"},
		{ID: "bad", DueDate: "2024-2-5"},
		{ID: "leap", DueDate: "2024-02-29"},
	}

	grid := ProjectMonth(assignments, 2024, time.February, fixedNow())

	assert.Equal(t, []string{"b", "a"}, ids(grid.Day(5).Assignments))
	assert.Equal(t, []string{"leap"}, ids(grid.Day(29).Assignments))

	total := 0
	for _, d := range grid.Days {
		total += len(d.Assignments)
	}
	assert.Equal(t, 3, total)
}

func TestProjectMonth_Today(t *testing.T) {
	grid := ProjectMonth(nil, 2024, time.February, fixedNow())

	for _, d := range grid.Days {
		assert.Equal(t, d.Day == 15, d.IsToday, d.Date)
		assert.True(t, d.InMonth)
	}

	other := ProjectMonth(nil, 2024, time.March, fixedNow())
	for _, d := range other.Days {
		assert.False(t, d.IsToday)
	}
}

func TestCalendarGrid_CellsAndWeeks(t *testing.T) {
	grid := ProjectMonth(nil, 2024, time.February, fixedNow())

	cells := grid.Cells()
	require.Len(t, cells, 33)
	for i := 0; i < 4; i++ {
		assert.False(t, cells[i].InMonth)
		assert.Zero(t, cells[i].Day)
	}
	assert.Equal(t, 1, cells[4].Day)

	weeks := grid.Weeks()
	require.Len(t, weeks, 5)
	assert.Len(t, weeks[0], 7)
	assert.Len(t, weeks[4], 5)
	assert.Equal(t, 29, weeks[4][4].Day)
}

func TestCalendarGrid_DayOutOfRange(t *testing.T) {
	grid := ProjectMonth(nil, 2024, time.February, fixedNow())

	assert.Nil(t, grid.Day(0))
	assert.Nil(t, grid.Day(30))
}

func TestProjectMonth_NormalisesMonth(t *testing.T) {
	grid := ProjectMonth(nil, 2024, time.Month(13), fixedNow())

	assert.Equal(t, 2025, grid.Year)
	assert.Equal(t, time.January, grid.Month)
	assert.Len(t, grid.Days, 31)
}

func TestMonthCursor_Navigate(t *testing.T) {
	tests := []struct {
		name     string
		start    MonthCursor
		delta    int
		expected MonthCursor
	}{
		{"forward", MonthCursor{2024, time.February}, 1, MonthCursor{2024, time.March}},
		{"backward", MonthCursor{2024, time.February}, -1, MonthCursor{2024, time.January}},
		{"into next year", MonthCursor{2024, time.December}, 1, MonthCursor{2025, time.January}},
		{"into previous year", MonthCursor{2024, time.January}, -1, MonthCursor{2023, time.December}},
		{"many months", MonthCursor{2024, time.March}, -27, MonthCursor{2021, time.December}},
		{"zero", MonthCursor{2024, time.June}, 0, MonthCursor{2024, time.June}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.start.Navigate(tt.delta))
		})
	}
}

func TestCalendarService(t *testing.T) {
	service := NewCalendarService(fixedNow)
	assert.Equal(t, MonthCursor{2024, time.February}, service.Cursor())

	assert.Equal(t, MonthCursor{2024, time.March}, service.Navigate(1))
	grid := service.Project([]domain.Assignment{{ID: "x", DueDate: "2024-03-02"}})
	assert.Equal(t, time.March, grid.Month)
	assert.Equal(t, []string{"x"}, ids(grid.Day(2).Assignments))

	assert.Equal(t, MonthCursor{2023, time.December}, service.SetCursor(MonthCursor{2024, 0}))
	assert.Equal(t, MonthCursor{2024, time.February}, service.Reset())
}
