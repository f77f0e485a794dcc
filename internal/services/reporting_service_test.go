package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assignment-tracker/internal/domain"
)

func intPtr(i int) *int { return &i }

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Completed)
	assert.Equal(t, 0, stats.Pending)
	assert.Nil(t, stats.AverageGrade)
	assert.Equal(t, 0, stats.CompletionRate())
}

func TestComputeStatsAt(t *testing.T) {
	tests := []struct {
		name            string
		assignments     []domain.Assignment
		total           int
		completed       int
		pending         int
		overdue         int
		expectedAverage *int
	}{
		{
			name: "average of 90 and 80 is 85",
			assignments: []domain.Assignment{
				{ID: "1", Subject: "math", DueDate: "2024-02-20", Grade: intPtr(90), Completed: true},
				{ID: "2", Subject: "math", DueDate: "2024-02-20", Grade: intPtr(80)},
				{ID: "3", Subject: "art", DueDate: "2024-02-20"},
			},
			total: 3, completed: 1, pending: 2, overdue: 0,
			expectedAverage: intPtr(85),
		},
		{
			name: "half rounds up",
			assignments: []domain.Assignment{
				{ID: "1", Grade: intPtr(90)},
				{ID: "2", Grade: intPtr(85)},
			},
			total: 2, completed: 0, pending: 2,
			expectedAverage: intPtr(88),
		},
		{
			name: "zero grade counts as present",
			assignments: []domain.Assignment{
				{ID: "1", Grade: intPtr(0)},
				{ID: "2", Grade: intPtr(100)},
			},
			total: 2, completed: 0, pending: 2,
			expectedAverage: intPtr(50),
		},
		{
			name: "no grades leaves average unset",
			assignments: []domain.Assignment{
				{ID: "1", Completed: true},
				{ID: "2", Completed: true},
			},
			total: 2, completed: 2, pending: 0,
		},
		{
			name: "overdue counts only incomplete past-due work",
			assignments: []domain.Assignment{
				{ID: "1", DueDate: "2024-02-14"},
				{ID: "2", DueDate: "2024-02-14", Completed: true},
				{ID: "3", DueDate: "2024-02-15"},
				{ID: "4", DueDate: "garbage"},
			},
			total: 4, completed: 1, pending: 3, overdue: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStatsAt(tt.assignments, fixedNow())

			assert.Equal(t, tt.total, stats.Total)
			assert.Equal(t, tt.completed, stats.Completed)
			assert.Equal(t, tt.pending, stats.Pending)
			assert.Equal(t, tt.overdue, stats.Overdue)
			assert.Equal(t, stats.Total, stats.Completed+stats.Pending)
			if tt.expectedAverage == nil {
				assert.Nil(t, stats.AverageGrade)
			} else {
				require.NotNil(t, stats.AverageGrade)
				assert.Equal(t, *tt.expectedAverage, *stats.AverageGrade)
			}
		})
	}
}

func TestComputeStats_BySubjectAndRate(t *testing.T) {
	stats := ComputeStats([]domain.Assignment{
		{ID: "1", Subject: "math", Completed: true},
		{ID: "2", Subject: "math"},
		{ID: "3", Subject: "history", Completed: true},
	})

	assert.Equal(t, map[string]int{"math": 2, "history": 1}, stats.BySubject)
	assert.Equal(t, 67, stats.CompletionRate())
}
