package services

import (
	"math"
	"time"

	"assignment-tracker/internal/domain"
)

// ComputeStats aggregates the collection as of the current time.
func ComputeStats(assignments []domain.Assignment) Stats {
	return ComputeStatsAt(assignments, time.Now())
}

// ComputeStatsAt aggregates the collection, evaluating overdue against now.
// AverageGrade is the rounded mean of the present grades and nil when no
// assignment carries a grade.
func ComputeStatsAt(assignments []domain.Assignment, now time.Time) Stats {
	stats := Stats{
		Total:     len(assignments),
		BySubject: make(map[string]int),
	}

	gradeSum, gradeCount := 0, 0
	for _, a := range assignments {
		if a.Completed {
			stats.Completed++
		} else if IsOverdue(a.DueDate, now) {
			stats.Overdue++
		}
		if a.Grade != nil {
			gradeSum += *a.Grade
			gradeCount++
		}
		stats.BySubject[a.Subject]++
	}
	stats.Pending = stats.Total - stats.Completed

	if gradeCount > 0 {
		avg := int(math.Round(float64(gradeSum) / float64(gradeCount)))
		stats.AverageGrade = &avg
	}

	return stats
}

// CompletionRate returns completed/total as a percentage rounded to the
// nearest whole number; 0 for an empty collection.
func (s Stats) CompletionRate() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Completed) * 100 / float64(s.Total)))
}
