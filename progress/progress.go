// Package progress derives aggregate views over the workout ledger. Stats are
// computed fresh from the entries on every call and never persisted.
package progress

import (
	"fmt"
	"sort"
	"time"

	"github.com/Katemedoshi/SportsPal/workout"
)

// Stats is the derived progress summary for one user.
type Stats struct {
	TotalWorkouts        int            `json:"total_workouts"`
	WorkoutsBySport      map[string]int `json:"workouts_by_sport"`
	TotalDurationMinutes int            `json:"total_duration"`
	WeeklyAverage        float64        `json:"weekly_avg"`
}

// HistorySource yields a user's workout history; limit <= 0 means all entries.
type HistorySource interface {
	History(username string, limit int) []workout.Entry
}

// ForUser computes stats over a user's full history as of now.
func ForUser(src HistorySource, username string) Stats {
	return Compute(src.History(username, 0), time.Now())
}

// Compute aggregates entries into Stats. Grouping by sport is an exact string
// match on the value as entered. Entries whose duration does not parse as a
// non-negative integer contribute zero minutes and are otherwise counted
// normally; the raw value stays in the ledger. The weekly average divides the
// workout count by the elapsed weeks since the first entry, floored at one
// week so a same-day burst reads as that many workouts per week.
func Compute(entries []workout.Entry, now time.Time) Stats {
	stats := Stats{WorkoutsBySport: map[string]int{}}
	if len(entries) == 0 {
		return stats
	}

	stats.TotalWorkouts = len(entries)
	for _, e := range entries {
		stats.WorkoutsBySport[e.Sport]++
		if mins, ok := e.Duration.Minutes(); ok {
			stats.TotalDurationMinutes += mins
		}
	}

	weeks := now.Sub(entries[0].Date).Hours() / 24 / 7
	if weeks < 1 {
		weeks = 1
	}
	stats.WeeklyAverage = float64(stats.TotalWorkouts) / weeks

	return stats
}

// FormatReport renders a markdown progress summary for display or mailing.
func FormatReport(username string, stats Stats) string {
	result := fmt.Sprintf("## Progress Report: %s\n", username)
	result += fmt.Sprintf("- **Total Workouts:** %d\n", stats.TotalWorkouts)
	result += fmt.Sprintf("- **Total Duration:** %d mins\n", stats.TotalDurationMinutes)
	result += fmt.Sprintf("- **Weekly Average:** %.1f workouts/week\n", stats.WeeklyAverage)

	if len(stats.WorkoutsBySport) == 0 {
		result += "- **By Sport:** no workouts logged yet\n"
		return result
	}

	sports := make([]string, 0, len(stats.WorkoutsBySport))
	for sport := range stats.WorkoutsBySport {
		sports = append(sports, sport)
	}
	sort.Strings(sports)

	result += "- **By Sport:**\n"
	for _, sport := range sports {
		result += fmt.Sprintf("  • %s: %d\n", sport, stats.WorkoutsBySport[sport])
	}
	return result
}
