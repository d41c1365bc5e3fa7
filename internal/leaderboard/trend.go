package leaderboard

import (
	"github.com/2beens/liftboard/internal/workouts"
)

// ExtractTrend compares the most recent workout with the one before it.
// Workouts must be ordered newest first.
func ExtractTrend(newestFirst []workouts.Workout) Trend {
	var trend Trend
	if len(newestFirst) > 0 {
		trend.Current = ComputeVolume(newestFirst[0])
	}
	if len(newestFirst) > 1 {
		trend.Previous = ComputeVolume(newestFirst[1])
	}
	if trend.Previous != 0 {
		trend.PercentageChange = (trend.Current - trend.Previous) / trend.Previous * 100
	}
	return trend
}
