package leaderboard

import (
	"github.com/2beens/liftboard/internal/workouts"
)

// ComputeVolume returns the volume load of a workout: the sum, over exercises that have
// sets, of the mean reps*weight of the exercise's sets. Input is expected to be validated
// (no negative reps or weight).
func ComputeVolume(workout workouts.Workout) float64 {
	var volume float64
	for _, exercise := range workout.Exercises {
		if len(exercise.Sets) == 0 {
			continue
		}

		var exerciseLoad float64
		for _, set := range exercise.Sets {
			exerciseLoad += float64(set.Reps) * set.Weight
		}
		volume += exerciseLoad / float64(len(exercise.Sets))
	}

	return volume
}
