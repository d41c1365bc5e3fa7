package workouts

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

var ErrInvalidWorkout = errors.New("invalid workout")

type Set struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
	Reps     int       `json:"reps"`
	Weight   float64   `json:"weight"`
}

type Exercise struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"exercise_name"`
	Position int       `json:"position"`
	Sets     []Set     `json:"sets"`
}

type Workout struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	ChallengeID *uuid.UUID `json:"challenge_id,omitempty"`
	Name        string     `json:"name"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Exercises   []Exercise `json:"exercises"`
}

// Validate collects every problem of a submitted workout. Negative reps or weight never
// reach the volume calculation.
func (w Workout) Validate() error {
	var err error
	if strings.TrimSpace(w.Name) == "" {
		err = multierr.Append(err, errors.New("name is required"))
	}
	for i, ex := range w.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			err = multierr.Append(err, fmt.Errorf("exercise %d: name is required", i+1))
		}
		for j, s := range ex.Sets {
			if s.Reps < 0 {
				err = multierr.Append(err, fmt.Errorf("exercise %d set %d: reps must not be negative", i+1, j+1))
			}
			if s.Weight < 0 {
				err = multierr.Append(err, fmt.Errorf("exercise %d set %d: weight must not be negative", i+1, j+1))
			}
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWorkout, err)
	}
	return nil
}

// normalize assigns ids, positions and the server time to a workout about to be stored.
// A client supplied created_at is never kept, the newest workout has to be the latest one logged.
func (w *Workout) normalize(userID uuid.UUID, now time.Time) {
	w.ID = uuid.New()
	w.UserID = userID
	w.Name = strings.TrimSpace(w.Name)
	w.CreatedAt = now
	if w.Exercises == nil {
		w.Exercises = []Exercise{}
	}
	for i := range w.Exercises {
		ex := &w.Exercises[i]
		ex.ID = uuid.New()
		ex.Position = i
		if ex.Sets == nil {
			ex.Sets = []Set{}
		}
		for j := range ex.Sets {
			ex.Sets[j].ID = uuid.New()
			ex.Sets[j].Position = j
		}
	}
}
