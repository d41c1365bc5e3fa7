package workouts

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/liftboard/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add stores the workout with all its exercises and sets in one transaction
func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `
		INSERT INTO workouts (id, user_id, challenge_id, name, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		workout.ID,
		workout.UserID,
		workout.ChallengeID,
		workout.Name,
		workout.Notes,
		workout.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	batch := &pgx.Batch{}
	for _, ex := range workout.Exercises {
		batch.Queue(`
			INSERT INTO workout_exercises (id, workout_id, exercise_name, position)
			VALUES ($1, $2, $3, $4)
		`, ex.ID, workout.ID, ex.Name, ex.Position)
		for _, s := range ex.Sets {
			batch.Queue(`
				INSERT INTO workout_sets (id, exercise_id, position, reps, weight)
				VALUES ($1, $2, $3, $4, $5)
			`, s.ID, ex.ID, s.Position, s.Reps, s.Weight)
		}
	}
	if batch.Len() > 0 {
		if err = tx.SendBatch(ctx, batch).Close(); err != nil {
			return nil, fmt.Errorf("insert exercises: %w", err)
		}
	}

	return &workout, nil
}

// ListForUsersInWindow returns workouts of the given users created within [from, to],
// newest first, with exercises and sets in their submitted order.
func (r *Repo) ListForUsersInWindow(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list.window")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("users", len(userIDs)))

	if len(userIDs) == 0 {
		return []Workout{}, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, challenge_id, name, notes, created_at
		FROM workouts
		WHERE user_id = ANY($1::uuid[])
			AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at DESC, id
	`, uuidsToStrings(userIDs), from, to)
	if err != nil {
		return nil, err
	}

	workouts, err := rows2workouts(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadExercises(ctx, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *Repo) ListForUser(ctx context.Context, userID uuid.UUID, limit int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list.user")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, challenge_id, name, notes, created_at
		FROM workouts
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}

	workouts, err := rows2workouts(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadExercises(ctx, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *Repo) loadExercises(ctx context.Context, workouts []Workout) error {
	if len(workouts) == 0 {
		return nil
	}

	idx := make(map[uuid.UUID]int, len(workouts))
	ids := make([]uuid.UUID, 0, len(workouts))
	for i, w := range workouts {
		idx[w.ID] = i
		ids = append(ids, w.ID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT e.workout_id, e.id, e.exercise_name, e.position,
			s.id, s.position, s.reps, s.weight
		FROM workout_exercises e
		LEFT JOIN workout_sets s ON s.exercise_id = e.id
		WHERE e.workout_id = ANY($1::uuid[])
		ORDER BY e.workout_id, e.position, s.position
	`, uuidsToStrings(ids))
	if err != nil {
		return fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			workoutID uuid.UUID
			ex        Exercise
			setID     *uuid.UUID
			setPos    *int
			reps      *int
			weight    *float64
		)
		if err := rows.Scan(
			&workoutID, &ex.ID, &ex.Name, &ex.Position,
			&setID, &setPos, &reps, &weight,
		); err != nil {
			return fmt.Errorf("scan exercise: %w", err)
		}

		w := &workouts[idx[workoutID]]
		n := len(w.Exercises)
		if n == 0 || w.Exercises[n-1].ID != ex.ID {
			ex.Sets = []Set{}
			w.Exercises = append(w.Exercises, ex)
			n++
		}
		if setID != nil {
			w.Exercises[n-1].Sets = append(w.Exercises[n-1].Sets, Set{
				ID:       *setID,
				Position: *setPos,
				Reps:     *reps,
				Weight:   *weight,
			})
		}
	}

	return rows.Err()
}

func rows2workouts(rows pgx.Rows) ([]Workout, error) {
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		var (
			w     Workout
			notes *string
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.ChallengeID, &w.Name, &notes, &w.CreatedAt); err != nil {
			return nil, err
		}
		if notes != nil {
			w.Notes = *notes
		}
		w.Exercises = []Exercise{}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if workouts == nil {
		return []Workout{}, nil
	}
	return workouts, nil
}

func uuidsToStrings(ids []uuid.UUID) []string {
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		res = append(res, id.String())
	}
	return res
}
