package challenges

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const challengeColumns = `c.id, c.name, c.description, c.start_date, c.end_date, c.created_by, c.created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create stores the challenge and makes its creator the first participant.
func (r *Repo) Create(ctx context.Context, challenge Challenge) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

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

	if err = tx.QueryRow(ctx, `
		INSERT INTO challenges (id, name, description, start_date, end_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`,
		challenge.ID,
		challenge.Name,
		challenge.Description,
		challenge.StartDate,
		challenge.EndDate,
		challenge.CreatedBy,
	).Scan(&challenge.CreatedAt); err != nil {
		if pkg.IsCheckViolationError(err) {
			err = fmt.Errorf("%w: %w", ErrInvalidChallenge, err)
		}
		return nil, err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO challenge_participants (id, challenge_id, user_id, progress)
		VALUES ($1, $2, $3, 0)
	`, uuid.New(), challenge.ID, challenge.CreatedBy); err != nil {
		return nil, fmt.Errorf("add creator as participant: %w", err)
	}

	return &challenge, nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `SELECT `+challengeColumns+` FROM challenges c WHERE c.id = $1`, id)
	if err != nil {
		return nil, err
	}
	challenges, err := rows2challenges(rows)
	if err != nil {
		return nil, err
	}
	if len(challenges) == 0 {
		return nil, ErrNotFound
	}

	return &challenges[0], nil
}

// ListActiveForUser returns the challenges running at the given moment that the user takes part in,
// newest first. Challenges that ended are never part of the result.
func (r *Repo) ListActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) (_ []Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.list.active")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+challengeColumns+`
		FROM challenges c
		JOIN challenge_participants p ON p.challenge_id = c.id
		WHERE p.user_id = $1
			AND c.start_date <= $2
			AND c.end_date >= $2
		ORDER BY c.start_date DESC, c.id
	`, userID, now)
	if err != nil {
		return nil, err
	}

	return rows2challenges(rows)
}

func (r *Repo) ListUpcoming(ctx context.Context, now time.Time) (_ []Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.list.upcoming")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+challengeColumns+`
		FROM challenges c
		WHERE c.start_date > $1
		ORDER BY c.start_date, c.id
	`, now)
	if err != nil {
		return nil, err
	}

	return rows2challenges(rows)
}

// Participants are ordered by join time, then id. The leaderboard relies on this order
// to break ties between equal volumes.
func (r *Repo) Participants(ctx context.Context, challengeID uuid.UUID) (_ []Participant, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.participants")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("challenge", challengeID.String()))

	rows, err := r.db.Query(ctx, `
		SELECT id, challenge_id, user_id, progress, joined_at, updated_at
		FROM challenge_participants
		WHERE challenge_id = $1
		ORDER BY joined_at, id
	`, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.ID, &p.ChallengeID, &p.UserID, &p.Progress, &p.JoinedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

// Join adds the user to the challenge. Joining twice is a no-op and reports false.
func (r *Repo) Join(ctx context.Context, challengeID, userID uuid.UUID) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.join")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `
		INSERT INTO challenge_participants (id, challenge_id, user_id, progress)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (challenge_id, user_id) DO NOTHING
	`, uuid.New(), challengeID, userID)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return false, ErrNotFound
		}
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// UpsertProgress sets the progress of the user, creating the participant row on first update.
func (r *Repo) UpsertProgress(ctx context.Context, challengeID, userID uuid.UUID, progress int) (_ *Participant, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.progress")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var p Participant
	if err := r.db.QueryRow(ctx, `
		INSERT INTO challenge_participants (id, challenge_id, user_id, progress)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (challenge_id, user_id)
		DO UPDATE SET progress = EXCLUDED.progress, updated_at = now()
		RETURNING id, challenge_id, user_id, progress, joined_at, updated_at
	`, uuid.New(), challengeID, userID, progress).Scan(
		&p.ID, &p.ChallengeID, &p.UserID, &p.Progress, &p.JoinedAt, &p.UpdatedAt,
	); err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrNotFound
		}
		if pkg.IsCheckViolationError(err) {
			return nil, ErrInvalidProgress
		}
		return nil, err
	}

	return &p, nil
}

func (r *Repo) IsParticipant(ctx context.Context, challengeID, userID uuid.UUID) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.isparticipant")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var exists bool
	if err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM challenge_participants WHERE challenge_id = $1 AND user_id = $2
		)
	`, challengeID, userID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// ActiveChallengeIDs lists every challenge running at the given moment.
func (r *Repo) ActiveChallengeIDs(ctx context.Context, now time.Time) (_ []uuid.UUID, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.active.ids")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT id FROM challenges
		WHERE start_date <= $1 AND end_date >= $1
		ORDER BY start_date, id
	`, now)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func (r *Repo) ActiveChallengeIDsForUser(ctx context.Context, userID uuid.UUID, now time.Time) (_ []uuid.UUID, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.active.ids.user")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT c.id
		FROM challenges c
		JOIN challenge_participants p ON p.challenge_id = c.id
		WHERE p.user_id = $1
			AND c.start_date <= $2
			AND c.end_date >= $2
		ORDER BY c.start_date, c.id
	`, userID, now)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func rows2challenges(rows pgx.Rows) ([]Challenge, error) {
	defer rows.Close()

	var challenges []Challenge
	for rows.Next() {
		var c Challenge
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Description,
			&c.StartDate,
			&c.EndDate,
			&c.CreatedBy,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}

	return challenges, rows.Err()
}
