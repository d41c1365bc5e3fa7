package leaderboard

import (
	"context"
	"fmt"

	"github.com/2beens/liftboard/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CacheRepo is the leaderboard_cache projection. Rows are keyed by (challenge_id, user_id)
// and can always be rebuilt from the aggregation.
type CacheRepo struct {
	db *pgxpool.Pool
}

func NewCacheRepo(db *pgxpool.Pool) *CacheRepo {
	return &CacheRepo{
		db: db,
	}
}

// Upsert writes all entries of one aggregation in a single transaction. Rows of users that
// are no longer participants are left in place.
func (r *CacheRepo) Upsert(ctx context.Context, challengeID uuid.UUID, entries []Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.cache.upsert")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("entries", len(entries)))

	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
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

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO leaderboard_cache (
				challenge_id, user_id, username, avatar_url,
				current_volume, previous_volume, percentage_change, position, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (challenge_id, user_id) DO UPDATE SET
				username = EXCLUDED.username,
				avatar_url = EXCLUDED.avatar_url,
				current_volume = EXCLUDED.current_volume,
				previous_volume = EXCLUDED.previous_volume,
				percentage_change = EXCLUDED.percentage_change,
				position = EXCLUDED.position,
				updated_at = EXCLUDED.updated_at
		`,
			challengeID,
			e.UserID,
			e.Username,
			e.AvatarURL,
			e.CurrentVolume,
			e.PreviousVolume,
			e.PercentageChange,
			e.Position,
			e.UpdatedAt,
		)
	}

	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert cache entries: %w", err)
	}

	return nil
}

// List reads the cached standings in the same order the aggregation produced them.
func (r *CacheRepo) List(ctx context.Context, challengeID uuid.UUID) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.cache.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT challenge_id, user_id, username, avatar_url,
			current_volume, previous_volume, percentage_change, position, updated_at
		FROM leaderboard_cache
		WHERE challenge_id = $1
		ORDER BY current_volume DESC, position ASC, user_id
	`, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ChallengeID,
			&e.UserID,
			&e.Username,
			&e.AvatarURL,
			&e.CurrentVolume,
			&e.PreviousVolume,
			&e.PercentageChange,
			&e.Position,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
