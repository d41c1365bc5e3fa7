package profiles

import (
	"context"
	"fmt"

	"github.com/2beens/liftboard/internal/auth"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, profile Profile) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	if err := r.db.QueryRow(ctx, `
		INSERT INTO profiles (id, username, avatar_url, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`,
		profile.ID,
		profile.Username,
		profile.AvatarURL,
		profile.PasswordHash,
	).Scan(&profile.CreatedAt); err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return &profile, nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var p Profile
	if err := r.db.QueryRow(ctx, `
		SELECT id, username, avatar_url, password_hash, created_at
		FROM profiles
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Username, &p.AvatarURL, &p.PasswordHash, &p.CreatedAt); err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

// GetMany returns the profiles found for the given ids; unknown ids are absent from the map.
func (r *Repo) GetMany(ctx context.Context, ids []uuid.UUID) (_ map[uuid.UUID]Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.getmany")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("ids", len(ids)))

	profiles := make(map[uuid.UUID]Profile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, username, avatar_url, created_at
		FROM profiles
		WHERE id = ANY($1::uuid[])
	`, idStrings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.AvatarURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		profiles[p.ID] = p
	}

	return profiles, rows.Err()
}

// CredentialsByUsername serves the login flow.
func (r *Repo) CredentialsByUsername(ctx context.Context, username string) (_ uuid.UUID, _ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.credentials")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var (
		id           uuid.UUID
		passwordHash string
	)
	if err := r.db.QueryRow(ctx, `
		SELECT id, password_hash FROM profiles WHERE username = $1
	`, username).Scan(&id, &passwordHash); err != nil {
		if pkg.IsNoRowsError(err) {
			return uuid.Nil, "", fmt.Errorf("%w: %s", auth.ErrUserNotFound, username)
		}
		return uuid.Nil, "", err
	}

	return id, passwordHash, nil
}
