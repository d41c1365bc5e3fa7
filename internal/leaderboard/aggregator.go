package leaderboard

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/2beens/liftboard/internal/challenges"
	"github.com/2beens/liftboard/internal/profiles"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/internal/workouts"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=aggregator_mocks_test.go -package=leaderboard_test

type challengeSource interface {
	Get(ctx context.Context, id uuid.UUID) (*challenges.Challenge, error)
	Participants(ctx context.Context, challengeID uuid.UUID) ([]challenges.Participant, error)
}

type workoutSource interface {
	ListForUsersInWindow(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) ([]workouts.Workout, error)
}

type profileSource interface {
	GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profiles.Profile, error)
}

type Aggregator struct {
	challenges challengeSource
	workouts   workoutSource
	profiles   profileSource
	now        func() time.Time
}

func NewAggregator(challenges challengeSource, workouts workoutSource, profiles profileSource) *Aggregator {
	return &Aggregator{
		challenges: challenges,
		workouts:   workouts,
		profiles:   profiles,
		now:        time.Now,
	}
}

// Aggregate computes the standings of a challenge, highest current volume first.
// Participants with equal volume keep the order in which they joined.
// A missing challenge or one without participants yields an empty list.
func (a *Aggregator) Aggregate(ctx context.Context, challengeID uuid.UUID) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "leaderboard.aggregate")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("challenge", challengeID.String()))

	challenge, err := a.challenges.Get(ctx, challengeID)
	if err != nil {
		if errors.Is(err, challenges.ErrNotFound) {
			return []Entry{}, nil
		}
		return nil, storeErr("get challenge", err)
	}

	participants, err := a.challenges.Participants(ctx, challengeID)
	if err != nil {
		return nil, storeErr("get participants", err)
	}
	if len(participants) == 0 {
		return []Entry{}, nil
	}

	userIDs := make([]uuid.UUID, 0, len(participants))
	for _, p := range participants {
		userIDs = append(userIDs, p.UserID)
	}

	workoutsByUser, err := a.workoutsInWindow(ctx, userIDs, challenge)
	if err != nil {
		return nil, err
	}

	userProfiles, err := a.profiles.GetMany(ctx, userIDs)
	if err != nil {
		return nil, storeErr("get profiles", err)
	}

	updatedAt := a.now().UTC()
	entries := make([]Entry, 0, len(participants))
	for _, p := range participants {
		trend := ExtractTrend(workoutsByUser[p.UserID])
		profile := userProfiles[p.UserID]
		entries = append(entries, Entry{
			ChallengeID:      challengeID,
			UserID:           p.UserID,
			Username:         profile.Username,
			AvatarURL:        profile.AvatarURL,
			CurrentVolume:    trend.Current,
			PreviousVolume:   trend.Previous,
			PercentageChange: trend.PercentageChange,
			UpdatedAt:        updatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CurrentVolume > entries[j].CurrentVolume
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	span.SetAttributes(attribute.Int("entries", len(entries)))

	return entries, nil
}

// UserTrend is the trend of one user within the challenge window. It is zero for an unknown
// challenge or a user without workouts in it.
func (a *Aggregator) UserTrend(ctx context.Context, userID, challengeID uuid.UUID) (_ UserTrend, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "leaderboard.usertrend")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	userTrend := UserTrend{
		UserID:      userID,
		ChallengeID: challengeID,
	}

	challenge, err := a.challenges.Get(ctx, challengeID)
	if err != nil {
		if errors.Is(err, challenges.ErrNotFound) {
			return userTrend, nil
		}
		return UserTrend{}, storeErr("get challenge", err)
	}

	workoutsByUser, err := a.workoutsInWindow(ctx, []uuid.UUID{userID}, challenge)
	if err != nil {
		return UserTrend{}, err
	}

	trend := ExtractTrend(workoutsByUser[userID])
	userTrend.CurrentVolume = trend.Current
	userTrend.PreviousVolume = trend.Previous
	userTrend.PercentageChange = trend.PercentageChange

	return userTrend, nil
}

// workoutsInWindow groups the workouts of the users made within the challenge window,
// each group ordered newest first.
func (a *Aggregator) workoutsInWindow(
	ctx context.Context,
	userIDs []uuid.UUID,
	challenge *challenges.Challenge,
) (map[uuid.UUID][]workouts.Workout, error) {
	inWindow, err := a.workouts.ListForUsersInWindow(ctx, userIDs, challenge.StartDate, challenge.EndDate)
	if err != nil {
		return nil, storeErr("get workouts", err)
	}

	byUser := make(map[uuid.UUID][]workouts.Workout, len(userIDs))
	for _, w := range inWindow {
		if w.CreatedAt.Before(challenge.StartDate) || w.CreatedAt.After(challenge.EndDate) {
			continue
		}
		byUser[w.UserID] = append(byUser[w.UserID], w)
	}
	for userID := range byUser {
		userWorkouts := byUser[userID]
		sort.SliceStable(userWorkouts, func(i, j int) bool {
			return userWorkouts[i].CreatedAt.After(userWorkouts[j].CreatedAt)
		})
	}

	return byUser, nil
}
