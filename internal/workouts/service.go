package workouts

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/liftboard/internal/changes"
	"github.com/2beens/liftboard/internal/telemetry/metrics"
	"github.com/2beens/liftboard/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, workout Workout) (*Workout, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]Workout, error)
}

type changePublisher interface {
	Publish(ctx context.Context, event changes.Event) error
}

const maxListLimit = 100

type Service struct {
	repo           workoutsRepo
	publisher      changePublisher
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(repo workoutsRepo, publisher changePublisher, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		publisher:      publisher,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// Submit validates and stores the workout of the given user. Every leaderboard the user takes
// part in may change, so a workout_logged event is published after the insert.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.submit")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := workout.Validate(); err != nil {
		return nil, err
	}

	workout.normalize(userID, s.now().UTC())
	added, err := s.repo.Add(ctx, workout)
	if err != nil {
		return nil, fmt.Errorf("add workout: %w", err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterWorkoutsSubmitted.Inc()
	}

	// no challenge id: the volume counts in every challenge window of the user,
	// whichever challenge the workout was logged for
	event := changes.Event{
		Type:   changes.EventWorkoutLogged,
		UserID: userID,
		At:     added.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Errorf("workout %s added, but publish change event failed: %s", added.ID, err)
	}

	return added, nil
}

func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]Workout, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	workouts, err := s.repo.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return workouts, nil
}
