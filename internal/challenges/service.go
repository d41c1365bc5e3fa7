package challenges

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/liftboard/internal/changes"
	"github.com/2beens/liftboard/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=challenges_test

type challengesRepo interface {
	Create(ctx context.Context, challenge Challenge) (*Challenge, error)
	Get(ctx context.Context, id uuid.UUID) (*Challenge, error)
	ListActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]Challenge, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]Challenge, error)
	Join(ctx context.Context, challengeID, userID uuid.UUID) (bool, error)
	UpsertProgress(ctx context.Context, challengeID, userID uuid.UUID, progress int) (*Participant, error)
}

type changePublisher interface {
	Publish(ctx context.Context, event changes.Event) error
}

type Service struct {
	repo      challengesRepo
	publisher changePublisher
	now       func() time.Time
}

func NewService(repo challengesRepo, publisher changePublisher) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *Service) Create(ctx context.Context, creatorID uuid.UUID, nc NewChallenge) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.challenges.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := nc.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, Challenge{
		ID:          uuid.New(),
		Name:        nc.Name,
		Description: nc.Description,
		StartDate:   nc.StartDate.UTC(),
		EndDate:     nc.EndDate.UTC(),
		CreatedBy:   creatorID,
	})
	if err != nil {
		return nil, fmt.Errorf("create challenge: %w", err)
	}
	created.Status = created.StatusAt(s.now())

	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Challenge, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Status = c.StatusAt(s.now())
	return c, nil
}

// ListActive returns the challenges the user participates in which are running now.
func (s *Service) ListActive(ctx context.Context, userID uuid.UUID) ([]Challenge, error) {
	now := s.now()
	active, err := s.repo.ListActiveForUser(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("list active challenges: %w", err)
	}
	return withStatus(active, now), nil
}

func (s *Service) ListUpcoming(ctx context.Context) ([]Challenge, error) {
	now := s.now()
	upcoming, err := s.repo.ListUpcoming(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list upcoming challenges: %w", err)
	}
	return withStatus(upcoming, now), nil
}

// Join makes the user a participant. Joining a challenge that already ended is refused.
func (s *Service) Join(ctx context.Context, challengeID, userID uuid.UUID) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.challenges.join")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	c, err := s.repo.Get(ctx, challengeID)
	if err != nil {
		return false, err
	}
	if c.StatusAt(s.now()) == StatusPast {
		return false, ErrChallengeEnded
	}

	joined, err := s.repo.Join(ctx, challengeID, userID)
	if err != nil {
		return false, fmt.Errorf("join challenge: %w", err)
	}
	if joined {
		s.publishParticipantChanged(ctx, challengeID, userID)
	}

	return joined, nil
}

func (s *Service) UpdateProgress(ctx context.Context, challengeID, userID uuid.UUID, progress int) (_ *Participant, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.challenges.progress")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := ValidateProgress(progress); err != nil {
		return nil, err
	}

	p, err := s.repo.UpsertProgress(ctx, challengeID, userID, progress)
	if err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	s.publishParticipantChanged(ctx, challengeID, userID)

	return p, nil
}

func (s *Service) publishParticipantChanged(ctx context.Context, challengeID, userID uuid.UUID) {
	if err := s.publisher.Publish(ctx, changes.Event{
		Type:        changes.EventParticipantChanged,
		ChallengeID: challengeID,
		UserID:      userID,
		At:          s.now().UTC(),
	}); err != nil {
		log.Errorf("challenge %s: publish participant change of %s: %s", challengeID, userID, err)
	}
}

func withStatus(challenges []Challenge, now time.Time) []Challenge {
	if challenges == nil {
		return []Challenge{}
	}
	for i := range challenges {
		challenges[i].Status = challenges[i].StatusAt(now)
	}
	return challenges
}
