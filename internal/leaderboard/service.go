package leaderboard

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/2beens/liftboard/internal/cache"
	"github.com/2beens/liftboard/internal/challenges"
	"github.com/2beens/liftboard/internal/telemetry/metrics"
	"github.com/2beens/liftboard/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=leaderboard_test

type aggregator interface {
	Aggregate(ctx context.Context, challengeID uuid.UUID) ([]Entry, error)
	UserTrend(ctx context.Context, userID, challengeID uuid.UUID) (UserTrend, error)
}

type cacheStore interface {
	Upsert(ctx context.Context, challengeID uuid.UUID, entries []Entry) error
	List(ctx context.Context, challengeID uuid.UUID) ([]Entry, error)
}

type activeChallengesLister interface {
	ListActive(ctx context.Context, userID uuid.UUID) ([]challenges.Challenge, error)
}

const defaultRefreshTimeout = 15 * time.Second

type ServiceParams struct {
	Aggregator       aggregator
	CacheStore       cacheStore
	ActiveChallenges activeChallengesLister
	// Snapshots hold recently refreshed standings for view reads; nil or a zero
	// SnapshotTTL turns them off.
	Snapshots      cache.Cache
	SnapshotTTL    time.Duration
	RefreshTimeout time.Duration
	MetricsManager *metrics.Manager
}

// Service is the single path through which standings are computed and read.
// Every refresh aggregates, writes the cache projection and reads it back.
type Service struct {
	aggregator       aggregator
	cacheStore       cacheStore
	activeChallenges activeChallengesLister
	snapshots        cache.Cache
	snapshotTTL      time.Duration
	refreshTimeout   time.Duration
	metricsManager   *metrics.Manager

	refreshGroup singleflight.Group

	// generations are bumped on every invalidation, a refresh that started
	// under an older generation must not publish its snapshot
	generationsMutex sync.Mutex
	generations      map[uuid.UUID]uint64
}

func NewService(params ServiceParams) *Service {
	refreshTimeout := params.RefreshTimeout
	if refreshTimeout <= 0 {
		refreshTimeout = defaultRefreshTimeout
	}
	return &Service{
		aggregator:       params.Aggregator,
		cacheStore:       params.CacheStore,
		activeChallenges: params.ActiveChallenges,
		snapshots:        params.Snapshots,
		snapshotTTL:      params.SnapshotTTL,
		refreshTimeout:   refreshTimeout,
		metricsManager:   params.MetricsManager,
		generations:      make(map[uuid.UUID]uint64),
	}
}

// Refresh recomputes the standings of the challenge, upserts them into the cache and
// returns what the cache holds afterwards.
func (s *Service) Refresh(ctx context.Context, challengeID uuid.UUID, origin Origin) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.leaderboard.refresh")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("challenge", challengeID.String()),
		attribute.String("origin", string(origin)),
	)

	start := time.Now()
	generation := s.generation(challengeID)

	result := "ok"
	defer func() {
		if err != nil {
			result = "error"
		}
		s.metricsManager.CounterLeaderboardRefresh.WithLabelValues(string(origin), result).Inc()
		s.metricsManager.HistogramLeaderboardRefresh.Observe(time.Since(start).Seconds())
	}()

	entries, err := s.aggregator.Aggregate(ctx, challengeID)
	if err != nil {
		return nil, storeErr("aggregate", err)
	}
	if len(entries) == 0 {
		result = "empty"
		return []Entry{}, nil
	}

	if err := s.cacheStore.Upsert(ctx, challengeID, entries); err != nil {
		return nil, storeErr("write cache", err)
	}

	cached, err := s.cacheStore.List(ctx, challengeID)
	if err != nil {
		return nil, storeErr("read cache", err)
	}
	s.metricsManager.HistogramLeaderboardEntries.Observe(float64(len(cached)))

	s.storeSnapshot(challengeID, generation, cached)

	return cached, nil
}

// Invalidate drops the snapshot of the challenge and supersedes refreshes already running.
func (s *Service) Invalidate(challengeID uuid.UUID) {
	s.generationsMutex.Lock()
	defer s.generationsMutex.Unlock()

	s.generations[challengeID]++
	if s.snapshots != nil {
		s.snapshots.Del(snapshotKey(challengeID))
	}
}

// Standings serves the leaderboard view: a fresh snapshot when there is one, otherwise a
// refresh shared by all viewers of the challenge asking at the same time. The viewer's own
// row is flagged with is_you.
func (s *Service) Standings(ctx context.Context, viewerID, challengeID uuid.UUID) ([]Entry, error) {
	if entries, ok := s.loadSnapshot(challengeID); ok {
		s.metricsManager.CounterSnapshotHits.Inc()
		return markViewer(entries, viewerID), nil
	}

	resChan := s.refreshGroup.DoChan(challengeID.String(), func() (any, error) {
		// the refresh outlives a viewer that goes away, others may be waiting for it
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.refreshTimeout)
		defer cancel()
		return s.Refresh(refreshCtx, challengeID, OriginView)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resChan:
		if res.Err != nil {
			return nil, res.Err
		}
		return markViewer(res.Val.([]Entry), viewerID), nil
	}
}

// Compare puts the viewer's current volume next to the average current volume of the
// current participants of the challenge.
func (s *Service) Compare(ctx context.Context, viewerID, challengeID uuid.UUID) ([]ComparisonRow, error) {
	standings, err := s.Standings(ctx, viewerID, challengeID)
	if err != nil {
		return nil, err
	}
	current := currentParticipants(standings)
	if len(current) == 0 {
		return []ComparisonRow{}, nil
	}

	var total, viewerVolume float64
	for _, e := range current {
		total += e.CurrentVolume
		if e.IsYou {
			viewerVolume = e.CurrentVolume
		}
	}

	return []ComparisonRow{
		{Label: "You", Volume: viewerVolume, IsYou: true},
		{Label: "Average", Volume: total / float64(len(current)), IsAverage: true},
	}, nil
}

// currentParticipants keeps the rows written by the latest refresh. One aggregation stamps
// all of its rows with the same updated_at, rows of users who left keep an older one.
func currentParticipants(standings []Entry) []Entry {
	var latest time.Time
	for _, e := range standings {
		if e.UpdatedAt.After(latest) {
			latest = e.UpdatedAt
		}
	}

	current := make([]Entry, 0, len(standings))
	for _, e := range standings {
		if e.UpdatedAt.Equal(latest) {
			current = append(current, e)
		}
	}
	return current
}

func (s *Service) UserTrend(ctx context.Context, userID, challengeID uuid.UUID) (UserTrend, error) {
	trend, err := s.aggregator.UserTrend(ctx, userID, challengeID)
	if err != nil {
		return UserTrend{}, storeErr("user trend", err)
	}
	return trend, nil
}

// ActiveFor lists the challenges to pick a leaderboard from.
func (s *Service) ActiveFor(ctx context.Context, userID uuid.UUID) ([]challenges.Challenge, error) {
	active, err := s.activeChallenges.ListActive(ctx, userID)
	if err != nil {
		return nil, storeErr("list active challenges", err)
	}
	return active, nil
}

func (s *Service) generation(challengeID uuid.UUID) uint64 {
	s.generationsMutex.Lock()
	defer s.generationsMutex.Unlock()
	return s.generations[challengeID]
}

func (s *Service) storeSnapshot(challengeID uuid.UUID, generation uint64, entries []Entry) {
	if s.snapshots == nil || s.snapshotTTL <= 0 {
		return
	}

	entriesJson, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("leaderboard %s: marshal snapshot: %s", challengeID, err)
		return
	}

	s.generationsMutex.Lock()
	defer s.generationsMutex.Unlock()

	if s.generations[challengeID] != generation {
		s.metricsManager.CounterSupersededRefreshes.Inc()
		log.Debugf("leaderboard %s: refresh superseded, snapshot not stored", challengeID)
		return
	}
	if err := s.snapshots.Set(snapshotKey(challengeID), entriesJson, s.snapshotTTL); err != nil {
		log.Warnf("leaderboard %s: store snapshot [%d bytes]: %s", challengeID, len(entriesJson), err)
	}
}

func (s *Service) loadSnapshot(challengeID uuid.UUID) ([]Entry, bool) {
	if s.snapshots == nil || s.snapshotTTL <= 0 {
		return nil, false
	}

	entriesJson, found := s.snapshots.Get(snapshotKey(challengeID))
	if !found {
		return nil, false
	}

	var entries []Entry
	if err := json.Unmarshal(entriesJson, &entries); err != nil {
		log.Errorf("leaderboard %s: unmarshal snapshot: %s", challengeID, err)
		return nil, false
	}

	return entries, true
}

func snapshotKey(challengeID uuid.UUID) []byte {
	return []byte("leaderboard:" + challengeID.String())
}

// markViewer returns a copy of the entries with the viewer's row flagged;
// the input may be shared with other callers.
func markViewer(entries []Entry, viewerID uuid.UUID) []Entry {
	marked := make([]Entry, len(entries))
	copy(marked, entries)
	for i := range marked {
		marked[i].IsYou = viewerID != uuid.Nil && marked[i].UserID == viewerID
	}
	return marked
}
