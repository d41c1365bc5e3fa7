package leaderboard

import (
	"context"
	"sync"
	"time"

	"github.com/2beens/liftboard/internal/changes"
	"github.com/2beens/liftboard/internal/telemetry/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

//go:generate mockgen -source=$GOFILE -destination=trigger_mocks_test.go -package=leaderboard_test

type refresher interface {
	Refresh(ctx context.Context, challengeID uuid.UUID, origin Origin) ([]Entry, error)
	Invalidate(challengeID uuid.UUID)
}

type challengeResolver interface {
	ActiveChallengeIDsForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]uuid.UUID, error)
}

const (
	defaultTriggerWorkers   = 4
	defaultTriggerQueueSize = 256
)

type TriggerParams struct {
	Refresher      refresher
	Resolver       challengeResolver
	MetricsManager *metrics.Manager
	Workers        int
	QueueSize      int
	// RefreshesPerSec throttles refreshes across all workers, 0 means no limit
	RefreshesPerSec float64
	RefreshTimeout  time.Duration
}

// Trigger re-runs leaderboard refreshes on change events. A challenge is queued at most
// once at a time, more events for it while it waits are absorbed by the queued job.
type Trigger struct {
	refresher      refresher
	resolver       challengeResolver
	metricsManager *metrics.Manager
	limiter        *rate.Limiter
	workers        int
	refreshTimeout time.Duration
	now            func() time.Time

	jobQueue     chan uuid.UUID
	pending      map[uuid.UUID]struct{}
	pendingMutex sync.Mutex

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewTrigger(params TriggerParams) *Trigger {
	workers := params.Workers
	if workers <= 0 {
		workers = defaultTriggerWorkers
	}
	queueSize := params.QueueSize
	if queueSize <= 0 {
		queueSize = defaultTriggerQueueSize
	}
	refreshTimeout := params.RefreshTimeout
	if refreshTimeout <= 0 {
		refreshTimeout = defaultRefreshTimeout
	}

	limit := rate.Inf
	if params.RefreshesPerSec > 0 {
		limit = rate.Limit(params.RefreshesPerSec)
	}

	return &Trigger{
		refresher:      params.Refresher,
		resolver:       params.Resolver,
		metricsManager: params.MetricsManager,
		limiter:        rate.NewLimiter(limit, workers),
		workers:        workers,
		refreshTimeout: refreshTimeout,
		now:            time.Now,
		jobQueue:       make(chan uuid.UUID, queueSize),
		pending:        make(map[uuid.UUID]struct{}),
		stopChan:       make(chan struct{}),
	}
}

// Start runs the workers and consumes events until Stop is called, ctx is done
// or the events channel is closed.
func (t *Trigger) Start(ctx context.Context, events <-chan changes.Event) {
	log.Infof("leaderboard trigger: starting %d workers", t.workers)

	for i := 0; i < t.workers; i++ {
		t.wg.Add(1)
		go t.worker(ctx, i)
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for {
			select {
			case <-t.stopChan:
				return
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					log.Debugln("leaderboard trigger: events channel closed")
					return
				}
				t.Handle(ctx, event)
			}
		}
	}()
}

// Stop waits for the workers to finish their current refresh. Queued jobs are dropped,
// the next view of those challenges refreshes them anyway.
func (t *Trigger) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopChan)
	})
	t.wg.Wait()
	log.Debugln("leaderboard trigger: stopped")
}

// Handle turns a change event into refresh jobs. Events not bound to a challenge
// affect every active challenge of their user, and so does a logged workout, whose volume
// counts in every challenge window of the user.
func (t *Trigger) Handle(ctx context.Context, event changes.Event) {
	t.metricsManager.CounterChangeEvents.WithLabelValues(event.Type.String()).Inc()

	if event.ChallengeID != uuid.Nil {
		t.Enqueue(event.ChallengeID)
		if event.Type != changes.EventWorkoutLogged || event.UserID == uuid.Nil {
			return
		}
	}

	if event.UserID == uuid.Nil {
		log.Warnf("leaderboard trigger: %s event without challenge and user, ignored", event.Type)
		return
	}

	challengeIDs, err := t.resolver.ActiveChallengeIDsForUser(ctx, event.UserID, t.now())
	if err != nil {
		log.Errorf("leaderboard trigger: resolve challenges of user %s: %s", event.UserID, err)
		return
	}
	for _, challengeID := range challengeIDs {
		t.Enqueue(challengeID)
	}
}

// Enqueue invalidates the snapshot of the challenge and queues its refresh.
// It reports false when the refresh is already queued or the queue is full.
func (t *Trigger) Enqueue(challengeID uuid.UUID) bool {
	t.refresher.Invalidate(challengeID)

	t.pendingMutex.Lock()
	if _, queued := t.pending[challengeID]; queued {
		t.pendingMutex.Unlock()
		return false
	}
	t.pending[challengeID] = struct{}{}
	t.pendingMutex.Unlock()

	select {
	case t.jobQueue <- challengeID:
		t.metricsManager.GaugeRefreshQueueSize.Set(float64(len(t.jobQueue)))
		return true
	default:
		t.pendingMutex.Lock()
		delete(t.pending, challengeID)
		t.pendingMutex.Unlock()
		log.Warnf("leaderboard trigger: queue full, refresh of %s dropped", challengeID)
		return false
	}
}

func (t *Trigger) worker(ctx context.Context, id int) {
	defer t.wg.Done()

	for {
		select {
		case <-t.stopChan:
			return
		case <-ctx.Done():
			return
		case challengeID := <-t.jobQueue:
			t.metricsManager.GaugeRefreshQueueSize.Set(float64(len(t.jobQueue)))

			// events arriving from now on need a new run, this one may have read old data
			t.pendingMutex.Lock()
			delete(t.pending, challengeID)
			t.pendingMutex.Unlock()

			if err := t.limiter.Wait(ctx); err != nil {
				return
			}
			t.refresh(ctx, id, challengeID)
		}
	}
}

func (t *Trigger) refresh(ctx context.Context, workerID int, challengeID uuid.UUID) {
	refreshCtx, cancel := context.WithTimeout(ctx, t.refreshTimeout)
	defer cancel()

	entries, err := t.refresher.Refresh(refreshCtx, challengeID, OriginTrigger)
	if err != nil {
		log.Errorf("leaderboard trigger [worker %d]: refresh %s: %s", workerID, challengeID, err)
		return
	}
	log.Tracef("leaderboard trigger [worker %d]: refreshed %s, %d entries", workerID, challengeID, len(entries))
}

func (t *Trigger) QueueLen() int {
	return len(t.jobQueue)
}
