package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/liftboard/internal/auth"
	"github.com/2beens/liftboard/internal/cache"
	"github.com/2beens/liftboard/internal/challenges"
	"github.com/2beens/liftboard/internal/changes"
	"github.com/2beens/liftboard/internal/config"
	"github.com/2beens/liftboard/internal/db"
	"github.com/2beens/liftboard/internal/leaderboard"
	"github.com/2beens/liftboard/internal/middleware"
	"github.com/2beens/liftboard/internal/profiles"
	"github.com/2beens/liftboard/internal/social"
	"github.com/2beens/liftboard/internal/telemetry/metrics"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/internal/workouts"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const sessionsCleanupInterval = 8 * time.Hour

type routeHandlers struct {
	auth        *auth.Handler
	profiles    *profiles.Handler
	challenges  *challenges.Handler
	workouts    *workouts.Handler
	social      *social.Handler
	leaderboard *leaderboard.Handler
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	sessionChecker *auth.SessionChecker
	authService    *auth.Service
	rateLimiter    middleware.RequestRateLimiter
	handlers       routeHandlers

	changesSubscriber *changes.Subscriber
	trigger           *leaderboard.Trigger

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	PostgresUser            string
	PostgresPassword        string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         params.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("liftboard", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "liftboard-service", rdb)
	if err != nil {
		return nil, err
	}

	snapshots, err := cache.NewSnapshotCache(cfg.LeaderboardSnapshotCacheMB)
	if err != nil {
		return nil, fmt.Errorf("leaderboard snapshot cache: %w", err)
	}

	publisher := changes.NewPublisher(rdb, cfg.ChangesChannel)

	profilesRepo := profiles.NewRepo(dbPool)
	challengesRepo := challenges.NewRepo(dbPool)
	workoutsRepo := workouts.NewRepo(dbPool)

	authService := auth.NewAuthService(profilesRepo, auth.DefaultTTL, rdb)
	challengesService := challenges.NewService(challengesRepo, publisher)
	workoutsService := workouts.NewService(workoutsRepo, publisher, metricsManager)
	socialService := social.NewService(social.NewRepo(dbPool), publisher)

	leaderboardService := leaderboard.NewService(leaderboard.ServiceParams{
		Aggregator:       leaderboard.NewAggregator(challengesRepo, workoutsRepo, profilesRepo),
		CacheStore:       leaderboard.NewCacheRepo(dbPool),
		ActiveChallenges: challengesService,
		Snapshots:        snapshots,
		SnapshotTTL:      cfg.LeaderboardSnapshotTTL(),
		MetricsManager:   metricsManager,
	})
	trigger := leaderboard.NewTrigger(leaderboard.TriggerParams{
		Refresher:       leaderboardService,
		Resolver:        challengesRepo,
		MetricsManager:  metricsManager,
		Workers:         cfg.LeaderboardRefreshWorkers,
		RefreshesPerSec: cfg.LeaderboardRefreshPerSec,
	})

	return &Server{
		config:      cfg,
		dbPool:      dbPool,
		redisClient: rdb,

		sessionChecker: auth.NewSessionChecker(auth.DefaultTTL, rdb),
		authService:    authService,
		rateLimiter:    redis_rate.NewLimiter(rdb),
		handlers: routeHandlers{
			auth:        auth.NewHandler(authService),
			profiles:    profiles.NewHandler(profilesRepo),
			challenges:  challenges.NewHandler(challengesService),
			workouts:    workouts.NewHandler(workoutsService),
			social:      social.NewHandler(socialService),
			leaderboard: leaderboard.NewHandler(leaderboardService),
		},

		changesSubscriber: changes.NewSubscriber(rdb, cfg.ChangesChannel),
		trigger:           trigger,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	loginRateLimit := middleware.RateLimit(
		s.rateLimiter,
		s.metricsManager,
		"login",
		s.config.LoginRateLimitAllowedPerMin,
	)
	r.Handle("/a/login", loginRateLimit(http.HandlerFunc(s.handlers.auth.HandleLogin))).Methods("POST", "OPTIONS").Name("login")
	r.HandleFunc("/a/logout", s.handlers.auth.HandleLogout).Methods("GET", "OPTIONS").Name("logout")

	r.HandleFunc("/profiles", s.handlers.profiles.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	r.HandleFunc("/profiles/me", s.handlers.profiles.HandleMe).Methods("GET", "OPTIONS").Name("me")

	challengesHandler := s.handlers.challenges
	r.HandleFunc("/challenges", challengesHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-challenge")
	r.HandleFunc("/challenges/active", challengesHandler.HandleListActive).Methods("GET", "OPTIONS").Name("active-challenges")
	r.HandleFunc("/challenges/upcoming", challengesHandler.HandleListUpcoming).Methods("GET", "OPTIONS").Name("upcoming-challenges")
	r.HandleFunc("/challenges/{id}", challengesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-challenge")
	r.HandleFunc("/challenges/{id}/join", challengesHandler.HandleJoin).Methods("POST", "OPTIONS").Name("join-challenge")
	r.HandleFunc("/challenges/{id}/progress", challengesHandler.HandleUpdateProgress).Methods("PUT", "OPTIONS").Name("update-progress")

	r.HandleFunc("/workouts", s.handlers.workouts.HandleSubmit).Methods("POST", "OPTIONS").Name("submit-workout")
	r.HandleFunc("/workouts", s.handlers.workouts.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")

	socialHandler := s.handlers.social
	r.HandleFunc("/friends", socialHandler.HandleFriends).Methods("GET", "OPTIONS").Name("friends")
	r.HandleFunc("/friends/requests", socialHandler.HandlePendingFriendRequests).Methods("GET", "OPTIONS").Name("friend-requests")
	r.HandleFunc("/friends/requests", socialHandler.HandleSendFriendRequest).Methods("POST", "OPTIONS").Name("send-friend-request")
	r.HandleFunc("/friends/requests/{id}", socialHandler.HandleRespondToFriendRequest).Methods("PUT", "OPTIONS").Name("respond-friend-request")
	r.HandleFunc("/friends/invitable/{challengeId}", socialHandler.HandleInvitableFriends).Methods("GET", "OPTIONS").Name("invitable-friends")
	r.HandleFunc("/challenges/{id}/invitations", socialHandler.HandleInvite).Methods("POST", "OPTIONS").Name("invite")
	r.HandleFunc("/invitations", socialHandler.HandlePendingInvitations).Methods("GET", "OPTIONS").Name("invitations")
	r.HandleFunc("/invitations/{id}/accept", socialHandler.HandleAcceptInvitation).Methods("PUT", "OPTIONS").Name("accept-invitation")
	r.HandleFunc("/invitations/{id}/dismiss", socialHandler.HandleDismissInvitation).Methods("PUT", "OPTIONS").Name("dismiss-invitation")
	r.HandleFunc("/notifications", socialHandler.HandleNotifications).Methods("GET", "OPTIONS").Name("notifications")
	r.HandleFunc("/notifications/{id}/read", socialHandler.HandleMarkNotificationRead).Methods("PUT", "OPTIONS").Name("read-notification")

	leaderboardHandler := s.handlers.leaderboard
	r.HandleFunc("/leaderboard/active", leaderboardHandler.HandleActive).Methods("GET", "OPTIONS").Name("leaderboard-challenges")
	r.HandleFunc("/leaderboard/{challengeId}", leaderboardHandler.HandleStandings).Methods("GET", "OPTIONS").Name("leaderboard")
	r.HandleFunc("/leaderboard/{challengeId}/trend", leaderboardHandler.HandleTrend).Methods("GET", "OPTIONS").Name("leaderboard-trend")
	r.HandleFunc("/leaderboard/{challengeId}/compare", leaderboardHandler.HandleCompare).Methods("GET", "OPTIONS").Name("leaderboard-compare")
	r.HandleFunc("/rpc/update_leaderboard_cache", leaderboardHandler.HandleUpdateCacheRPC).Methods("POST", "OPTIONS").Name("rpc-update-leaderboard-cache")
	r.HandleFunc("/rpc/get_user_volume_trends", leaderboardHandler.HandleUserTrendsRPC).Methods("POST", "OPTIONS").Name("rpc-user-volume-trends")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.sessionChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

// Serve starts the API and metrics listeners plus the background work: the leaderboard
// refresh trigger fed by the change feed, and the periodic sessions cleanup.
func (s *Server) Serve(ctx context.Context, host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      handlers.CompressHandler(s.routerSetup()),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.startLeaderboardTrigger(ctx)
	go s.cleanupSessions(ctx)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) startLeaderboardTrigger(ctx context.Context) {
	events, err := s.changesSubscriber.Subscribe(ctx)
	if err != nil {
		// leaderboards still refresh on view, only the push path is gone
		log.Errorf("failed to subscribe to changes feed, leaderboard trigger not started: %s", err)
		return
	}
	s.trigger.Start(ctx, events)
}

func (s *Server) cleanupSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionsCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.authService.ScanAndClean(ctx)
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	log.Debugln("stopping leaderboard trigger ...")
	s.trigger.Stop()

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
