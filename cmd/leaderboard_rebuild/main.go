package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/2beens/liftboard/internal/challenges"
	"github.com/2beens/liftboard/internal/config"
	"github.com/2beens/liftboard/internal/db"
	"github.com/2beens/liftboard/internal/leaderboard"
	"github.com/2beens/liftboard/internal/logging"
	"github.com/2beens/liftboard/internal/profiles"
	"github.com/2beens/liftboard/internal/telemetry/metrics"
	"github.com/2beens/liftboard/internal/workouts"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// leaderboard_rebuild recomputes the cached standings of every active challenge,
// e.g. after a deploy that changed the volume formula or after restoring a backup.
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./configs/config.toml", "path for the TOML config file")
	envFile := flag.String("env-file", ".env", "optional file with secrets as env vars")
	timeout := flag.Duration("timeout", 10*time.Minute, "max duration of the whole rebuild")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		fmt.Printf("no env file loaded from [%s]: %s\n", *envFile, err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout:   true,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Environment:   cfg.Environment,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     os.Getenv("LIFTBOARD_POSTGRES_USER"),
		DBPassword: os.Getenv("LIFTBOARD_POSTGRES_PASS"),
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	challengesRepo := challenges.NewRepo(dbPool)
	service := leaderboard.NewService(leaderboard.ServiceParams{
		Aggregator: leaderboard.NewAggregator(
			challengesRepo,
			workouts.NewRepo(dbPool),
			profiles.NewRepo(dbPool),
		),
		CacheStore:     leaderboard.NewCacheRepo(dbPool),
		MetricsManager: metrics.NewManager("liftboard", "rebuild", prometheus.NewRegistry()),
	})

	challengeIDs, err := challengesRepo.ActiveChallengeIDs(ctx, time.Now())
	if err != nil {
		log.Fatalf("list active challenges: %s", err)
	}
	log.Infof("rebuilding leaderboards of %d active challenges", len(challengeIDs))

	failed := 0
	for _, challengeID := range challengeIDs {
		entries, err := service.Refresh(ctx, challengeID, leaderboard.OriginRebuild)
		if err != nil {
			failed++
			log.Errorf("rebuild %s: %s", challengeID, err)
			continue
		}
		log.Debugf("rebuilt %s: %d entries", challengeID, len(entries))
	}

	if failed > 0 {
		log.Errorf("rebuild done, %d of %d failed", failed, len(challengeIDs))
		os.Exit(1)
	}
	log.Infof("rebuild done")
}
