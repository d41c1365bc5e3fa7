package leaderboard

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one participant's row in the standings of a challenge. The same shape is stored
// in leaderboard_cache and returned to clients.
type Entry struct {
	ChallengeID      uuid.UUID `json:"challenge_id"`
	UserID           uuid.UUID `json:"user_id"`
	Username         string    `json:"username"`
	AvatarURL        string    `json:"avatar_url"`
	CurrentVolume    float64   `json:"current_volume"`
	PreviousVolume   float64   `json:"previous_volume"`
	PercentageChange float64   `json:"percentage_change"`
	Position         int       `json:"position"`
	UpdatedAt        time.Time `json:"updated_at"`
	IsYou            bool      `json:"is_you"`
}

type Trend struct {
	Current          float64
	Previous         float64
	PercentageChange float64
}

type UserTrend struct {
	UserID           uuid.UUID `json:"user_id"`
	ChallengeID      uuid.UUID `json:"challenge_id"`
	CurrentVolume    float64   `json:"current_volume"`
	PreviousVolume   float64   `json:"previous_volume"`
	PercentageChange float64   `json:"percentage_change"`
}

type ComparisonRow struct {
	Label     string  `json:"label"`
	Volume    float64 `json:"volume"`
	IsYou     bool    `json:"is_you"`
	IsAverage bool    `json:"is_average"`
}

type Origin string

const (
	OriginView    Origin = "view"
	OriginRPC     Origin = "rpc"
	OriginTrigger Origin = "trigger"
	OriginRebuild Origin = "rebuild"
)
