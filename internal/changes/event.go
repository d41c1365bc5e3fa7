package changes

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventParticipantChanged EventType = "participant_changed"
	EventInvitationChanged  EventType = "invitation_changed"
	EventWorkoutLogged      EventType = "workout_logged"
)

func (t EventType) String() string {
	return string(t)
}

func (t EventType) IsValid() bool {
	switch t {
	case EventParticipantChanged, EventInvitationChanged, EventWorkoutLogged:
		return true
	}
	return false
}

// Event notifies that data feeding a challenge leaderboard changed.
// ChallengeID is uuid.Nil when the change is not tied to one challenge (a workout logged
// without a challenge), then UserID is used to find the affected challenges.
type Event struct {
	Type        EventType `json:"type"`
	ChallengeID uuid.UUID `json:"challenge_id"`
	UserID      uuid.UUID `json:"user_id"`
	At          time.Time `json:"at"`
}
