package challenges

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("challenge not found")
	ErrInvalidChallenge = errors.New("invalid challenge")
	ErrInvalidProgress  = errors.New("progress must be between 0 and 100")
	ErrChallengeEnded   = errors.New("challenge ended")
)

type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
	StatusPast     Status = "past"
)

type Challenge struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	Status      Status    `json:"status,omitempty"`
}

// StatusAt derives the lifecycle state of the challenge; both window ends are inclusive.
func (c Challenge) StatusAt(now time.Time) Status {
	switch {
	case now.Before(c.StartDate):
		return StatusUpcoming
	case now.After(c.EndDate):
		return StatusPast
	default:
		return StatusActive
	}
}

type Participant struct {
	ID          uuid.UUID `json:"id"`
	ChallengeID uuid.UUID `json:"challenge_id"`
	UserID      uuid.UUID `json:"user_id"`
	Progress    int       `json:"progress"`
	JoinedAt    time.Time `json:"joined_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NewChallenge struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

func (nc NewChallenge) Validate() error {
	if strings.TrimSpace(nc.Name) == "" {
		return errors.Join(ErrInvalidChallenge, errors.New("name is required"))
	}
	if nc.StartDate.IsZero() || nc.EndDate.IsZero() {
		return errors.Join(ErrInvalidChallenge, errors.New("start and end date are required"))
	}
	if nc.EndDate.Before(nc.StartDate) {
		return errors.Join(ErrInvalidChallenge, errors.New("end date is before start date"))
	}
	return nil
}

func ValidateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return ErrInvalidProgress
	}
	return nil
}
