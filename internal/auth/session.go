package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "liftboard-session||"
	tokensSetKey     = "liftboard-sessions"
	tokenLength      = 40
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrWrongPassword  = errors.New("wrong password")
	ErrSessionExpired = errors.New("session expired")
	ErrNoSession      = errors.New("no session")
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type session struct {
	UserID    uuid.UUID
	CreatedAt time.Time
}

func (s session) encode() string {
	return fmt.Sprintf("%s|%d", s.UserID, s.CreatedAt.Unix())
}

func decodeSession(val string) (session, error) {
	userIDStr, createdAtStr, found := strings.Cut(val, "|")
	if !found {
		return session{}, fmt.Errorf("malformed session value: %s", val)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return session{}, fmt.Errorf("session user id: %w", err)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return session{}, fmt.Errorf("session created at: %w", err)
	}
	return session{
		UserID:    userID,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}
