package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type SessionChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewSessionChecker(ttl time.Duration, redisClient *redis.Client) *SessionChecker {
	return &SessionChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

// UserID resolves the session token to the logged user
func (c *SessionChecker) UserID(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := c.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrNoSession
	}
	if err != nil {
		return uuid.Nil, err
	}

	s, err := decodeSession(val)
	if err != nil {
		return uuid.Nil, err
	}

	if c.now().Sub(s.CreatedAt) > c.ttl {
		return uuid.Nil, ErrSessionExpired
	}

	return s.UserID, nil
}
