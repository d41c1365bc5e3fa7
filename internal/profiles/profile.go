package profiles

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("profile not found")
	ErrUsernameTaken  = errors.New("username taken")
	ErrInvalidProfile = errors.New("invalid profile")

	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,32}$`)
)

type Profile struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	AvatarURL    string    `json:"avatar_url"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Registration is what a new user sends to create a profile.
type Registration struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	AvatarURL string `json:"avatar_url"`
}

func (r Registration) Validate() error {
	if !usernameRegex.MatchString(r.Username) {
		return errors.Join(ErrInvalidProfile, errors.New("username must be 3-32 letters, digits, '_' or '.'"))
	}
	if len(r.Password) < 8 {
		return errors.Join(ErrInvalidProfile, errors.New("password must have at least 8 characters"))
	}
	return nil
}
