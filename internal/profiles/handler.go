package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/liftboard/internal/auth"
	"github.com/2beens/liftboard/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=profiles_test

type profilesStore interface {
	Create(ctx context.Context, profile Profile) (*Profile, error)
	Get(ctx context.Context, id uuid.UUID) (*Profile, error)
}

type Handler struct {
	store        profilesStore
	hashPassword func(string) (string, error)
}

func NewHandler(store profilesStore) *Handler {
	return &Handler{
		store:        store,
		hashPassword: pkg.HashPassword,
	}
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var reg Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		http.Error(w, "invalid registration", http.StatusBadRequest)
		return
	}
	if err := reg.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	passwordHash, err := h.hashPassword(reg.Password)
	if err != nil {
		log.Errorf("register [%s], hash password: %s", reg.Username, err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	profile, err := h.store.Create(r.Context(), Profile{
		Username:     reg.Username,
		AvatarURL:    reg.AvatarURL,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			http.Error(w, "username taken", http.StatusConflict)
			return
		}
		log.Errorf("register [%s]: %s", reg.Username, err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	writeProfile(w, profile, http.StatusCreated)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	profile, err := h.store.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("get profile %s: %s", userID, err)
		http.Error(w, "get profile failed", http.StatusInternalServerError)
		return
	}

	writeProfile(w, profile, http.StatusOK)
}

func writeProfile(w http.ResponseWriter, profile *Profile, status int) {
	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("marshal profile: %s", err)
		http.Error(w, "marshal profile failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, profileJson, status)
}
