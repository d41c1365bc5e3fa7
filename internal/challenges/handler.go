package challenges

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/liftboard/internal/auth"
	"github.com/2beens/liftboard/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=challenges_test

type service interface {
	Create(ctx context.Context, creatorID uuid.UUID, nc NewChallenge) (*Challenge, error)
	Get(ctx context.Context, id uuid.UUID) (*Challenge, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]Challenge, error)
	ListUpcoming(ctx context.Context) ([]Challenge, error)
	Join(ctx context.Context, challengeID, userID uuid.UUID) (bool, error)
	UpdateProgress(ctx context.Context, challengeID, userID uuid.UUID, progress int) (*Participant, error)
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

type progressRequest struct {
	Progress int `json:"progress"`
}

type joinResponse struct {
	Joined bool `json:"joined"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var nc NewChallenge
	if err := json.NewDecoder(r.Body).Decode(&nc); err != nil {
		http.Error(w, "invalid challenge", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), userID, nc)
	if err != nil {
		if errors.Is(err, ErrInvalidChallenge) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("create challenge by %s: %s", userID, err)
		http.Error(w, "create challenge failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := challengeIDFromPath(w, r)
	if !ok {
		return
	}

	c, err := h.service.Get(r.Context(), challengeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "challenge not found", http.StatusNotFound)
			return
		}
		log.Errorf("get challenge %s: %s", challengeID, err)
		http.Error(w, "get challenge failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, c, http.StatusOK)
}

func (h *Handler) HandleListActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	active, err := h.service.ListActive(r.Context(), userID)
	if err != nil {
		log.Errorf("list active challenges for %s: %s", userID, err)
		http.Error(w, "failed to load challenges", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, active, http.StatusOK)
}

func (h *Handler) HandleListUpcoming(w http.ResponseWriter, r *http.Request) {
	upcoming, err := h.service.ListUpcoming(r.Context())
	if err != nil {
		log.Errorf("list upcoming challenges: %s", err)
		http.Error(w, "failed to load challenges", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, upcoming, http.StatusOK)
}

func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	challengeID, ok := challengeIDFromPath(w, r)
	if !ok {
		return
	}

	joined, err := h.service.Join(r.Context(), challengeID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			http.Error(w, "challenge not found", http.StatusNotFound)
		case errors.Is(err, ErrChallengeEnded):
			http.Error(w, "challenge ended", http.StatusConflict)
		default:
			log.Errorf("join challenge %s by %s: %s", challengeID, userID, err)
			http.Error(w, "join challenge failed", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, joinResponse{Joined: joined}, http.StatusOK)
}

func (h *Handler) HandleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	challengeID, ok := challengeIDFromPath(w, r)
	if !ok {
		return
	}

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid progress", http.StatusBadRequest)
		return
	}

	p, err := h.service.UpdateProgress(r.Context(), challengeID, userID, req.Progress)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidProgress):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrNotFound):
			http.Error(w, "challenge not found", http.StatusNotFound)
		default:
			log.Errorf("update progress in %s by %s: %s", challengeID, userID, err)
			http.Error(w, "update progress failed", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, p, http.StatusOK)
}

func challengeIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	challengeID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid challenge id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return challengeID, true
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "marshal response failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, status)
}
