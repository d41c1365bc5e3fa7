package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/liftboard/internal/auth"
	"github.com/2beens/liftboard/internal/challenges"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=leaderboard_test

type service interface {
	Standings(ctx context.Context, viewerID, challengeID uuid.UUID) ([]Entry, error)
	Refresh(ctx context.Context, challengeID uuid.UUID, origin Origin) ([]Entry, error)
	Compare(ctx context.Context, viewerID, challengeID uuid.UUID) ([]ComparisonRow, error)
	UserTrend(ctx context.Context, userID, challengeID uuid.UUID) (UserTrend, error)
	ActiveFor(ctx context.Context, userID uuid.UUID) ([]challenges.Challenge, error)
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

type updateCacheRequest struct {
	ChallengeID uuid.UUID `json:"challenge_id"`
}

type userTrendsRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	ChallengeID uuid.UUID `json:"challenge_id"`
}

// HandleStandings serves GET /leaderboard/{challengeId}
func (h *Handler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.leaderboard.standings")
	defer span.End()

	viewerID, challengeID, ok := viewerAndChallenge(w, r.WithContext(ctx))
	if !ok {
		return
	}

	entries, err := h.service.Standings(ctx, viewerID, challengeID)
	if err != nil {
		writeServiceError(w, "standings of "+challengeID.String(), err)
		return
	}

	writeJSON(w, entries)
}

func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	viewerID, challengeID, ok := viewerAndChallenge(w, r)
	if !ok {
		return
	}

	rows, err := h.service.Compare(r.Context(), viewerID, challengeID)
	if err != nil {
		writeServiceError(w, "compare in "+challengeID.String(), err)
		return
	}

	writeJSON(w, rows)
}

func (h *Handler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	viewerID, challengeID, ok := viewerAndChallenge(w, r)
	if !ok {
		return
	}

	trend, err := h.service.UserTrend(r.Context(), viewerID, challengeID)
	if err != nil {
		writeServiceError(w, "trend in "+challengeID.String(), err)
		return
	}

	writeJSON(w, trend)
}

// HandleActive lists the challenges the viewer can open a leaderboard for
func (h *Handler) HandleActive(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	active, err := h.service.ActiveFor(r.Context(), viewerID)
	if err != nil {
		writeServiceError(w, "active challenges", err)
		return
	}

	writeJSON(w, active)
}

// HandleUpdateCacheRPC serves POST /rpc/update_leaderboard_cache
func (h *Handler) HandleUpdateCacheRPC(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req updateCacheRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChallengeID == uuid.Nil {
		http.Error(w, "invalid challenge id", http.StatusBadRequest)
		return
	}

	entries, err := h.service.Refresh(r.Context(), req.ChallengeID, OriginRPC)
	if err != nil {
		writeServiceError(w, "update cache of "+req.ChallengeID.String(), err)
		return
	}

	writeJSON(w, markViewer(entries, viewerID))
}

// HandleUserTrendsRPC serves POST /rpc/get_user_volume_trends; user_id defaults to the caller
func (h *Handler) HandleUserTrendsRPC(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req userTrendsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChallengeID == uuid.Nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.UserID == uuid.Nil {
		req.UserID = viewerID
	}

	trend, err := h.service.UserTrend(r.Context(), req.UserID, req.ChallengeID)
	if err != nil {
		writeServiceError(w, "user trends in "+req.ChallengeID.String(), err)
		return
	}

	writeJSON(w, trend)
}

func viewerAndChallenge(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	viewerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	challengeID, err := uuid.Parse(mux.Vars(r)["challengeId"])
	if err != nil {
		http.Error(w, "invalid challenge id", http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}

	return viewerID, challengeID, true
}

// writeServiceError keeps "failed to load" apart from "no data": store failures are 503 so
// clients can retry, and an empty leaderboard never gets here.
func writeServiceError(w http.ResponseWriter, what string, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		log.Debugf("leaderboard %s: client went away", what)
		http.Error(w, "request canceled", http.StatusServiceUnavailable)
	case IsRetryable(err), errors.Is(err, context.DeadlineExceeded):
		log.Errorf("leaderboard %s: %s", what, err)
		http.Error(w, "failed to load leaderboard", http.StatusServiceUnavailable)
	default:
		log.Errorf("leaderboard %s: %s", what, err)
		http.Error(w, "leaderboard error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("leaderboard, marshal response: %s", err)
		http.Error(w, "marshal response failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
