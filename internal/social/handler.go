package social

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=social_test

type service interface {
	SendFriendRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*FriendRequest, error)
	RespondToFriendRequest(ctx context.Context, userID, requestID uuid.UUID, status RequestStatus) error
	Friends(ctx context.Context, userID uuid.UUID) ([]Friend, error)
	PendingFriendRequests(ctx context.Context, userID uuid.UUID) ([]FriendRequest, error)
	InvitableFriends(ctx context.Context, challengeID, userID uuid.UUID) ([]Friend, error)
	Invite(ctx context.Context, challengeID, inviterID uuid.UUID, inviteeIDs []uuid.UUID) (int, error)
	PendingInvitations(ctx context.Context, userID uuid.UUID) ([]Invitation, error)
	AcceptInvitation(ctx context.Context, userID, invitationID uuid.UUID) error
	DismissInvitation(ctx context.Context, userID, invitationID uuid.UUID) error
	Notifications(ctx context.Context, userID uuid.UUID) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) error
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

type friendRequestBody struct {
	ReceiverID uuid.UUID `json:"receiver_id"`
}

type respondBody struct {
	Status RequestStatus `json:"status"`
}

type inviteBody struct {
	InviteeIDs []uuid.UUID `json:"invitee_ids"`
}

type inviteResponse struct {
	Invited int `json:"invited"`
}

func (h *Handler) HandleFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	friends, err := h.service.Friends(r.Context(), userID)
	if err != nil {
		log.Errorf("friends of %s: %s", userID, err)
		http.Error(w, "failed to load friends", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, friends, http.StatusOK)
}

func (h *Handler) HandlePendingFriendRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	requests, err := h.service.PendingFriendRequests(r.Context(), userID)
	if err != nil {
		log.Errorf("pending friend requests of %s: %s", userID, err)
		http.Error(w, "failed to load friend requests", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, requests, http.StatusOK)
}

func (h *Handler) HandleSendFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	var body friendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ReceiverID == uuid.Nil {
		http.Error(w, "invalid friend request", http.StatusBadRequest)
		return
	}

	req, err := h.service.SendFriendRequest(r.Context(), userID, body.ReceiverID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfRequest):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrAlreadyRequested):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Errorf("send friend request %s -> %s: %s", userID, body.ReceiverID, err)
			http.Error(w, "send friend request failed", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, req, http.StatusCreated)
}

func (h *Handler) HandleRespondToFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	requestID, ok := idFromPath(w, r, "id")
	if !ok {
		return
	}

	var body respondBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid response", http.StatusBadRequest)
		return
	}

	if err := h.service.RespondToFriendRequest(r.Context(), userID, requestID, body.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidResponse):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrRequestNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrRequestNotPending):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Errorf("respond to friend request %s: %s", requestID, err)
			http.Error(w, "respond to friend request failed", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteTextResponseOK(w, "ok")
}

func (h *Handler) HandleInvitableFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	challengeID, ok := idFromPath(w, r, "challengeId")
	if !ok {
		return
	}

	friends, err := h.service.InvitableFriends(r.Context(), challengeID, userID)
	if err != nil {
		log.Errorf("invitable friends of %s for %s: %s", userID, challengeID, err)
		http.Error(w, "failed to load friends", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, friends, http.StatusOK)
}

func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	challengeID, ok := idFromPath(w, r, "id")
	if !ok {
		return
	}

	var body inviteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.InviteeIDs) == 0 {
		http.Error(w, "invalid invitation", http.StatusBadRequest)
		return
	}

	invited, err := h.service.Invite(r.Context(), challengeID, userID, body.InviteeIDs)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoInvitableFriends):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrChallengeNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			log.Errorf("invite to %s by %s: %s", challengeID, userID, err)
			http.Error(w, "invite failed", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, inviteResponse{Invited: invited}, http.StatusCreated)
}

func (h *Handler) HandlePendingInvitations(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	invitations, err := h.service.PendingInvitations(r.Context(), userID)
	if err != nil {
		log.Errorf("pending invitations of %s: %s", userID, err)
		http.Error(w, "failed to load invitations", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, invitations, http.StatusOK)
}

func (h *Handler) HandleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	h.answerInvitation(w, r, h.service.AcceptInvitation, "accepted")
}

func (h *Handler) HandleDismissInvitation(w http.ResponseWriter, r *http.Request) {
	h.answerInvitation(w, r, h.service.DismissInvitation, "dismissed")
}

func (h *Handler) answerInvitation(
	w http.ResponseWriter,
	r *http.Request,
	answer func(ctx context.Context, userID, invitationID uuid.UUID) error,
	answerName string,
) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	invitationID, ok := idFromPath(w, r, "id")
	if !ok {
		return
	}

	if err := answer(r.Context(), userID, invitationID); err != nil {
		switch {
		case errors.Is(err, ErrInvitationNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrInvitationNotPending):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Errorf("invitation %s %s: %s", invitationID, answerName, err)
			http.Error(w, "answer invitation failed", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteTextResponseOK(w, answerName)
}

func (h *Handler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	notifications, err := h.service.Notifications(r.Context(), userID)
	if err != nil {
		log.Errorf("notifications of %s: %s", userID, err)
		http.Error(w, "failed to load notifications", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, notifications, http.StatusOK)
}

func (h *Handler) HandleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	notificationID, ok := idFromPath(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.MarkNotificationRead(r.Context(), userID, notificationID); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Errorf("mark notification %s read: %s", notificationID, err)
		http.Error(w, "mark notification failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "ok")
}

func userFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
	}
	return userID, ok
}

func idFromPath(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
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
