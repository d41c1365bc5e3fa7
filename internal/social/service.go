package social

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/liftboard/internal/changes"
	"github.com/2beens/liftboard/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=social_test

type socialRepo interface {
	AddFriendRequest(ctx context.Context, req FriendRequest) (*FriendRequest, error)
	GetFriendRequest(ctx context.Context, id uuid.UUID) (*FriendRequest, error)
	AnswerFriendRequest(ctx context.Context, req FriendRequest, status RequestStatus) error
	Friends(ctx context.Context, userID uuid.UUID) ([]Friend, error)
	PendingFriendRequests(ctx context.Context, userID uuid.UUID) ([]FriendRequest, error)
	InvitableFriends(ctx context.Context, challengeID, userID uuid.UUID) ([]Friend, error)
	AddInvitations(ctx context.Context, challengeID, inviterID uuid.UUID, inviteeIDs []uuid.UUID) (int, error)
	GetInvitation(ctx context.Context, id uuid.UUID) (*Invitation, error)
	PendingInvitations(ctx context.Context, userID uuid.UUID) ([]Invitation, error)
	AcceptInvitation(ctx context.Context, invitation Invitation) error
	DismissInvitation(ctx context.Context, id uuid.UUID) error
	Notifications(ctx context.Context, userID uuid.UUID, limit int) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id uuid.UUID) error
}

type changePublisher interface {
	Publish(ctx context.Context, event changes.Event) error
}

const notificationsLimit = 50

type Service struct {
	repo      socialRepo
	publisher changePublisher
}

func NewService(repo socialRepo, publisher changePublisher) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *Service) SendFriendRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*FriendRequest, error) {
	if senderID == receiverID {
		return nil, ErrSelfRequest
	}
	return s.repo.AddFriendRequest(ctx, FriendRequest{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     RequestPending,
	})
}

// RespondToFriendRequest lets the receiver of a pending request accept or reject it.
// Requests addressed to someone else look like they do not exist.
func (s *Service) RespondToFriendRequest(ctx context.Context, userID, requestID uuid.UUID, status RequestStatus) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.friendrequest.respond")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if status != RequestAccepted && status != RequestRejected {
		return ErrInvalidResponse
	}

	req, err := s.repo.GetFriendRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ReceiverID != userID {
		return ErrRequestNotFound
	}
	if req.Status != RequestPending {
		return ErrRequestNotPending
	}

	return s.repo.AnswerFriendRequest(ctx, *req, status)
}

func (s *Service) Friends(ctx context.Context, userID uuid.UUID) ([]Friend, error) {
	return s.repo.Friends(ctx, userID)
}

func (s *Service) PendingFriendRequests(ctx context.Context, userID uuid.UUID) ([]FriendRequest, error) {
	return s.repo.PendingFriendRequests(ctx, userID)
}

func (s *Service) InvitableFriends(ctx context.Context, challengeID, userID uuid.UUID) ([]Friend, error) {
	return s.repo.InvitableFriends(ctx, challengeID, userID)
}

// Invite sends challenge invitations to those of the invitees who are invitable friends
// of the inviter. It returns how many invitations were created.
func (s *Service) Invite(ctx context.Context, challengeID, inviterID uuid.UUID, inviteeIDs []uuid.UUID) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.invite")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("invitees", len(inviteeIDs)))

	invitable, err := s.repo.InvitableFriends(ctx, challengeID, inviterID)
	if err != nil {
		return 0, fmt.Errorf("invitable friends: %w", err)
	}
	invitableSet := make(map[uuid.UUID]struct{}, len(invitable))
	for _, f := range invitable {
		invitableSet[f.UserID] = struct{}{}
	}

	var toInvite []uuid.UUID
	seen := make(map[uuid.UUID]struct{}, len(inviteeIDs))
	for _, id := range inviteeIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := invitableSet[id]; !ok {
			log.Debugf("invite to %s: %s is not invitable by %s, skipping", challengeID, id, inviterID)
			continue
		}
		toInvite = append(toInvite, id)
	}
	if len(toInvite) == 0 {
		return 0, ErrNoInvitableFriends
	}

	return s.repo.AddInvitations(ctx, challengeID, inviterID, toInvite)
}

func (s *Service) PendingInvitations(ctx context.Context, userID uuid.UUID) ([]Invitation, error) {
	return s.repo.PendingInvitations(ctx, userID)
}

// AcceptInvitation joins the invitee to the challenge. The leaderboard of that challenge
// gains a participant, so an invitation_changed event follows.
func (s *Service) AcceptInvitation(ctx context.Context, userID, invitationID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.invitation.accept")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	invitation, err := s.ownPendingInvitation(ctx, userID, invitationID)
	if err != nil {
		return err
	}

	if err := s.repo.AcceptInvitation(ctx, *invitation); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, changes.Event{
		Type:        changes.EventInvitationChanged,
		ChallengeID: invitation.ChallengeID,
		UserID:      userID,
		At:          time.Now().UTC(),
	}); err != nil {
		log.Errorf("invitation %s accepted, but publish change event failed: %s", invitationID, err)
	}

	return nil
}

func (s *Service) DismissInvitation(ctx context.Context, userID, invitationID uuid.UUID) error {
	invitation, err := s.ownPendingInvitation(ctx, userID, invitationID)
	if err != nil {
		return err
	}
	return s.repo.DismissInvitation(ctx, invitation.ID)
}

func (s *Service) ownPendingInvitation(ctx context.Context, userID, invitationID uuid.UUID) (*Invitation, error) {
	invitation, err := s.repo.GetInvitation(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if invitation.InviteeID != userID {
		return nil, ErrInvitationNotFound
	}
	if invitation.Status != InvitationPending {
		return nil, ErrInvitationNotPending
	}
	return invitation, nil
}

func (s *Service) Notifications(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	return s.repo.Notifications(ctx, userID, notificationsLimit)
}

func (s *Service) MarkNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.repo.MarkNotificationRead(ctx, userID, notificationID)
}
