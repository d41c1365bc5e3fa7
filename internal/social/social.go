package social

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSelfRequest          = errors.New("cannot befriend yourself")
	ErrAlreadyRequested     = errors.New("friend request already exists")
	ErrRequestNotFound      = errors.New("friend request not found")
	ErrRequestNotPending    = errors.New("friend request already answered")
	ErrInvalidResponse      = errors.New("response must be accepted or rejected")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationNotPending = errors.New("invitation already answered")
	ErrNoInvitableFriends   = errors.New("none of the invitees can be invited")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrChallengeNotFound    = errors.New("challenge not found")
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationDismissed InvitationStatus = "dismissed"
)

type NotificationType string

const (
	NotificationFriendRequest       NotificationType = "friend_request"
	NotificationFriendAccepted      NotificationType = "friend_accepted"
	NotificationChallengeInvitation NotificationType = "challenge_invitation"
	NotificationChallengeAccepted   NotificationType = "challenge_accepted"
)

type FriendRequest struct {
	ID             uuid.UUID     `json:"id"`
	SenderID       uuid.UUID     `json:"sender_id"`
	SenderUsername string        `json:"sender_username,omitempty"`
	ReceiverID     uuid.UUID     `json:"receiver_id"`
	Status         RequestStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

type Friend struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
}

type Invitation struct {
	ID              uuid.UUID        `json:"id"`
	ChallengeID     uuid.UUID        `json:"challenge_id"`
	ChallengeName   string           `json:"challenge_name"`
	InviterID       uuid.UUID        `json:"inviter_id"`
	InviterUsername string           `json:"inviter_username"`
	InviteeID       uuid.UUID        `json:"invitee_id"`
	InviteeUsername string           `json:"invitee_username"`
	Status          InvitationStatus `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
}

type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	RelatedID *uuid.UUID       `json:"related_id,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
