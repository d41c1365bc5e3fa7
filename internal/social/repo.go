package social

import (
	"context"
	"fmt"

	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const invitationSelect = `
	SELECT i.id, i.challenge_id, c.name, i.inviter_id, inviter.username,
		i.invitee_id, invitee.username, i.status, i.created_at
	FROM challenge_invitations i
	JOIN challenges c ON c.id = i.challenge_id
	JOIN profiles inviter ON inviter.id = i.inviter_id
	JOIN profiles invitee ON invitee.id = i.invitee_id
`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// AddFriendRequest stores a pending request, unless the two users already have a request
// between them in either direction.
func (r *Repo) AddFriendRequest(ctx context.Context, req FriendRequest) (_ *FriendRequest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.friendrequest.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO friend_requests (id, sender_id, receiver_id, status)
		SELECT $1, $2, $3, 'pending'
		WHERE NOT EXISTS (
			SELECT 1 FROM friend_requests WHERE sender_id = $3 AND receiver_id = $2
		)
		RETURNING created_at
	`, req.ID, req.SenderID, req.ReceiverID).Scan(&req.CreatedAt)
	if err != nil {
		if pkg.IsNoRowsError(err) || pkg.IsUniqueViolationError(err) {
			err = ErrAlreadyRequested
		}
		return nil, err
	}

	if err = insertNotification(ctx, tx, req.ReceiverID, NotificationFriendRequest, `
		SELECT username || ' sent you a friend request' FROM profiles WHERE id = $1
	`, req.SenderID, &req.ID); err != nil {
		return nil, err
	}

	req.Status = RequestPending
	return &req, nil
}

func (r *Repo) GetFriendRequest(ctx context.Context, id uuid.UUID) (_ *FriendRequest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.friendrequest.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var req FriendRequest
	if err := r.db.QueryRow(ctx, `
		SELECT fr.id, fr.sender_id, p.username, fr.receiver_id, fr.status, fr.created_at
		FROM friend_requests fr
		JOIN profiles p ON p.id = fr.sender_id
		WHERE fr.id = $1
	`, id).Scan(&req.ID, &req.SenderID, &req.SenderUsername, &req.ReceiverID, &req.Status, &req.CreatedAt); err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	return &req, nil
}

// AnswerFriendRequest moves a pending request to the given status. An accepted request
// notifies its sender.
func (r *Repo) AnswerFriendRequest(ctx context.Context, req FriendRequest, status RequestStatus) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.friendrequest.answer")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE friend_requests SET status = $2
		WHERE id = $1 AND status = 'pending'
	`, req.ID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotPending
	}

	if status != RequestAccepted {
		return nil
	}

	return insertNotification(ctx, tx, req.SenderID, NotificationFriendAccepted, `
		SELECT username || ' accepted your friend request' FROM profiles WHERE id = $1
	`, req.ReceiverID, &req.ID)
}

// Friends are users with an accepted request in either direction, ordered by username.
func (r *Repo) Friends(ctx context.Context, userID uuid.UUID) (_ []Friend, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.friends")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.username, p.avatar_url
		FROM friend_requests fr
		JOIN profiles p ON p.id = CASE WHEN fr.sender_id = $1 THEN fr.receiver_id ELSE fr.sender_id END
		WHERE (fr.sender_id = $1 OR fr.receiver_id = $1)
			AND fr.status = 'accepted'
		ORDER BY p.username
	`, userID)
	if err != nil {
		return nil, err
	}

	return rows2friends(rows)
}

// PendingFriendRequests lists requests waiting for the user to answer them.
func (r *Repo) PendingFriendRequests(ctx context.Context, userID uuid.UUID) (_ []FriendRequest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.friendrequest.pending")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT fr.id, fr.sender_id, p.username, fr.receiver_id, fr.status, fr.created_at
		FROM friend_requests fr
		JOIN profiles p ON p.id = fr.sender_id
		WHERE fr.receiver_id = $1 AND fr.status = 'pending'
		ORDER BY fr.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []FriendRequest{}
	for rows.Next() {
		var req FriendRequest
		if err := rows.Scan(&req.ID, &req.SenderID, &req.SenderUsername, &req.ReceiverID, &req.Status, &req.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// InvitableFriends are the user's friends who neither take part in the challenge nor have
// an invitation to it already.
func (r *Repo) InvitableFriends(ctx context.Context, challengeID, userID uuid.UUID) (_ []Friend, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.friends.invitable")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("challenge", challengeID.String()))

	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.username, p.avatar_url
		FROM friend_requests fr
		JOIN profiles p ON p.id = CASE WHEN fr.sender_id = $2 THEN fr.receiver_id ELSE fr.sender_id END
		WHERE (fr.sender_id = $2 OR fr.receiver_id = $2)
			AND fr.status = 'accepted'
			AND NOT EXISTS (
				SELECT 1 FROM challenge_participants cp
				WHERE cp.challenge_id = $1 AND cp.user_id = p.id
			)
			AND NOT EXISTS (
				SELECT 1 FROM challenge_invitations ci
				WHERE ci.challenge_id = $1 AND ci.invitee_id = p.id
			)
		ORDER BY p.username
	`, challengeID, userID)
	if err != nil {
		return nil, err
	}

	return rows2friends(rows)
}

// AddInvitations creates pending invitations and notifies each invitee. Invitees that
// were invited concurrently in the meantime are skipped.
func (r *Repo) AddInvitations(ctx context.Context, challengeID, inviterID uuid.UUID, inviteeIDs []uuid.UUID) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.invitations.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("invitees", len(inviteeIDs)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	added := 0
	for _, inviteeID := range inviteeIDs {
		invitationID := uuid.New()
		tag, err := tx.Exec(ctx, `
			INSERT INTO challenge_invitations (id, challenge_id, inviter_id, invitee_id, status)
			VALUES ($1, $2, $3, $4, 'pending')
			ON CONFLICT (challenge_id, invitee_id) DO NOTHING
		`, invitationID, challengeID, inviterID, inviteeID)
		if err != nil {
			if pkg.IsForeignKeyViolationError(err) {
				return 0, ErrChallengeNotFound
			}
			return 0, err
		}
		if tag.RowsAffected() == 0 {
			continue
		}
		added++

		if err := insertNotification(ctx, tx, inviteeID, NotificationChallengeInvitation, `
			SELECT p.username || ' invited you to ' || c.name
			FROM profiles p, challenges c
			WHERE p.id = $1 AND c.id = $2
		`, inviterID, &invitationID, challengeID); err != nil {
			return 0, err
		}
	}

	return added, nil
}

func (r *Repo) GetInvitation(ctx context.Context, id uuid.UUID) (_ *Invitation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.invitations.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, invitationSelect+` WHERE i.id = $1`, id)
	if err != nil {
		return nil, err
	}
	invitations, err := rows2invitations(rows)
	if err != nil {
		return nil, err
	}
	if len(invitations) == 0 {
		return nil, ErrInvitationNotFound
	}

	return &invitations[0], nil
}

func (r *Repo) PendingInvitations(ctx context.Context, userID uuid.UUID) (_ []Invitation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.invitations.pending")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, invitationSelect+`
		WHERE i.invitee_id = $1 AND i.status = 'pending'
		ORDER BY i.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}

	return rows2invitations(rows)
}

// AcceptInvitation marks the invitation accepted, makes the invitee a participant and
// notifies the inviter, all in one transaction.
func (r *Repo) AcceptInvitation(ctx context.Context, invitation Invitation) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.invitations.accept")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE challenge_invitations SET status = 'accepted'
		WHERE id = $1 AND status = 'pending'
	`, invitation.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvitationNotPending
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO challenge_participants (id, challenge_id, user_id, progress)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (challenge_id, user_id) DO NOTHING
	`, uuid.New(), invitation.ChallengeID, invitation.InviteeID); err != nil {
		return fmt.Errorf("add participant: %w", err)
	}

	return insertNotification(ctx, tx, invitation.InviterID, NotificationChallengeAccepted, `
		SELECT p.username || ' accepted your invitation to ' || c.name
		FROM profiles p, challenges c
		WHERE p.id = $1 AND c.id = $2
	`, invitation.InviteeID, &invitation.ChallengeID, invitation.ChallengeID)
}

func (r *Repo) DismissInvitation(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.invitations.dismiss")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `
		UPDATE challenge_invitations SET status = 'dismissed'
		WHERE id = $1 AND status = 'pending'
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvitationNotPending
	}

	return nil
}

func (r *Repo) Notifications(ctx context.Context, userID uuid.UUID, limit int) (_ []Notification, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.notifications")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, message, related_id, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.RelatedID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (r *Repo) MarkNotificationRead(ctx context.Context, userID, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.notifications.read")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET read = true
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// insertNotification stores a notification whose message is produced by messageQuery,
// called with messageArgs.
func insertNotification(
	ctx context.Context,
	tx pgx.Tx,
	userID uuid.UUID,
	notificationType NotificationType,
	messageQuery string,
	subjectID uuid.UUID,
	relatedID *uuid.UUID,
	messageArgs ...any,
) error {
	var message string
	args := append([]any{subjectID}, messageArgs...)
	if err := tx.QueryRow(ctx, messageQuery, args...).Scan(&message); err != nil {
		return fmt.Errorf("notification message: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, message, related_id)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New(), userID, notificationType, message, relatedID); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}

func rows2friends(rows pgx.Rows) ([]Friend, error) {
	defer rows.Close()

	friends := []Friend{}
	for rows.Next() {
		var f Friend
		if err := rows.Scan(&f.UserID, &f.Username, &f.AvatarURL); err != nil {
			return nil, err
		}
		friends = append(friends, f)
	}

	return friends, rows.Err()
}

func rows2invitations(rows pgx.Rows) ([]Invitation, error) {
	defer rows.Close()

	invitations := []Invitation{}
	for rows.Next() {
		var i Invitation
		if err := rows.Scan(
			&i.ID,
			&i.ChallengeID,
			&i.ChallengeName,
			&i.InviterID,
			&i.InviterUsername,
			&i.InviteeID,
			&i.InviteeUsername,
			&i.Status,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		invitations = append(invitations, i)
	}

	return invitations, rows.Err()
}
