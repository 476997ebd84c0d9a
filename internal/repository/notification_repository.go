package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jagrati-dev/jagrati-api/internal/models"
)

// NotificationRepository persists notifications and their per-user copies.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates the repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateWithFanout inserts the notification and one user_notifications row
// per active account holding any of the audience roles, all in a single
// transaction. Returns the number of recipients.
func (r *NotificationRepository) CreateWithFanout(ctx context.Context, n *models.Notification, audienceRoles []models.UserRole) (int, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.DisplayDate.IsZero() {
		n.DisplayDate = n.CreatedAt
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}

	const insertNotification = `INSERT INTO notifications (id, audience, type, content, related_entity_id, display_date, created_at)
VALUES (:id, :audience, :type, :content, :related_entity_id, :display_date, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insertNotification, n); err != nil {
		tx.Rollback() //nolint:errcheck
		return 0, fmt.Errorf("insert notification: %w", err)
	}

	roles := make([]string, len(audienceRoles))
	for i, role := range audienceRoles {
		roles[i] = string(role)
	}

	var recipientIDs []string
	const selectAudience = `SELECT id FROM users WHERE active = TRUE AND role = ANY($1)`
	if err := tx.SelectContext(ctx, &recipientIDs, selectAudience, pq.Array(roles)); err != nil {
		tx.Rollback() //nolint:errcheck
		return 0, fmt.Errorf("select audience: %w", err)
	}

	const insertUserNotification = `INSERT INTO user_notifications (id, user_id, notification_id, is_seen) VALUES ($1, $2, $3, FALSE)`
	for _, userID := range recipientIDs {
		if _, err := tx.ExecContext(ctx, insertUserNotification, uuid.NewString(), userID, n.ID); err != nil {
			tx.Rollback() //nolint:errcheck
			return 0, fmt.Errorf("insert user notification: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit notification fanout: %w", err)
	}
	return len(recipientIDs), nil
}

// ListAndMarkSeen returns the user's notifications together with their seen
// state as it was before this call, and flips every returned row to seen.
// The read and the mutation are one statement, so concurrent listings
// cannot lose updates.
func (r *NotificationRepository) ListAndMarkSeen(ctx context.Context, userID string, isSeen *bool) ([]models.UserNotificationDetail, error) {
	query := `UPDATE user_notifications un
SET is_seen = TRUE
FROM user_notifications prior
JOIN notifications n ON n.id = prior.notification_id
WHERE prior.id = un.id AND un.user_id = $1`
	args := []interface{}{userID}

	if isSeen != nil {
		query += " AND prior.is_seen = $2"
		args = append(args, *isSeen)
	}

	query += `
RETURNING un.id, un.user_id, un.notification_id, prior.is_seen AS is_seen,
n.audience, n.type, n.content, n.related_entity_id, n.display_date, n.created_at`

	var items []models.UserNotificationDetail
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// CountUnseen returns the number of unseen notifications for a user.
func (r *NotificationRepository) CountUnseen(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM user_notifications WHERE user_id = $1 AND is_seen = FALSE`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count unseen notifications: %w", err)
	}
	return count, nil
}
