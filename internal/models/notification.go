package models

import "time"

// NotificationAudience scopes who receives a notification.
type NotificationAudience string

const (
	AudienceAdminOnly NotificationAudience = "ADMIN_ONLY"
	AudienceAllStaff  NotificationAudience = "ALL_STAFF"
)

// NotificationType tags the domain event behind a notification.
type NotificationType string

const (
	NotificationJoinRequest   NotificationType = "join_request"
	NotificationEvent         NotificationType = "event"
	NotificationClassFeedback NotificationType = "class_feedback"
)

// Notification is an immutable broadcast record. Per-user read state lives
// on UserNotification rows.
type Notification struct {
	ID              string               `db:"id" json:"id"`
	Audience        NotificationAudience `db:"audience" json:"audience"`
	Type            NotificationType     `db:"type" json:"type"`
	Content         string               `db:"content" json:"content"`
	RelatedEntityID string               `db:"related_entity_id" json:"related_entity_id"`
	DisplayDate     time.Time            `db:"display_date" json:"display_date"`
	CreatedAt       time.Time            `db:"created_at" json:"created_at"`
}

// UserNotification is one recipient's copy of a notification. The only
// permitted mutation is flipping IsSeen to true.
type UserNotification struct {
	ID             string `db:"id" json:"id"`
	UserID         string `db:"user_id" json:"user_id"`
	NotificationID string `db:"notification_id" json:"notification_id"`
	IsSeen         bool   `db:"is_seen" json:"is_seen"`
}

// UserNotificationDetail joins the notification payload onto the per-user
// row for listing. IsSeen reflects the state *before* the listing marked
// the row seen.
type UserNotificationDetail struct {
	ID              string               `db:"id" json:"id"`
	UserID          string               `db:"user_id" json:"user_id"`
	NotificationID  string               `db:"notification_id" json:"notification_id"`
	IsSeen          bool                 `db:"is_seen" json:"is_seen"`
	Audience        NotificationAudience `db:"audience" json:"audience"`
	Type            NotificationType     `db:"type" json:"type"`
	Content         string               `db:"content" json:"content"`
	RelatedEntityID string               `db:"related_entity_id" json:"related_entity_id"`
	DisplayDate     time.Time            `db:"display_date" json:"display_date"`
	CreatedAt       time.Time            `db:"created_at" json:"created_at"`
}
