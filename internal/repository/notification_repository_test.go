package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/jagrati-dev/jagrati-api/internal/models"
)

func newNotificationRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestNotificationRepositoryFanoutToActiveAudience(t *testing.T) {
	db, mock, cleanup := newNotificationRepoMock(t)
	defer cleanup()

	repo := NewNotificationRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notifications")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE active = TRUE AND role = ANY($1)")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("admin-1").AddRow("vol-1"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_notifications")).
		WithArgs(sqlmock.AnyArg(), "admin-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_notifications")).
		WithArgs(sqlmock.AnyArg(), "vol-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	n := &models.Notification{
		Audience: models.AudienceAllStaff,
		Type:     models.NotificationEvent,
		Content:  "Annual Day",
	}
	recipients, err := repo.CreateWithFanout(context.Background(), n, []models.UserRole{models.RoleAdmin, models.RoleVolunteer})
	require.NoError(t, err)
	require.Equal(t, 2, recipients)
	require.NotEmpty(t, n.ID)
	require.False(t, n.DisplayDate.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryFanoutEmptyAudience(t *testing.T) {
	db, mock, cleanup := newNotificationRepoMock(t)
	defer cleanup()

	repo := NewNotificationRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notifications")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE active = TRUE")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	n := &models.Notification{Audience: models.AudienceAdminOnly, Type: models.NotificationJoinRequest, Content: "New Join Request by a@b.c"}
	recipients, err := repo.CreateWithFanout(context.Background(), n, []models.UserRole{models.RoleAdmin})
	require.NoError(t, err)
	require.Zero(t, recipients)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryListAndMarkSeenReturnsPriorState(t *testing.T) {
	db, mock, cleanup := newNotificationRepoMock(t)
	defer cleanup()

	repo := NewNotificationRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "notification_id", "is_seen", "audience", "type", "content", "related_entity_id", "display_date", "created_at"}).
		AddRow("un-1", "vol-1", "n-1", false, "ALL_STAFF", "event", "Annual Day", "ev-1", now, now).
		AddRow("un-2", "vol-1", "n-2", true, "ALL_STAFF", "class_feedback", "Session note", "cf-1", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE user_notifications un")).
		WithArgs("vol-1").
		WillReturnRows(rows)

	items, err := repo.ListAndMarkSeen(context.Background(), "vol-1", nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.False(t, items[0].IsSeen)
	require.True(t, items[1].IsSeen)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryListAndMarkSeenUnseenFilter(t *testing.T) {
	db, mock, cleanup := newNotificationRepoMock(t)
	defer cleanup()

	repo := NewNotificationRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "notification_id", "is_seen", "audience", "type", "content", "related_entity_id", "display_date", "created_at"}).
		AddRow("un-1", "vol-1", "n-1", false, "ALL_STAFF", "event", "Annual Day", "ev-1", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("AND prior.is_seen = $2")).
		WithArgs("vol-1", false).
		WillReturnRows(rows)

	unseen := false
	items, err := repo.ListAndMarkSeen(context.Background(), "vol-1", &unseen)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "un-1", items[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryCountUnseen(t *testing.T) {
	db, mock, cleanup := newNotificationRepoMock(t)
	defer cleanup()

	repo := NewNotificationRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM user_notifications WHERE user_id = $1 AND is_seen = FALSE")).
		WithArgs("vol-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountUnseen(context.Background(), "vol-1")
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}
