package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
)

type mockNotificationRepo struct {
	fanoutRoles  []models.UserRole
	fanoutErr    error
	listed       []models.UserNotificationDetail
	listErr      error
	listIsSeen   *bool
	unseen       int
	recipients   int
	notification *models.Notification
}

func (m *mockNotificationRepo) CreateWithFanout(ctx context.Context, n *models.Notification, audienceRoles []models.UserRole) (int, error) {
	if m.fanoutErr != nil {
		return 0, m.fanoutErr
	}
	n.ID = "n-1"
	m.notification = n
	m.fanoutRoles = audienceRoles
	return m.recipients, nil
}

func (m *mockNotificationRepo) ListAndMarkSeen(ctx context.Context, userID string, isSeen *bool) ([]models.UserNotificationDetail, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.listIsSeen = isSeen
	return m.listed, nil
}

func (m *mockNotificationRepo) CountUnseen(ctx context.Context, userID string) (int, error) {
	return m.unseen, nil
}

func TestNotifyAdminOnlyAudience(t *testing.T) {
	repo := &mockNotificationRepo{recipients: 1}
	svc := NewNotificationService(repo, nil, nil)

	recipients, err := svc.Notify(context.Background(), NotifyRequest{
		Audience: models.AudienceAdminOnly,
		Type:     models.NotificationJoinRequest,
		Content:  "New Join Request by a@b.c",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, recipients)
	assert.Equal(t, []models.UserRole{models.RoleAdmin}, repo.fanoutRoles)
}

func TestNotifyAllStaffAudience(t *testing.T) {
	repo := &mockNotificationRepo{recipients: 7}
	svc := NewNotificationService(repo, nil, nil)

	recipients, err := svc.Notify(context.Background(), NotifyRequest{
		Audience:    models.AudienceAllStaff,
		Type:        models.NotificationEvent,
		Content:     "Annual Day",
		DisplayDate: time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, recipients)
	assert.Equal(t, []models.UserRole{models.RoleAdmin, models.RoleVolunteer}, repo.fanoutRoles)
}

func TestNotifyUnknownAudience(t *testing.T) {
	svc := NewNotificationService(&mockNotificationRepo{}, nil, nil)

	_, err := svc.Notify(context.Background(), NotifyRequest{
		Audience: models.NotificationAudience("EVERYONE"),
		Type:     models.NotificationEvent,
		Content:  "x",
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestNotifyRepoFailure(t *testing.T) {
	repo := &mockNotificationRepo{fanoutErr: errors.New("db down")}
	svc := NewNotificationService(repo, nil, nil)

	_, err := svc.Notify(context.Background(), NotifyRequest{
		Audience: models.AudienceAdminOnly,
		Type:     models.NotificationJoinRequest,
		Content:  "x",
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}

func TestListPassesSeenFilterAndNeverReturnsNil(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, nil, nil)

	unseen := false
	items, err := svc.List(context.Background(), "vol-1", &unseen)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	require.NotNil(t, repo.listIsSeen)
	assert.False(t, *repo.listIsSeen)
}

func TestListReturnsPriorSeenState(t *testing.T) {
	repo := &mockNotificationRepo{listed: []models.UserNotificationDetail{
		{ID: "un-1", IsSeen: false, Content: "Annual Day"},
		{ID: "un-2", IsSeen: true, Content: "Older news"},
	}}
	svc := NewNotificationService(repo, nil, nil)

	items, err := svc.List(context.Background(), "vol-1", nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.False(t, items[0].IsSeen)
	assert.True(t, items[1].IsSeen)
}

func TestUnseenCount(t *testing.T) {
	svc := NewNotificationService(&mockNotificationRepo{unseen: 4}, nil, nil)

	count, err := svc.UnseenCount(context.Background(), "vol-1")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestAudienceRoles(t *testing.T) {
	assert.Equal(t, []models.UserRole{models.RoleAdmin}, AudienceRoles(models.AudienceAdminOnly))
	assert.Equal(t, []models.UserRole{models.RoleAdmin, models.RoleVolunteer}, AudienceRoles(models.AudienceAllStaff))
	assert.Nil(t, AudienceRoles(models.NotificationAudience("STUDENTS")))
}
