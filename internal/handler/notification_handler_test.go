package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jagrati-dev/jagrati-api/internal/middleware"
	"github.com/jagrati-dev/jagrati-api/internal/models"
	"github.com/jagrati-dev/jagrati-api/internal/service"
)

type notificationRepoMock struct {
	items       []models.UserNotificationDetail
	unseenCount int
}

func (m *notificationRepoMock) CreateWithFanout(ctx context.Context, n *models.Notification, audienceRoles []models.UserRole) (int, error) {
	return 0, nil
}

func (m *notificationRepoMock) ListAndMarkSeen(ctx context.Context, userID string, isSeen *bool) ([]models.UserNotificationDetail, error) {
	if isSeen == nil {
		return m.items, nil
	}
	filtered := make([]models.UserNotificationDetail, 0, len(m.items))
	for _, item := range m.items {
		if item.IsSeen == *isSeen {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (m *notificationRepoMock) CountUnseen(ctx context.Context, userID string) (int, error) {
	return m.unseenCount, nil
}

func newNotificationHandler(repo *notificationRepoMock) *NotificationHandler {
	return NewNotificationHandler(service.NewNotificationService(repo, nil, nil))
}

func TestNotificationHandlerListRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newNotificationHandler(&notificationRepoMock{})

	c, w := newGinContext(http.MethodGet, "/notifications", nil)

	h.List(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotificationHandlerListReturnsPriorSeenState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &notificationRepoMock{items: []models.UserNotificationDetail{
		{ID: "un-1", IsSeen: false},
		{ID: "un-2", IsSeen: true},
	}}
	h := newNotificationHandler(repo)

	c, w := newGinContext(http.MethodGet, "/notifications", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "vol-1", Role: models.RoleVolunteer})

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []models.UserNotificationDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	require.False(t, envelope.Data[0].IsSeen)
	require.True(t, envelope.Data[1].IsSeen)
}

func TestNotificationHandlerListSeenFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &notificationRepoMock{items: []models.UserNotificationDetail{
		{ID: "un-1", IsSeen: false},
		{ID: "un-2", IsSeen: true},
	}}
	h := newNotificationHandler(repo)

	c, w := newGinContext(http.MethodGet, "/notifications?is_seen=false", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "vol-1", Role: models.RoleVolunteer})

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []models.UserNotificationDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	require.Equal(t, "un-1", envelope.Data[0].ID)
}

func TestNotificationHandlerListSeenLegacyParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &notificationRepoMock{items: []models.UserNotificationDetail{
		{ID: "un-1", IsSeen: false},
		{ID: "un-2", IsSeen: true},
	}}
	h := newNotificationHandler(repo)

	c, w := newGinContext(http.MethodGet, "/notifications?seen=true", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "vol-1", Role: models.RoleVolunteer})

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []models.UserNotificationDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	require.Equal(t, "un-2", envelope.Data[0].ID)
}

func TestNotificationHandlerUnseenCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newNotificationHandler(&notificationRepoMock{unseenCount: 3})

	c, w := newGinContext(http.MethodGet, "/notifications/unseen-count", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "vol-1", Role: models.RoleVolunteer})

	h.UnseenCount(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"unseen_count":3`)
}
