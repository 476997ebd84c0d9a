package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagrati-dev/jagrati-api/internal/models"
)

type mockEventRepo struct {
	created *models.Event
	byID    *models.Event
	getErr  error
}

func (m *mockEventRepo) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	return nil, 0, nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.byID, nil
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	event.ID = "ev-1"
	m.created = event
	return nil
}

func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error { return nil }
func (m *mockEventRepo) Delete(ctx context.Context, id string) error           { return nil }

func TestEventCreateBroadcastsToAllStaffOnEventDate(t *testing.T) {
	repo := &mockEventRepo{}
	notifier := &mockNotifier{}
	svc := NewEventService(repo, notifier, nil, nil)

	eventTime := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	event, err := svc.Create(context.Background(), EventRequest{
		Title: "Annual Day",
		Type:  "EVENT",
		Time:  eventTime,
	})
	require.NoError(t, err)
	assert.Equal(t, "ev-1", event.ID)

	require.Len(t, notifier.requests, 1)
	assert.Equal(t, models.AudienceAllStaff, notifier.requests[0].Audience)
	assert.Equal(t, models.NotificationEvent, notifier.requests[0].Type)
	assert.Equal(t, "ev-1", notifier.requests[0].RelatedEntityID)
	assert.Equal(t, eventTime, notifier.requests[0].DisplayDate)
}

func TestEventCreateRejectsUnknownType(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, &mockNotifier{}, nil, nil)

	_, err := svc.Create(context.Background(), EventRequest{
		Title: "x",
		Type:  "PARTY",
		Time:  time.Now(),
	})
	assert.Error(t, err)
}
