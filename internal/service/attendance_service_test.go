package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
)

type mockAttendanceRepo struct {
	validIDs  []string
	saved     []string
	savedDate time.Time
	summary   models.AttendanceSummary
	dates     []time.Time
}

func (m *mockAttendanceRepo) ExistingStudentIDs(ctx context.Context, ids []string) ([]string, error) {
	return m.validIDs, nil
}

func (m *mockAttendanceRepo) BulkCreate(ctx context.Context, classID string, classDate time.Time, studentIDs []string) error {
	m.saved = studentIDs
	m.savedDate = classDate
	return nil
}

func (m *mockAttendanceRepo) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEntry, int, error) {
	return nil, 0, nil
}

func (m *mockAttendanceRepo) ClassDates(ctx context.Context, classID string) ([]time.Time, error) {
	return m.dates, nil
}

func (m *mockAttendanceRepo) SummaryForUser(ctx context.Context, userID string) (models.AttendanceSummary, error) {
	return m.summary, nil
}

func TestMarkSkipsUnknownIDs(t *testing.T) {
	repo := &mockAttendanceRepo{validIDs: []string{"s-1", "s-3"}}
	svc := NewAttendanceService(repo, nil, nil)

	result, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		ClassID:    "class-1",
		ClassDate:  time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		StudentIDs: []string{"s-1", "s-2", "s-3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, []string{"s-2"}, result.Skipped)
	assert.Contains(t, result.Detail, "s-2")
	assert.Equal(t, []string{"s-1", "s-3"}, repo.saved)
}

func TestMarkDefaultsDateToToday(t *testing.T) {
	repo := &mockAttendanceRepo{validIDs: []string{"s-1"}}
	svc := NewAttendanceService(repo, nil, nil)

	_, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		ClassID:    "class-1",
		StudentIDs: []string{"s-1"},
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	assert.Equal(t, today, repo.savedDate)
}

func TestMarkAllValid(t *testing.T) {
	repo := &mockAttendanceRepo{validIDs: []string{"s-1", "s-2"}}
	svc := NewAttendanceService(repo, nil, nil)

	result, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		ClassID:    "class-1",
		ClassDate:  time.Now(),
		StudentIDs: []string{"s-1", "s-2"},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, "Attendance saved.", result.Detail)
}

func TestMarkRequiresStudents(t *testing.T) {
	svc := NewAttendanceService(&mockAttendanceRepo{}, nil, nil)

	_, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		ClassID:   "class-1",
		ClassDate: time.Now(),
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSummaryForUser(t *testing.T) {
	repo := &mockAttendanceRepo{summary: models.AttendanceSummary{Attended: 9, TotalClasses: 12}}
	svc := NewAttendanceService(repo, nil, nil)

	summary, err := svc.SummaryForUser(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, 9, summary.Attended)
	assert.Equal(t, 12, summary.TotalClasses)
}
