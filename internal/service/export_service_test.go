package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
	"github.com/jagrati-dev/jagrati-api/pkg/storage"
)

type mockRegisterRepo struct {
	entries []models.AttendanceEntry
	err     error
}

func (m *mockRegisterRepo) Register(ctx context.Context, classID string, from, to time.Time) ([]models.AttendanceEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

type mockFileStorage struct {
	savedName string
	savedData []byte
	saveErr   error
}

func (m *mockFileStorage) Save(filename string, data []byte) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.savedName = filename
	m.savedData = data
	return "exports/" + filename, nil
}

func (m *mockFileStorage) Open(filename string) (*os.File, error) {
	return nil, errors.New("not stored")
}

func (m *mockFileStorage) Delete(filename string) error { return nil }

func (m *mockFileStorage) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	return nil, nil
}

func newExportService(repo *mockRegisterRepo, store *mockFileStorage) *ExportService {
	signer := storage.NewSignedURLSigner("export-secret", time.Hour)
	return NewExportService(repo, store, signer, ExportConfig{APIPrefix: "/api/v1"}, nil, nil, nil)
}

func TestGenerateAttendanceRegisterCSV(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	repo := &mockRegisterRepo{entries: []models.AttendanceEntry{
		{Attendance: models.Attendance{UserID: "stu-1", ClassDate: day}, StudentName: "Asha Kumari"},
		{Attendance: models.Attendance{UserID: "stu-2", ClassDate: day.AddDate(0, 0, 1)}, StudentName: "Ravi Singh"},
	}}
	store := &mockFileStorage{}
	svc := newExportService(repo, store)

	result, err := svc.GenerateAttendanceRegister(context.Background(), "class-1", day, day.AddDate(0, 0, 7), ExportFormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(store.savedData)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Student,Student ID", lines[0])
	assert.Equal(t, "2026-03-02,Asha Kumari,stu-1", lines[1])
	assert.Equal(t, "2026-03-03,Ravi Singh,stu-2", lines[2])

	assert.Equal(t, fmt.Sprintf("attendance_class-1_%s.csv", result.ExportID), store.savedName)
	assert.Equal(t, "/api/v1/exports/download/"+result.Token, result.URL)

	exportID, relPath, _, err := storage.NewSignedURLSigner("export-secret", time.Hour).Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.ExportID, exportID)
	assert.Equal(t, "exports/"+store.savedName, relPath)
}

func TestGenerateAttendanceRegisterValidation(t *testing.T) {
	svc := newExportService(&mockRegisterRepo{}, &mockFileStorage{})
	now := time.Now()

	_, err := svc.GenerateAttendanceRegister(context.Background(), "", now, now, ExportFormatCSV)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.GenerateAttendanceRegister(context.Background(), "class-1", now, now.Add(-time.Hour), ExportFormatCSV)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.GenerateAttendanceRegister(context.Background(), "class-1", now, now, ExportFormat("xlsx"))
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
