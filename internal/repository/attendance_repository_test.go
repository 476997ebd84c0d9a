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

func newAttendanceRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAttendanceRepositoryExistingStudentIDsPreservesOrder(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE role = $1 AND id = ANY($2)")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("s-3").AddRow("s-1"))

	ordered, err := repo.ExistingStudentIDs(context.Background(), []string{"s-1", "s-2", "s-3"})
	require.NoError(t, err)
	require.Equal(t, []string{"s-1", "s-3"}, ordered)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryExistingStudentIDsEmptyInput(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	ordered, err := repo.ExistingStudentIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, ordered)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryBulkCreate(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	classDate := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attendance")).
		WithArgs(sqlmock.AnyArg(), "s-1", "class-1", classDate, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attendance")).
		WithArgs(sqlmock.AnyArg(), "s-2", "class-1", classDate, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.BulkCreate(context.Background(), "class-1", classDate, []string{"s-1", "s-2"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListJoinsStudentName(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "class_id", "class_date", "created_at", "student_name"}).
		AddRow("a-1", "s-1", "class-1", now, now, "Asha")
	mock.ExpectQuery(regexp.QuoteMeta("FROM attendance a JOIN users u ON u.id = a.user_id")).
		WithArgs("class-1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM attendance a")).
		WithArgs("class-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	entries, total, err := repo.List(context.Background(), models.AttendanceFilter{ClassID: "class-1"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, entries, 1)
	require.Equal(t, "Asha", entries[0].StudentName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositorySummaryForUser(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT class_date) FROM attendance WHERE user_id = $1")).
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT class_date) FROM attendance")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(20))

	summary, err := repo.SummaryForUser(context.Background(), "s-1")
	require.NoError(t, err)
	require.Equal(t, 12, summary.Attended)
	require.Equal(t, 20, summary.TotalClasses)
	require.NoError(t, mock.ExpectationsWereMet())
}
