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

func newJoinRequestRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestJoinRequestRepositoryCreateDefaultsToPending(t *testing.T) {
	db, mock, cleanup := newJoinRequestRepoMock(t)
	defer cleanup()

	repo := NewJoinRequestRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO join_requests")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	req := &models.JoinRequest{Email: "new@iitjammu.ac.in", Name: "New Volunteer"}
	require.NoError(t, repo.Create(context.Background(), req))
	require.NotEmpty(t, req.ID)
	require.Equal(t, models.JoinRequestPending, req.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRequestRepositoryCreateDuplicateEmail(t *testing.T) {
	db, mock, cleanup := newJoinRequestRepoMock(t)
	defer cleanup()

	repo := NewJoinRequestRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO join_requests")).
		WillReturnError(uniqueViolationErr())

	err := repo.Create(context.Background(), &models.JoinRequest{Email: "dup@iitjammu.ac.in", Name: "Dup"})
	require.ErrorIs(t, err, ErrDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRequestRepositoryListByStatus(t *testing.T) {
	db, mock, cleanup := newJoinRequestRepoMock(t)
	defer cleanup()

	repo := NewJoinRequestRepository(db)
	rows := sqlmock.NewRows([]string{"id", "email", "name", "status", "created_at", "updated_at"}).
		AddRow("jr-1", "a@iitjammu.ac.in", "A", "PENDING", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, name, status, created_at, updated_at FROM join_requests")).
		WithArgs("PENDING").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM join_requests")).
		WithArgs("PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	status := models.JoinRequestPending
	requests, total, err := repo.List(context.Background(), models.JoinRequestFilter{Status: &status})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, requests, 1)
	require.Equal(t, "jr-1", requests[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRequestRepositoryApproveCommitsAccountAndTransition(t *testing.T) {
	db, mock, cleanup := newJoinRequestRepoMock(t)
	defer cleanup()

	repo := NewJoinRequestRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE join_requests SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4")).
		WithArgs("jr-1", models.JoinRequestApproved, sqlmock.AnyArg(), models.JoinRequestPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user := &models.User{
		Email:        "new@iitjammu.ac.in",
		PasswordHash: "hash",
		FullName:     "New Volunteer",
		Role:         models.RoleVolunteer,
		Active:       true,
	}
	require.NoError(t, repo.Approve(context.Background(), "jr-1", user))
	require.NotEmpty(t, user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRequestRepositoryApproveLosesCompareAndSet(t *testing.T) {
	db, mock, cleanup := newJoinRequestRepoMock(t)
	defer cleanup()

	repo := NewJoinRequestRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE join_requests SET status = $2")).
		WithArgs("jr-1", models.JoinRequestApproved, sqlmock.AnyArg(), models.JoinRequestPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Approve(context.Background(), "jr-1", &models.User{Email: "x@iitjammu.ac.in", Role: models.RoleVolunteer})
	require.ErrorIs(t, err, ErrNotPending)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRequestRepositoryApproveDuplicateEmailRollsBack(t *testing.T) {
	db, mock, cleanup := newJoinRequestRepoMock(t)
	defer cleanup()

	repo := NewJoinRequestRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(uniqueViolationErr())
	mock.ExpectRollback()

	err := repo.Approve(context.Background(), "jr-1", &models.User{Email: "taken@iitjammu.ac.in", Role: models.RoleVolunteer})
	require.ErrorIs(t, err, ErrDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRequestRepositoryRejectAlreadyProcessed(t *testing.T) {
	db, mock, cleanup := newJoinRequestRepoMock(t)
	defer cleanup()

	repo := NewJoinRequestRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE join_requests SET status = $2")).
		WithArgs("jr-1", models.JoinRequestRejected, sqlmock.AnyArg(), models.JoinRequestPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Reject(context.Background(), "jr-1")
	require.ErrorIs(t, err, ErrNotPending)
	require.NoError(t, mock.ExpectationsWereMet())
}
