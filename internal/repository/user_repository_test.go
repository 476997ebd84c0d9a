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

func newUserRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func userRows(id, email string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "full_name", "role", "active", "created_at", "updated_at"}).
		AddRow(id, email, "hash", "Some Name", "VOLUNTEER", true, time.Now(), time.Now())
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, full_name, role, active, created_at, updated_at FROM users WHERE email = $1")).
		WithArgs("vol@iitjammu.ac.in").
		WillReturnRows(userRows("u-1", "vol@iitjammu.ac.in"))

	user, err := repo.FindByEmail(context.Background(), "vol@iitjammu.ac.in")
	require.NoError(t, err)
	require.Equal(t, "u-1", user.ID)
	require.Equal(t, models.RoleVolunteer, user.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(uniqueViolationErr())

	err := repo.Create(context.Background(), &models.User{Email: "dup@iitjammu.ac.in", Role: models.RoleVolunteer})
	require.ErrorIs(t, err, ErrDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryListFiltersByRoleAndActive(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE 1=1 AND role = $1 AND active = $2")).
		WithArgs(models.RoleVolunteer, true).
		WillReturnRows(userRows("u-1", "vol@iitjammu.ac.in"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WithArgs(models.RoleVolunteer, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	role := models.RoleVolunteer
	active := true
	users, total, err := repo.List(context.Background(), models.UserFilter{Role: &role, Active: &active})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, users, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryDeactivateInactiveStudents(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	cutoff := time.Now().AddDate(0, 0, -5)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET active = FALSE")).
		WithArgs(cutoff, sqlmock.AnyArg(), models.RoleStudent).
		WillReturnResult(sqlmock.NewResult(0, 4))

	affected, err := repo.DeactivateInactiveStudents(context.Background(), cutoff)
	require.NoError(t, err)
	require.EqualValues(t, 4, affected)
	require.NoError(t, mock.ExpectationsWereMet())
}
