package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jagrati-dev/jagrati-api/internal/models"
)

// AttendanceRepository persists per-day class attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ExistingStudentIDs filters the given ids down to those that belong to
// student accounts, preserving input order.
func (r *AttendanceRepository) ExistingStudentIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `SELECT id FROM users WHERE role = $1 AND id = ANY($2)`
	var found []string
	if err := r.db.SelectContext(ctx, &found, query, models.RoleStudent, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("filter student ids: %w", err)
	}
	foundSet := make(map[string]struct{}, len(found))
	for _, id := range found {
		foundSet[id] = struct{}{}
	}
	ordered := make([]string, 0, len(found))
	for _, id := range ids {
		if _, ok := foundSet[id]; ok {
			ordered = append(ordered, id)
		}
	}
	return ordered, nil
}

// BulkCreate inserts one attendance row per student for the class and date,
// in a single transaction.
func (r *AttendanceRepository) BulkCreate(ctx context.Context, classID string, classDate time.Time, studentIDs []string) error {
	if len(studentIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	const query = `INSERT INTO attendance (id, user_id, class_id, class_date, created_at) VALUES ($1, $2, $3, $4, $5)`
	for _, studentID := range studentIDs {
		if _, err := tx.ExecContext(ctx, query, uuid.NewString(), studentID, classID, classDate, now); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("insert attendance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attendance: %w", err)
	}
	return nil
}

// List returns attendance entries with the student name joined on.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEntry, int, error) {
	baseQuery := `FROM attendance a JOIN users u ON u.id = a.user_id WHERE 1=1`
	var args []interface{}

	if filter.ClassID != "" {
		baseQuery += fmt.Sprintf(" AND a.class_id = $%d", len(args)+1)
		args = append(args, filter.ClassID)
	}
	if filter.ClassDate != nil {
		baseQuery += fmt.Sprintf(" AND a.class_date = $%d", len(args)+1)
		args = append(args, *filter.ClassDate)
	}
	if filter.UserID != "" {
		baseQuery += fmt.Sprintf(" AND a.user_id = $%d", len(args)+1)
		args = append(args, filter.UserID)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf(`SELECT a.id, a.user_id, a.class_id, a.class_date, a.created_at, u.full_name AS student_name %s ORDER BY a.class_date DESC, u.full_name ASC LIMIT %d OFFSET %d`, baseQuery, pageSize, offset)

	var entries []models.AttendanceEntry
	if err := r.db.SelectContext(ctx, &entries, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list attendance: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count attendance: %w", err)
	}

	return entries, total, nil
}

// ClassDates returns the distinct dates on which a class met.
func (r *AttendanceRepository) ClassDates(ctx context.Context, classID string) ([]time.Time, error) {
	const query = `SELECT DISTINCT class_date FROM attendance WHERE class_id = $1 ORDER BY class_date DESC`
	var dates []time.Time
	if err := r.db.SelectContext(ctx, &dates, query, classID); err != nil {
		return nil, fmt.Errorf("list class dates: %w", err)
	}
	return dates, nil
}

// SummaryForUser reports the user's attended days against all distinct
// class days held so far.
func (r *AttendanceRepository) SummaryForUser(ctx context.Context, userID string) (models.AttendanceSummary, error) {
	var summary models.AttendanceSummary
	const attendedQuery = `SELECT COUNT(DISTINCT class_date) FROM attendance WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &summary.Attended, attendedQuery, userID); err != nil {
		return summary, fmt.Errorf("count attended days: %w", err)
	}
	const totalQuery = `SELECT COUNT(DISTINCT class_date) FROM attendance`
	if err := r.db.GetContext(ctx, &summary.TotalClasses, totalQuery); err != nil {
		return summary, fmt.Errorf("count class days: %w", err)
	}
	return summary, nil
}

// Register returns the attendance rows for a class between two dates,
// ordered for export rendering.
func (r *AttendanceRepository) Register(ctx context.Context, classID string, from, to time.Time) ([]models.AttendanceEntry, error) {
	const query = `SELECT a.id, a.user_id, a.class_id, a.class_date, a.created_at, u.full_name AS student_name
FROM attendance a JOIN users u ON u.id = a.user_id
WHERE a.class_id = $1 AND a.class_date BETWEEN $2 AND $3
ORDER BY a.class_date ASC, u.full_name ASC`
	var entries []models.AttendanceEntry
	if err := r.db.SelectContext(ctx, &entries, query, classID, from, to); err != nil {
		return nil, fmt.Errorf("load attendance register: %w", err)
	}
	return entries, nil
}
