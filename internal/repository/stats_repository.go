package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jagrati-dev/jagrati-api/internal/models"
)

// StatsRepository exposes the aggregate counts behind the admin dashboard.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository instantiates the repository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// DashboardStats gathers programme-wide counts in one round trip.
func (r *StatsRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	const query = `SELECT
(SELECT COUNT(*) FROM users WHERE role = 'STUDENT' AND active = TRUE) AS active_students,
(SELECT COUNT(*) FROM users WHERE role IN ('VOLUNTEER', 'ADMIN') AND active = TRUE) AS active_volunteers,
(SELECT COUNT(*) FROM classes) AS classes,
(SELECT COUNT(*) FROM subjects) AS subjects,
(SELECT COUNT(*) FROM join_requests WHERE status = 'PENDING') AS pending_join_requests,
(SELECT COUNT(*) FROM events WHERE time >= $1) AS upcoming_events,
(SELECT COUNT(DISTINCT class_date) FROM attendance) AS class_days_held`

	var row struct {
		ActiveStudents      int `db:"active_students"`
		ActiveVolunteers    int `db:"active_volunteers"`
		Classes             int `db:"classes"`
		Subjects            int `db:"subjects"`
		PendingJoinRequests int `db:"pending_join_requests"`
		UpcomingEvents      int `db:"upcoming_events"`
		ClassDaysHeld       int `db:"class_days_held"`
	}
	now := time.Now().UTC()
	if err := r.db.GetContext(ctx, &row, query, now); err != nil {
		return nil, fmt.Errorf("query dashboard stats: %w", err)
	}

	return &models.DashboardStats{
		ActiveStudents:      row.ActiveStudents,
		ActiveVolunteers:    row.ActiveVolunteers,
		Classes:             row.Classes,
		Subjects:            row.Subjects,
		PendingJoinRequests: row.PendingJoinRequests,
		UpcomingEvents:      row.UpcomingEvents,
		ClassDaysHeld:       row.ClassDaysHeld,
		GeneratedAt:         now,
	}, nil
}
