package models

import "time"

// DashboardStats aggregates programme-wide counts for the admin dashboard.
type DashboardStats struct {
	ActiveStudents      int       `json:"active_students"`
	ActiveVolunteers    int       `json:"active_volunteers"`
	Classes             int       `json:"classes"`
	Subjects            int       `json:"subjects"`
	PendingJoinRequests int       `json:"pending_join_requests"`
	UpcomingEvents      int       `json:"upcoming_events"`
	ClassDaysHeld       int       `json:"class_days_held"`
	GeneratedAt         time.Time `json:"generated_at"`
}
