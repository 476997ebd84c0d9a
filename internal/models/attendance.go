package models

import "time"

// Attendance marks a student present in a class on a given date.
type Attendance struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	ClassID   string    `db:"class_id" json:"class_id"`
	ClassDate time.Time `db:"class_date" json:"class_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AttendanceFilter captures listing criteria for attendance records.
type AttendanceFilter struct {
	ClassID   string
	ClassDate *time.Time
	UserID    string
	Page      int
	PageSize  int
}

// AttendanceSummary reports attended days against the total distinct class
// days held so far.
type AttendanceSummary struct {
	Attended     int `json:"attendance"`
	TotalClasses int `json:"total_classes"`
}

// AttendanceEntry is the read shape joining the student name onto a record.
type AttendanceEntry struct {
	Attendance
	StudentName string `db:"student_name" json:"student_name"`
}
