package models

import "time"

// StudentProfile carries the village-program details for a student account.
type StudentProfile struct {
	UserID           string     `db:"user_id" json:"user_id"`
	ClassID          string     `db:"class_id" json:"class_id"`
	Village          string     `db:"village" json:"village"`
	Sex              string     `db:"sex" json:"sex"`
	DOB              *time.Time `db:"dob" json:"dob,omitempty"`
	Mother           string     `db:"mother" json:"mother"`
	Father           string     `db:"father" json:"father"`
	Contact          string     `db:"contact" json:"contact"`
	EmergencyContact string     `db:"emergency_contact" json:"emergency_contact"`
	Address          string     `db:"address" json:"address"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// StudentDetail combines the account, profile and attendance summary.
type StudentDetail struct {
	User       User              `json:"user"`
	Profile    StudentProfile    `json:"profile"`
	Attendance AttendanceSummary `json:"attendance"`
}

// StudentFilter captures listing criteria for students.
type StudentFilter struct {
	ClassID  string
	Village  string
	Search   string
	Page     int
	PageSize int
}
