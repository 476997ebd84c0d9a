package models

import "time"

// Programme and discipline values accepted for volunteer profiles.
const (
	ProgrammeBTech = "B.Tech."
	ProgrammeBDes  = "B.Des."
	ProgrammeMTech = "M.Tech."
	ProgrammeMDes  = "M.Des."
	ProgrammePhD   = "PhD"
)

// VolunteerProfile carries institute details for a volunteer account.
type VolunteerProfile struct {
	UserID          string     `db:"user_id" json:"user_id"`
	Programme       string     `db:"programme" json:"programme"`
	Discipline      string     `db:"discipline" json:"discipline"`
	DOB             *time.Time `db:"dob" json:"dob,omitempty"`
	Batch           *int       `db:"batch" json:"batch,omitempty"`
	Contact         string     `db:"contact" json:"contact"`
	Address         string     `db:"address" json:"address"`
	Status          string     `db:"status" json:"status"`
	IsContactHidden bool       `db:"is_contact_hidden" json:"is_contact_hidden"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// VolunteerDetail combines account, profile, attendance and interests.
type VolunteerDetail struct {
	User       User              `json:"user"`
	Profile    VolunteerProfile  `json:"profile"`
	Attendance AttendanceSummary `json:"attendance"`
	Hobbies    []Hobby           `json:"hobbies"`
	Skills     []Skill           `json:"skills"`
}

// VolunteerFilter captures listing criteria for volunteers.
type VolunteerFilter struct {
	Programme  string
	Discipline string
	Search     string
	Page       int
	PageSize   int
}

// Hobby is a named interest linkable to users.
type Hobby struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Skill is a named ability linkable to users.
type Skill struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// UserHobby links a user to a hobby.
type UserHobby struct {
	ID      string `db:"id" json:"id"`
	UserID  string `db:"user_id" json:"user_id"`
	HobbyID string `db:"hobby_id" json:"hobby_id"`
}

// UserSkill links a user to a skill.
type UserSkill struct {
	ID      string `db:"id" json:"id"`
	UserID  string `db:"user_id" json:"user_id"`
	SkillID string `db:"skill_id" json:"skill_id"`
}
