package models

// Subject is a taught topic, such as Mathematics or English.
type Subject struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`

	// NumVolunteers is computed on read, not stored.
	NumVolunteers int `db:"num_volunteers" json:"num_volunteers"`
}

// VolunteerSubject maps a volunteer to a subject they teach.
type VolunteerSubject struct {
	ID          string `db:"id" json:"id"`
	VolunteerID string `db:"volunteer_id" json:"volunteer_id"`
	SubjectID   string `db:"subject_id" json:"subject_id"`
}

// VolunteerSubjectDetail is the read shape for department listings.
type VolunteerSubjectDetail struct {
	ID         string   `json:"id"`
	Volunteer  UserInfo `json:"volunteer"`
	Subject    Subject  `json:"subject"`
	Discipline string   `json:"discipline"`
}
