package models

import "time"

// Class represents a teaching group in the village centre.
type Class struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// NumActiveStudents is computed on read, not stored.
	NumActiveStudents int `db:"num_active_students" json:"num_active_students"`
}
