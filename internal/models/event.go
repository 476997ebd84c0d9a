package models

import "time"

// EventType distinguishes scheduled programme happenings.
type EventType string

const (
	EventTypeEvent    EventType = "EVENT"
	EventTypeHoliday  EventType = "HOLIDAY"
	EventTypeMeeting  EventType = "MEETING"
	EventTypeWorkshop EventType = "WORKSHOP"
)

// Event is a scheduled programme happening announced to all staff.
type Event struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Type        EventType `db:"type" json:"type"`
	Description string    `db:"description" json:"description"`
	Time        time.Time `db:"time" json:"time"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// EventFilter captures listing criteria for events.
type EventFilter struct {
	Type     *EventType
	Upcoming bool
	Page     int
	PageSize int
}
