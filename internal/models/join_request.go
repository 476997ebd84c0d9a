package models

import "time"

// JoinRequestStatus is the lifecycle state of a volunteer application.
// PENDING transitions exactly once, to APPROVED or REJECTED; both are
// terminal.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "PENDING"
	JoinRequestApproved JoinRequestStatus = "APPROVED"
	JoinRequestRejected JoinRequestStatus = "REJECTED"
)

// JoinRequest is an application submitted by a prospective volunteer.
type JoinRequest struct {
	ID        string            `db:"id" json:"id"`
	Email     string            `db:"email" json:"email"`
	Name      string            `db:"name" json:"name"`
	Status    JoinRequestStatus `db:"status" json:"status"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt time.Time         `db:"updated_at" json:"updated_at"`
}

// JoinRequestFilter captures listing criteria for join requests.
type JoinRequestFilter struct {
	Status   *JoinRequestStatus
	Page     int
	PageSize int
}
