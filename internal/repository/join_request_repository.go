package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jagrati-dev/jagrati-api/internal/models"
)

// JoinRequestRepository persists volunteer applications and their lifecycle.
type JoinRequestRepository struct {
	db *sqlx.DB
}

// NewJoinRequestRepository creates the repository.
func NewJoinRequestRepository(db *sqlx.DB) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

// Create inserts a new PENDING join request.
func (r *JoinRequestRepository) Create(ctx context.Context, req *models.JoinRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = models.JoinRequestPending
	}

	const query = `INSERT INTO join_requests (id, email, name, status, created_at, updated_at) VALUES (:id, :email, :name, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create join request: %w", err)
	}
	return nil
}

// GetByID returns a join request by identifier.
func (r *JoinRequestRepository) GetByID(ctx context.Context, id string) (*models.JoinRequest, error) {
	const query = `SELECT id, email, name, status, created_at, updated_at FROM join_requests WHERE id = $1 LIMIT 1`
	var req models.JoinRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find join request: %w", err)
	}
	return &req, nil
}

// List returns join requests filtered by status with total count.
func (r *JoinRequestRepository) List(ctx context.Context, filter models.JoinRequestFilter) ([]models.JoinRequest, int, error) {
	baseQuery := `FROM join_requests WHERE 1=1`
	var args []interface{}

	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, *filter.Status)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT id, email, name, status, created_at, updated_at %s ORDER BY created_at DESC LIMIT %d OFFSET %d", baseQuery, pageSize, offset)

	var requests []models.JoinRequest
	if err := r.db.SelectContext(ctx, &requests, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list join requests: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count join requests: %w", err)
	}

	return requests, total, nil
}

// Approve provisions the account and flips the request to APPROVED in one
// transaction. The status flip is a compare-and-set against PENDING, so a
// concurrent approval or rejection makes exactly one caller win; the loser
// receives ErrNotPending. ErrDuplicateEmail is returned when the account
// email was registered between submission and processing.
func (r *JoinRequestRepository) Approve(ctx context.Context, requestID string, user *models.User) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	const insertUser = `INSERT INTO users (id, email, password_hash, full_name, role, active, created_at, updated_at) VALUES (:id, :email, :password_hash, :full_name, :role, :active, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertUser, user); err != nil {
		tx.Rollback() //nolint:errcheck
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("provision account: %w", err)
	}

	if err := transitionTx(ctx, tx, requestID, models.JoinRequestApproved, now); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit approval: %w", err)
	}
	return nil
}

// Reject flips the request to REJECTED via the same compare-and-set.
func (r *JoinRequestRepository) Reject(ctx context.Context, requestID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := transitionTx(ctx, tx, requestID, models.JoinRequestRejected, time.Now().UTC()); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rejection: %w", err)
	}
	return nil
}

func transitionTx(ctx context.Context, tx *sqlx.Tx, requestID string, to models.JoinRequestStatus, now time.Time) error {
	const query = `UPDATE join_requests SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`
	res, err := tx.ExecContext(ctx, query, requestID, to, now, models.JoinRequestPending)
	if err != nil {
		return fmt.Errorf("transition join request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("transition join request: %w", err)
	}
	if affected == 0 {
		return ErrNotPending
	}
	return nil
}
