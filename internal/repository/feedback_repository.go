package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jagrati-dev/jagrati-api/internal/models"
)

// FeedbackRepository persists class and student feedback entries.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates a new instance of FeedbackRepository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// CreateClassFeedback inserts a class session observation.
func (r *FeedbackRepository) CreateClassFeedback(ctx context.Context, fb *models.ClassFeedback) error {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	fb.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO class_feedback (id, class_id, subject_id, feedback, created_at)
VALUES (:id, :class_id, :subject_id, :feedback, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fb); err != nil {
		return fmt.Errorf("create class feedback: %w", err)
	}
	return nil
}

// ListClassFeedback returns class feedback, newest first, optionally scoped to a class.
func (r *FeedbackRepository) ListClassFeedback(ctx context.Context, classID string) ([]models.ClassFeedback, error) {
	query := `SELECT id, class_id, subject_id, feedback, created_at FROM class_feedback`
	var args []interface{}
	if classID != "" {
		query += " WHERE class_id = $1"
		args = append(args, classID)
	}
	query += " ORDER BY created_at DESC"

	var entries []models.ClassFeedback
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list class feedback: %w", err)
	}
	return entries, nil
}

// CreateStudentFeedback inserts a per-student observation.
func (r *FeedbackRepository) CreateStudentFeedback(ctx context.Context, fb *models.StudentFeedback) error {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	fb.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO student_feedback (id, student_id, author_id, title, feedback, created_at)
VALUES (:id, :student_id, :author_id, :title, :feedback, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fb); err != nil {
		return fmt.Errorf("create student feedback: %w", err)
	}
	return nil
}

// ListStudentFeedback returns feedback left for one student, newest first.
func (r *FeedbackRepository) ListStudentFeedback(ctx context.Context, studentID string) ([]models.StudentFeedback, error) {
	const query = `SELECT id, student_id, author_id, title, feedback, created_at FROM student_feedback WHERE student_id = $1 ORDER BY created_at DESC`
	var entries []models.StudentFeedback
	if err := r.db.SelectContext(ctx, &entries, query, studentID); err != nil {
		return nil, fmt.Errorf("list student feedback: %w", err)
	}
	return entries, nil
}
