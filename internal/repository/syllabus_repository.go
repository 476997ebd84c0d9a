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

// SyllabusRepository persists planned teaching content per class/subject pair.
type SyllabusRepository struct {
	db *sqlx.DB
}

// NewSyllabusRepository creates a new instance of SyllabusRepository.
func NewSyllabusRepository(db *sqlx.DB) *SyllabusRepository {
	return &SyllabusRepository{db: db}
}

// List returns syllabus entries, optionally scoped to a class and subject.
func (r *SyllabusRepository) List(ctx context.Context, classID, subjectID string) ([]models.Syllabus, error) {
	query := `SELECT id, class_id, subject_id, content, created_at, updated_at FROM syllabus WHERE 1=1`
	var args []interface{}
	if classID != "" {
		query += fmt.Sprintf(" AND class_id = $%d", len(args)+1)
		args = append(args, classID)
	}
	if subjectID != "" {
		query += fmt.Sprintf(" AND subject_id = $%d", len(args)+1)
		args = append(args, subjectID)
	}
	query += " ORDER BY updated_at DESC"

	var entries []models.Syllabus
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list syllabus: %w", err)
	}
	return entries, nil
}

// GetByID returns one syllabus entry.
func (r *SyllabusRepository) GetByID(ctx context.Context, id string) (*models.Syllabus, error) {
	const query = `SELECT id, class_id, subject_id, content, created_at, updated_at FROM syllabus WHERE id = $1 LIMIT 1`
	var entry models.Syllabus
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find syllabus: %w", err)
	}
	return &entry, nil
}

// Create inserts a syllabus entry.
func (r *SyllabusRepository) Create(ctx context.Context, entry *models.Syllabus) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	const query = `INSERT INTO syllabus (id, class_id, subject_id, content, created_at, updated_at)
VALUES (:id, :class_id, :subject_id, :content, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		if isUniqueViolation(err) {
			return ErrLinkExists
		}
		return fmt.Errorf("create syllabus: %w", err)
	}
	return nil
}

// Update replaces the content of a syllabus entry.
func (r *SyllabusRepository) Update(ctx context.Context, entry *models.Syllabus) error {
	entry.UpdatedAt = time.Now().UTC()
	const query = `UPDATE syllabus SET content = :content, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("update syllabus: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a syllabus entry.
func (r *SyllabusRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM syllabus WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete syllabus: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
