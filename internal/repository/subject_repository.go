package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jagrati-dev/jagrati-api/internal/models"
)

// SubjectRepository persists subjects and volunteer-subject mappings.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new instance of SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

const subjectColumns = `s.id, s.name,
(SELECT COUNT(*) FROM volunteer_subjects vs JOIN users u ON u.id = vs.volunteer_id WHERE vs.subject_id = s.id AND u.active = TRUE) AS num_volunteers`

// List returns all subjects with their volunteer counts.
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM subjects s ORDER BY s.name ASC", subjectColumns)
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// GetByID returns a subject by identifier.
func (r *SubjectRepository) GetByID(ctx context.Context, id string) (*models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM subjects s WHERE s.id = $1 LIMIT 1", subjectColumns)
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}
	return &subject, nil
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	const query = `INSERT INTO subjects (id, name) VALUES (:id, :name)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Delete removes a subject.
func (r *SubjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM subjects WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return nil
}

type volunteerSubjectRow struct {
	ID            string `db:"id"`
	VolunteerID   string `db:"volunteer_id"`
	VolunteerName string `db:"volunteer_name"`
	Email         string `db:"email"`
	Role          string `db:"role"`
	SubjectID     string `db:"subject_id"`
	SubjectName   string `db:"subject_name"`
	Discipline    string `db:"discipline"`
}

// Department returns volunteer-subject mappings, optionally filtered by subject.
func (r *SubjectRepository) Department(ctx context.Context, subjectID string) ([]models.VolunteerSubjectDetail, error) {
	query := `SELECT vs.id, vs.volunteer_id, u.full_name AS volunteer_name, u.email, u.role,
vs.subject_id, s.name AS subject_name, vp.discipline
FROM volunteer_subjects vs
JOIN users u ON u.id = vs.volunteer_id
JOIN subjects s ON s.id = vs.subject_id
LEFT JOIN volunteer_profiles vp ON vp.user_id = vs.volunteer_id
WHERE u.active = TRUE`
	var args []interface{}
	if subjectID != "" {
		query += " AND vs.subject_id = $1"
		args = append(args, subjectID)
	}
	query += " ORDER BY s.name ASC, u.full_name ASC"

	var rows []volunteerSubjectRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list department: %w", err)
	}

	details := make([]models.VolunteerSubjectDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, models.VolunteerSubjectDetail{
			ID: row.ID,
			Volunteer: models.UserInfo{
				ID:       row.VolunteerID,
				Email:    row.Email,
				FullName: row.VolunteerName,
				Role:     models.UserRole(row.Role),
			},
			Subject:    models.Subject{ID: row.SubjectID, Name: row.SubjectName},
			Discipline: row.Discipline,
		})
	}
	return details, nil
}

// AddVolunteer links a volunteer to a subject they teach.
func (r *SubjectRepository) AddVolunteer(ctx context.Context, volunteerID, subjectID string) (*models.VolunteerSubject, error) {
	link := models.VolunteerSubject{ID: uuid.NewString(), VolunteerID: volunteerID, SubjectID: subjectID}
	const query = `INSERT INTO volunteer_subjects (id, volunteer_id, subject_id) VALUES (:id, :volunteer_id, :subject_id)`
	if _, err := r.db.NamedExecContext(ctx, query, link); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrLinkExists
		}
		return nil, fmt.Errorf("add volunteer subject: %w", err)
	}
	return &link, nil
}

// RemoveVolunteer unlinks a volunteer from a subject.
func (r *SubjectRepository) RemoveVolunteer(ctx context.Context, volunteerID, subjectID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM volunteer_subjects WHERE volunteer_id = $1 AND subject_id = $2", volunteerID, subjectID)
	if err != nil {
		return fmt.Errorf("remove volunteer subject: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
