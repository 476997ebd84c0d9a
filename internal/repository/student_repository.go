package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jagrati-dev/jagrati-api/internal/models"
)

// StudentRepository provides database access for student profiles.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new instance of StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

type studentRow struct {
	models.User
	ClassID          string     `db:"class_id"`
	Village          string     `db:"village"`
	Sex              string     `db:"sex"`
	DOB              *time.Time `db:"dob"`
	Mother           string     `db:"mother"`
	Father           string     `db:"father"`
	Contact          string     `db:"contact"`
	EmergencyContact string     `db:"emergency_contact"`
	Address          string     `db:"address"`
	ProfileCreatedAt time.Time  `db:"profile_created_at"`
	ProfileUpdatedAt time.Time  `db:"profile_updated_at"`
}

func (row studentRow) detail() models.StudentDetail {
	return models.StudentDetail{
		User: row.User,
		Profile: models.StudentProfile{
			UserID:           row.User.ID,
			ClassID:          row.ClassID,
			Village:          row.Village,
			Sex:              row.Sex,
			DOB:              row.DOB,
			Mother:           row.Mother,
			Father:           row.Father,
			Contact:          row.Contact,
			EmergencyContact: row.EmergencyContact,
			Address:          row.Address,
			CreatedAt:        row.ProfileCreatedAt,
			UpdatedAt:        row.ProfileUpdatedAt,
		},
	}
}

const studentSelect = `SELECT u.id, u.email, u.password_hash, u.full_name, u.role, u.active, u.created_at, u.updated_at,
sp.class_id, sp.village, sp.sex, sp.dob, sp.mother, sp.father, sp.contact, sp.emergency_contact, sp.address,
sp.created_at AS profile_created_at, sp.updated_at AS profile_updated_at
FROM users u JOIN student_profiles sp ON sp.user_id = u.id`

// List returns students matching the filter with the total count.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	conditions := []string{"u.active = TRUE"}
	var args []interface{}

	if filter.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("sp.class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.Village != "" {
		conditions = append(conditions, fmt.Sprintf("sp.village = $%d", len(args)+1))
		args = append(args, filter.Village)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(u.full_name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("%s%s ORDER BY u.full_name ASC LIMIT %d OFFSET %d", studentSelect, where, pageSize, offset)

	var rows []studentRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM users u JOIN student_profiles sp ON sp.user_id = u.id" + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}

	details := make([]models.StudentDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.detail())
	}
	return details, total, nil
}

// GetByID returns one student with profile.
func (r *StudentRepository) GetByID(ctx context.Context, userID string) (*models.StudentDetail, error) {
	query := studentSelect + " WHERE u.id = $1 LIMIT 1"
	var row studentRow
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	detail := row.detail()
	return &detail, nil
}

// CreateProfile inserts a student profile for an existing account.
func (r *StudentRepository) CreateProfile(ctx context.Context, profile *models.StudentProfile) error {
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	const query = `INSERT INTO student_profiles (user_id, class_id, village, sex, dob, mother, father, contact, emergency_contact, address, created_at, updated_at)
VALUES (:user_id, :class_id, :village, :sex, :dob, :mother, :father, :contact, :emergency_contact, :address, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("create student profile: %w", err)
	}
	return nil
}

// UpdateProfile stores edited profile fields.
func (r *StudentRepository) UpdateProfile(ctx context.Context, profile *models.StudentProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	const query = `UPDATE student_profiles SET class_id = :class_id, village = :village, sex = :sex, dob = :dob,
mother = :mother, father = :father, contact = :contact, emergency_contact = :emergency_contact, address = :address,
updated_at = :updated_at WHERE user_id = :user_id`
	result, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("update student profile: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Villages returns the distinct villages students come from.
func (r *StudentRepository) Villages(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT village FROM student_profiles WHERE village <> '' ORDER BY village ASC`
	var villages []string
	if err := r.db.SelectContext(ctx, &villages, query); err != nil {
		return nil, fmt.Errorf("list villages: %w", err)
	}
	return villages, nil
}
