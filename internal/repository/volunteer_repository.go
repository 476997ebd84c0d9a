package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jagrati-dev/jagrati-api/internal/models"
)

// VolunteerRepository provides database access for volunteer profiles
// and their hobby/skill links.
type VolunteerRepository struct {
	db *sqlx.DB
}

// NewVolunteerRepository creates a new instance of VolunteerRepository.
func NewVolunteerRepository(db *sqlx.DB) *VolunteerRepository {
	return &VolunteerRepository{db: db}
}

type volunteerRow struct {
	models.User
	Programme        string     `db:"programme"`
	Discipline       string     `db:"discipline"`
	DOB              *time.Time `db:"dob"`
	Batch            *int       `db:"batch"`
	Contact          string     `db:"contact"`
	Address          string     `db:"address"`
	Status           string     `db:"status"`
	IsContactHidden  bool       `db:"is_contact_hidden"`
	ProfileCreatedAt time.Time  `db:"profile_created_at"`
	ProfileUpdatedAt time.Time  `db:"profile_updated_at"`
}

func (row volunteerRow) detail() models.VolunteerDetail {
	return models.VolunteerDetail{
		User: row.User,
		Profile: models.VolunteerProfile{
			UserID:          row.User.ID,
			Programme:       row.Programme,
			Discipline:      row.Discipline,
			DOB:             row.DOB,
			Batch:           row.Batch,
			Contact:         row.Contact,
			Address:         row.Address,
			Status:          row.Status,
			IsContactHidden: row.IsContactHidden,
			CreatedAt:       row.ProfileCreatedAt,
			UpdatedAt:       row.ProfileUpdatedAt,
		},
	}
}

const volunteerSelect = `SELECT u.id, u.email, u.password_hash, u.full_name, u.role, u.active, u.created_at, u.updated_at,
vp.programme, vp.discipline, vp.dob, vp.batch, vp.contact, vp.address, vp.status, vp.is_contact_hidden,
vp.created_at AS profile_created_at, vp.updated_at AS profile_updated_at
FROM users u JOIN volunteer_profiles vp ON vp.user_id = u.id`

// List returns volunteers matching the filter with the total count.
func (r *VolunteerRepository) List(ctx context.Context, filter models.VolunteerFilter) ([]models.VolunteerDetail, int, error) {
	conditions := []string{"u.active = TRUE"}
	var args []interface{}

	if filter.Programme != "" {
		conditions = append(conditions, fmt.Sprintf("vp.programme = $%d", len(args)+1))
		args = append(args, filter.Programme)
	}
	if filter.Discipline != "" {
		conditions = append(conditions, fmt.Sprintf("vp.discipline = $%d", len(args)+1))
		args = append(args, filter.Discipline)
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

	listQuery := fmt.Sprintf("%s%s ORDER BY u.full_name ASC LIMIT %d OFFSET %d", volunteerSelect, where, pageSize, offset)

	var rows []volunteerRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list volunteers: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM users u JOIN volunteer_profiles vp ON vp.user_id = u.id" + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count volunteers: %w", err)
	}

	details := make([]models.VolunteerDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.detail())
	}
	return details, total, nil
}

// GetByID returns one volunteer with profile.
func (r *VolunteerRepository) GetByID(ctx context.Context, userID string) (*models.VolunteerDetail, error) {
	query := volunteerSelect + " WHERE u.id = $1 LIMIT 1"
	var row volunteerRow
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find volunteer: %w", err)
	}
	detail := row.detail()
	return &detail, nil
}

// CreateProfile inserts a volunteer profile for an existing account.
func (r *VolunteerRepository) CreateProfile(ctx context.Context, profile *models.VolunteerProfile) error {
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	const query = `INSERT INTO volunteer_profiles (user_id, programme, discipline, dob, batch, contact, address, status, is_contact_hidden, created_at, updated_at)
VALUES (:user_id, :programme, :discipline, :dob, :batch, :contact, :address, :status, :is_contact_hidden, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("create volunteer profile: %w", err)
	}
	return nil
}

// UpdateProfile stores edited profile fields.
func (r *VolunteerRepository) UpdateProfile(ctx context.Context, profile *models.VolunteerProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	const query = `UPDATE volunteer_profiles SET programme = :programme, discipline = :discipline, dob = :dob,
batch = :batch, contact = :contact, address = :address, status = :status, is_contact_hidden = :is_contact_hidden,
updated_at = :updated_at WHERE user_id = :user_id`
	result, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("update volunteer profile: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Hobbies returns the hobbies linked to a user.
func (r *VolunteerRepository) Hobbies(ctx context.Context, userID string) ([]models.Hobby, error) {
	const query = `SELECT h.id, h.name FROM hobbies h JOIN user_hobbies uh ON uh.hobby_id = h.id WHERE uh.user_id = $1 ORDER BY h.name ASC`
	var hobbies []models.Hobby
	if err := r.db.SelectContext(ctx, &hobbies, query, userID); err != nil {
		return nil, fmt.Errorf("list user hobbies: %w", err)
	}
	return hobbies, nil
}

// Skills returns the skills linked to a user.
func (r *VolunteerRepository) Skills(ctx context.Context, userID string) ([]models.Skill, error) {
	const query = `SELECT s.id, s.name FROM skills s JOIN user_skills us ON us.skill_id = s.id WHERE us.user_id = $1 ORDER BY s.name ASC`
	var skills []models.Skill
	if err := r.db.SelectContext(ctx, &skills, query, userID); err != nil {
		return nil, fmt.Errorf("list user skills: %w", err)
	}
	return skills, nil
}

// AddHobby links a hobby to a user.
func (r *VolunteerRepository) AddHobby(ctx context.Context, userID, hobbyID string) (*models.UserHobby, error) {
	link := models.UserHobby{ID: uuid.NewString(), UserID: userID, HobbyID: hobbyID}
	const query = `INSERT INTO user_hobbies (id, user_id, hobby_id) VALUES (:id, :user_id, :hobby_id)`
	if _, err := r.db.NamedExecContext(ctx, query, link); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrLinkExists
		}
		return nil, fmt.Errorf("add user hobby: %w", err)
	}
	return &link, nil
}

// RemoveHobby unlinks a hobby from a user.
func (r *VolunteerRepository) RemoveHobby(ctx context.Context, userID, hobbyID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM user_hobbies WHERE user_id = $1 AND hobby_id = $2", userID, hobbyID)
	if err != nil {
		return fmt.Errorf("remove user hobby: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AddSkill links a skill to a user.
func (r *VolunteerRepository) AddSkill(ctx context.Context, userID, skillID string) (*models.UserSkill, error) {
	link := models.UserSkill{ID: uuid.NewString(), UserID: userID, SkillID: skillID}
	const query = `INSERT INTO user_skills (id, user_id, skill_id) VALUES (:id, :user_id, :skill_id)`
	if _, err := r.db.NamedExecContext(ctx, query, link); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrLinkExists
		}
		return nil, fmt.Errorf("add user skill: %w", err)
	}
	return &link, nil
}

// RemoveSkill unlinks a skill from a user.
func (r *VolunteerRepository) RemoveSkill(ctx context.Context, userID, skillID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2", userID, skillID)
	if err != nil {
		return fmt.Errorf("remove user skill: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListHobbies returns the hobby catalogue.
func (r *VolunteerRepository) ListHobbies(ctx context.Context) ([]models.Hobby, error) {
	var hobbies []models.Hobby
	if err := r.db.SelectContext(ctx, &hobbies, "SELECT id, name FROM hobbies ORDER BY name ASC"); err != nil {
		return nil, fmt.Errorf("list hobbies: %w", err)
	}
	return hobbies, nil
}

// ListSkills returns the skill catalogue.
func (r *VolunteerRepository) ListSkills(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.SelectContext(ctx, &skills, "SELECT id, name FROM skills ORDER BY name ASC"); err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}
