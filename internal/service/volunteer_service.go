package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	"github.com/jagrati-dev/jagrati-api/internal/repository"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
)

type volunteerRepository interface {
	List(ctx context.Context, filter models.VolunteerFilter) ([]models.VolunteerDetail, int, error)
	GetByID(ctx context.Context, userID string) (*models.VolunteerDetail, error)
	CreateProfile(ctx context.Context, profile *models.VolunteerProfile) error
	UpdateProfile(ctx context.Context, profile *models.VolunteerProfile) error
	Hobbies(ctx context.Context, userID string) ([]models.Hobby, error)
	Skills(ctx context.Context, userID string) ([]models.Skill, error)
	AddHobby(ctx context.Context, userID, hobbyID string) (*models.UserHobby, error)
	RemoveHobby(ctx context.Context, userID, hobbyID string) error
	AddSkill(ctx context.Context, userID, skillID string) (*models.UserSkill, error)
	RemoveSkill(ctx context.Context, userID, skillID string) error
	ListHobbies(ctx context.Context) ([]models.Hobby, error)
	ListSkills(ctx context.Context) ([]models.Skill, error)
}

// VolunteerService handles volunteer profiles and their interests.
type VolunteerService struct {
	repo       volunteerRepository
	attendance attendanceSummaryRepository
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewVolunteerService constructs the service.
func NewVolunteerService(repo volunteerRepository, attendance attendanceSummaryRepository, validate *validator.Validate, logger *zap.Logger) *VolunteerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VolunteerService{repo: repo, attendance: attendance, validator: validate, logger: logger}
}

// VolunteerProfileRequest carries the profile fields a volunteer can set.
type VolunteerProfileRequest struct {
	Programme       string     `json:"programme" validate:"required,oneof=B.Tech. B.Des. M.Tech. M.Des. PhD"`
	Discipline      string     `json:"discipline" validate:"required"`
	DOB             *time.Time `json:"dob"`
	Batch           *int       `json:"batch"`
	Contact         string     `json:"contact"`
	Address         string     `json:"address"`
	Status          string     `json:"status"`
	IsContactHidden bool       `json:"is_contact_hidden"`
}

// List returns volunteers with pagination.
func (s *VolunteerService) List(ctx context.Context, filter models.VolunteerFilter) ([]models.VolunteerDetail, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	volunteers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list volunteers")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return volunteers, pagination, nil
}

// Get returns one volunteer with profile, attendance and interests.
func (s *VolunteerService) Get(ctx context.Context, userID string) (*models.VolunteerDetail, error) {
	detail, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "volunteer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load volunteer")
	}

	if s.attendance != nil {
		summary, err := s.attendance.SummaryForUser(ctx, userID)
		if err != nil {
			s.logger.Warn("failed to load attendance summary", zap.String("user_id", userID), zap.Error(err))
		} else {
			detail.Attendance = summary
		}
	}

	hobbies, err := s.repo.Hobbies(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load hobbies")
	}
	skills, err := s.repo.Skills(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load skills")
	}
	detail.Hobbies = hobbies
	detail.Skills = skills
	return detail, nil
}

// UpsertProfile creates the profile on first save and updates it after.
func (s *VolunteerService) UpsertProfile(ctx context.Context, userID string, req VolunteerProfileRequest) (*models.VolunteerDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid volunteer payload")
	}

	profile := &models.VolunteerProfile{
		UserID:          userID,
		Programme:       req.Programme,
		Discipline:      req.Discipline,
		DOB:             req.DOB,
		Batch:           req.Batch,
		Contact:         req.Contact,
		Address:         req.Address,
		Status:          req.Status,
		IsContactHidden: req.IsContactHidden,
	}

	err := s.repo.UpdateProfile(ctx, profile)
	if errors.Is(err, sql.ErrNoRows) {
		err = s.repo.CreateProfile(ctx, profile)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save volunteer profile")
	}
	return s.Get(ctx, userID)
}

// AddHobby links a hobby to the volunteer.
func (s *VolunteerService) AddHobby(ctx context.Context, userID, hobbyID string) (*models.UserHobby, error) {
	link, err := s.repo.AddHobby(ctx, userID, hobbyID)
	if err != nil {
		if errors.Is(err, repository.ErrLinkExists) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "hobby already added")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add hobby")
	}
	return link, nil
}

// RemoveHobby unlinks a hobby from the volunteer.
func (s *VolunteerService) RemoveHobby(ctx context.Context, userID, hobbyID string) error {
	if err := s.repo.RemoveHobby(ctx, userID, hobbyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "hobby link not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove hobby")
	}
	return nil
}

// AddSkill links a skill to the volunteer.
func (s *VolunteerService) AddSkill(ctx context.Context, userID, skillID string) (*models.UserSkill, error) {
	link, err := s.repo.AddSkill(ctx, userID, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrLinkExists) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "skill already added")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add skill")
	}
	return link, nil
}

// RemoveSkill unlinks a skill from the volunteer.
func (s *VolunteerService) RemoveSkill(ctx context.Context, userID, skillID string) error {
	if err := s.repo.RemoveSkill(ctx, userID, skillID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "skill link not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove skill")
	}
	return nil
}

// Catalogues returns the hobby and skill catalogues.
func (s *VolunteerService) Catalogues(ctx context.Context) ([]models.Hobby, []models.Skill, error) {
	hobbies, err := s.repo.ListHobbies(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list hobbies")
	}
	skills, err := s.repo.ListSkills(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list skills")
	}
	return hobbies, skills, nil
}
