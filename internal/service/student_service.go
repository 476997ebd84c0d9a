package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	"github.com/jagrati-dev/jagrati-api/internal/repository"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
	GetByID(ctx context.Context, userID string) (*models.StudentDetail, error)
	CreateProfile(ctx context.Context, profile *models.StudentProfile) error
	UpdateProfile(ctx context.Context, profile *models.StudentProfile) error
	Villages(ctx context.Context) ([]string, error)
}

type studentAccountRepository interface {
	Create(ctx context.Context, user *models.User) error
}

type attendanceSummaryRepository interface {
	SummaryForUser(ctx context.Context, userID string) (models.AttendanceSummary, error)
}

// StudentService handles student enrolment and profiles.
type StudentService struct {
	repo       studentRepository
	accounts   studentAccountRepository
	attendance attendanceSummaryRepository
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewStudentService constructs the service.
func NewStudentService(repo studentRepository, accounts studentAccountRepository, attendance attendanceSummaryRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, accounts: accounts, attendance: attendance, validator: validate, logger: logger}
}

// EnrollStudentRequest registers a student account with its profile.
type EnrollStudentRequest struct {
	Email            string     `json:"email" validate:"required,email"`
	Password         string     `json:"password" validate:"required,min=6"`
	FullName         string     `json:"full_name" validate:"required"`
	ClassID          string     `json:"class_id" validate:"required"`
	Village          string     `json:"village" validate:"required"`
	Sex              string     `json:"sex" validate:"required,oneof=M F O"`
	DOB              *time.Time `json:"dob"`
	Mother           string     `json:"mother"`
	Father           string     `json:"father"`
	Contact          string     `json:"contact"`
	EmergencyContact string     `json:"emergency_contact"`
	Address          string     `json:"address"`
}

// UpdateStudentProfileRequest edits profile fields.
type UpdateStudentProfileRequest struct {
	ClassID          string     `json:"class_id" validate:"required"`
	Village          string     `json:"village" validate:"required"`
	Sex              string     `json:"sex" validate:"required,oneof=M F O"`
	DOB              *time.Time `json:"dob"`
	Mother           string     `json:"mother"`
	Father           string     `json:"father"`
	Contact          string     `json:"contact"`
	EmergencyContact string     `json:"emergency_contact"`
	Address          string     `json:"address"`
}

// List returns students with pagination.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return students, pagination, nil
}

// Get returns one student with profile and attendance summary.
func (s *StudentService) Get(ctx context.Context, userID string) (*models.StudentDetail, error) {
	detail, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if s.attendance != nil {
		summary, err := s.attendance.SummaryForUser(ctx, userID)
		if err != nil {
			s.logger.Warn("failed to load attendance summary", zap.String("user_id", userID), zap.Error(err))
		} else {
			detail.Attendance = summary
		}
	}
	return detail, nil
}

// Enroll creates the account and profile for a new student.
func (s *StudentService) Enroll(ctx context.Context, req EnrollStudentRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         models.RoleStudent,
		Active:       true,
	}
	if err := s.accounts.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "an account with this email already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student account")
	}

	profile := &models.StudentProfile{
		UserID:           user.ID,
		ClassID:          req.ClassID,
		Village:          req.Village,
		Sex:              req.Sex,
		DOB:              req.DOB,
		Mother:           req.Mother,
		Father:           req.Father,
		Contact:          req.Contact,
		EmergencyContact: req.EmergencyContact,
		Address:          req.Address,
	}
	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student profile")
	}

	s.logger.Info("student enrolled", zap.String("user_id", user.ID), zap.String("class_id", req.ClassID))
	return &models.StudentDetail{User: *user, Profile: *profile}, nil
}

// UpdateProfile edits a student's profile.
func (s *StudentService) UpdateProfile(ctx context.Context, userID string, req UpdateStudentProfileRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	profile := &models.StudentProfile{
		UserID:           userID,
		ClassID:          req.ClassID,
		Village:          req.Village,
		Sex:              req.Sex,
		DOB:              req.DOB,
		Mother:           req.Mother,
		Father:           req.Father,
		Contact:          req.Contact,
		EmergencyContact: req.EmergencyContact,
		Address:          req.Address,
	}
	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student profile")
	}
	return s.Get(ctx, userID)
}

// Villages lists distinct villages for filter dropdowns.
func (s *StudentService) Villages(ctx context.Context) ([]string, error) {
	villages, err := s.repo.Villages(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list villages")
	}
	if villages == nil {
		villages = []string{}
	}
	return villages, nil
}
