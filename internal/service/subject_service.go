package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	"github.com/jagrati-dev/jagrati-api/internal/repository"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	GetByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
	Department(ctx context.Context, subjectID string) ([]models.VolunteerSubjectDetail, error)
	AddVolunteer(ctx context.Context, volunteerID, subjectID string) (*models.VolunteerSubject, error)
	RemoveVolunteer(ctx context.Context, volunteerID, subjectID string) error
}

// SubjectService handles subjects and who teaches them.
type SubjectService struct {
	repo      subjectRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs the service.
func NewSubjectService(repo subjectRepository, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, validator: validate, logger: logger}
}

// SubjectRequest describes a create payload.
type SubjectRequest struct {
	Name string `json:"name" validate:"required"`
}

// List returns all subjects.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	return subjects, nil
}

// Create registers a new subject.
func (s *SubjectService) Create(ctx context.Context, req SubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	subject := &models.Subject{Name: req.Name}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	s.logger.Info("subject created", zap.String("subject_id", subject.ID), zap.String("name", subject.Name))
	return subject, nil
}

// Delete removes a subject.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	return nil
}

// Department lists who teaches what, optionally scoped to a subject.
func (s *SubjectService) Department(ctx context.Context, subjectID string) ([]models.VolunteerSubjectDetail, error) {
	details, err := s.repo.Department(ctx, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list department")
	}
	if details == nil {
		details = []models.VolunteerSubjectDetail{}
	}
	return details, nil
}

// AddVolunteer links a volunteer to a subject.
func (s *SubjectService) AddVolunteer(ctx context.Context, volunteerID, subjectID string) (*models.VolunteerSubject, error) {
	link, err := s.repo.AddVolunteer(ctx, volunteerID, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrLinkExists) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "volunteer already teaches this subject")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add volunteer to subject")
	}
	return link, nil
}

// RemoveVolunteer unlinks a volunteer from a subject.
func (s *SubjectService) RemoveVolunteer(ctx context.Context, volunteerID, subjectID string) error {
	if err := s.repo.RemoveVolunteer(ctx, volunteerID, subjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "mapping not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove volunteer from subject")
	}
	return nil
}
