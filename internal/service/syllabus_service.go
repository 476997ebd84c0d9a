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

type syllabusRepository interface {
	List(ctx context.Context, classID, subjectID string) ([]models.Syllabus, error)
	GetByID(ctx context.Context, id string) (*models.Syllabus, error)
	Create(ctx context.Context, entry *models.Syllabus) error
	Update(ctx context.Context, entry *models.Syllabus) error
	Delete(ctx context.Context, id string) error
}

// SyllabusService maintains the teaching plan per class/subject pair.
type SyllabusService struct {
	repo      syllabusRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSyllabusService constructs the service.
func NewSyllabusService(repo syllabusRepository, validate *validator.Validate, logger *zap.Logger) *SyllabusService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyllabusService{repo: repo, validator: validate, logger: logger}
}

// CreateSyllabusRequest describes a new syllabus entry.
type CreateSyllabusRequest struct {
	ClassID   string `json:"class_id" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
	Content   string `json:"content" validate:"required"`
}

// UpdateSyllabusRequest replaces the entry content.
type UpdateSyllabusRequest struct {
	Content string `json:"content" validate:"required"`
}

// List returns syllabus entries scoped by the given filters.
func (s *SyllabusService) List(ctx context.Context, classID, subjectID string) ([]models.Syllabus, error) {
	entries, err := s.repo.List(ctx, classID, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list syllabus")
	}
	if entries == nil {
		entries = []models.Syllabus{}
	}
	return entries, nil
}

// Get returns one syllabus entry.
func (s *SyllabusService) Get(ctx context.Context, id string) (*models.Syllabus, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "syllabus entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load syllabus entry")
	}
	return entry, nil
}

// Create adds a syllabus entry for a class/subject pair.
func (s *SyllabusService) Create(ctx context.Context, req CreateSyllabusRequest) (*models.Syllabus, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid syllabus payload")
	}
	entry := &models.Syllabus{ClassID: req.ClassID, SubjectID: req.SubjectID, Content: req.Content}
	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrLinkExists) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "syllabus for this class and subject already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create syllabus entry")
	}
	return entry, nil
}

// Update replaces the content of an entry.
func (s *SyllabusService) Update(ctx context.Context, id string, req UpdateSyllabusRequest) (*models.Syllabus, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid syllabus payload")
	}
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "syllabus entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load syllabus entry")
	}
	entry.Content = req.Content
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update syllabus entry")
	}
	return entry, nil
}

// Delete removes an entry.
func (s *SyllabusService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "syllabus entry not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete syllabus entry")
	}
	return nil
}
