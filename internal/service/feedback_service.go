package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
)

type feedbackRepository interface {
	CreateClassFeedback(ctx context.Context, fb *models.ClassFeedback) error
	ListClassFeedback(ctx context.Context, classID string) ([]models.ClassFeedback, error)
	CreateStudentFeedback(ctx context.Context, fb *models.StudentFeedback) error
	ListStudentFeedback(ctx context.Context, studentID string) ([]models.StudentFeedback, error)
}

// FeedbackService records session and per-student observations. Class
// feedback is broadcast to all staff; student feedback stays private.
type FeedbackService struct {
	repo      feedbackRepository
	notifier  broadcastNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeedbackService constructs the service.
func NewFeedbackService(repo feedbackRepository, notifier broadcastNotifier, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{repo: repo, notifier: notifier, validator: validate, logger: logger}
}

// ClassFeedbackRequest describes a session observation.
type ClassFeedbackRequest struct {
	ClassID   string `json:"class_id" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
	Feedback  string `json:"feedback" validate:"required"`
}

// StudentFeedbackRequest describes a per-student observation.
type StudentFeedbackRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Feedback  string `json:"feedback" validate:"required"`
}

// CreateClassFeedback records the observation and broadcasts it to staff.
func (s *FeedbackService) CreateClassFeedback(ctx context.Context, req ClassFeedbackRequest) (*models.ClassFeedback, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload")
	}

	fb := &models.ClassFeedback{
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
		Feedback:  req.Feedback,
	}
	if err := s.repo.CreateClassFeedback(ctx, fb); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class feedback")
	}

	if s.notifier != nil {
		if _, err := s.notifier.Notify(ctx, NotifyRequest{
			Audience:        models.AudienceAllStaff,
			Type:            models.NotificationClassFeedback,
			Content:         fmt.Sprintf("New class feedback: %s", req.Feedback),
			RelatedEntityID: fb.ID,
			DisplayDate:     time.Now().UTC(),
		}); err != nil {
			s.logger.Warn("failed to broadcast class feedback", zap.String("feedback_id", fb.ID), zap.Error(err))
		}
	}
	return fb, nil
}

// ListClassFeedback returns session observations, optionally for one class.
func (s *FeedbackService) ListClassFeedback(ctx context.Context, classID string) ([]models.ClassFeedback, error) {
	entries, err := s.repo.ListClassFeedback(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class feedback")
	}
	if entries == nil {
		entries = []models.ClassFeedback{}
	}
	return entries, nil
}

// CreateStudentFeedback records an observation about one student.
func (s *FeedbackService) CreateStudentFeedback(ctx context.Context, authorID string, req StudentFeedbackRequest) (*models.StudentFeedback, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload")
	}

	fb := &models.StudentFeedback{
		StudentID: req.StudentID,
		AuthorID:  authorID,
		Title:     req.Title,
		Feedback:  req.Feedback,
	}
	if err := s.repo.CreateStudentFeedback(ctx, fb); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student feedback")
	}
	return fb, nil
}

// ListStudentFeedback returns observations left for one student.
func (s *FeedbackService) ListStudentFeedback(ctx context.Context, studentID string) ([]models.StudentFeedback, error) {
	entries, err := s.repo.ListStudentFeedback(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student feedback")
	}
	if entries == nil {
		entries = []models.StudentFeedback{}
	}
	return entries, nil
}
