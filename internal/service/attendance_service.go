package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
)

type attendanceRepository interface {
	ExistingStudentIDs(ctx context.Context, ids []string) ([]string, error)
	BulkCreate(ctx context.Context, classID string, classDate time.Time, studentIDs []string) error
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEntry, int, error)
	ClassDates(ctx context.Context, classID string) ([]time.Time, error)
	SummaryForUser(ctx context.Context, userID string) (models.AttendanceSummary, error)
}

// AttendanceService records which students attended a class on a date.
type AttendanceService struct {
	repo      attendanceRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(repo attendanceRepository, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, validator: validate, logger: logger}
}

// MarkAttendanceRequest records a day's roll call for one class. An empty
// class date means today.
type MarkAttendanceRequest struct {
	ClassID    string    `json:"class_id" validate:"required"`
	ClassDate  time.Time `json:"class_date"`
	StudentIDs []string  `json:"student_ids" validate:"required,min=1"`
}

// MarkAttendanceResult reports which submitted ids were saved and which
// were skipped because they do not belong to student accounts.
type MarkAttendanceResult struct {
	Saved   int      `json:"saved"`
	Skipped []string `json:"skipped"`
	Detail  string   `json:"detail"`
}

// Mark saves attendance for every submitted id that maps to a student
// account. Unknown ids do not fail the batch; they are reported back in
// the result.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) (*MarkAttendanceResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}

	if req.ClassDate.IsZero() {
		now := time.Now().UTC()
		req.ClassDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	valid, err := s.repo.ExistingStudentIDs(ctx, req.StudentIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student ids")
	}

	validSet := make(map[string]struct{}, len(valid))
	for _, id := range valid {
		validSet[id] = struct{}{}
	}
	var skipped []string
	for _, id := range req.StudentIDs {
		if _, ok := validSet[id]; !ok {
			skipped = append(skipped, id)
		}
	}

	if err := s.repo.BulkCreate(ctx, req.ClassID, req.ClassDate, valid); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}

	result := &MarkAttendanceResult{Saved: len(valid), Skipped: skipped}
	if len(skipped) == 0 {
		result.Detail = "Attendance saved."
	} else {
		result.Detail = fmt.Sprintf("Attendance saved. Ids not saved: %s", strings.Join(skipped, ", "))
	}

	s.logger.Info("attendance marked",
		zap.String("class_id", req.ClassID),
		zap.Time("class_date", req.ClassDate),
		zap.Int("saved", result.Saved),
		zap.Int("skipped", len(skipped)))
	return result, nil
}

// List returns attendance entries with pagination.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEntry, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return entries, pagination, nil
}

// ClassDates returns the distinct dates a class met.
func (s *AttendanceService) ClassDates(ctx context.Context, classID string) ([]time.Time, error) {
	dates, err := s.repo.ClassDates(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class dates")
	}
	if dates == nil {
		dates = []time.Time{}
	}
	return dates, nil
}

// SummaryForUser reports one user's attended days against class days held.
func (s *AttendanceService) SummaryForUser(ctx context.Context, userID string) (models.AttendanceSummary, error) {
	summary, err := s.repo.SummaryForUser(ctx, userID)
	if err != nil {
		return summary, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance summary")
	}
	return summary, nil
}
