package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
)

type notificationRepository interface {
	CreateWithFanout(ctx context.Context, n *models.Notification, audienceRoles []models.UserRole) (int, error)
	ListAndMarkSeen(ctx context.Context, userID string, isSeen *bool) ([]models.UserNotificationDetail, error)
	CountUnseen(ctx context.Context, userID string) (int, error)
}

// NotificationService owns broadcast creation and per-user read state.
type NotificationService struct {
	repo      notificationRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewNotificationService constructs the service.
func NewNotificationService(repo notificationRepository, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, validator: validate, logger: logger}
}

// WithMetrics enables fan-out size instrumentation.
func (s *NotificationService) WithMetrics(metrics *MetricsService) *NotificationService {
	s.metrics = metrics
	return s
}

// NotifyRequest describes a broadcast to create.
type NotifyRequest struct {
	Audience        models.NotificationAudience `validate:"required"`
	Type            models.NotificationType     `validate:"required"`
	Content         string                      `validate:"required"`
	RelatedEntityID string
	DisplayDate     time.Time
}

// AudienceRoles expands a notification audience into the concrete role set
// that receives a copy.
func AudienceRoles(audience models.NotificationAudience) []models.UserRole {
	switch audience {
	case models.AudienceAdminOnly:
		return []models.UserRole{models.RoleAdmin}
	case models.AudienceAllStaff:
		return []models.UserRole{models.RoleAdmin, models.RoleVolunteer}
	default:
		return nil
	}
}

// Notify creates the broadcast and fans it out to every active account in
// the audience. Returns the number of recipients.
func (s *NotificationService) Notify(ctx context.Context, req NotifyRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notification payload")
	}
	roles := AudienceRoles(req.Audience)
	if roles == nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "unknown notification audience")
	}

	n := &models.Notification{
		Audience:        req.Audience,
		Type:            req.Type,
		Content:         req.Content,
		RelatedEntityID: req.RelatedEntityID,
		DisplayDate:     req.DisplayDate,
	}
	recipients, err := s.repo.CreateWithFanout(ctx, n, roles)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create notification")
	}

	if s.metrics != nil {
		s.metrics.RecordFanout(recipients)
	}
	s.logger.Info("notification fanned out",
		zap.String("notification_id", n.ID),
		zap.String("audience", string(req.Audience)),
		zap.Int("recipients", recipients))
	return recipients, nil
}

// List returns the caller's notifications. Every returned row is marked
// seen, but the IsSeen values reflect the state before this call, so a
// client can render which entries are new exactly once.
func (s *NotificationService) List(ctx context.Context, userID string, isSeen *bool) ([]models.UserNotificationDetail, error) {
	items, err := s.repo.ListAndMarkSeen(ctx, userID, isSeen)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	if items == nil {
		items = []models.UserNotificationDetail{}
	}
	return items, nil
}

// UnseenCount returns how many notifications the caller has not seen yet.
func (s *NotificationService) UnseenCount(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.CountUnseen(ctx, userID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count notifications")
	}
	return count, nil
}
