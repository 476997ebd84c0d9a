package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	"github.com/jagrati-dev/jagrati-api/internal/repository"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
	"github.com/jagrati-dev/jagrati-api/pkg/mailer"
)

// DefaultRejectionMessage is mailed to the applicant when no custom
// message accompanies a rejection.
const DefaultRejectionMessage = "Sorry, we can't take you in our team."

type joinRequestRepository interface {
	Create(ctx context.Context, req *models.JoinRequest) error
	GetByID(ctx context.Context, id string) (*models.JoinRequest, error)
	List(ctx context.Context, filter models.JoinRequestFilter) ([]models.JoinRequest, int, error)
	Approve(ctx context.Context, requestID string, user *models.User) error
	Reject(ctx context.Context, requestID string) error
}

type broadcastNotifier interface {
	Notify(ctx context.Context, req NotifyRequest) (int, error)
}

// CredentialGenerator produces the one-time password mailed to a newly
// approved volunteer.
type CredentialGenerator func() (string, error)

const credentialAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomCredential returns an 8-character alphanumeric password from
// crypto/rand. Bytes at or above the largest multiple of the alphabet
// size are redrawn so every character is uniform.
func RandomCredential() (string, error) {
	limit := byte(256 - 256%len(credentialAlphabet))
	out := make([]byte, 8)
	buf := make([]byte, 1)
	for i := range out {
		for {
			if _, err := rand.Read(buf); err != nil {
				return "", fmt.Errorf("generate credential: %w", err)
			}
			if buf[0] < limit {
				out[i] = credentialAlphabet[int(buf[0])%len(credentialAlphabet)]
				break
			}
		}
	}
	return string(out), nil
}

// JoinRequestService runs the volunteer application lifecycle: submission
// with admin fan-out, then a single terminal approval or rejection.
type JoinRequestService struct {
	repo        joinRequestRepository
	notifier    broadcastNotifier
	mail        mailer.Mailer
	credentials CredentialGenerator
	adminEmail  string
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewJoinRequestService constructs the service. adminEmail receives the
// submission alert mail; pass an empty string to disable it.
func NewJoinRequestService(repo joinRequestRepository, notifier broadcastNotifier, mail mailer.Mailer, adminEmail string, validate *validator.Validate, logger *zap.Logger) *JoinRequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JoinRequestService{
		repo:        repo,
		notifier:    notifier,
		mail:        mail,
		credentials: RandomCredential,
		adminEmail:  adminEmail,
		validator:   validate,
		logger:      logger,
	}
}

// WithCredentialGenerator overrides the password source. Used by tests.
func (s *JoinRequestService) WithCredentialGenerator(gen CredentialGenerator) *JoinRequestService {
	if gen != nil {
		s.credentials = gen
	}
	return s
}

// SubmitJoinRequest is the public application payload.
type SubmitJoinRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

// Decision codes accepted by Process.
const (
	ProcessActionApprove = "A"
	ProcessActionReject  = "R"
)

// ProcessJoinRequest decides a pending application.
type ProcessJoinRequest struct {
	Action  string `json:"type" validate:"required,oneof=A R"`
	Message string `json:"message"`
}

// Submit records a new PENDING application and alerts the admins, both
// in-app and by mail. The alert mail is best effort: a delivery failure is
// logged and the submission still succeeds.
func (s *JoinRequestService) Submit(ctx context.Context, req SubmitJoinRequest) (*models.JoinRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid join request payload")
	}

	jr := &models.JoinRequest{Email: req.Email, Name: req.Name}
	if err := s.repo.Create(ctx, jr); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a request for this email already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create join request")
	}

	content := fmt.Sprintf("New Join Request by %s", jr.Email)
	if _, err := s.notifier.Notify(ctx, NotifyRequest{
		Audience:        models.AudienceAdminOnly,
		Type:            models.NotificationJoinRequest,
		Content:         content,
		RelatedEntityID: jr.ID,
		DisplayDate:     jr.CreatedAt,
	}); err != nil {
		s.logger.Warn("failed to notify admins of join request", zap.String("request_id", jr.ID), zap.Error(err))
	}

	if s.mail != nil && s.adminEmail != "" {
		body := fmt.Sprintf("%s (%s) has applied to join Jagrati. Review the request in the admin panel.", jr.Name, jr.Email)
		if err := s.mail.Send(ctx, content, body, s.adminEmail); err != nil {
			s.logger.Warn("failed to mail join request alert", zap.String("request_id", jr.ID), zap.Error(err))
		}
	}

	s.logger.Info("join request submitted", zap.String("request_id", jr.ID), zap.String("email", jr.Email))
	return jr, nil
}

// Get returns a single join request.
func (s *JoinRequestService) Get(ctx context.Context, id string) (*models.JoinRequest, error) {
	jr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "join request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load join request")
	}
	return jr, nil
}

// List returns join requests filtered by status.
func (s *JoinRequestService) List(ctx context.Context, filter models.JoinRequestFilter) ([]models.JoinRequest, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list join requests")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return requests, pagination, nil
}

// Process decides a pending request exactly once. Approval provisions a
// volunteer account and the status flip in one transaction, then mails the
// generated credentials; rejection flips the status and mails the given
// message, or a default one. The outcome mail is sent only after the
// transition committed, so a delivery failure surfaces as DELIVERY_ERROR
// while the decision itself stands.
func (s *JoinRequestService) Process(ctx context.Context, requestID string, req ProcessJoinRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "type must be A or R")
	}

	jr, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "join request not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load join request")
	}
	if jr.Status != models.JoinRequestPending {
		return appErrors.Clone(appErrors.ErrAlreadyProcessed, "join request has already been processed")
	}

	if req.Action == ProcessActionApprove {
		return s.approve(ctx, jr)
	}
	return s.reject(ctx, jr, req.Message)
}

func (s *JoinRequestService) approve(ctx context.Context, jr *models.JoinRequest) error {
	credential, err := s.credentials()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate credentials")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash credentials")
	}

	user := &models.User{
		Email:        jr.Email,
		PasswordHash: string(hash),
		FullName:     jr.Name,
		Role:         models.RoleVolunteer,
		Active:       true,
	}
	if err := s.repo.Approve(ctx, jr.ID, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotPending):
			return appErrors.Clone(appErrors.ErrAlreadyProcessed, "join request was already processed")
		case errors.Is(err, repository.ErrDuplicateEmail):
			return appErrors.Clone(appErrors.ErrConflict, "an account with this email already exists")
		default:
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve join request")
		}
	}

	s.logger.Info("join request approved",
		zap.String("request_id", jr.ID),
		zap.String("user_id", user.ID),
		zap.String("email", jr.Email))

	body := fmt.Sprintf("Welcome to Jagrati, %s!\n\nYour volunteer account is ready.\nLogin: %s\nPassword: %s\n\nPlease change the password after your first login.", jr.Name, jr.Email, credential)
	if err := s.sendOutcome(ctx, jr, "Your Jagrati volunteer account", body); err != nil {
		return err
	}
	return nil
}

func (s *JoinRequestService) reject(ctx context.Context, jr *models.JoinRequest, message string) error {
	if err := s.repo.Reject(ctx, jr.ID); err != nil {
		if errors.Is(err, repository.ErrNotPending) {
			return appErrors.Clone(appErrors.ErrAlreadyProcessed, "join request was already processed")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject join request")
	}

	s.logger.Info("join request rejected", zap.String("request_id", jr.ID), zap.String("email", jr.Email))

	if message == "" {
		message = DefaultRejectionMessage
	}
	return s.sendOutcome(ctx, jr, "Your Jagrati join request", message)
}

func (s *JoinRequestService) sendOutcome(ctx context.Context, jr *models.JoinRequest, subject, body string) error {
	if s.mail == nil {
		return nil
	}
	if err := s.mail.Send(ctx, subject, body, jr.Email); err != nil {
		s.logger.Error("failed to mail join request outcome", zap.String("request_id", jr.ID), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrDelivery.Code, appErrors.ErrDelivery.Status, "decision recorded but the notification email failed")
	}
	return nil
}
