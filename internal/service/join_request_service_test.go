package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	"github.com/jagrati-dev/jagrati-api/internal/repository"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
)

type mockJoinRequestRepo struct {
	created     *models.JoinRequest
	createErr   error
	byID        *models.JoinRequest
	getErr      error
	approveErr  error
	rejectErr   error
	approved    bool
	rejected    bool
	createdUser *models.User
}

func (m *mockJoinRequestRepo) Create(ctx context.Context, req *models.JoinRequest) error {
	if m.createErr != nil {
		return m.createErr
	}
	req.ID = "jr-1"
	req.Status = models.JoinRequestPending
	m.created = req
	return nil
}

func (m *mockJoinRequestRepo) GetByID(ctx context.Context, id string) (*models.JoinRequest, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.byID, nil
}

func (m *mockJoinRequestRepo) List(ctx context.Context, filter models.JoinRequestFilter) ([]models.JoinRequest, int, error) {
	if m.byID == nil {
		return nil, 0, nil
	}
	return []models.JoinRequest{*m.byID}, 1, nil
}

func (m *mockJoinRequestRepo) Approve(ctx context.Context, requestID string, user *models.User) error {
	if m.approveErr != nil {
		return m.approveErr
	}
	user.ID = "user-1"
	m.approved = true
	m.createdUser = user
	return nil
}

func (m *mockJoinRequestRepo) Reject(ctx context.Context, requestID string) error {
	if m.rejectErr != nil {
		return m.rejectErr
	}
	m.rejected = true
	return nil
}

type mockNotifier struct {
	requests []NotifyRequest
	err      error
}

func (m *mockNotifier) Notify(ctx context.Context, req NotifyRequest) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.requests = append(m.requests, req)
	return 2, nil
}

type mockMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	subject string
	body    string
	to      []string
}

func (m *mockMailer) Send(ctx context.Context, subject, body string, to ...string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{subject: subject, body: body, to: to})
	return nil
}

func newJoinRequestService(repo *mockJoinRequestRepo, notifier *mockNotifier, mail *mockMailer) *JoinRequestService {
	return NewJoinRequestService(repo, notifier, mail, "admin@iitjammu.ac.in", nil, nil)
}

func TestJoinRequestSubmitNotifiesAdmins(t *testing.T) {
	repo := &mockJoinRequestRepo{}
	notifier := &mockNotifier{}
	mail := &mockMailer{}
	svc := newJoinRequestService(repo, notifier, mail)

	jr, err := svc.Submit(context.Background(), SubmitJoinRequest{Email: "new@iitjammu.ac.in", Name: "New Volunteer"})
	require.NoError(t, err)
	require.Equal(t, models.JoinRequestPending, jr.Status)

	require.Len(t, notifier.requests, 1)
	assert.Equal(t, models.AudienceAdminOnly, notifier.requests[0].Audience)
	assert.Equal(t, models.NotificationJoinRequest, notifier.requests[0].Type)
	assert.Equal(t, "New Join Request by new@iitjammu.ac.in", notifier.requests[0].Content)
	assert.Equal(t, "jr-1", notifier.requests[0].RelatedEntityID)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"admin@iitjammu.ac.in"}, mail.sent[0].to)
}

func TestJoinRequestSubmitMailFailureStillSucceeds(t *testing.T) {
	repo := &mockJoinRequestRepo{}
	notifier := &mockNotifier{}
	mail := &mockMailer{err: errors.New("smtp down")}
	svc := newJoinRequestService(repo, notifier, mail)

	jr, err := svc.Submit(context.Background(), SubmitJoinRequest{Email: "new@iitjammu.ac.in", Name: "New Volunteer"})
	require.NoError(t, err)
	require.NotNil(t, jr)
}

func TestJoinRequestSubmitDuplicateEmail(t *testing.T) {
	repo := &mockJoinRequestRepo{createErr: repository.ErrDuplicateEmail}
	svc := newJoinRequestService(repo, &mockNotifier{}, &mockMailer{})

	_, err := svc.Submit(context.Background(), SubmitJoinRequest{Email: "dup@iitjammu.ac.in", Name: "Dup"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestJoinRequestSubmitInvalidPayload(t *testing.T) {
	svc := newJoinRequestService(&mockJoinRequestRepo{}, &mockNotifier{}, &mockMailer{})

	_, err := svc.Submit(context.Background(), SubmitJoinRequest{Email: "not-an-email", Name: ""})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestJoinRequestApproveMailsGeneratedCredential(t *testing.T) {
	repo := &mockJoinRequestRepo{byID: &models.JoinRequest{ID: "jr-1", Email: "new@iitjammu.ac.in", Name: "New Volunteer", Status: models.JoinRequestPending}}
	mail := &mockMailer{}
	svc := newJoinRequestService(repo, &mockNotifier{}, mail).
		WithCredentialGenerator(func() (string, error) { return "Aa1Bb2Cc", nil })

	err := svc.Process(context.Background(), "jr-1", ProcessJoinRequest{Action: ProcessActionApprove})
	require.NoError(t, err)
	require.True(t, repo.approved)

	require.NotNil(t, repo.createdUser)
	assert.Equal(t, models.RoleVolunteer, repo.createdUser.Role)
	assert.True(t, repo.createdUser.Active)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.createdUser.PasswordHash), []byte("Aa1Bb2Cc")))

	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"new@iitjammu.ac.in"}, mail.sent[0].to)
	assert.Contains(t, mail.sent[0].body, "Aa1Bb2Cc")
}

func TestJoinRequestApproveAlreadyProcessed(t *testing.T) {
	repo := &mockJoinRequestRepo{
		byID:       &models.JoinRequest{ID: "jr-1", Email: "new@iitjammu.ac.in", Status: models.JoinRequestApproved},
		approveErr: repository.ErrNotPending,
	}
	svc := newJoinRequestService(repo, &mockNotifier{}, &mockMailer{})

	err := svc.Process(context.Background(), "jr-1", ProcessJoinRequest{Action: ProcessActionApprove})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrAlreadyProcessed.Code, appErr.Code)
}

func TestJoinRequestApproveTwiceSkipsProvisioning(t *testing.T) {
	// The first approval left a volunteer account behind, so a second
	// attempt would hit a duplicate email if it reached the repository.
	repo := &mockJoinRequestRepo{
		byID:       &models.JoinRequest{ID: "jr-1", Email: "new@iitjammu.ac.in", Status: models.JoinRequestApproved},
		approveErr: repository.ErrDuplicateEmail,
	}
	mail := &mockMailer{}
	svc := newJoinRequestService(repo, &mockNotifier{}, mail)

	err := svc.Process(context.Background(), "jr-1", ProcessJoinRequest{Action: ProcessActionApprove})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrAlreadyProcessed.Code, appErr.Code)
	assert.False(t, repo.approved)
	assert.Empty(t, mail.sent)
}

func TestJoinRequestProcessUnknownAction(t *testing.T) {
	repo := &mockJoinRequestRepo{byID: &models.JoinRequest{ID: "jr-1", Email: "new@iitjammu.ac.in", Status: models.JoinRequestPending}}
	svc := newJoinRequestService(repo, &mockNotifier{}, &mockMailer{})

	err := svc.Process(context.Background(), "jr-1", ProcessJoinRequest{Action: "X"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.False(t, repo.approved)
	assert.False(t, repo.rejected)
}

func TestJoinRequestProcessNotFound(t *testing.T) {
	repo := &mockJoinRequestRepo{getErr: sql.ErrNoRows}
	svc := newJoinRequestService(repo, &mockNotifier{}, &mockMailer{})

	err := svc.Process(context.Background(), "missing", ProcessJoinRequest{Action: ProcessActionApprove})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestJoinRequestApproveMailFailureSurfacesDeliveryError(t *testing.T) {
	repo := &mockJoinRequestRepo{byID: &models.JoinRequest{ID: "jr-1", Email: "new@iitjammu.ac.in", Name: "New", Status: models.JoinRequestPending}}
	mail := &mockMailer{err: errors.New("smtp down")}
	svc := newJoinRequestService(repo, &mockNotifier{}, mail)

	err := svc.Process(context.Background(), "jr-1", ProcessJoinRequest{Action: ProcessActionApprove})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDelivery.Code, appErr.Code)
	// The decision stands even though the mail failed.
	assert.True(t, repo.approved)
}

func TestJoinRequestRejectUsesDefaultMessage(t *testing.T) {
	repo := &mockJoinRequestRepo{byID: &models.JoinRequest{ID: "jr-1", Email: "new@iitjammu.ac.in", Status: models.JoinRequestPending}}
	mail := &mockMailer{}
	svc := newJoinRequestService(repo, &mockNotifier{}, mail)

	err := svc.Process(context.Background(), "jr-1", ProcessJoinRequest{Action: ProcessActionReject})
	require.NoError(t, err)
	require.True(t, repo.rejected)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, DefaultRejectionMessage, mail.sent[0].body)
}

func TestJoinRequestRejectCustomMessage(t *testing.T) {
	repo := &mockJoinRequestRepo{byID: &models.JoinRequest{ID: "jr-1", Email: "new@iitjammu.ac.in", Status: models.JoinRequestPending}}
	mail := &mockMailer{}
	svc := newJoinRequestService(repo, &mockNotifier{}, mail)

	err := svc.Process(context.Background(), "jr-1", ProcessJoinRequest{Action: ProcessActionReject, Message: "Please apply again next semester."})
	require.NoError(t, err)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "Please apply again next semester.", mail.sent[0].body)
}

func TestRandomCredentialShapeAndVariety(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Za-z0-9]{8}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		credential, err := RandomCredential()
		require.NoError(t, err)
		assert.Regexp(t, pattern, credential)
		seen[credential] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestRandomCredentialUniformAlphabet(t *testing.T) {
	// 62 does not divide 256, so naive byte-mod indexing would favor the
	// first 8 alphabet characters. With 24000 draws their fair share is
	// 8/62 (about 0.129) while the biased share is about 0.156.
	const credentials = 3000
	counts := make(map[byte]int)
	total := 0
	for i := 0; i < credentials; i++ {
		credential, err := RandomCredential()
		require.NoError(t, err)
		for j := 0; j < len(credential); j++ {
			counts[credential[j]]++
			total++
		}
	}

	firstEight := 0
	for c := byte('A'); c <= 'H'; c++ {
		firstEight += counts[c]
	}
	share := float64(firstEight) / float64(total)
	assert.Less(t, share, 0.145)
	assert.Greater(t, share, 0.113)
}
