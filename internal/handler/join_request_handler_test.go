package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jagrati-dev/jagrati-api/internal/models"
	"github.com/jagrati-dev/jagrati-api/internal/service"
	"github.com/jagrati-dev/jagrati-api/internal/repository"
	appErrors "github.com/jagrati-dev/jagrati-api/pkg/errors"
)

type joinRequestRepoMock struct {
	created    *models.JoinRequest
	byID       *models.JoinRequest
	byIDErr    error
	approveErr error
	rejectErr  error
}

func (m *joinRequestRepoMock) Create(ctx context.Context, req *models.JoinRequest) error {
	req.ID = "jr-1"
	req.Status = models.JoinRequestPending
	m.created = req
	return nil
}

func (m *joinRequestRepoMock) GetByID(ctx context.Context, id string) (*models.JoinRequest, error) {
	return m.byID, m.byIDErr
}

func (m *joinRequestRepoMock) List(ctx context.Context, filter models.JoinRequestFilter) ([]models.JoinRequest, int, error) {
	return []models.JoinRequest{}, 0, nil
}

func (m *joinRequestRepoMock) Approve(ctx context.Context, requestID string, user *models.User) error {
	return m.approveErr
}

func (m *joinRequestRepoMock) Reject(ctx context.Context, requestID string) error {
	return m.rejectErr
}

type notifierMock struct{}

func (m *notifierMock) Notify(ctx context.Context, req service.NotifyRequest) (int, error) {
	return 1, nil
}

type mailerMock struct {
	err error
}

func (m *mailerMock) Send(ctx context.Context, subject, body string, to ...string) error {
	return m.err
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func newJoinRequestHandler(repo *joinRequestRepoMock, mail *mailerMock) *JoinRequestHandler {
	svc := service.NewJoinRequestService(repo, &notifierMock{}, mail, "admin@jagrati.org", nil, nil)
	return NewJoinRequestHandler(svc)
}

func TestJoinRequestHandlerSubmit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &joinRequestRepoMock{}
	h := newJoinRequestHandler(repo, &mailerMock{})

	payload, _ := json.Marshal(service.SubmitJoinRequest{Email: "new@example.com", Name: "New Volunteer"})
	c, w := newGinContext(http.MethodPost, "/join-requests", payload)

	h.Submit(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.created)
	require.Equal(t, models.JoinRequestPending, repo.created.Status)
}

func TestJoinRequestHandlerSubmitInvalidPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newJoinRequestHandler(&joinRequestRepoMock{}, &mailerMock{})

	c, w := newGinContext(http.MethodPost, "/join-requests", []byte(`{"email":`))

	h.Submit(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJoinRequestHandlerProcessApprove(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &joinRequestRepoMock{
		byID: &models.JoinRequest{ID: "jr-1", Email: "new@example.com", Name: "New Volunteer", Status: models.JoinRequestPending},
	}
	h := newJoinRequestHandler(repo, &mailerMock{})

	payload := []byte(`{"type":"A"}`)
	c, w := newGinContext(http.MethodPut, "/join-requests/jr-1/process", payload)
	c.Params = gin.Params{{Key: "id", Value: "jr-1"}}

	h.Process(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Request approved.")
}

func TestJoinRequestHandlerProcessAlreadyProcessed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &joinRequestRepoMock{
		byID:       &models.JoinRequest{ID: "jr-1", Email: "new@example.com", Status: models.JoinRequestPending},
		approveErr: repository.ErrNotPending,
	}
	h := newJoinRequestHandler(repo, &mailerMock{})

	payload, _ := json.Marshal(service.ProcessJoinRequest{Action: service.ProcessActionApprove})
	c, w := newGinContext(http.MethodPut, "/join-requests/jr-1/process", payload)
	c.Params = gin.Params{{Key: "id", Value: "jr-1"}}

	h.Process(c)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), appErrors.ErrAlreadyProcessed.Code)
}
