package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
	"github.com/scholarbase/scholarship_portal_api/internal/handlers"
	"github.com/scholarbase/scholarship_portal_api/internal/middleware"
	"github.com/scholarbase/scholarship_portal_api/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LateSubmissionService ---
type MockLateSubmissionService struct {
	mock.Mock
}

func (m *MockLateSubmissionService) RequestLateSubmission(ctx context.Context, actor domain.ActorRef, req dto.LateSubmissionRequestInput) (*domain.LateSubmissionRequest, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LateSubmissionRequest), args.Error(1)
}

func (m *MockLateSubmissionService) DecideLateSubmission(ctx context.Context, actor domain.ActorRef, requestID string, req dto.LateSubmissionDecisionInput) (*domain.LateSubmissionRequest, error) {
	args := m.Called(ctx, actor, requestID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LateSubmissionRequest), args.Error(1)
}

func (m *MockLateSubmissionService) GetRequestByID(ctx context.Context, actor domain.ActorRef, requestID string) (*domain.LateSubmissionRequest, error) {
	args := m.Called(ctx, actor, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LateSubmissionRequest), args.Error(1)
}

func (m *MockLateSubmissionService) ListRequests(ctx context.Context, actor domain.ActorRef, pendingOnly bool, params dto.ListParams) (*dto.ListLateSubmissionsResponse, error) {
	args := m.Called(ctx, actor, pendingOnly, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLateSubmissionsResponse), args.Error(1)
}

func (m *MockLateSubmissionService) ListOwnRequests(ctx context.Context, actor domain.ActorRef) ([]domain.LateSubmissionRequest, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LateSubmissionRequest), args.Error(1)
}

var _ portssvc.LateSubmissionSvcFacade = (*MockLateSubmissionService)(nil)

// --- Test Suite ---
type LateSubmissionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockLateSubmissionService
	jwtSecret   string
}

func (suite *LateSubmissionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockLateSubmissionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterLateSubmissionRoutes(v1, suite.mockService)
}

// generateTestToken mints a signed token carrying the actor identity the
// auth middleware expects.
func (suite *LateSubmissionHandlerTestSuite) generateTestToken(actorID string, role domain.Role) string {
	token, err := utils.GenerateJWT(actorID, string(role), suite.jwtSecret, time.Hour, "portal-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *LateSubmissionHandlerTestSuite) doJSON(method, url string, body any, actorID string, role domain.Role) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(actorID, role))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LateSubmissionHandlerTestSuite) TestRequestLateSubmission_Created() {
	scholarID := uuid.NewString()
	requestID := uuid.NewString()
	input := dto.LateSubmissionRequestInput{Month: 3, Year: 2026, Reason: "hospitalized"}
	created := &domain.LateSubmissionRequest{
		RequestID: requestID,
		ScholarID: scholarID,
		Month:     3,
		Year:      2026,
		Reason:    input.Reason,
		CreatedAt: time.Now(),
	}

	suite.mockService.On("RequestLateSubmission",
		mock.Anything,
		domain.ActorRef{ActorID: scholarID, Role: domain.RoleStudent},
		input,
	).Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/late-submissions", input, scholarID, domain.RoleStudent)

	suite.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.LateSubmissionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(requestID, resp.RequestID)
	suite.Nil(resp.IsApproved)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *LateSubmissionHandlerTestSuite) TestRequestLateSubmission_DuplicateConflict() {
	scholarID := uuid.NewString()
	input := dto.LateSubmissionRequestInput{Month: 3, Year: 2026, Reason: "x"}

	suite.mockService.On("RequestLateSubmission", mock.Anything, mock.Anything, input).
		Return(nil, apperrors.NewAppError(409, "a request for this period already exists", apperrors.ErrConflict)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/late-submissions", input, scholarID, domain.RoleStudent)

	suite.Require().Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "already exists")
}

func (suite *LateSubmissionHandlerTestSuite) TestRequestLateSubmission_InvalidBody() {
	// Month out of range fails binding before the service is reached.
	w := suite.doJSON(http.MethodPost, "/api/v1/late-submissions", map[string]any{"month": 13, "year": 2026, "reason": "x"}, uuid.NewString(), domain.RoleStudent)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "RequestLateSubmission", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LateSubmissionHandlerTestSuite) TestRequestLateSubmission_MissingToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/late-submissions", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusUnauthorized, w.Code)
}

func (suite *LateSubmissionHandlerTestSuite) TestDecideRequest_Approved() {
	adminID := uuid.NewString()
	requestID := uuid.NewString()
	openUntil := "2026-09-15"
	deadline := domain.EndOfDay(time.Date(2026, time.September, 15, 0, 0, 0, 0, time.Local), time.Local)
	approved := true
	decided := &domain.LateSubmissionRequest{
		RequestID:  requestID,
		ScholarID:  uuid.NewString(),
		Month:      3,
		Year:       2026,
		IsApproved: &approved,
		DecidedBy:  &adminID,
		OpenUntil:  &deadline,
	}

	suite.mockService.On("DecideLateSubmission",
		mock.Anything,
		domain.ActorRef{ActorID: adminID, Role: domain.RoleManageDocuments},
		requestID,
		dto.LateSubmissionDecisionInput{Approve: true, OpenUntil: &openUntil},
	).Return(decided, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/late-submissions/"+requestID+"/decision",
		map[string]any{"approve": true, "openUntil": openUntil}, adminID, domain.RoleManageDocuments)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.LateSubmissionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.IsApproved)
	suite.True(*resp.IsApproved)
	suite.Require().NotNil(resp.OpenUntil)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *LateSubmissionHandlerTestSuite) TestDecideRequest_FlipConflict() {
	requestID := uuid.NewString()

	suite.mockService.On("DecideLateSubmission", mock.Anything, mock.Anything, requestID, mock.Anything).
		Return(nil, apperrors.NewAppError(409, "request "+requestID+" is already decided", apperrors.ErrConflict)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/late-submissions/"+requestID+"/decision",
		map[string]any{"approve": false}, uuid.NewString(), domain.RoleSuperAdmin)

	suite.Require().Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "already decided")
}

func (suite *LateSubmissionHandlerTestSuite) TestDecideRequest_Forbidden() {
	requestID := uuid.NewString()

	suite.mockService.On("DecideLateSubmission", mock.Anything, mock.Anything, requestID, mock.Anything).
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/late-submissions/"+requestID+"/decision",
		map[string]any{"approve": false}, uuid.NewString(), domain.RoleViewer)

	suite.Require().Equal(http.StatusForbidden, w.Code)
}

func (suite *LateSubmissionHandlerTestSuite) TestGetRequest_NotFound() {
	requestID := uuid.NewString()

	suite.mockService.On("GetRequestByID", mock.Anything, mock.Anything, requestID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/late-submissions/"+requestID, nil, uuid.NewString(), domain.RoleViewer)

	suite.Require().Equal(http.StatusNotFound, w.Code)
}

func (suite *LateSubmissionHandlerTestSuite) TestListRequests_PendingQuery() {
	adminID := uuid.NewString()
	resp := &dto.ListLateSubmissionsResponse{
		Requests: []dto.LateSubmissionResponse{
			{RequestID: uuid.NewString(), Month: 3, Year: 2026},
		},
	}

	suite.mockService.On("ListRequests",
		mock.Anything,
		domain.ActorRef{ActorID: adminID, Role: domain.RoleViewer},
		true,
		mock.MatchedBy(func(p dto.ListParams) bool { return p.Limit == 10 }),
	).Return(resp, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/late-submissions?pending=true&limit=10", nil, adminID, domain.RoleViewer)

	suite.Require().Equal(http.StatusOK, w.Code)
	var got dto.ListLateSubmissionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got.Requests, 1)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *LateSubmissionHandlerTestSuite) TestListOwnRequests_Success() {
	scholarID := uuid.NewString()
	requests := []domain.LateSubmissionRequest{
		{RequestID: uuid.NewString(), ScholarID: scholarID, Month: 2, Year: 2026},
	}

	suite.mockService.On("ListOwnRequests",
		mock.Anything,
		domain.ActorRef{ActorID: scholarID, Role: domain.RoleStudent},
	).Return(requests, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/late-submissions/mine", nil, scholarID, domain.RoleStudent)

	suite.Require().Equal(http.StatusOK, w.Code)
	var got dto.ListLateSubmissionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got.Requests, 1)
	suite.Equal(scholarID, got.Requests[0].ScholarID)
}

func TestLateSubmissionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LateSubmissionHandlerTestSuite))
}
