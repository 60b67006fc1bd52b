package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/core/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LateSubmissionRepository ---
type MockLateSubmissionRepository struct {
	mock.Mock
}

func (m *MockLateSubmissionRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.LateSubmissionRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LateSubmissionRequest), args.Error(1)
}

func (m *MockLateSubmissionRepository) FindRequestByPeriod(ctx context.Context, scholarID string, month, year int) (*domain.LateSubmissionRequest, error) {
	args := m.Called(ctx, scholarID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LateSubmissionRequest), args.Error(1)
}

func (m *MockLateSubmissionRepository) ListRequests(ctx context.Context, pendingOnly bool, limit int, nextToken *string) ([]domain.LateSubmissionRequest, *string, error) {
	args := m.Called(ctx, pendingOnly, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.LateSubmissionRequest), token, args.Error(2)
}

func (m *MockLateSubmissionRepository) ListRequestsByScholar(ctx context.Context, scholarID string) ([]domain.LateSubmissionRequest, error) {
	args := m.Called(ctx, scholarID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LateSubmissionRequest), args.Error(1)
}

func (m *MockLateSubmissionRepository) CreateRequest(ctx context.Context, request domain.LateSubmissionRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockLateSubmissionRepository) DecideRequest(ctx context.Context, requestID string, approve bool, decidedBy string, decidedAt time.Time, openUntil *time.Time) error {
	args := m.Called(ctx, requestID, approve, decidedBy, decidedAt, openUntil)
	return args.Error(0)
}

func (m *MockLateSubmissionRepository) UpdateOpenUntil(ctx context.Context, requestID string, openUntil *time.Time) error {
	args := m.Called(ctx, requestID, openUntil)
	return args.Error(0)
}

// --- Mock NotificationPublisher ---
// Shared by every suite in this package that exercises post-commit fan-out.
type MockNotificationPublisher struct {
	mock.Mock
}

func (m *MockNotificationPublisher) NotifyScholar(ctx context.Context, receiverID string, typ domain.NotificationType, title, message, link string) {
	m.Called(ctx, receiverID, typ, title, message, link)
}

func (m *MockNotificationPublisher) NotifyScholars(ctx context.Context, receiverIDs []string, typ domain.NotificationType, title, message, link string) {
	m.Called(ctx, receiverIDs, typ, title, message, link)
}

func (m *MockNotificationPublisher) NotifyAdmins(ctx context.Context, role *domain.Role, typ domain.NotificationType, title, message, link string) {
	m.Called(ctx, role, typ, title, message, link)
}

// --- Test Suite ---
type LateSubmissionServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockLateSubmissionRepository
	mockNotifier *MockNotificationPublisher
	service      portssvc.LateSubmissionSvcFacade
}

func (suite *LateSubmissionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLateSubmissionRepository)
	suite.mockNotifier = new(MockNotificationPublisher)
	suite.service = services.NewLateSubmissionService(suite.mockRepo, suite.mockNotifier)
}

func scholarActor(id string) domain.ActorRef {
	return domain.ActorRef{ActorID: id, Role: domain.RoleStudent}
}

func adminActor(role domain.Role) domain.ActorRef {
	return domain.ActorRef{ActorID: uuid.NewString(), Role: role}
}

// --- RequestLateSubmission ---

func (suite *LateSubmissionServiceTestSuite) TestRequestLateSubmission_Success() {
	ctx := context.Background()
	scholarID := uuid.NewString()
	input := dto.LateSubmissionRequestInput{Month: 3, Year: 2026, Reason: "hospitalized"}

	suite.mockRepo.On("FindRequestByPeriod", ctx, scholarID, 3, 2026).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CreateRequest", ctx, mock.MatchedBy(func(r domain.LateSubmissionRequest) bool {
		return r.ScholarID == scholarID && r.Month == 3 && r.Year == 2026 &&
			r.Reason == input.Reason && r.IsApproved == nil && r.RequestID != ""
	})).Return(nil).Once()
	suite.mockNotifier.On("NotifyAdmins", ctx, mock.MatchedBy(func(role *domain.Role) bool {
		return role != nil && *role == domain.RoleManageDocuments
	}), domain.NotifyLateSubmission, "Late submission requested", mock.Anything, mock.Anything).Once()

	request, err := suite.service.RequestLateSubmission(ctx, scholarActor(scholarID), input)

	suite.Require().NoError(err)
	suite.Require().NotNil(request)
	suite.Equal(scholarID, request.ScholarID)
	suite.Nil(request.IsApproved)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *LateSubmissionServiceTestSuite) TestRequestLateSubmission_NonStudentForbidden() {
	ctx := context.Background()

	_, err := suite.service.RequestLateSubmission(ctx, adminActor(domain.RoleSuperAdmin), dto.LateSubmissionRequestInput{Month: 3, Year: 2026, Reason: "x"})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateRequest", mock.Anything, mock.Anything)
}

func (suite *LateSubmissionServiceTestSuite) TestRequestLateSubmission_DuplicatePeriod() {
	ctx := context.Background()
	scholarID := uuid.NewString()
	existing := &domain.LateSubmissionRequest{RequestID: uuid.NewString(), ScholarID: scholarID, Month: 3, Year: 2026}

	suite.mockRepo.On("FindRequestByPeriod", ctx, scholarID, 3, 2026).Return(existing, nil).Once()

	_, err := suite.service.RequestLateSubmission(ctx, scholarActor(scholarID), dto.LateSubmissionRequestInput{Month: 3, Year: 2026, Reason: "x"})

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateRequest", mock.Anything, mock.Anything)
}

func (suite *LateSubmissionServiceTestSuite) TestRequestLateSubmission_RaceConflictFromInsert() {
	ctx := context.Background()
	scholarID := uuid.NewString()

	suite.mockRepo.On("FindRequestByPeriod", ctx, scholarID, 3, 2026).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CreateRequest", ctx, mock.Anything).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.RequestLateSubmission(ctx, scholarActor(scholarID), dto.LateSubmissionRequestInput{Month: 3, Year: 2026, Reason: "x"})

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyAdmins", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- DecideLateSubmission ---

func (suite *LateSubmissionServiceTestSuite) TestDecideLateSubmission_ApproveSuccess() {
	ctx := context.Background()
	requestID := uuid.NewString()
	scholarID := uuid.NewString()
	actor := adminActor(domain.RoleManageDocuments)
	pending := &domain.LateSubmissionRequest{RequestID: requestID, ScholarID: scholarID, Month: 3, Year: 2026}
	openUntil := "2026-09-15"

	suite.mockRepo.On("FindRequestByID", ctx, requestID).Return(pending, nil).Once()
	suite.mockRepo.On("DecideRequest", ctx, requestID, true, actor.ActorID, mock.Anything, mock.MatchedBy(func(t *time.Time) bool {
		if t == nil {
			return false
		}
		y, m, d := t.Date()
		return y == 2026 && m == time.September && d == 15 &&
			t.Hour() == 23 && t.Minute() == 59 && t.Second() == 59 &&
			t.Location() == time.Local
	})).Return(nil).Once()
	suite.mockNotifier.On("NotifyScholar", ctx, scholarID, domain.NotifyLateSubmission, "Late submission approved", mock.Anything, "/late-submissions/"+requestID).Once()

	request, err := suite.service.DecideLateSubmission(ctx, actor, requestID, dto.LateSubmissionDecisionInput{Approve: true, OpenUntil: &openUntil})

	suite.Require().NoError(err)
	suite.Require().NotNil(request.IsApproved)
	suite.True(*request.IsApproved)
	suite.Require().NotNil(request.OpenUntil)
	suite.Equal(23, request.OpenUntil.Hour())
	suite.Equal(actor.ActorID, *request.DecidedBy)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *LateSubmissionServiceTestSuite) TestDecideLateSubmission_RejectSuccess() {
	ctx := context.Background()
	requestID := uuid.NewString()
	scholarID := uuid.NewString()
	actor := adminActor(domain.RoleSuperAdmin)
	pending := &domain.LateSubmissionRequest{RequestID: requestID, ScholarID: scholarID, Month: 3, Year: 2026}

	suite.mockRepo.On("FindRequestByID", ctx, requestID).Return(pending, nil).Once()
	suite.mockRepo.On("DecideRequest", ctx, requestID, false, actor.ActorID, mock.Anything, (*time.Time)(nil)).Return(nil).Once()
	suite.mockNotifier.On("NotifyScholar", ctx, scholarID, domain.NotifyLateSubmission, "Late submission rejected", mock.Anything, mock.Anything).Once()

	request, err := suite.service.DecideLateSubmission(ctx, actor, requestID, dto.LateSubmissionDecisionInput{Approve: false})

	suite.Require().NoError(err)
	suite.Require().NotNil(request.IsApproved)
	suite.False(*request.IsApproved)
	suite.Nil(request.OpenUntil)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LateSubmissionServiceTestSuite) TestDecideLateSubmission_ApproveWithoutDeadline() {
	ctx := context.Background()
	requestID := uuid.NewString()
	scholarID := uuid.NewString()
	actor := adminActor(domain.RoleManageDocuments)
	pending := &domain.LateSubmissionRequest{RequestID: requestID, ScholarID: scholarID, Month: 3, Year: 2026}

	suite.mockRepo.On("FindRequestByID", ctx, requestID).Return(pending, nil).Once()
	suite.mockRepo.On("DecideRequest", ctx, requestID, true, actor.ActorID, mock.Anything, (*time.Time)(nil)).Return(nil).Once()
	suite.mockNotifier.On("NotifyScholar", ctx, scholarID, domain.NotifyLateSubmission, "Late submission approved", mock.Anything, mock.Anything).Once()

	request, err := suite.service.DecideLateSubmission(ctx, actor, requestID, dto.LateSubmissionDecisionInput{Approve: true})

	suite.Require().NoError(err)
	suite.Require().NotNil(request.IsApproved)
	suite.True(*request.IsApproved)
	suite.Nil(request.OpenUntil)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *LateSubmissionServiceTestSuite) TestDecideLateSubmission_BadOpenUntil() {
	ctx := context.Background()
	requestID := uuid.NewString()
	pending := &domain.LateSubmissionRequest{RequestID: requestID, ScholarID: uuid.NewString(), Month: 3, Year: 2026}
	openUntil := "15/09/2026"

	suite.mockRepo.On("FindRequestByID", ctx, requestID).Return(pending, nil).Once()

	_, err := suite.service.DecideLateSubmission(ctx, adminActor(domain.RoleManageDocuments), requestID, dto.LateSubmissionDecisionInput{Approve: true, OpenUntil: &openUntil})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LateSubmissionServiceTestSuite) TestDecideLateSubmission_Forbidden() {
	ctx := context.Background()

	for _, role := range []domain.Role{domain.RoleManageGatherings, domain.RoleViewer, domain.RoleStudent} {
		_, err := suite.service.DecideLateSubmission(ctx, adminActor(role), uuid.NewString(), dto.LateSubmissionDecisionInput{Approve: false})
		suite.Require().ErrorIs(err, apperrors.ErrForbidden, "role %s", role)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRequestByID", mock.Anything, mock.Anything)
}

func (suite *LateSubmissionServiceTestSuite) TestDecideLateSubmission_FlipConflict() {
	ctx := context.Background()
	requestID := uuid.NewString()
	approved := true
	decided := &domain.LateSubmissionRequest{RequestID: requestID, ScholarID: uuid.NewString(), Month: 3, Year: 2026, IsApproved: &approved}

	suite.mockRepo.On("FindRequestByID", ctx, requestID).Return(decided, nil).Once()

	_, err := suite.service.DecideLateSubmission(ctx, adminActor(domain.RoleSuperAdmin), requestID, dto.LateSubmissionDecisionInput{Approve: false})

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DecideRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateOpenUntil", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LateSubmissionServiceTestSuite) TestDecideLateSubmission_ReRejectIsNoOp() {
	ctx := context.Background()
	requestID := uuid.NewString()
	rejected := false
	decided := &domain.LateSubmissionRequest{RequestID: requestID, ScholarID: uuid.NewString(), Month: 3, Year: 2026, IsApproved: &rejected}

	suite.mockRepo.On("FindRequestByID", ctx, requestID).Return(decided, nil).Once()

	request, err := suite.service.DecideLateSubmission(ctx, adminActor(domain.RoleManageDocuments), requestID, dto.LateSubmissionDecisionInput{Approve: false})

	suite.Require().NoError(err)
	suite.Equal(decided, request)
	suite.mockRepo.AssertNotCalled(suite.T(), "DecideRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyScholar", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LateSubmissionServiceTestSuite) TestDecideLateSubmission_ReApproveMovesDeadline() {
	ctx := context.Background()
	requestID := uuid.NewString()
	scholarID := uuid.NewString()
	approved := true
	oldDeadline := time.Date(2026, time.September, 10, 23, 59, 59, 0, time.Local)
	decided := &domain.LateSubmissionRequest{RequestID: requestID, ScholarID: scholarID, Month: 3, Year: 2026, IsApproved: &approved, OpenUntil: &oldDeadline}
	openUntil := "2026-09-20"

	suite.mockRepo.On("FindRequestByID", ctx, requestID).Return(decided, nil).Once()
	suite.mockRepo.On("UpdateOpenUntil", ctx, requestID, mock.MatchedBy(func(t *time.Time) bool {
		return t != nil && t.Day() == 20 && t.Hour() == 23
	})).Return(nil).Once()
	suite.mockNotifier.On("NotifyScholar", ctx, scholarID, domain.NotifyLateSubmission, "Late submission deadline moved", mock.Anything, mock.Anything).Once()

	request, err := suite.service.DecideLateSubmission(ctx, adminActor(domain.RoleManageDocuments), requestID, dto.LateSubmissionDecisionInput{Approve: true, OpenUntil: &openUntil})

	suite.Require().NoError(err)
	suite.Require().NotNil(request.OpenUntil)
	suite.Equal(20, request.OpenUntil.Day())
	suite.mockRepo.AssertNotCalled(suite.T(), "DecideRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *LateSubmissionServiceTestSuite) TestDecideLateSubmission_ReApproveClearsDeadline() {
	ctx := context.Background()
	requestID := uuid.NewString()
	scholarID := uuid.NewString()
	approved := true
	deadline := time.Date(2026, time.September, 10, 23, 59, 59, 0, time.Local)
	decided := &domain.LateSubmissionRequest{RequestID: requestID, ScholarID: scholarID, Month: 3, Year: 2026, IsApproved: &approved, OpenUntil: &deadline}

	suite.mockRepo.On("FindRequestByID", ctx, requestID).Return(decided, nil).Once()
	suite.mockRepo.On("UpdateOpenUntil", ctx, requestID, (*time.Time)(nil)).Return(nil).Once()
	suite.mockNotifier.On("NotifyScholar", ctx, scholarID, domain.NotifyLateSubmission, "Late submission deadline cleared", mock.Anything, mock.Anything).Once()

	request, err := suite.service.DecideLateSubmission(ctx, adminActor(domain.RoleManageDocuments), requestID, dto.LateSubmissionDecisionInput{Approve: true})

	suite.Require().NoError(err)
	suite.Nil(request.OpenUntil)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

// --- Reads ---

func (suite *LateSubmissionServiceTestSuite) TestGetRequestByID_StudentOwnOnly() {
	ctx := context.Background()
	requestID := uuid.NewString()
	ownerID := uuid.NewString()
	request := &domain.LateSubmissionRequest{RequestID: requestID, ScholarID: ownerID, Month: 3, Year: 2026}

	suite.mockRepo.On("FindRequestByID", ctx, requestID).Return(request, nil).Twice()

	got, err := suite.service.GetRequestByID(ctx, scholarActor(ownerID), requestID)
	suite.Require().NoError(err)
	suite.Equal(requestID, got.RequestID)

	_, err = suite.service.GetRequestByID(ctx, scholarActor(uuid.NewString()), requestID)
	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LateSubmissionServiceTestSuite) TestListRequests_ForbiddenForStudent() {
	ctx := context.Background()

	_, err := suite.service.ListRequests(ctx, scholarActor(uuid.NewString()), true, dto.ListParams{Limit: 20})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LateSubmissionServiceTestSuite) TestListRequests_PendingOnly() {
	ctx := context.Background()
	actor := adminActor(domain.RoleViewer)
	requests := []domain.LateSubmissionRequest{
		{RequestID: uuid.NewString(), ScholarID: uuid.NewString(), Month: 3, Year: 2026},
	}

	suite.mockRepo.On("ListRequests", ctx, true, 20, (*string)(nil)).Return(requests, nil, nil).Once()

	resp, err := suite.service.ListRequests(ctx, actor, true, dto.ListParams{Limit: 20})

	suite.Require().NoError(err)
	suite.Len(resp.Requests, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LateSubmissionServiceTestSuite) TestListOwnRequests_Success() {
	ctx := context.Background()
	scholarID := uuid.NewString()
	requests := []domain.LateSubmissionRequest{
		{RequestID: uuid.NewString(), ScholarID: scholarID, Month: 2, Year: 2026},
		{RequestID: uuid.NewString(), ScholarID: scholarID, Month: 3, Year: 2026},
	}

	suite.mockRepo.On("ListRequestsByScholar", ctx, scholarID).Return(requests, nil).Once()

	got, err := suite.service.ListOwnRequests(ctx, scholarActor(scholarID))

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func TestLateSubmissionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LateSubmissionServiceTestSuite))
}
