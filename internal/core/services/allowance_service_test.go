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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AllowanceRepository ---
type MockAllowanceRepository struct {
	mock.Mock
}

func (m *MockAllowanceRepository) FindAllowanceByID(ctx context.Context, allowanceID string) (*domain.Allowance, error) {
	args := m.Called(ctx, allowanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Allowance), args.Error(1)
}

func (m *MockAllowanceRepository) ListAllowancesByScholar(ctx context.Context, scholarID string, limit int, nextToken *string) ([]domain.Allowance, *string, error) {
	args := m.Called(ctx, scholarID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Allowance), token, args.Error(2)
}

func (m *MockAllowanceRepository) SaveAllowance(ctx context.Context, allowance domain.Allowance, audit domain.AuditRecord) error {
	args := m.Called(ctx, allowance, audit)
	return args.Error(0)
}

func (m *MockAllowanceRepository) MarkAllowanceClaimed(ctx context.Context, allowanceID string, claimedAt time.Time, audit domain.AuditRecord) error {
	args := m.Called(ctx, allowanceID, claimedAt, audit)
	return args.Error(0)
}

// --- Test Suite ---
type AllowanceServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockAllowanceRepository
	mockNotifier *MockNotificationPublisher
	service      portssvc.AllowanceSvcFacade
}

func (suite *AllowanceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAllowanceRepository)
	suite.mockNotifier = new(MockNotificationPublisher)
	suite.service = services.NewAllowanceService(suite.mockRepo, services.NewAuthorizerService(), suite.mockNotifier)
}

func validCreateRequest(scholarID string) dto.CreateAllowanceRequest {
	return dto.CreateAllowanceRequest{
		ScholarID:   scholarID,
		Month:       4,
		Year:        2026,
		TotalAmount: decimal.NewFromInt(1500),
		Components: []dto.AllowanceComponentInput{
			{Name: "Stipend", Amount: decimal.NewFromInt(1200)},
			{Name: "Books", Amount: decimal.NewFromInt(300)},
		},
	}
}

// --- CreateAllowance ---

func (suite *AllowanceServiceTestSuite) TestCreateAllowance_Success() {
	ctx := context.Background()
	scholarID := uuid.NewString()
	actor := adminActor(domain.RoleManageDocuments)
	req := validCreateRequest(scholarID)

	suite.mockRepo.On("SaveAllowance", ctx, mock.MatchedBy(func(a domain.Allowance) bool {
		return a.ScholarID == scholarID && a.Month == 4 && a.Year == 2026 &&
			a.TotalAmount.Equal(decimal.NewFromInt(1500)) &&
			len(a.Components) == 2 && !a.Claimed &&
			a.CreatedBy == actor.ActorID
	}), mock.MatchedBy(func(rec domain.AuditRecord) bool {
		return rec.Action == domain.ActionCreate && rec.EntityKind == domain.KindAllowance &&
			rec.ActorID == actor.ActorID && rec.EntityID != "" && rec.AuditID != ""
	})).Return(nil).Once()
	suite.mockNotifier.On("NotifyScholar", ctx, scholarID, domain.NotifyAllowance, "New allowance posted", mock.Anything, mock.Anything).Once()

	allowance, err := suite.service.CreateAllowance(ctx, actor, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(allowance)
	suite.Equal(scholarID, allowance.ScholarID)
	suite.Len(allowance.Components, 2)
	suite.Equal(allowance.AllowanceID, allowance.Components[0].AllowanceID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *AllowanceServiceTestSuite) TestCreateAllowance_ComponentSumMismatch() {
	ctx := context.Background()
	req := validCreateRequest(uuid.NewString())
	req.TotalAmount = decimal.NewFromInt(1600)

	_, err := suite.service.CreateAllowance(ctx, adminActor(domain.RoleManageDocuments), req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAllowance", mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyScholar", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllowanceServiceTestSuite) TestCreateAllowance_ForbiddenRoles() {
	ctx := context.Background()
	req := validCreateRequest(uuid.NewString())

	for _, role := range []domain.Role{domain.RoleViewer, domain.RoleManageGatherings, domain.RoleStudent} {
		_, err := suite.service.CreateAllowance(ctx, adminActor(role), req)
		suite.Require().ErrorIs(err, apperrors.ErrForbidden, "role %s", role)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAllowance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllowanceServiceTestSuite) TestCreateAllowance_SuperAdminAllowed() {
	ctx := context.Background()
	scholarID := uuid.NewString()

	suite.mockRepo.On("SaveAllowance", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("NotifyScholar", ctx, scholarID, domain.NotifyAllowance, mock.Anything, mock.Anything, mock.Anything).Once()

	_, err := suite.service.CreateAllowance(ctx, adminActor(domain.RoleSuperAdmin), validCreateRequest(scholarID))

	suite.Require().NoError(err)
}

// --- ClaimAllowance ---

func (suite *AllowanceServiceTestSuite) TestClaimAllowance_Success() {
	ctx := context.Background()
	allowanceID := uuid.NewString()
	scholarID := uuid.NewString()
	allowance := &domain.Allowance{
		AllowanceID: allowanceID,
		ScholarID:   scholarID,
		Month:       4,
		Year:        2026,
		TotalAmount: decimal.NewFromInt(1500),
	}

	suite.mockRepo.On("FindAllowanceByID", ctx, allowanceID).Return(allowance, nil).Once()
	suite.mockRepo.On("MarkAllowanceClaimed", ctx, allowanceID, mock.Anything, mock.MatchedBy(func(rec domain.AuditRecord) bool {
		return rec.Action == domain.ActionUpdate && rec.EntityKind == domain.KindAllowance && rec.EntityID == allowanceID
	})).Return(nil).Once()
	suite.mockNotifier.On("NotifyAdmins", ctx, mock.MatchedBy(func(role *domain.Role) bool {
		return role != nil && *role == domain.RoleManageDocuments
	}), domain.NotifyAllowance, "Allowance claimed", mock.Anything, mock.Anything).Once()

	claimed, err := suite.service.ClaimAllowance(ctx, scholarActor(scholarID), allowanceID)

	suite.Require().NoError(err)
	suite.True(claimed.Claimed)
	suite.Require().NotNil(claimed.ClaimedAt)
	suite.Equal(scholarID, claimed.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *AllowanceServiceTestSuite) TestClaimAllowance_NotOwnerForbidden() {
	ctx := context.Background()
	allowanceID := uuid.NewString()
	allowance := &domain.Allowance{AllowanceID: allowanceID, ScholarID: uuid.NewString()}

	suite.mockRepo.On("FindAllowanceByID", ctx, allowanceID).Return(allowance, nil).Once()

	_, err := suite.service.ClaimAllowance(ctx, scholarActor(uuid.NewString()), allowanceID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkAllowanceClaimed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllowanceServiceTestSuite) TestClaimAllowance_AlreadyClaimedConflict() {
	ctx := context.Background()
	allowanceID := uuid.NewString()
	scholarID := uuid.NewString()
	allowance := &domain.Allowance{AllowanceID: allowanceID, ScholarID: scholarID, Claimed: true}

	suite.mockRepo.On("FindAllowanceByID", ctx, allowanceID).Return(allowance, nil).Once()
	suite.mockRepo.On("MarkAllowanceClaimed", ctx, allowanceID, mock.Anything, mock.Anything).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.ClaimAllowance(ctx, scholarActor(scholarID), allowanceID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyAdmins", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *AllowanceServiceTestSuite) TestGetAllowanceByID_StudentOwnOnly() {
	ctx := context.Background()
	allowanceID := uuid.NewString()
	ownerID := uuid.NewString()
	allowance := &domain.Allowance{AllowanceID: allowanceID, ScholarID: ownerID}

	suite.mockRepo.On("FindAllowanceByID", ctx, allowanceID).Return(allowance, nil).Twice()

	got, err := suite.service.GetAllowanceByID(ctx, scholarActor(ownerID), allowanceID)
	suite.Require().NoError(err)
	suite.Equal(allowanceID, got.AllowanceID)

	_, err = suite.service.GetAllowanceByID(ctx, scholarActor(uuid.NewString()), allowanceID)
	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AllowanceServiceTestSuite) TestGetAllowanceByID_ViewerAllowed() {
	ctx := context.Background()
	allowanceID := uuid.NewString()
	allowance := &domain.Allowance{AllowanceID: allowanceID, ScholarID: uuid.NewString()}

	suite.mockRepo.On("FindAllowanceByID", ctx, allowanceID).Return(allowance, nil).Once()

	got, err := suite.service.GetAllowanceByID(ctx, adminActor(domain.RoleViewer), allowanceID)

	suite.Require().NoError(err)
	suite.Equal(allowanceID, got.AllowanceID)
}

func (suite *AllowanceServiceTestSuite) TestListAllowancesByScholar_StudentOtherForbidden() {
	ctx := context.Background()

	_, err := suite.service.ListAllowancesByScholar(ctx, scholarActor(uuid.NewString()), uuid.NewString(), dto.ListParams{Limit: 20})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListAllowancesByScholar", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllowanceServiceTestSuite) TestListAllowancesByScholar_OwnerSuccess() {
	ctx := context.Background()
	scholarID := uuid.NewString()
	rows := []domain.Allowance{
		{AllowanceID: uuid.NewString(), ScholarID: scholarID, Month: 3, Year: 2026, TotalAmount: decimal.NewFromInt(1500)},
	}

	suite.mockRepo.On("ListAllowancesByScholar", ctx, scholarID, 20, (*string)(nil)).Return(rows, nil, nil).Once()

	resp, err := suite.service.ListAllowancesByScholar(ctx, scholarActor(scholarID), scholarID, dto.ListParams{Limit: 20})

	suite.Require().NoError(err)
	suite.Len(resp.Allowances, 1)
}

func TestAllowanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AllowanceServiceTestSuite))
}
