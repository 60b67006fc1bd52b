package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/core/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
	"github.com/scholarbase/scholarship_portal_api/internal/platform/broker"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) ListScholarNotifications(ctx context.Context, receiverID string, unreadOnly bool, limit int, nextToken *string) ([]domain.ScholarNotification, *string, error) {
	args := m.Called(ctx, receiverID, unreadOnly, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.ScholarNotification), token, args.Error(2)
}

func (m *MockNotificationRepository) ListAdminNotifications(ctx context.Context, role domain.Role, limit int, nextToken *string) ([]domain.AdminNotification, *string, error) {
	args := m.Called(ctx, role, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.AdminNotification), token, args.Error(2)
}

func (m *MockNotificationRepository) CountUnreadScholar(ctx context.Context, receiverID string) (int, error) {
	args := m.Called(ctx, receiverID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) CountUnreadAdmin(ctx context.Context, role domain.Role, readerID string) (int, error) {
	args := m.Called(ctx, role, readerID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) FindAdminNotificationByID(ctx context.Context, notificationID string) (*domain.AdminNotification, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminNotification), args.Error(1)
}

func (m *MockNotificationRepository) SaveScholarNotifications(ctx context.Context, notifications []domain.ScholarNotification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) SaveAdminNotification(ctx context.Context, notification domain.AdminNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkScholarNotificationRead(ctx context.Context, notificationID, receiverID string) error {
	args := m.Called(ctx, notificationID, receiverID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAdminNotificationRead(ctx context.Context, notificationID, readerID string) error {
	args := m.Called(ctx, notificationID, readerID)
	return args.Error(0)
}

// --- Test Suite ---
type NotificationServiceTestSuite struct {
	suite.Suite
	mockRepo *MockNotificationRepository
	bus      *broker.Broker
	service  portssvc.NotificationSvcFacade
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockNotificationRepository)
	suite.bus = broker.New(4)
	suite.service = services.NewNotificationService(suite.mockRepo, suite.bus)
}

func (suite *NotificationServiceTestSuite) TearDownTest() {
	suite.bus.Close()
}

// drain pulls one event without blocking the test on a quiet channel.
func drain(ch <-chan domain.NotificationEvent) (domain.NotificationEvent, bool) {
	select {
	case ev, ok := <-ch:
		return ev, ok
	case <-time.After(100 * time.Millisecond):
		return domain.NotificationEvent{}, false
	}
}

// --- Fan-out ---

func (suite *NotificationServiceTestSuite) TestNotifyScholars_PersistsAndPushes() {
	ctx := context.Background()
	first := uuid.NewString()
	second := uuid.NewString()

	events, cancel := suite.bus.Subscribe(broker.Filter{ScholarID: first})
	defer cancel()

	suite.mockRepo.On("SaveScholarNotifications", ctx, mock.MatchedBy(func(ns []domain.ScholarNotification) bool {
		if len(ns) != 2 {
			return false
		}
		return ns[0].ReceiverID == first && ns[1].ReceiverID == second &&
			ns[0].NotificationID != ns[1].NotificationID && !ns[0].Read
	})).Return(nil).Once()

	suite.service.NotifyScholars(ctx, []string{first, second}, domain.NotifyAllowance, "New allowance posted", "ready", "/allowances/a1")

	ev, ok := drain(events)
	suite.Require().True(ok)
	suite.Require().NotNil(ev.Scholar)
	suite.Equal(first, ev.Scholar.ReceiverID)
	suite.Equal(domain.NotifyAllowance, ev.Scholar.Type)

	// Only the event addressed to the subscribed scholar arrives.
	_, ok = drain(events)
	suite.False(ok)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestNotifyScholars_PersistFailureSkipsPush() {
	ctx := context.Background()
	receiverID := uuid.NewString()

	events, cancel := suite.bus.Subscribe(broker.Filter{ScholarID: receiverID})
	defer cancel()

	suite.mockRepo.On("SaveScholarNotifications", ctx, mock.Anything).Return(errors.New("db down")).Once()

	suite.service.NotifyScholars(ctx, []string{receiverID}, domain.NotifyDocument, "Document ready", "msg", "")

	_, ok := drain(events)
	suite.False(ok)
}

func (suite *NotificationServiceTestSuite) TestNotifyScholars_EmptyReceivers() {
	suite.service.NotifyScholars(context.Background(), nil, domain.NotifyDocument, "t", "m", "")

	suite.mockRepo.AssertNotCalled(suite.T(), "SaveScholarNotifications", mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestNotifyAdmins_RoleAddressedBroadcast() {
	ctx := context.Background()
	role := domain.RoleManageDocuments

	docEvents, cancelDoc := suite.bus.Subscribe(broker.Filter{Role: domain.RoleManageDocuments})
	defer cancelDoc()
	gatherEvents, cancelGather := suite.bus.Subscribe(broker.Filter{Role: domain.RoleManageGatherings})
	defer cancelGather()

	suite.mockRepo.On("SaveAdminNotification", ctx, mock.MatchedBy(func(n domain.AdminNotification) bool {
		return n.Role != nil && *n.Role == role && n.Title == "Allowance claimed" && n.NotificationID != ""
	})).Return(nil).Once()

	suite.service.NotifyAdmins(ctx, &role, domain.NotifyAllowance, "Allowance claimed", "msg", "/allowances/a1")

	ev, ok := drain(docEvents)
	suite.Require().True(ok)
	suite.Require().NotNil(ev.Admin)
	suite.Equal("Allowance claimed", ev.Admin.Title)

	_, ok = drain(gatherEvents)
	suite.False(ok)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestNotifyAdmins_NilRoleReachesEveryAdmin() {
	ctx := context.Background()

	gatherEvents, cancel := suite.bus.Subscribe(broker.Filter{Role: domain.RoleManageGatherings})
	defer cancel()

	suite.mockRepo.On("SaveAdminNotification", ctx, mock.Anything).Return(nil).Once()

	suite.service.NotifyAdmins(ctx, nil, domain.NotifyAnnouncement, "Announcement posted", "msg", "")

	ev, ok := drain(gatherEvents)
	suite.Require().True(ok)
	suite.Require().NotNil(ev.Admin)
	suite.Nil(ev.Admin.Role)
}

// --- Pull side ---

func (suite *NotificationServiceTestSuite) TestListNotifications_Scholar() {
	ctx := context.Background()
	scholarID := uuid.NewString()
	actor := domain.ActorRef{ActorID: scholarID, Role: domain.RoleStudent}
	rows := []domain.ScholarNotification{
		{NotificationID: uuid.NewString(), ReceiverID: scholarID, Type: domain.NotifyAllowance, Title: "a", Read: true},
		{NotificationID: uuid.NewString(), ReceiverID: scholarID, Type: domain.NotifyDocument, Title: "b"},
	}

	suite.mockRepo.On("ListScholarNotifications", ctx, scholarID, false, 20, (*string)(nil)).Return(rows, nil, nil).Once()

	resp, err := suite.service.ListNotifications(ctx, actor, false, dto.ListParams{Limit: 20})

	suite.Require().NoError(err)
	suite.Len(resp.Notifications, 2)
	suite.True(resp.Notifications[0].Read)
	suite.False(resp.Notifications[1].Read)
}

func (suite *NotificationServiceTestSuite) TestListNotifications_AdminUnreadOnlyFiltersReadSet() {
	ctx := context.Background()
	readerID := uuid.NewString()
	actor := domain.ActorRef{ActorID: readerID, Role: domain.RoleManageDocuments}
	rows := []domain.AdminNotification{
		{NotificationID: "n-read", Type: domain.NotifyAllowance, ReaderIDs: []string{readerID}},
		{NotificationID: "n-unread", Type: domain.NotifyAllowance, ReaderIDs: []string{uuid.NewString()}},
	}

	suite.mockRepo.On("ListAdminNotifications", ctx, domain.RoleManageDocuments, 20, (*string)(nil)).Return(rows, nil, nil).Once()

	resp, err := suite.service.ListNotifications(ctx, actor, true, dto.ListParams{Limit: 20})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Notifications, 1)
	suite.Equal("n-unread", resp.Notifications[0].NotificationID)
	suite.False(resp.Notifications[0].Read)
}

func (suite *NotificationServiceTestSuite) TestUnreadCount_Branches() {
	ctx := context.Background()
	scholarID := uuid.NewString()
	adminID := uuid.NewString()

	suite.mockRepo.On("CountUnreadScholar", ctx, scholarID).Return(3, nil).Once()
	suite.mockRepo.On("CountUnreadAdmin", ctx, domain.RoleViewer, adminID).Return(7, nil).Once()

	count, err := suite.service.UnreadCount(ctx, domain.ActorRef{ActorID: scholarID, Role: domain.RoleStudent})
	suite.Require().NoError(err)
	suite.Equal(3, count)

	count, err = suite.service.UnreadCount(ctx, domain.ActorRef{ActorID: adminID, Role: domain.RoleViewer})
	suite.Require().NoError(err)
	suite.Equal(7, count)

	_, err = suite.service.UnreadCount(ctx, domain.ActorRef{ActorID: uuid.NewString(), Role: ""})
	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

// --- Ack ---

func (suite *NotificationServiceTestSuite) TestMarkRead_Branches() {
	ctx := context.Background()
	notificationID := uuid.NewString()
	scholarID := uuid.NewString()
	adminID := uuid.NewString()
	broadcast := &domain.AdminNotification{NotificationID: notificationID, Type: domain.NotifyAllowance}

	suite.mockRepo.On("MarkScholarNotificationRead", ctx, notificationID, scholarID).Return(nil).Once()
	suite.mockRepo.On("FindAdminNotificationByID", ctx, notificationID).Return(broadcast, nil).Once()
	suite.mockRepo.On("MarkAdminNotificationRead", ctx, notificationID, adminID).Return(nil).Once()

	err := suite.service.MarkRead(ctx, domain.ActorRef{ActorID: scholarID, Role: domain.RoleStudent}, notificationID)
	suite.Require().NoError(err)

	err = suite.service.MarkRead(ctx, domain.ActorRef{ActorID: adminID, Role: domain.RoleSuperAdmin}, notificationID)
	suite.Require().NoError(err)

	err = suite.service.MarkRead(ctx, domain.ActorRef{ActorID: uuid.NewString(), Role: ""}, notificationID)
	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestMarkRead_AdminInvisibleBroadcastForbidden() {
	ctx := context.Background()
	notificationID := uuid.NewString()
	docs := domain.RoleManageDocuments
	broadcast := &domain.AdminNotification{NotificationID: notificationID, Role: &docs, Type: domain.NotifyAllowance}

	suite.mockRepo.On("FindAdminNotificationByID", ctx, notificationID).Return(broadcast, nil).Once()

	err := suite.service.MarkRead(ctx, domain.ActorRef{ActorID: uuid.NewString(), Role: domain.RoleManageGatherings}, notificationID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkAdminNotificationRead", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestMarkRead_AdminUnknownBroadcast() {
	ctx := context.Background()
	notificationID := uuid.NewString()

	suite.mockRepo.On("FindAdminNotificationByID", ctx, notificationID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.MarkRead(ctx, domain.ActorRef{ActorID: uuid.NewString(), Role: domain.RoleViewer}, notificationID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

// --- Live stream ---

func (suite *NotificationServiceTestSuite) TestSubscribe_ScholarSeesOwnEventsOnly() {
	ctx := context.Background()
	scholarID := uuid.NewString()

	events, cancel := suite.service.Subscribe(domain.ActorRef{ActorID: scholarID, Role: domain.RoleStudent})
	defer cancel()

	suite.mockRepo.On("SaveScholarNotifications", ctx, mock.Anything).Return(nil).Twice()

	suite.service.NotifyScholar(ctx, uuid.NewString(), domain.NotifyDocument, "other", "m", "")
	suite.service.NotifyScholar(ctx, scholarID, domain.NotifyDocument, "mine", "m", "")

	ev, ok := drain(events)
	suite.Require().True(ok)
	suite.Equal("mine", ev.Scholar.Title)
}

func (suite *NotificationServiceTestSuite) TestSubscribe_SuperAdminSeesAllBroadcasts() {
	ctx := context.Background()
	role := domain.RoleManageGatherings

	events, cancel := suite.service.Subscribe(domain.ActorRef{ActorID: uuid.NewString(), Role: domain.RoleSuperAdmin})
	defer cancel()

	suite.mockRepo.On("SaveAdminNotification", ctx, mock.Anything).Return(nil).Once()

	suite.service.NotifyAdmins(ctx, &role, domain.NotifyGathering, "Gathering scheduled", "m", "")

	ev, ok := drain(events)
	suite.Require().True(ok)
	suite.Require().NotNil(ev.Admin)
	suite.Equal(domain.NotifyGathering, ev.Admin.Type)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
