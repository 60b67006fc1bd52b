package services_test

import (
	"testing"

	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type AuthorizerServiceTestSuite struct {
	suite.Suite
	service portssvc.AuthorizerSvc
}

func (suite *AuthorizerServiceTestSuite) SetupTest() {
	suite.service = services.NewAuthorizerService()
}

var allKinds = []domain.EntityKind{
	domain.KindScholar,
	domain.KindAllowance,
	domain.KindMeeting,
	domain.KindGathering,
	domain.KindAnnouncement,
	domain.KindDocument,
}

func (suite *AuthorizerServiceTestSuite) TestAuthorize_SuperAdminWritesEverything() {
	for _, kind := range allKinds {
		for _, action := range []domain.AuditAction{domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete} {
			suite.NoError(suite.service.Authorize(domain.RoleSuperAdmin, action, kind), "kind %s action %s", kind, action)
		}
	}
}

func (suite *AuthorizerServiceTestSuite) TestAuthorize_DocumentsAdminScope() {
	granted := map[domain.EntityKind]bool{
		domain.KindDocument:  true,
		domain.KindAllowance: true,
		domain.KindScholar:   true,
	}
	for _, kind := range allKinds {
		err := suite.service.Authorize(domain.RoleManageDocuments, domain.ActionCreate, kind)
		if granted[kind] {
			suite.NoError(err, "kind %s", kind)
		} else {
			suite.ErrorIs(err, apperrors.ErrForbidden, "kind %s", kind)
		}
	}
}

func (suite *AuthorizerServiceTestSuite) TestAuthorize_GatheringsAdminScope() {
	granted := map[domain.EntityKind]bool{
		domain.KindMeeting:      true,
		domain.KindGathering:    true,
		domain.KindAnnouncement: true,
	}
	for _, kind := range allKinds {
		err := suite.service.Authorize(domain.RoleManageGatherings, domain.ActionUpdate, kind)
		if granted[kind] {
			suite.NoError(err, "kind %s", kind)
		} else {
			suite.ErrorIs(err, apperrors.ErrForbidden, "kind %s", kind)
		}
	}
}

func (suite *AuthorizerServiceTestSuite) TestAuthorize_ViewerAndStudentNeverWrite() {
	for _, role := range []domain.Role{domain.RoleViewer, domain.RoleStudent} {
		for _, kind := range allKinds {
			err := suite.service.Authorize(role, domain.ActionCreate, kind)
			suite.ErrorIs(err, apperrors.ErrForbidden, "role %s kind %s", role, kind)
		}
	}
}

func (suite *AuthorizerServiceTestSuite) TestCanRead_AdminsReadEverything() {
	for _, role := range []domain.Role{domain.RoleSuperAdmin, domain.RoleManageDocuments, domain.RoleManageGatherings, domain.RoleViewer} {
		for _, kind := range allKinds {
			suite.True(suite.service.CanRead(role, kind), "role %s kind %s", role, kind)
		}
	}
}

func (suite *AuthorizerServiceTestSuite) TestCanRead_StudentCannotReadDirectory() {
	suite.False(suite.service.CanRead(domain.RoleStudent, domain.KindScholar))

	for _, kind := range []domain.EntityKind{domain.KindAllowance, domain.KindDocument, domain.KindAnnouncement, domain.KindGathering, domain.KindMeeting} {
		suite.True(suite.service.CanRead(domain.RoleStudent, kind), "kind %s", kind)
	}
}

func (suite *AuthorizerServiceTestSuite) TestCanRead_UnknownRoleDenied() {
	suite.False(suite.service.CanRead(domain.Role(""), domain.KindAnnouncement))
}

func TestAuthorizerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthorizerServiceTestSuite))
}
