package services

import (
	"context"
	"time"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

// TokenSvcFacade issues the signed bearer tokens that carry actor identity
// and role. How sessions live beyond that is outside the core.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, actor *domain.Actor) (string, time.Time, error)
}

// AuthSvcFacade verifies credentials and produces a login response.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
