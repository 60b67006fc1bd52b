package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portsrepo "github.com/scholarbase/scholarship_portal_api/internal/core/ports/repositories"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
	"github.com/scholarbase/scholarship_portal_api/internal/platform/config"
	"github.com/scholarbase/scholarship_portal_api/internal/utils"
)

// tokenService signs the bearer tokens that carry actor identity and role.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given actor.
func (s *tokenService) GenerateAccessToken(ctx context.Context, actor *domain.Actor) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(actor.ActorID, string(actor.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

type authService struct {
	BaseService
	actorRepo portsrepo.ActorRepositoryFacade
	tokenSvc  portssvc.TokenSvcFacade
}

// NewAuthService creates a new credential verification service.
func NewAuthService(actorRepo portsrepo.ActorRepositoryFacade, tokenSvc portssvc.TokenSvcFacade) portssvc.AuthSvcFacade {
	return &authService{
		actorRepo: actorRepo,
		tokenSvc:  tokenSvc,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password collapse into the same ErrUnauthorized so the response does
// not reveal which accounts exist.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	actor, err := s.actorRepo.FindActorByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up actor for login")
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, actor.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	token, expiresAt, err := s.tokenSvc.GenerateAccessToken(ctx, actor)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("actor_id", actor.ActorID))
		return nil, apperrors.NewAppError(500, "failed to generate token", apperrors.ErrInternal)
	}

	s.LogInfo(ctx, "Actor logged in", slog.String("actor_id", actor.ActorID), slog.String("role", string(actor.Role)))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Actor:     dto.ToScholarResponse(actor),
	}, nil
}
