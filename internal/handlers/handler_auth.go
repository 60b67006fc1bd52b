package handlers

import (
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
	"github.com/scholarbase/scholarship_portal_api/internal/middleware"
	"github.com/scholarbase/scholarship_portal_api/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// newRateLimiter builds a per-IP limiter middleware from a formatted rate,
// falling back when the configured value is unparseable.
func newRateLimiter(rateFormat, fallback string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(rateFormat)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted(fallback)
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate))
}

// registerAuthRoutes sets up the public credential routes. The login
// endpoint carries its own tighter per-IP rate limit.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", newRateLimiter(cfg.AuthRateLimit, "5-M"), h.login)
	}
}

// login godoc
// @Summary Portal login
// @Description Authenticates an actor by email and password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		// Unknown email and bad password look identical to the client.
		respondError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, resp)
}
