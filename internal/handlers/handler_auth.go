package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/services"
	"github.com/JuanPescoran/bond-valuation-app/internal/dto"
	"github.com/JuanPescoran/bond-valuation-app/internal/middleware"
	"github.com/JuanPescoran/bond-valuation-app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService  portssvc.AuthSvc
	cookieName   string
	secureCookie bool
}

func newAuthHandler(as portssvc.AuthSvc, cfg *config.Config) *authHandler {
	return &authHandler{
		authService:  as,
		cookieName:   cfg.SessionCookieName,
		secureCookie: cfg.IsProduction,
	}
}

// registerAuthRoutes sets up the routes for authentication.
// Credential endpoints share limit, keyed on the client IP.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, authService portssvc.AuthSvc, limit gin.HandlerFunc) {
	h := newAuthHandler(authService, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/sign-in", limit, h.signIn)
		auth.POST("/sign-up", limit, h.signUp)
		auth.POST("/sign-out", h.signOut)
		auth.GET("/me", middleware.AuthMiddleware(authService, cfg.SessionCookieName), h.me)
	}
}

func (h *authHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, maxAge, "/", "", h.secureCookie, true)
}

// signIn godoc
// @Summary Sign in
// @Description Authenticates against the valuation backend and starts a session. The session token is set as a cookie and returned in the body.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.SignInRequest true "Credentials"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Bad credentials"
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /auth/sign-in [post]
func (h *authHandler) signIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "sign in")
		return
	}

	h.setSessionCookie(c, session.Token, session.ExpiresAt)
	logger.Info("Session started", slog.Int64("user_id", session.ID))
	c.JSON(http.StatusOK, dto.ToSessionResponse(session, true))
}

// signUp godoc
// @Summary Register new user
// @Description Creates a new account on the valuation backend with the default role. It does not start a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body dto.SignUpRequest true "Registration form"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Username taken"
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /auth/sign-up [post]
func (h *authHandler) signUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "sign up")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(*user))
}

// signOut godoc
// @Summary Sign out
// @Description Forgets the current session and clears the session cookie. Succeeds without a session.
// @Tags auth
// @Success 204 "No Content"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/sign-out [post]
func (h *authHandler) signOut(c *gin.Context) {
	token := middleware.TokenFromRequest(c, h.cookieName)
	if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
		respondError(c, err, "sign out")
		return
	}
	h.setSessionCookie(c, "", time.Time{})
	c.Status(http.StatusNoContent)
}

// me godoc
// @Summary Current session
// @Description Returns the user bound to the current session.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(session, false))
}
