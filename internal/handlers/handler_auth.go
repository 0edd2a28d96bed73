package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/middleware"
	"github.com/vidtube/vidtube_backend/internal/platform/config"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and session lifecycle requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up registration and session routes. Register and
// login are rate limited per client IP.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.Token, cfg)

	// 5 requests per minute per IP on the credential endpoints
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	users := rg.Group("/users")
	{
		users.POST("/register", limitMiddleware, h.Register)
		users.POST("/login", limitMiddleware, h.Login)
		users.POST("/refresh-token", h.RefreshToken)
		users.POST("/logout", middleware.AuthMiddleware(cfg.AccessTokenSecret), h.Logout)
	}
}

// setTokenCookies stores both tokens as httpOnly cookies scoped to the site.
func setTokenCookies(c *gin.Context, cfg *config.Config, pair *dto.TokenPairResponse) {
	secure := cfg.IsProduction
	c.SetCookie(middleware.AccessTokenCookieName, pair.AccessToken, int(cfg.AccessTokenExpiryDuration.Seconds()), "/", "", secure, true)
	c.SetCookie(middleware.RefreshTokenCookieName, pair.RefreshToken, int(cfg.RefreshTokenExpiryDuration.Seconds()), "/", "", secure, true)
}

// clearTokenCookies expires both auth cookies.
func clearTokenCookies(c *gin.Context, cfg *config.Config) {
	secure := cfg.IsProduction
	c.SetCookie(middleware.AccessTokenCookieName, "", -1, "/", "", secure, true)
	c.SetCookie(middleware.RefreshTokenCookieName, "", -1, "/", "", secure, true)
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account from a multipart form with a required avatar image and optional cover image.
// @Tags users
// @Accept mpfd
// @Produce json
// @Param fullName formData string true "Full name"
// @Param email formData string true "Email"
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 409 {object} dto.APIErrorResponse
// @Failure 500 {object} dto.APIErrorResponse
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterUserRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind registration form", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	avatarPath := ""
	if file, err := c.FormFile("avatar"); err == nil {
		path, err := saveFormFile(c, file)
		if err != nil {
			logger.Error("Failed to stage avatar upload", slog.String("error", err.Error()))
			respondError(c, err)
			return
		}
		avatarPath = path
	}
	defer removeIfPresent(avatarPath)

	coverImagePath := ""
	if file, err := c.FormFile("coverImage"); err == nil {
		if path, err := saveFormFile(c, file); err == nil {
			coverImagePath = path
		}
	}
	defer removeIfPresent(coverImagePath)

	user, err := h.userService.Register(c.Request.Context(), req, avatarPath, coverImagePath)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	respondSuccess(c, http.StatusCreated, dto.ToUserResponse(user), "User registered successfully")
}

// Login godoc
// @Summary User login
// @Description Authenticates by username or email plus password and issues an access/refresh token pair, also set as cookies.
// @Tags users
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Failure 404 {object} dto.APIErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	pair, err := h.tokenService.IssueTokenPair(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	setTokenCookies(c, h.cfg, pair)
	logger.Info("User logged in", slog.String("user_id", user.UserID))

	respondSuccess(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
}

// Logout godoc
// @Summary User logout
// @Description Revokes the stored refresh token and clears the auth cookies.
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized request"))
		return
	}

	if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	clearTokenCookies(c, h.cfg)
	logger.Info("User logged out", slog.String("user_id", userID))
	respondSuccess(c, http.StatusOK, gin.H{}, "User logged out")
}

// RefreshToken godoc
// @Summary Rotate the token pair
// @Description Verifies the refresh token from the cookie or body and issues a fresh pair, invalidating the previous refresh token.
// @Tags users
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest false "Refresh token (optional, cookie is used when present)"
// @Success 200 {object} dto.APIResponse{data=dto.TokenPairResponse}
// @Failure 401 {object} dto.APIErrorResponse
// @Router /users/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	refreshToken, err := c.Cookie(middleware.RefreshTokenCookieName)
	if err != nil || refreshToken == "" {
		var req dto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	user, err := h.tokenService.VerifyRefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	pair, err := h.tokenService.IssueTokenPair(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	setTokenCookies(c, h.cfg, pair)
	logger.Info("Token pair rotated", slog.String("user_id", user.UserID))
	respondSuccess(c, http.StatusOK, pair, "Access token refreshed")
}
