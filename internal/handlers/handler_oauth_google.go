package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/middleware"
	"github.com/vidtube/vidtube_backend/internal/platform/config"

	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles the Google sign-in exchange.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	cfg                *config.Config
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	cfg *config.Config,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
		cfg:                cfg,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuth, services.User, services.Token, cfg)
	googleRoutes := rg.Group("/auth/google")
	{
		googleRoutes.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}

// ExchangeCodeGoogle godoc
// @Summary Sign in with a Google authorization code
// @Description Exchanges the code for Google tokens, validates the ID token, finds or creates the local user and issues an access/refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Failure 500 {object} dto.APIErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	// 1. Exchange authorization code for Google tokens.
	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") || strings.Contains(strings.ToLower(err.Error()), "bad request") {
			respondError(c, apperrors.NewBadRequestError("Invalid or expired authorization code"))
			return
		}
		respondError(c, apperrors.NewInternalServerError("Failed to communicate with Google"))
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		respondError(c, apperrors.NewInternalServerError("Failed to retrieve ID token from Google"))
		return
	}

	// 2. Validate Google's ID token.
	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Error("Google ID token validation failed", slog.String("error", err.Error()))
		respondError(c, apperrors.NewUnauthorizedError("Invalid Google ID token"))
		return
	}

	// 3. Extract the identity claims; email and sub must be present.
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	if email == "" || payload.Subject == "" {
		logger.Error("Essential claims missing from Google ID token payload")
		respondError(c, apperrors.NewInternalServerError("Essential user information missing from Google token"))
		return
	}

	// 4. Find or create the local account.
	user, err := h.userService.FindOrCreateGoogleUser(ctx, email, name, picture)
	if err != nil {
		respondError(c, err)
		return
	}

	// 5. Issue the application's own token pair.
	pair, err := h.tokenService.IssueTokenPair(ctx, user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	setTokenCookies(c, h.cfg, pair)
	logger.Info("User signed in via Google", slog.String("user_id", user.UserID))

	respondSuccess(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
}
