package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
	"github.com/vidtube/vidtube_backend/internal/utils"
)

// tokenService implements the TokenSvcFacade. Both tokens are HS256 JWTs; the
// refresh token is additionally pinned to the user record by storing its
// SHA-256 hash there, so a single active session exists per user and rotation
// or logout revokes older tokens.
//
// Concurrent refreshes race at the database: whichever write lands last wins,
// and the loser's token fails the stored-hash comparison on its next use.
type tokenService struct {
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:         cfg,
		userService: userService,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.AccessTokenExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.AccessTokenSecret, s.cfg.AccessTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new JWT refresh token for the given user,
// signed with the refresh secret and a longer expiry than the access token.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)

	refreshToken, err := utils.GenerateJWT(user.UserID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return refreshToken, expiryTime, nil
}

// IssueTokenPair loads the user, generates both tokens and persists the hash
// of the refresh token onto the user record via a targeted single-column
// write. Any failure surfaces as an internal error.
func (s *tokenService) IssueTokenPair(ctx context.Context, userID string) (*dto.TokenPairResponse, error) {
	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while generating tokens")
	}

	accessToken, _, err := s.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while generating tokens")
	}

	refreshToken, _, err := s.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while generating tokens")
	}

	err = s.userService.StoreRefreshTokenHash(ctx, userID, utils.HashRefreshToken(refreshToken))
	if err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while generating tokens")
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// VerifyRefreshToken validates a refresh token string and returns the
// associated user.
func (s *tokenService) VerifyRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrUnauthorized
	}

	// 1. Verify signature and expiry.
	claims, err := utils.ParseAndValidateJWT(refreshToken, s.cfg.RefreshTokenSecret)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	// 2. Resolve the subject to an existing user.
	user, err := s.userService.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	// 3. Compare against the stored value. A mismatch means the token was
	// rotated out (reuse) or the session was ended.
	if user.RefreshTokenHash == "" || !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	return user, nil
}
