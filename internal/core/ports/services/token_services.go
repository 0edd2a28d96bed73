package services

import (
	"context"
	"time"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
	"github.com/vidtube/vidtube_backend/internal/dto"
)

// TokenSvcFacade issues and verifies the access/refresh token pair.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a short-lived signed token for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a longer-lived signed token for the user.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// IssueTokenPair loads the user, generates both tokens and persists the
	// refresh token hash onto the user record. Fails with an internal error
	// if the user cannot be loaded or saved.
	IssueTokenPair(ctx context.Context, userID string) (*dto.TokenPairResponse, error)

	// VerifyRefreshToken checks signature and expiry, resolves the subject to
	// an existing user and compares the token against the stored value.
	// Returns apperrors.ErrUnauthorized for an absent token and
	// apperrors.ErrInvalidRefreshToken for any verification failure.
	VerifyRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error)
}
