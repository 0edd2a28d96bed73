package services

import (
	"context"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
	"github.com/vidtube/vidtube_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetChannelProfile aggregates the channel view of the given username as
	// seen by viewerID (empty for anonymous).
	GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)

	// GetWatchHistory returns the user's resolved, ordered watch history.
	GetWatchHistory(ctx context.Context, userID string) ([]domain.WatchHistoryEntry, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// Register creates a new user; avatarPath is the required local path of
	// the uploaded avatar file, coverImagePath may be empty.
	Register(ctx context.Context, req dto.RegisterUserRequest, avatarPath, coverImagePath string) (*domain.User, error)

	// UpdateAccountDetails updates full name and email and returns the
	// updated user.
	UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error)

	// UpdateAvatar uploads the file at localPath and sets it as the user's
	// avatar, returning the updated user.
	UpdateAvatar(ctx context.Context, userID, localPath string) (*domain.User, error)

	// UpdateCoverImage uploads the file at localPath and sets it as the
	// user's cover image, returning the updated user.
	UpdateCoverImage(ctx context.Context, userID, localPath string) (*domain.User, error)

	// ChangePassword verifies oldPassword and stores the hash of newPassword.
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error

	// ClearRefreshToken revokes the user's stored refresh token (logout).
	ClearRefreshToken(ctx context.Context, userID string) error

	// StoreRefreshTokenHash records the hash of the most recently issued
	// refresh token, overwriting any previous one (rotation).
	StoreRefreshTokenHash(ctx context.Context, userID, refreshTokenHash string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates by username or email plus password.
	AuthenticateUser(ctx context.Context, username, email, password string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves a verified Google identity to a local
	// user, creating one on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, email, fullName, avatarURL string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
