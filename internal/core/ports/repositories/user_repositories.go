package repositories

import (
	"context"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their (lower-cased) username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByUsernameOrEmail retrieves the first user matching either
	// identifier. Returns apperrors.ErrNotFound when no user matches.
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data. The single-field update
// methods deliberately touch only their own column, mirroring the targeted
// writes used for refresh-token rotation and password changes.
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// username or email is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateAccountDetails updates full name and email.
	UpdateAccountDetails(ctx context.Context, userID, fullName, email string) error

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error

	// UpdateAvatarURL replaces the avatar URL.
	UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error

	// UpdateCoverImageURL replaces the cover image URL.
	UpdateCoverImageURL(ctx context.Context, userID, coverImageURL string) error

	// UpdateRefreshTokenHash stores the hash of the most recently issued
	// refresh token, overwriting any previous one.
	UpdateRefreshTokenHash(ctx context.Context, userID, refreshTokenHash string) error

	// ClearRefreshToken removes the stored refresh token hash (logout).
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepository combines all user-related repository interfaces.
type UserRepository interface {
	UserReader
	UserWriter
}
