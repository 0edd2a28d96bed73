package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/utils"
)

// Upload folders for profile media.
const (
	avatarFolder     = "avatars"
	coverImageFolder = "covers"
)

type userService struct {
	userRepo  portsrepo.UserRepository
	subRepo   portsrepo.SubscriptionRepository
	videoRepo portsrepo.VideoRepository
	uploader  portssvc.FileUploader
}

// NewUserService creates the user service backing session and profile handlers.
func NewUserService(
	userRepo portsrepo.UserRepository,
	subRepo portsrepo.SubscriptionRepository,
	videoRepo portsrepo.VideoRepository,
	uploader portssvc.FileUploader,
) portssvc.UserSvcFacade {
	return &userService{
		userRepo:  userRepo,
		subRepo:   subRepo,
		videoRepo: videoRepo,
		uploader:  uploader,
	}
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

// Register creates a new user after uniqueness checks and media uploads.
// Field presence is validated again after trimming, independently of request
// binding, so no side effect happens on blank input.
func (s *userService) Register(ctx context.Context, req dto.RegisterUserRequest, avatarPath, coverImagePath string) (*domain.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)
	password := req.Password

	if fullName == "" || email == "" || username == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.NewBadRequestError("All fields are required")
	}
	if avatarPath == "" {
		return nil, apperrors.NewBadRequestError("Avatar file is required")
	}

	_, err := s.userRepo.FindUserByUsernameOrEmail(ctx, username, email)
	if err == nil {
		return nil, apperrors.NewConflictError("User with email or username already exists")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	avatarURL, err := s.uploader.Upload(ctx, avatarPath, avatarFolder)
	if err != nil || avatarURL == "" {
		return nil, apperrors.NewBadRequestError("Avatar file is required")
	}

	// The cover image is optional; a failed upload leaves it empty.
	coverImageURL := ""
	if coverImagePath != "" {
		if url, err := s.uploader.Upload(ctx, coverImagePath, coverImageFolder); err == nil {
			coverImageURL = url
		}
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Username:      strings.ToLower(username),
		Email:         email,
		FullName:      fullName,
		PasswordHash:  passwordHash,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("User with email or username already exists")
		}
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	// Re-read after creation as a consistency check.
	created, err := s.userRepo.FindUserByID(ctx, user.UserID)
	if err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while registering the user")
	}

	return created, nil
}

// AuthenticateUser authenticates by username or email plus password.
func (s *userService) AuthenticateUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" && strings.TrimSpace(email) == "" {
		return nil, apperrors.NewBadRequestError("username or email is required")
	}

	user, err := s.userRepo.FindUserByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User does not exist")
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Invalid user credentials")
	}

	return user, nil
}

// FindOrCreateGoogleUser resolves a verified Google identity to a local user,
// creating one on first sign-in with a random throwaway password.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, email, fullName, avatarURL string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsernameOrEmail(ctx, "", email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	// Derive a username from the email local part; a random suffix avoids
	// collisions with existing accounts.
	localPart := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	suffix, err := utils.GenerateSecureRandomString(3)
	if err != nil {
		return nil, fmt.Errorf("failed to generate username suffix: %w", err)
	}
	randomPassword, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	passwordHash, err := utils.HashPassword(randomPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUser := domain.User{
		UserID:       uuid.NewString(),
		Username:     localPart + "_" + suffix,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		AvatarURL:    avatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}

	created, err := s.userRepo.FindUserByID(ctx, newUser.UserID)
	if err != nil {
		return nil, apperrors.NewInternalServerError("Something went wrong while registering the user")
	}
	return created, nil
}

// ChangePassword verifies the old password before storing the new hash via a
// targeted single-column write.
func (s *userService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for password change: %w", err)
	}

	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperrors.NewBadRequestError("Invalid old password")
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	return s.userRepo.UpdatePasswordHash(ctx, userID, newHash)
}

func (s *userService) UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	if fullName == "" || email == "" {
		return nil, apperrors.NewBadRequestError("All fields are required")
	}

	if err := s.userRepo.UpdateAccountDetails(ctx, userID, fullName, email); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Email already in use")
		}
		return nil, fmt.Errorf("failed to update account details: %w", err)
	}

	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) UpdateAvatar(ctx context.Context, userID, localPath string) (*domain.User, error) {
	url, err := s.uploader.Upload(ctx, localPath, avatarFolder)
	if err != nil || url == "" {
		return nil, apperrors.NewBadRequestError("Error while uploading avatar")
	}

	if err := s.userRepo.UpdateAvatarURL(ctx, userID, url); err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) UpdateCoverImage(ctx context.Context, userID, localPath string) (*domain.User, error) {
	url, err := s.uploader.Upload(ctx, localPath, coverImageFolder)
	if err != nil || url == "" {
		return nil, apperrors.NewBadRequestError("Error while uploading cover image")
	}

	if err := s.userRepo.UpdateCoverImageURL(ctx, userID, url); err != nil {
		return nil, fmt.Errorf("failed to update cover image: %w", err)
	}

	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

func (s *userService) StoreRefreshTokenHash(ctx context.Context, userID, refreshTokenHash string) error {
	if err := s.userRepo.UpdateRefreshTokenHash(ctx, userID, refreshTokenHash); err != nil {
		return fmt.Errorf("failed to store refresh token hash: %w", err)
	}
	return nil
}

func (s *userService) GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewBadRequestError("username is missing")
	}

	profile, err := s.subRepo.GetChannelProfile(ctx, username, viewerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Channel does not exist")
		}
		return nil, fmt.Errorf("failed to get channel profile: %w", err)
	}
	return profile, nil
}

func (s *userService) GetWatchHistory(ctx context.Context, userID string) ([]domain.WatchHistoryEntry, error) {
	entries, err := s.videoRepo.FindWatchHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}
	return entries, nil
}
