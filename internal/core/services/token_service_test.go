package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/core/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
	"github.com/vidtube/vidtube_backend/internal/utils"

	"github.com/google/uuid"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChannelProfile), args.Error(1)
}

func (m *MockUserService) GetWatchHistory(ctx context.Context, userID string) ([]domain.WatchHistoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WatchHistoryEntry), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterUserRequest, avatarPath, coverImagePath string) (*domain.User, error) {
	args := m.Called(ctx, req, avatarPath, coverImagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, userID, localPath string) (*domain.User, error) {
	args := m.Called(ctx, userID, localPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateCoverImage(ctx context.Context, userID, localPath string) (*domain.User, error) {
	args := m.Called(ctx, userID, localPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) StoreRefreshTokenHash(ctx context.Context, userID, refreshTokenHash string) error {
	args := m.Called(ctx, userID, refreshTokenHash)
	return args.Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, email, fullName, avatarURL string) (*domain.User, error) {
	args := m.Called(ctx, email, fullName, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Test Suite ---
type TokenServiceTestSuite struct {
	suite.Suite
	cfg             *config.Config
	mockUserService *MockUserService
	service         portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		AccessTokenSecret:          "test-access-secret-that-is-long-enough",
		AccessTokenExpiryDuration:  time.Hour,
		RefreshTokenSecret:         "test-refresh-secret-that-is-long-enough",
		RefreshTokenExpiryDuration: 240 * time.Hour,
		JWTIssuer:                  "vidtube-test",
	}
	suite.mockUserService = new(MockUserService)
	suite.service = services.NewTokenService(suite.cfg, suite.mockUserService)
}

func (suite *TokenServiceTestSuite) TestIssueTokenPair_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID}

	var storedHash string
	suite.mockUserService.On("GetUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockUserService.On("StoreRefreshTokenHash", ctx, userID, mock.AnythingOfType("string")).
		Return(nil).Once().Run(func(args mock.Arguments) {
		storedHash = args.String(2)
	})

	pair, err := suite.service.IssueTokenPair(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(pair)
	suite.NotEmpty(pair.AccessToken)
	suite.NotEmpty(pair.RefreshToken)
	suite.NotEqual(pair.AccessToken, pair.RefreshToken)

	// The persisted value is the SHA-256 hash of the issued refresh token.
	suite.Equal(utils.HashRefreshToken(pair.RefreshToken), storedHash)

	// Access token verifies against the access secret only.
	claims, err := utils.ParseAndValidateJWT(pair.AccessToken, suite.cfg.AccessTokenSecret)
	suite.Require().NoError(err)
	suite.Equal(userID, claims.Subject)
	_, err = utils.ParseAndValidateJWT(pair.AccessToken, suite.cfg.RefreshTokenSecret)
	suite.Error(err)

	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestIssueTokenPair_StoreFails() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID}

	suite.mockUserService.On("GetUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockUserService.On("StoreRefreshTokenHash", ctx, userID, mock.AnythingOfType("string")).
		Return(apperrors.NewInternalServerError("db down")).Once()

	pair, err := suite.service.IssueTokenPair(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(pair)
	suite.Equal(500, apperrors.StatusCode(err))
}

func (suite *TokenServiceTestSuite) TestVerifyRefreshToken_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID}

	suite.mockUserService.On("GetUserByID", ctx, userID).Return(user, nil)
	suite.mockUserService.On("StoreRefreshTokenHash", ctx, userID, mock.AnythingOfType("string")).
		Return(nil).Once().Run(func(args mock.Arguments) {
		user.RefreshTokenHash = args.String(2)
	})

	pair, err := suite.service.IssueTokenPair(ctx, userID)
	suite.Require().NoError(err)

	got, err := suite.service.VerifyRefreshToken(ctx, pair.RefreshToken)

	suite.Require().NoError(err)
	suite.Equal(userID, got.UserID)
}

func (suite *TokenServiceTestSuite) TestVerifyRefreshToken_Empty() {
	ctx := context.Background()

	got, err := suite.service.VerifyRefreshToken(ctx, "")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestVerifyRefreshToken_WrongSecret() {
	ctx := context.Background()
	userID := uuid.NewString()

	// Token signed with the access secret must not verify as a refresh token.
	forged, err := utils.GenerateJWT(userID, suite.cfg.AccessTokenSecret, time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	got, err := suite.service.VerifyRefreshToken(ctx, forged)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
}

func (suite *TokenServiceTestSuite) TestVerifyRefreshToken_RotatedOut() {
	ctx := context.Background()
	userID := uuid.NewString()

	oldToken, err := utils.GenerateJWT(userID, suite.cfg.RefreshTokenSecret, time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	newToken, err := utils.GenerateJWT(userID+"x", suite.cfg.RefreshTokenSecret, 2*time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	// The stored hash belongs to a newer token; the old one must be rejected.
	user := &domain.User{UserID: userID, RefreshTokenHash: utils.HashRefreshToken(newToken)}
	suite.mockUserService.On("GetUserByID", ctx, userID).Return(user, nil).Once()

	got, err := suite.service.VerifyRefreshToken(ctx, oldToken)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
}

func (suite *TokenServiceTestSuite) TestVerifyRefreshToken_SessionEnded() {
	ctx := context.Background()
	userID := uuid.NewString()

	token, err := utils.GenerateJWT(userID, suite.cfg.RefreshTokenSecret, time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	// Logout cleared the stored hash.
	user := &domain.User{UserID: userID, RefreshTokenHash: ""}
	suite.mockUserService.On("GetUserByID", ctx, userID).Return(user, nil).Once()

	got, err := suite.service.VerifyRefreshToken(ctx, token)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
}

func (suite *TokenServiceTestSuite) TestVerifyRefreshToken_UserGone() {
	ctx := context.Background()
	userID := uuid.NewString()

	token, err := utils.GenerateJWT(userID, suite.cfg.RefreshTokenSecret, time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	suite.mockUserService.On("GetUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.VerifyRefreshToken(ctx, token)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
}

// --- Run Suite ---
func TestTokenService(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
