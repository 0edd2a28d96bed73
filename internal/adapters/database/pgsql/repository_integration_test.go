package pgsql_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vidtube/vidtube_backend/internal/adapters/database/pgsql"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	"github.com/vidtube/vidtube_backend/pkg/database"
)

const migrationsDir = "../../../../migrations"

// RepositoryIntegrationTestSuite runs the pgsql repositories against a real
// Postgres started via testcontainers. Skipped with -short.
type RepositoryIntegrationTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	users     *pgsql.UserRepository
	subs      *pgsql.SubscriptionRepository
	videos    *pgsql.VideoRepository
}

func (suite *RepositoryIntegrationTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("skipping integration test")
	}

	suite.ctx = context.Background()

	container, err := postgres.Run(suite.ctx, "postgres:15-alpine",
		postgres.WithDatabase("vidtube_test"),
		postgres.WithUsername("vidtube"),
		postgres.WithPassword("vidtube"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err, "failed to start postgres container")
	suite.container = container

	connStr, err := container.ConnectionString(suite.ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.pool, err = database.NewPgxPool(suite.ctx, connStr)
	suite.Require().NoError(err)

	suite.applyMigrations()

	suite.users = pgsql.NewUserRepository(suite.pool)
	suite.subs = pgsql.NewSubscriptionRepository(suite.pool)
	suite.videos = pgsql.NewVideoRepository(suite.pool)
}

func (suite *RepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// applyMigrations executes the up migrations in filename order. os.ReadDir
// returns entries sorted, which matches the numeric migration prefixes.
func (suite *RepositoryIntegrationTestSuite) applyMigrations() {
	entries, err := os.ReadDir(migrationsDir)
	suite.Require().NoError(err, "failed to read migrations directory")

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(migrationsDir, entry.Name()))
		suite.Require().NoError(err)
		_, err = suite.pool.Exec(suite.ctx, string(content))
		suite.Require().NoError(err, "failed to apply migration %s", entry.Name())
	}
}

func (suite *RepositoryIntegrationTestSuite) createUser(prefix string) *domain.User {
	userID := uuid.NewString()
	now := time.Now().UTC()
	user := domain.User{
		UserID:       userID,
		Username:     prefix + "_" + userID[:8],
		Email:        prefix + "_" + userID[:8] + "@example.com",
		FullName:     "Test " + prefix,
		PasswordHash: "hashed-password",
		AvatarURL:    "https://cdn.example.com/avatars/" + userID + ".png",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	suite.Require().NoError(suite.users.SaveUser(suite.ctx, user))

	saved, err := suite.users.FindUserByID(suite.ctx, userID)
	suite.Require().NoError(err)
	return saved
}

func (suite *RepositoryIntegrationTestSuite) createVideo(ownerID, title string) *domain.Video {
	videoID := uuid.NewString()
	now := time.Now().UTC()
	video := domain.Video{
		VideoID:         videoID,
		OwnerID:         ownerID,
		VideoFileURL:    "https://cdn.example.com/videos/" + videoID + ".mp4",
		ThumbnailURL:    "https://cdn.example.com/thumbnails/" + videoID + ".png",
		Title:           title,
		Description:     "integration fixture",
		DurationSeconds: 42.5,
		IsPublished:     true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	suite.Require().NoError(suite.videos.SaveVideo(suite.ctx, video))

	saved, err := suite.videos.FindVideoByID(suite.ctx, videoID)
	suite.Require().NoError(err)
	return saved
}

func (suite *RepositoryIntegrationTestSuite) subscribe(subscriberID, channelID string) {
	sub := domain.Subscription{
		SubscriptionID: uuid.NewString(),
		SubscriberID:   subscriberID,
		ChannelID:      channelID,
		CreatedAt:      time.Now().UTC(),
	}
	suite.Require().NoError(suite.subs.SaveSubscription(suite.ctx, sub))
}

// --- User repository ---

func (suite *RepositoryIntegrationTestSuite) TestSaveAndFindUser() {
	user := suite.createUser("alice")

	byID, err := suite.users.FindUserByID(suite.ctx, user.UserID)
	suite.Require().NoError(err)
	suite.Equal(user.Username, byID.Username)
	suite.Equal(user.Email, byID.Email)
	suite.Empty(byID.CoverImageURL)
	suite.Empty(byID.RefreshTokenHash)

	// Username lookups are case-insensitive because storage is lower-cased.
	byUsername, err := suite.users.FindUserByUsername(suite.ctx, strings.ToUpper(user.Username))
	suite.Require().NoError(err)
	suite.Equal(user.UserID, byUsername.UserID)

	byEmail, err := suite.users.FindUserByUsernameOrEmail(suite.ctx, "", user.Email)
	suite.Require().NoError(err)
	suite.Equal(user.UserID, byEmail.UserID)
}

func (suite *RepositoryIntegrationTestSuite) TestSaveUser_DuplicateUsername() {
	user := suite.createUser("bob")

	dup := domain.User{
		UserID:       uuid.NewString(),
		Username:     user.Username,
		Email:        "other_" + user.Email,
		FullName:     "Other Bob",
		PasswordHash: "hashed-password",
		AvatarURL:    "https://cdn.example.com/avatars/dup.png",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	err := suite.users.SaveUser(suite.ctx, dup)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *RepositoryIntegrationTestSuite) TestFindUserByID_NotFound() {
	_, err := suite.users.FindUserByID(suite.ctx, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RepositoryIntegrationTestSuite) TestTargetedUserUpdates() {
	user := suite.createUser("carol")

	suite.Require().NoError(suite.users.UpdatePasswordHash(suite.ctx, user.UserID, "new-hash"))
	suite.Require().NoError(suite.users.UpdateAvatarURL(suite.ctx, user.UserID, "https://cdn.example.com/avatars/new.png"))
	suite.Require().NoError(suite.users.UpdateCoverImageURL(suite.ctx, user.UserID, "https://cdn.example.com/covers/new.png"))
	suite.Require().NoError(suite.users.UpdateAccountDetails(suite.ctx, user.UserID, "Carol Renamed", "renamed_"+user.Email))

	updated, err := suite.users.FindUserByID(suite.ctx, user.UserID)
	suite.Require().NoError(err)
	suite.Equal("new-hash", updated.PasswordHash)
	suite.Equal("https://cdn.example.com/avatars/new.png", updated.AvatarURL)
	suite.Equal("https://cdn.example.com/covers/new.png", updated.CoverImageURL)
	suite.Equal("Carol Renamed", updated.FullName)
	suite.Equal("renamed_"+user.Email, updated.Email)
	suite.True(updated.UpdatedAt.After(user.UpdatedAt))
}

func (suite *RepositoryIntegrationTestSuite) TestUpdateUnknownUser_NotFound() {
	err := suite.users.UpdatePasswordHash(suite.ctx, uuid.NewString(), "new-hash")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RepositoryIntegrationTestSuite) TestRefreshTokenHashLifecycle() {
	user := suite.createUser("dave")

	suite.Require().NoError(suite.users.UpdateRefreshTokenHash(suite.ctx, user.UserID, "token-hash"))
	withHash, err := suite.users.FindUserByID(suite.ctx, user.UserID)
	suite.Require().NoError(err)
	suite.Equal("token-hash", withHash.RefreshTokenHash)

	suite.Require().NoError(suite.users.ClearRefreshToken(suite.ctx, user.UserID))
	cleared, err := suite.users.FindUserByID(suite.ctx, user.UserID)
	suite.Require().NoError(err)
	suite.Empty(cleared.RefreshTokenHash)
}

// --- Subscription repository ---

func (suite *RepositoryIntegrationTestSuite) TestSubscriptionLifecycle() {
	subscriber := suite.createUser("sub")
	channel := suite.createUser("chan")

	suite.subscribe(subscriber.UserID, channel.UserID)

	subscribed, err := suite.subs.IsSubscribed(suite.ctx, subscriber.UserID, channel.UserID)
	suite.Require().NoError(err)
	suite.True(subscribed)

	count, err := suite.subs.CountSubscribers(suite.ctx, channel.UserID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	// A second row for the same pair violates the uniqueness constraint.
	err = suite.subs.SaveSubscription(suite.ctx, domain.Subscription{
		SubscriptionID: uuid.NewString(),
		SubscriberID:   subscriber.UserID,
		ChannelID:      channel.UserID,
		CreatedAt:      time.Now().UTC(),
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	suite.Require().NoError(suite.subs.DeleteSubscription(suite.ctx, subscriber.UserID, channel.UserID))

	subscribed, err = suite.subs.IsSubscribed(suite.ctx, subscriber.UserID, channel.UserID)
	suite.Require().NoError(err)
	suite.False(subscribed)
}

func (suite *RepositoryIntegrationTestSuite) TestGetChannelProfile_Aggregation() {
	channel := suite.createUser("channel")
	viewer := suite.createUser("viewer")
	other := suite.createUser("other")

	suite.subscribe(viewer.UserID, channel.UserID)
	suite.subscribe(other.UserID, channel.UserID)
	suite.subscribe(channel.UserID, viewer.UserID)

	profile, err := suite.subs.GetChannelProfile(suite.ctx, channel.Username, viewer.UserID)
	suite.Require().NoError(err)
	suite.Equal(channel.Username, profile.Username)
	suite.Equal(channel.FullName, profile.FullName)
	suite.Equal(int64(2), profile.SubscriberCount)
	suite.Equal(int64(1), profile.SubscribedTo)
	suite.True(profile.IsSubscribed)

	// The channel owner is not subscribed to their own channel.
	own, err := suite.subs.GetChannelProfile(suite.ctx, channel.Username, channel.UserID)
	suite.Require().NoError(err)
	suite.False(own.IsSubscribed)
}

func (suite *RepositoryIntegrationTestSuite) TestGetChannelProfile_AnonymousViewer() {
	channel := suite.createUser("anonchannel")
	subscriber := suite.createUser("anonsub")

	suite.subscribe(subscriber.UserID, channel.UserID)

	profile, err := suite.subs.GetChannelProfile(suite.ctx, strings.ToUpper(channel.Username), "")
	suite.Require().NoError(err)
	suite.Equal(int64(1), profile.SubscriberCount)
	suite.False(profile.IsSubscribed)
}

func (suite *RepositoryIntegrationTestSuite) TestGetChannelProfile_NotFound() {
	_, err := suite.subs.GetChannelProfile(suite.ctx, "no_such_channel", "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Video repository ---

func (suite *RepositoryIntegrationTestSuite) TestVideoLifecycle() {
	owner := suite.createUser("creator")
	video := suite.createVideo(owner.UserID, "First Upload")

	suite.Equal(owner.UserID, video.OwnerID)
	suite.Equal(int64(0), video.Views)
	suite.True(video.IsPublished)

	suite.Require().NoError(suite.videos.IncrementViews(suite.ctx, video.VideoID))
	suite.Require().NoError(suite.videos.IncrementViews(suite.ctx, video.VideoID))

	viewed, err := suite.videos.FindVideoByID(suite.ctx, video.VideoID)
	suite.Require().NoError(err)
	suite.Equal(int64(2), viewed.Views)
}

func (suite *RepositoryIntegrationTestSuite) TestIncrementViews_UnknownVideo() {
	err := suite.videos.IncrementViews(suite.ctx, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RepositoryIntegrationTestSuite) TestWatchHistory_OrderedWithOwner() {
	creator := suite.createUser("historyowner")
	watcher := suite.createUser("watcher")
	first := suite.createVideo(creator.UserID, "Watched First")
	second := suite.createVideo(creator.UserID, "Watched Second")

	suite.Require().NoError(suite.videos.AppendWatchHistory(suite.ctx, watcher.UserID, first.VideoID))
	suite.Require().NoError(suite.videos.AppendWatchHistory(suite.ctx, watcher.UserID, second.VideoID))

	entries, err := suite.videos.FindWatchHistory(suite.ctx, watcher.UserID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)

	suite.Equal(first.VideoID, entries[0].VideoID)
	suite.Equal(second.VideoID, entries[1].VideoID)

	suite.Require().NotNil(entries[0].Owner)
	suite.Equal(creator.Username, entries[0].Owner.Username)
	suite.Equal(creator.FullName, entries[0].Owner.FullName)
	suite.Equal(creator.AvatarURL, entries[0].Owner.AvatarURL)
}

func (suite *RepositoryIntegrationTestSuite) TestWatchHistory_EmptyForNewUser() {
	user := suite.createUser("freshviewer")

	entries, err := suite.videos.FindWatchHistory(suite.ctx, user.UserID)

	suite.Require().NoError(err)
	suite.NotNil(entries)
	suite.Empty(entries)
}

// --- Run Suite ---
func TestRepositoryIntegration(t *testing.T) {
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}
