package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/core/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
)

type VideoServiceTestSuite struct {
	suite.Suite
	mockVideoRepo *MockVideoRepository
	mockUploader  *MockUploader
	service       portssvc.VideoSvcFacade
}

func (suite *VideoServiceTestSuite) SetupTest() {
	suite.mockVideoRepo = new(MockVideoRepository)
	suite.mockUploader = new(MockUploader)
	suite.service = services.NewVideoService(suite.mockVideoRepo, suite.mockUploader)
}

func (suite *VideoServiceTestSuite) TestPublishVideo_Success() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	req := dto.PublishVideoRequest{Title: " My Video ", Description: "about things", DurationSeconds: 12.5}

	suite.mockUploader.On("Upload", ctx, "/tmp/video.mp4", "videos").
		Return("https://cdn.example.com/videos/v.mp4", nil).Once()
	suite.mockUploader.On("Upload", ctx, "/tmp/thumb.png", "thumbnails").
		Return("https://cdn.example.com/thumbnails/t.png", nil).Once()
	suite.mockVideoRepo.On("SaveVideo", ctx, mock.MatchedBy(func(video domain.Video) bool {
		return video.OwnerID == ownerID &&
			video.Title == "My Video" &&
			video.IsPublished &&
			video.VideoFileURL == "https://cdn.example.com/videos/v.mp4"
	})).Return(nil).Once().Run(func(args mock.Arguments) {
		saved := args.Get(1).(domain.Video)
		suite.mockVideoRepo.On("FindVideoByID", ctx, saved.VideoID).Return(&saved, nil).Once()
	})

	video, err := suite.service.PublishVideo(ctx, ownerID, req, "/tmp/video.mp4", "/tmp/thumb.png")

	suite.Require().NoError(err)
	suite.Equal("My Video", video.Title)
	suite.mockUploader.AssertExpectations(suite.T())
	suite.mockVideoRepo.AssertExpectations(suite.T())
}

func (suite *VideoServiceTestSuite) TestPublishVideo_MissingTitle() {
	ctx := context.Background()
	req := dto.PublishVideoRequest{Title: "   "}

	video, err := suite.service.PublishVideo(ctx, uuid.NewString(), req, "/tmp/video.mp4", "/tmp/thumb.png")

	suite.Require().Error(err)
	suite.Nil(video)
	suite.Equal(400, apperrors.StatusCode(err))
	suite.mockUploader.AssertNotCalled(suite.T(), "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestPublishVideo_UploadFails() {
	ctx := context.Background()
	req := dto.PublishVideoRequest{Title: "My Video"}

	suite.mockUploader.On("Upload", ctx, "/tmp/video.mp4", "videos").Return("", assert.AnError).Once()

	video, err := suite.service.PublishVideo(ctx, uuid.NewString(), req, "/tmp/video.mp4", "/tmp/thumb.png")

	suite.Require().Error(err)
	suite.Nil(video)
	suite.Equal(400, apperrors.StatusCode(err))
	suite.mockVideoRepo.AssertNotCalled(suite.T(), "SaveVideo", mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestGetVideoByID_CountsViewAndRecordsHistory() {
	ctx := context.Background()
	videoID := uuid.NewString()
	viewerID := uuid.NewString()
	video := &domain.Video{VideoID: videoID, Title: "Watched", Views: 4}

	suite.mockVideoRepo.On("FindVideoByID", ctx, videoID).Return(video, nil).Once()
	suite.mockVideoRepo.On("IncrementViews", ctx, videoID).Return(nil).Once()
	suite.mockVideoRepo.On("AppendWatchHistory", ctx, viewerID, videoID).Return(nil).Once()

	got, err := suite.service.GetVideoByID(ctx, videoID, viewerID)

	suite.Require().NoError(err)
	suite.Equal(int64(5), got.Views)
	suite.mockVideoRepo.AssertExpectations(suite.T())
}

func (suite *VideoServiceTestSuite) TestGetVideoByID_HistoryFailureDoesNotFailRead() {
	ctx := context.Background()
	videoID := uuid.NewString()
	viewerID := uuid.NewString()
	video := &domain.Video{VideoID: videoID, Title: "Watched"}

	suite.mockVideoRepo.On("FindVideoByID", ctx, videoID).Return(video, nil).Once()
	suite.mockVideoRepo.On("IncrementViews", ctx, videoID).Return(assert.AnError).Once()
	suite.mockVideoRepo.On("AppendWatchHistory", ctx, viewerID, videoID).Return(assert.AnError).Once()

	got, err := suite.service.GetVideoByID(ctx, videoID, viewerID)

	suite.Require().NoError(err)
	suite.Equal(videoID, got.VideoID)
}

func (suite *VideoServiceTestSuite) TestGetVideoByID_NotFound() {
	ctx := context.Background()
	videoID := uuid.NewString()

	suite.mockVideoRepo.On("FindVideoByID", ctx, videoID).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetVideoByID(ctx, videoID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(got)
	suite.Equal(404, apperrors.StatusCode(err))
	suite.mockVideoRepo.AssertNotCalled(suite.T(), "IncrementViews", mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestVideoService(t *testing.T) {
	suite.Run(t, new(VideoServiceTestSuite))
}
