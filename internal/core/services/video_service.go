package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/middleware"
)

const (
	videoFolder     = "videos"
	thumbnailFolder = "thumbnails"
)

type videoService struct {
	videoRepo portsrepo.VideoRepository
	uploader  portssvc.FileUploader
}

// NewVideoService creates the video service.
func NewVideoService(videoRepo portsrepo.VideoRepository, uploader portssvc.FileUploader) portssvc.VideoSvcFacade {
	return &videoService{
		videoRepo: videoRepo,
		uploader:  uploader,
	}
}

// PublishVideo uploads the video and thumbnail files and persists the record.
func (s *videoService) PublishVideo(ctx context.Context, ownerID string, req dto.PublishVideoRequest, videoPath, thumbnailPath string) (*domain.Video, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewBadRequestError("Title is required")
	}
	if videoPath == "" || thumbnailPath == "" {
		return nil, apperrors.NewBadRequestError("Video and thumbnail files are required")
	}

	videoURL, err := s.uploader.Upload(ctx, videoPath, videoFolder)
	if err != nil || videoURL == "" {
		return nil, apperrors.NewBadRequestError("Error while uploading video file")
	}

	thumbnailURL, err := s.uploader.Upload(ctx, thumbnailPath, thumbnailFolder)
	if err != nil || thumbnailURL == "" {
		return nil, apperrors.NewBadRequestError("Error while uploading thumbnail")
	}

	now := time.Now()
	video := domain.Video{
		VideoID:         uuid.NewString(),
		OwnerID:         ownerID,
		VideoFileURL:    videoURL,
		ThumbnailURL:    thumbnailURL,
		Title:           title,
		Description:     strings.TrimSpace(req.Description),
		DurationSeconds: req.DurationSeconds,
		IsPublished:     true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.videoRepo.SaveVideo(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to create video in service: %w", err)
	}

	return s.videoRepo.FindVideoByID(ctx, video.VideoID)
}

// GetVideoByID fetches a video for viewerID. A successful fetch by an
// authenticated viewer bumps the view counter and appends a watch history
// entry; failures in those side writes are logged but do not fail the read.
func (s *videoService) GetVideoByID(ctx context.Context, videoID, viewerID string) (*domain.Video, error) {
	video, err := s.videoRepo.FindVideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Video does not exist")
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		logger.Warn("Failed to increment video views", slog.String("video_id", videoID), slog.String("error", err.Error()))
	} else {
		video.Views++
	}

	if viewerID != "" {
		if err := s.videoRepo.AppendWatchHistory(ctx, viewerID, videoID); err != nil {
			logger.Warn("Failed to append watch history", slog.String("video_id", videoID), slog.String("user_id", viewerID), slog.String("error", err.Error()))
		}
	}

	return video, nil
}
