package services

import (
	"context"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
	"github.com/vidtube/vidtube_backend/internal/dto"
)

// VideoSvcFacade manages the minimal video surface backing watch history.
type VideoSvcFacade interface {
	// PublishVideo uploads the video and thumbnail files and persists the record.
	PublishVideo(ctx context.Context, ownerID string, req dto.PublishVideoRequest, videoPath, thumbnailPath string) (*domain.Video, error)

	// GetVideoByID fetches a video for viewerID, incrementing its view count
	// and appending it to the viewer's watch history.
	GetVideoByID(ctx context.Context, videoID, viewerID string) (*domain.Video, error)
}
