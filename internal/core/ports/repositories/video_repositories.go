package repositories

import (
	"context"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// VideoReader defines read operations for video data.
type VideoReader interface {
	// FindVideoByID retrieves a video. Returns apperrors.ErrNotFound when absent.
	FindVideoByID(ctx context.Context, videoID string) (*domain.Video, error)

	// FindWatchHistory resolves the user's ordered watch history into full
	// video records with a reduced owner projection. Order of the underlying
	// identifier list is preserved; Owner is nil when the owning user is gone.
	FindWatchHistory(ctx context.Context, userID string) ([]domain.WatchHistoryEntry, error)
}

// VideoWriter defines write operations for video data.
type VideoWriter interface {
	// SaveVideo persists a new video.
	SaveVideo(ctx context.Context, video domain.Video) error

	// IncrementViews bumps the view counter by one.
	IncrementViews(ctx context.Context, videoID string) error

	// AppendWatchHistory appends the video to the end of the user's watch
	// history sequence.
	AppendWatchHistory(ctx context.Context, userID, videoID string) error
}

// VideoRepository combines all video repository interfaces.
type VideoRepository interface {
	VideoReader
	VideoWriter
}
