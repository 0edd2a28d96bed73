package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
)

type VideoRepository struct {
	db *pgxpool.Pool
}

func NewVideoRepository(db *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{db: db}
}

// Ensure VideoRepository implements portsrepo.VideoRepository
var _ portsrepo.VideoRepository = (*VideoRepository)(nil)

const videoColumns = `video_id, owner_id, video_file_url, thumbnail_url, title, description,
       duration_seconds, views, is_published, created_at, updated_at`

func (r *VideoRepository) SaveVideo(ctx context.Context, video domain.Video) error {
	query := `
        INSERT INTO videos (video_id, owner_id, video_file_url, thumbnail_url, title, description, duration_seconds, views, is_published, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		video.VideoID,
		video.OwnerID,
		video.VideoFileURL,
		video.ThumbnailURL,
		video.Title,
		video.Description,
		video.DurationSeconds,
		video.Views,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save video: %w", err)
	}
	return nil
}

func (r *VideoRepository) FindVideoByID(ctx context.Context, videoID string) (*domain.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE video_id = $1;`
	var video domain.Video
	err := r.db.QueryRow(ctx, query, videoID).Scan(
		&video.VideoID,
		&video.OwnerID,
		&video.VideoFileURL,
		&video.ThumbnailURL,
		&video.Title,
		&video.Description,
		&video.DurationSeconds,
		&video.Views,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find video by ID %s: %w", videoID, err)
	}
	return &video, nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, videoID string) error {
	query := `UPDATE videos SET views = views + 1, updated_at = now() WHERE video_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, videoID)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) AppendWatchHistory(ctx context.Context, userID, videoID string) error {
	query := `INSERT INTO watch_history (user_id, video_id) VALUES ($1, $2);`
	_, err := r.db.Exec(ctx, query, userID, videoID)
	if err != nil {
		return fmt.Errorf("failed to append watch history: %w", err)
	}
	return nil
}

// FindWatchHistory is the two-level join: watch history rows resolve to full
// video records, each video's owner to a reduced projection. The LEFT JOIN
// keeps a video whose owner row has disappeared; its projection is nil.
func (r *VideoRepository) FindWatchHistory(ctx context.Context, userID string) ([]domain.WatchHistoryEntry, error) {
	query := `
        SELECT v.video_id, v.owner_id, v.video_file_url, v.thumbnail_url, v.title, v.description,
               v.duration_seconds, v.views, v.is_published, v.created_at, v.updated_at,
               o.full_name, o.username, o.avatar_url
        FROM watch_history wh
        JOIN videos v ON v.video_id = wh.video_id
        LEFT JOIN users o ON o.user_id = v.owner_id
        WHERE wh.user_id = $1
        ORDER BY wh.position;
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watch history: %w", err)
	}
	defer rows.Close()

	entries := []domain.WatchHistoryEntry{}
	for rows.Next() {
		var entry domain.WatchHistoryEntry
		var ownerFullName, ownerUsername, ownerAvatar *string
		err := rows.Scan(
			&entry.VideoID,
			&entry.OwnerID,
			&entry.VideoFileURL,
			&entry.ThumbnailURL,
			&entry.Title,
			&entry.Description,
			&entry.DurationSeconds,
			&entry.Views,
			&entry.IsPublished,
			&entry.CreatedAt,
			&entry.UpdatedAt,
			&ownerFullName,
			&ownerUsername,
			&ownerAvatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watch history row: %w", err)
		}
		if ownerUsername != nil {
			entry.Owner = &domain.VideoOwner{
				FullName:  *ownerFullName,
				Username:  *ownerUsername,
				AvatarURL: *ownerAvatar,
			}
		}
		entries = append(entries, entry)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating watch history rows: %w", rows.Err())
	}

	return entries, nil
}
