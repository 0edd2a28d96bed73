package domain

import "time"

// Video is an uploaded video owned by a user.
type Video struct {
	VideoID         string    `json:"videoID"`
	OwnerID         string    `json:"ownerID"`
	VideoFileURL    string    `json:"videoFile"`
	ThumbnailURL    string    `json:"thumbnail"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationSeconds float64   `json:"duration"`
	Views           int64     `json:"views"`
	IsPublished     bool      `json:"isPublished"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// VideoOwner is the reduced projection of a video's owning user returned by
// watch-history lookups.
type VideoOwner struct {
	FullName  string `json:"fullName"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar"`
}

// WatchHistoryEntry is one resolved entry of a user's ordered watch history.
// Owner is nil when the owning user no longer exists.
type WatchHistoryEntry struct {
	Video
	Owner *VideoOwner `json:"owner,omitempty"`
}
