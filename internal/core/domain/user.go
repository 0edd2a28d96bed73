package domain

import "time"

// User represents an account holder. A user doubles as a channel when viewed
// as the target of subscriptions.
type User struct {
	UserID           string    `json:"userID"`
	Username         string    `json:"username"` // stored lower-cased
	Email            string    `json:"email"`
	FullName         string    `json:"fullName"`
	PasswordHash     string    `json:"-"`
	AvatarURL        string    `json:"avatar"`
	CoverImageURL    string    `json:"coverImage,omitempty"`
	RefreshTokenHash string    `json:"-"` // SHA-256 of the most recently issued refresh token, empty when logged out
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
