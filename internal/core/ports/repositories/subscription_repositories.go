package repositories

import (
	"context"

	"github.com/vidtube/vidtube_backend/internal/core/domain"
)

// SubscriptionReader defines read/aggregate operations over subscriptions.
type SubscriptionReader interface {
	// GetChannelProfile aggregates subscriber count, subscribed-to count and
	// the viewer's membership flag for the channel with the given username.
	// viewerID may be empty for anonymous requests. Returns
	// apperrors.ErrNotFound when no such channel exists.
	GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)

	// IsSubscribed reports whether subscriber currently follows channel.
	IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error)

	// CountSubscribers returns the number of subscriptions targeting channel.
	CountSubscribers(ctx context.Context, channelID string) (int64, error)
}

// SubscriptionWriter defines write operations over subscriptions.
type SubscriptionWriter interface {
	// SaveSubscription persists a new subscription.
	SaveSubscription(ctx context.Context, sub domain.Subscription) error

	// DeleteSubscription removes the subscription linking subscriber to channel.
	DeleteSubscription(ctx context.Context, subscriberID, channelID string) error
}

// SubscriptionRepository combines all subscription repository interfaces.
type SubscriptionRepository interface {
	SubscriptionReader
	SubscriptionWriter
}
