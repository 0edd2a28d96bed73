package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
)

type SubscriptionRepository struct {
	db *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Ensure SubscriptionRepository implements portsrepo.SubscriptionRepository
var _ portsrepo.SubscriptionRepository = (*SubscriptionRepository)(nil)

// GetChannelProfile replaces the original aggregation pipeline with a single
// set-based query: subscriber count, subscribed-to count and the viewer's
// membership flag are all derived from subscription rows.
func (r *SubscriptionRepository) GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	query := `
        SELECT u.full_name,
               u.username,
               u.email,
               u.avatar_url,
               COALESCE(u.cover_image_url, ''),
               (SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.user_id),
               (SELECT count(*) FROM subscriptions s WHERE s.subscriber_id = u.user_id),
               ($2 <> '' AND EXISTS (
                   SELECT 1 FROM subscriptions s
                   WHERE s.channel_id = u.user_id AND s.subscriber_id = $2::uuid
               ))
        FROM users u
        WHERE u.username = lower($1);
    `
	// An empty viewerID would not cast to uuid; substitute a parameter that
	// short-circuits the EXISTS instead.
	viewer := viewerID
	if viewer == "" {
		viewer = nilUUID
	}
	var profile domain.ChannelProfile
	err := r.db.QueryRow(ctx, query, username, viewer).Scan(
		&profile.FullName,
		&profile.Username,
		&profile.Email,
		&profile.AvatarURL,
		&profile.CoverImageURL,
		&profile.SubscriberCount,
		&profile.SubscribedTo,
		&profile.IsSubscribed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to aggregate channel profile for %s: %w", username, err)
	}
	if viewerID == "" {
		profile.IsSubscribed = false
	}
	return &profile, nil
}

// nilUUID keeps the uuid cast valid for anonymous viewers; it never matches a
// real subscriber.
const nilUUID = "00000000-0000-0000-0000-000000000000"

func (r *SubscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2);`
	var subscribed bool
	if err := r.db.QueryRow(ctx, query, subscriberID, channelID).Scan(&subscribed); err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return subscribed, nil
}

func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	query := `SELECT count(*) FROM subscriptions WHERE channel_id = $1;`
	var count int64
	if err := r.db.QueryRow(ctx, query, channelID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription) error {
	query := `
        INSERT INTO subscriptions (subscription_id, subscriber_id, channel_id, created_at)
        VALUES ($1, $2, $3, $4);
    `
	_, err := r.db.Exec(ctx, query, sub.SubscriptionID, sub.SubscriberID, sub.ChannelID, sub.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) DeleteSubscription(ctx context.Context, subscriberID, channelID string) error {
	query := `DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2;`
	_, err := r.db.Exec(ctx, query, subscriberID, channelID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}
