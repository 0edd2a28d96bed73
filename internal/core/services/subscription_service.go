package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
)

type subscriptionService struct {
	subRepo  portsrepo.SubscriptionRepository
	userRepo portsrepo.UserRepository
}

// NewSubscriptionService creates the subscription service.
func NewSubscriptionService(subRepo portsrepo.SubscriptionRepository, userRepo portsrepo.UserRepository) portssvc.SubscriptionSvcFacade {
	return &subscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
	}
}

// ToggleSubscription flips the subscriber's membership on the channel and
// reports the resulting state.
func (s *subscriptionService) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error) {
	if subscriberID == channelID {
		return false, apperrors.NewBadRequestError("You cannot subscribe to yourself")
	}

	if _, err := s.userRepo.FindUserByID(ctx, channelID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.NewNotFoundError("Channel does not exist")
		}
		return false, fmt.Errorf("failed to look up channel: %w", err)
	}

	subscribed, err := s.subRepo.IsSubscribed(ctx, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to check subscription state: %w", err)
	}

	if subscribed {
		if err := s.subRepo.DeleteSubscription(ctx, subscriberID, channelID); err != nil {
			return false, fmt.Errorf("failed to unsubscribe: %w", err)
		}
		return false, nil
	}

	sub := domain.Subscription{
		SubscriptionID: uuid.NewString(),
		SubscriberID:   subscriberID,
		ChannelID:      channelID,
		CreatedAt:      time.Now(),
	}
	if err := s.subRepo.SaveSubscription(ctx, sub); err != nil {
		// A concurrent toggle already created the row; treat as subscribed.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return true, nil
		}
		return false, fmt.Errorf("failed to subscribe: %w", err)
	}
	return true, nil
}
