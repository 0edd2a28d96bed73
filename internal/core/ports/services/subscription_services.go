package services

import "context"

// SubscriptionSvcFacade manages the subscriber/channel relationship.
type SubscriptionSvcFacade interface {
	// ToggleSubscription subscribes or unsubscribes subscriberID to channelID
	// and reports the resulting state (true = now subscribed).
	ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error)
}
