package domain

import "time"

// Subscription links a subscriber user to a channel (another user). It is
// only consulted for derived counts and membership tests.
type Subscription struct {
	SubscriptionID string    `json:"subscriptionID"`
	SubscriberID   string    `json:"subscriberID"`
	ChannelID      string    `json:"channelID"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ChannelProfile is the aggregated public view of a user's channel.
type ChannelProfile struct {
	FullName        string `json:"fullName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	AvatarURL       string `json:"avatar"`
	CoverImageURL   string `json:"coverImage,omitempty"`
	SubscriberCount int64  `json:"subscribersCount"`
	SubscribedTo    int64  `json:"channelsSubscribedToCount"`
	IsSubscribed    bool   `json:"isSubscribed"`
}
