package repositories

// RepositoryProvider bundles all repository implementations so service
// construction receives a single dependency.
type RepositoryProvider struct {
	UserRepo         UserRepository
	SubscriptionRepo SubscriptionRepository
	VideoRepo        VideoRepository
}
