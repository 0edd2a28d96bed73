package services

import (
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, uploader portssvc.FileUploader) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, repos.SubscriptionRepo, repos.VideoRepo, uploader)
	container.Subscription = NewSubscriptionService(repos.SubscriptionRepo, repos.UserRepo)
	container.Video = NewVideoService(repos.VideoRepo, uploader)

	// Token service depends on the user service for refresh token persistence
	container.Token = NewTokenService(cfg, container.User)

	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade         = (*userService)(nil)
	_ portssvc.TokenSvcFacade        = (*tokenService)(nil)
	_ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)
	_ portssvc.VideoSvcFacade        = (*videoService)(nil)
)
