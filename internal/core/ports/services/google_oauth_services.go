package services

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// GoogleOAuthSvcFacade wraps the Google side of the sign-in flow.
type GoogleOAuthSvcFacade interface {
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateGoogleIDToken validates an ID token received from Google and
	// returns the verified payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
