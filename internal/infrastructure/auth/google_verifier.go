package auth

import (
	"context"

	"google.golang.org/api/idtoken"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// GoogleVerifier implements domain.IdentityVerifier for Google ID tokens.
// An empty client id means the provider is not configured and that login
// method is unavailable.
type GoogleVerifier struct {
	clientID string
}

// NewGoogleVerifier creates a Google identity verifier.
func NewGoogleVerifier(clientID string) domain.IdentityVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// Verify implements domain.IdentityVerifier. Signature and audience are
// checked against Google's published keys.
func (g *GoogleVerifier) Verify(ctx context.Context, token string) (*domain.ExternalIdentity, error) {
	if g.clientID == "" {
		return nil, domain.ErrGoogleNotConfigured
	}

	payload, err := idtoken.Validate(ctx, token, g.clientID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	identity := &domain.ExternalIdentity{Subject: payload.Subject}
	if v, ok := payload.Claims["email"].(string); ok {
		identity.Email = v
	}
	if v, ok := payload.Claims["given_name"].(string); ok {
		identity.FirstName = v
	}
	if v, ok := payload.Claims["family_name"].(string); ok {
		identity.LastName = v
	}
	if v, ok := payload.Claims["picture"].(string); ok {
		identity.Picture = v
	}
	if v, ok := payload.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = v
	}
	return identity, nil
}
