package session

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// OIDCVerifier validates RS256/ES256 tokens issued by an OpenID Connect
// provider, using its discovered JWKS.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier discovers the provider at issuerURL. Tokens must carry
// clientID in their audience.
func NewOIDCVerifier(ctx context.Context, issuerURL, clientID string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery %s: %w", issuerURL, err)
	}
	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// NewOIDCVerifierWithKeys builds a verifier over a fixed key set, skipping
// discovery.
func NewOIDCVerifierWithKeys(issuerURL, clientID string, keys oidc.KeySet) *OIDCVerifier {
	return &OIDCVerifier{
		verifier: oidc.NewVerifier(issuerURL, keys, &oidc.Config{ClientID: clientID}),
	}
}

func (v *OIDCVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	idToken, err := v.verifier.Verify(ctx, token)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	var extra struct {
		Email string `json:"email"`
		ID    string `json:"jti"`
	}
	if err := idToken.Claims(&extra); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return newClaims(token, idToken.Subject, extra.Email, extra.ID, idToken.Expiry)
}
