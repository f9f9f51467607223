package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

const (
	appleIssuer  = "https://appleid.apple.com"
	appleKeysURL = "https://appleid.apple.com/auth/keys"
)

// AppleVerifier implements domain.IdentityVerifier for Sign in with Apple
// identity tokens. Tokens are RS256-verified against Apple's published JWKS.
// The audience is checked only when a client id is configured.
type AppleVerifier struct {
	clientID   string
	keysURL    string
	httpClient *http.Client

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// NewAppleVerifier creates an Apple identity verifier.
func NewAppleVerifier(clientID string) domain.IdentityVerifier {
	return &AppleVerifier{
		clientID:   clientID,
		keysURL:    appleKeysURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify implements domain.IdentityVerifier.
func (a *AppleVerifier) Verify(ctx context.Context, token string) (*domain.ExternalIdentity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, domain.ErrTokenMalformed
		}
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, domain.ErrTokenMalformed
		}
		return a.publicKey(ctx, kid)
	}, jwt.WithIssuer(appleIssuer))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if a.clientID != "" {
		aud, _ := claims.GetAudience()
		found := false
		for _, v := range aud {
			if v == a.clientID {
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrTokenInvalid
		}
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrTokenInvalid
	}

	identity := &domain.ExternalIdentity{Subject: sub}
	if v, ok := claims["email"].(string); ok {
		identity.Email = v
		identity.EmailVerified = true
	}
	return identity, nil
}

// publicKey returns the RSA key matching kid, refetching the JWKS when the
// kid is unknown or the cache is older than an hour (Apple rotates keys).
func (a *AppleVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if key, ok := a.keys[kid]; ok && time.Since(a.fetchedAt) < time.Hour {
		return key, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.keysURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch apple keys: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("apple keys endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		Keys []struct {
			Kid string `json:"kid"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode apple keys: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(payload.Keys))
	for _, k := range payload.Keys {
		nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
		if err != nil {
			continue
		}
		eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
		if err != nil {
			continue
		}
		keys[k.Kid] = &rsa.PublicKey{
			N: new(big.Int).SetBytes(nBytes),
			E: int(new(big.Int).SetBytes(eBytes).Int64()),
		}
	}
	a.keys = keys
	a.fetchedAt = time.Now()

	key, ok := a.keys[kid]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return key, nil
}
