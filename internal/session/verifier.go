package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the verified facts a token asserts about its bearer.
type Claims struct {
	Subject   uuid.UUID
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// Verifier checks a bearer token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// JWTConfig configures HS256 verification with the identity provider's
// shared signing secret.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// JWTVerifier validates HS256 access tokens.
type JWTVerifier struct {
	secret   []byte
	issuer   string
	audience string
	leeway   time.Duration
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTVerifier creates a verifier. Issuer and audience are checked only
// when configured.
func NewJWTVerifier(cfg JWTConfig) (*JWTVerifier, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("jwt verifier requires a secret")
	}
	return &JWTVerifier{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		leeway:   cfg.Leeway,
	}, nil
}

func (v *JWTVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}

	return newClaims(token, claims.Subject, claims.Email, claims.ID, expires)
}

// Issue signs a token for userID valid for ttl. The identity provider
// issues production tokens; this serves local tooling and tests.
func (v *JWTVerifier) Issue(userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func newClaims(token, subject, email, id string, expires time.Time) (Claims, error) {
	userID, err := uuid.Parse(strings.TrimSpace(subject))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	// Tokens without a jti are revoked by their digest.
	if id == "" {
		sum := sha256.Sum256([]byte(token))
		id = hex.EncodeToString(sum[:])
	}

	return Claims{
		Subject:   userID,
		Email:     email,
		TokenID:   id,
		ExpiresAt: expires,
	}, nil
}
