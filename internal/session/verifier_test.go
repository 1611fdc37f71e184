package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
)

const testSecret = "test-secret-with-enough-length-for-hs256"

func newJWT(t *testing.T) *session.JWTVerifier {
	t.Helper()
	v, err := session.NewJWTVerifier(session.JWTConfig{
		Secret:   testSecret,
		Issuer:   "https://auth.example.com",
		Audience: "authenticated",
	})
	if err != nil {
		t.Fatalf("NewJWTVerifier: %v", err)
	}
	return v
}

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestNewJWTVerifierRequiresSecret(t *testing.T) {
	if _, err := session.NewJWTVerifier(session.JWTConfig{Secret: "  "}); err == nil {
		t.Fatal("expected error for blank secret")
	}
}

func TestJWTVerifierIssueRoundTrip(t *testing.T) {
	v := newJWT(t)
	userID := uuid.New()

	token, err := v.Issue(userID, "ana@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != userID {
		t.Errorf("subject = %s, want %s", claims.Subject, userID)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.TokenID == "" {
		t.Error("token id is empty")
	}
	if time.Until(claims.ExpiresAt) <= 0 {
		t.Errorf("expires at %v is not in the future", claims.ExpiresAt)
	}
}

func TestJWTVerifierRejects(t *testing.T) {
	v := newJWT(t)
	now := time.Now()
	base := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub": uuid.NewString(),
			"iss": "https://auth.example.com",
			"aud": "authenticated",
			"iat": now.Unix(),
			"exp": now.Add(time.Hour).Unix(),
		}
	}

	tests := []struct {
		name  string
		token func() string
	}{
		{"garbage", func() string { return "not.a.token" }},
		{"wrong secret", func() string {
			return sign(t, jwt.SigningMethodHS256, []byte("another-secret"), base())
		}},
		{"expired", func() string {
			c := base()
			c["exp"] = now.Add(-time.Minute).Unix()
			return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
		}},
		{"missing expiry", func() string {
			c := base()
			delete(c, "exp")
			return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
		}},
		{"wrong issuer", func() string {
			c := base()
			c["iss"] = "https://evil.example.com"
			return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
		}},
		{"wrong audience", func() string {
			c := base()
			c["aud"] = "anon"
			return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
		}},
		{"subject not a uuid", func() string {
			c := base()
			c["sub"] = "user-42"
			return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
		}},
		{"unsigned", func() string {
			return sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, base())
		}},
		{"hs512", func() string {
			return sign(t, jwt.SigningMethodHS512, []byte(testSecret), base())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token())
			if !errors.Is(err, session.ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestJWTVerifierDigestTokenID(t *testing.T) {
	v := newJWT(t)
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": uuid.NewString(),
		"iss": "https://auth.example.com",
		"aud": "authenticated",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	first, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	second, _ := v.Verify(context.Background(), token)

	if len(first.TokenID) != 64 {
		t.Errorf("token id %q is not a sha256 digest", first.TokenID)
	}
	if first.TokenID != second.TokenID {
		t.Error("digest token id is not stable")
	}
}
