package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	EnvAuthMode      = "GALLERY_AUTH_MODE"
	EnvAuthJWTSecret = "GALLERY_AUTH_JWT_SECRET"
	EnvAuthIssuer    = "GALLERY_AUTH_ISSUER"
	EnvAuthAudience  = "GALLERY_AUTH_AUDIENCE"
	EnvAuthLeeway    = "GALLERY_AUTH_LEEWAY"
	EnvAuthIssuerURL = "GALLERY_AUTH_OIDC_ISSUER_URL"
	EnvAuthClientID  = "GALLERY_AUTH_OIDC_CLIENT_ID"
)

// Auth modes.
const (
	AuthModeJWT  = "jwt"
	AuthModeOIDC = "oidc"
)

// AuthConfig configures bearer token verification. In jwt mode tokens are
// HS256-signed with JWTSecret; in oidc mode they are checked against the
// provider discovered at IssuerURL.
type AuthConfig struct {
	Mode      string `toml:"mode"`
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
	Audience  string `toml:"audience"`
	Leeway    string `toml:"leeway"`
	IssuerURL string `toml:"oidc_issuer_url"`
	ClientID  string `toml:"oidc_client_id"`
}

// LeewayDuration returns Leeway as a time.Duration.
func (c *AuthConfig) LeewayDuration() time.Duration {
	d, _ := time.ParseDuration(c.Leeway)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.JWTSecret != "" {
		c.JWTSecret = overlay.JWTSecret
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.Audience != "" {
		c.Audience = overlay.Audience
	}
	if overlay.Leeway != "" {
		c.Leeway = overlay.Leeway
	}
	if overlay.IssuerURL != "" {
		c.IssuerURL = overlay.IssuerURL
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.Mode == "" {
		c.Mode = AuthModeJWT
	}
	if c.Audience == "" && c.Mode == AuthModeJWT {
		c.Audience = "authenticated"
	}
	if c.Leeway == "" {
		c.Leeway = "30s"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthMode); v != "" {
		c.Mode = v
	}
	if v := os.Getenv(EnvAuthJWTSecret); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv(EnvAuthIssuer); v != "" {
		c.Issuer = v
	}
	if v := os.Getenv(EnvAuthAudience); v != "" {
		c.Audience = v
	}
	if v := os.Getenv(EnvAuthLeeway); v != "" {
		c.Leeway = v
	}
	if v := os.Getenv(EnvAuthIssuerURL); v != "" {
		c.IssuerURL = v
	}
	if v := os.Getenv(EnvAuthClientID); v != "" {
		c.ClientID = v
	}
}

func (c *AuthConfig) validate() error {
	if _, err := time.ParseDuration(c.Leeway); err != nil {
		return fmt.Errorf("invalid leeway: %w", err)
	}

	switch c.Mode {
	case AuthModeJWT:
		if c.JWTSecret == "" {
			return errors.New("jwt_secret required in jwt mode")
		}
	case AuthModeOIDC:
		if c.IssuerURL == "" || c.ClientID == "" {
			return errors.New("oidc_issuer_url and oidc_client_id required in oidc mode")
		}
	default:
		return fmt.Errorf("invalid mode %q: must be jwt or oidc", c.Mode)
	}
	return nil
}
