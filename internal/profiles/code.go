package profiles

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ActivationCode is a premium code in KEY-SECRET form. Only the key and a
// bcrypt hash of the secret are stored.
type ActivationCode struct {
	Code string
	Key  string
	Hash []byte
}

const (
	keyBytes    = 6
	secretBytes = 10
)

// GenerateCode creates a random activation code.
func GenerateCode() (ActivationCode, error) {
	key := make([]byte, keyBytes)
	secret := make([]byte, secretBytes)
	if _, err := rand.Read(key); err != nil {
		return ActivationCode{}, err
	}
	if _, err := rand.Read(secret); err != nil {
		return ActivationCode{}, err
	}

	k := strings.ToUpper(hex.EncodeToString(key))
	s := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret)

	hash, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
	if err != nil {
		return ActivationCode{}, err
	}

	return ActivationCode{Code: k + "-" + s, Key: k, Hash: hash}, nil
}

// ParseCode splits a code into its key and secret. Input is
// case-insensitive and may carry surrounding spaces.
func ParseCode(code string) (key, secret string, err error) {
	key, secret, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(code)), "-")
	if !ok || key == "" || secret == "" || strings.Contains(secret, "-") {
		return "", "", ErrInvalidCode
	}
	return key, secret, nil
}

// Matches reports whether secret is the one hashed into hash.
func Matches(hash []byte, secret string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(secret)) == nil
}
