package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// tokenBytes gives opaque tokens 256 bits of entropy.
const tokenBytes = 32

// TokenPair is a freshly issued access and refresh token. Only the
// fingerprints should be kept by the issuer.
type TokenPair struct {
	Access  string
	Refresh string
}

// NewTokenPair issues two independent opaque tokens, base64url encoded
// without padding.
func NewTokenPair() (TokenPair, error) {
	access, err := opaqueToken()
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := opaqueToken()
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func opaqueToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Fingerprint returns the SHA-256 of token, base64url encoded. Issuers index
// tokens by fingerprint.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
