package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"strings"
)

// GenerateRegistrationToken returns a 256-bit URL-safe random token for the
// temporary registration token table.
func GenerateRegistrationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CampusCodeFromURL derives the stable per-student code from a credential
// URL: the unique path component hashed and truncated, so the raw URL never
// serves as a lookup key. Returns "" for URLs without a path.
func CampusCodeFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	token := strings.Trim(parsed.Path, "/")
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:12])
}
