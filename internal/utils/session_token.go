package utils // package utils provides helpers for session token signing and identifiers

import (
	"crypto/rand"  // secure random number generation
	"encoding/hex" // hex encoding for session identifiers
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidSessionToken is returned when a session cookie fails signature
// or claim validation.
var ErrInvalidSessionToken = errors.New("invalid session token")

// NewSessionID returns a 64-character hex string generated from 32 bytes of
// cryptographically secure random data. It identifies a server-side session
// record; only this opaque value is ever stored in Redis.
func NewSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// SignSessionID wraps a session ID in a signed HS256 JWT so the browser
// cookie is tamper-evident, the same way the original deployment relied on
// signed session cookies. The token carries the session ID as subject and
// an expiry matching the server-side session TTL.
func SignSessionID(secret, sid string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": sid,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseSessionID validates a signed session cookie value and returns the
// embedded session ID. Tokens signed with an unexpected method, an invalid
// signature or a past expiry are rejected.
func ParseSessionID(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidSessionToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSessionToken
	}
	sid, ok := claims["sub"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidSessionToken
	}
	return sid, nil
}
