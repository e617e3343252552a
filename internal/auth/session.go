// Package auth implements the stateless admin session token: a base64url
// JSON payload carrying the issue time, signed with HMAC-SHA256 under the
// shared admin secret. There is no user identity and no revocation; tokens
// simply expire after the TTL.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// SessionTTL is how long an issued token stays valid.
const SessionTTL = 24 * time.Hour

// CookieName is the cookie the admin session token travels in.
const CookieName = "admin_session"

type payload struct {
	IssuedAtMillis int64 `json:"t"`
}

// Sessions issues and verifies admin session tokens. The clock is injectable
// so expiry can be tested without sleeping.
type Sessions struct {
	secret []byte
	now    func() time.Time
}

// NewSessions creates a token issuer/verifier keyed by the admin secret.
func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret), now: time.Now}
}

// WithClock returns a copy using the given clock.
func (s *Sessions) WithClock(now func() time.Time) *Sessions {
	return &Sessions{secret: s.secret, now: now}
}

func (s *Sessions) sign(data []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

// Create issues a new session token.
func (s *Sessions) Create() string {
	data, _ := json.Marshal(payload{IssuedAtMillis: s.now().UnixMilli()})
	return base64.RawURLEncoding.EncodeToString(data) + "." + s.sign(data)
}

// Verify reports whether the token is authentic and within its TTL. It is a
// total function: malformed input of any kind is simply invalid.
func (s *Sessions) Verify(token string) bool {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok || encoded == "" || sig == "" {
		return false
	}
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return false
	}
	if p.IssuedAtMillis <= 0 {
		return false
	}
	if s.now().UnixMilli()-p.IssuedAtMillis > SessionTTL.Milliseconds() {
		return false
	}
	expected := s.sign(data)
	return hmac.Equal([]byte(sig), []byte(expected))
}
