package id

import (
	"crypto/rand"
	"encoding/base64"
)

// SessionID is the opaque identifier carried in the session cookie.
type SessionID string

// UserID is the LBU auth service user identifier resolved at sign-in.
type UserID string

// NewSessionID mints a 256-bit random session identifier.
func NewSessionID() (SessionID, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return SessionID(base64.RawURLEncoding.EncodeToString(b)), nil
}
