package session

import (
	"time"

	"github.com/studenthive/portal/pkg/id"
)

// Session is the persisted (token, userId) pair for one signed-in browser.
// It is created on sign-in and destroyed on sign-out or on any authorization
// failure signalled by a backend service.
type Session struct {
	SID       id.SessionID
	Token     string
	UserID    id.UserID
	CreatedAt time.Time
}
