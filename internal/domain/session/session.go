package session

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Session is a server-side record for an opaque bearer token handed out as a
// cookie. The id itself is the token.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
