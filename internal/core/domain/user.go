package domain

import "time"

// RoleUser is the only role granted on sign-up.
const RoleUser = "ROLE_USER"

// User represents an account of the valuation backend.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Session is the authenticated identity of a browser, mirrored in the session store.
type Session struct {
	User
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
