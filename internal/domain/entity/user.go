package entity

import (
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
)

// User is an authenticated principal as reported by the backend.
type User struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Phone      string        `json:"phone"`
	Role       enum.UserRole `json:"role"`
	IsActive   bool          `json:"is_active"`
	FirstLogin bool          `json:"first_login"`
	CreatedAt  Timestamp     `json:"created_at"`
}

// Session binds a gateway login to the backend bearer token it was issued.
// It is created at login, passed explicitly to every backend call and
// destroyed on logout or when the backend rejects the token.
type Session struct {
	ID        string    `json:"session_id"`
	User      User      `json:"user"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// LoginRoute is where the session's user goes to sign in again.
func (s *Session) LoginRoute() string {
	return s.User.Role.LoginRoute()
}
