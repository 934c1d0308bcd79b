package domain

import "time"

// Credential represents a user account: the login identity, the bcrypt
// password hash, and the fingerprint of the currently active refresh
// token. RefreshTokenHash is empty when the user has no active session.
type Credential struct {
	ID               int64
	Email            string
	PasswordHash     string
	RefreshTokenHash string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
