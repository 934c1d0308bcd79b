package domain

import "time"

// Profile holds the display attributes for a user. Exactly one profile
// may exist per credential; UserID references the owning Credential.
type Profile struct {
	ID          int64
	UserID      int64
	Name        string
	PhoneNumber string
	Preferences []string
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
