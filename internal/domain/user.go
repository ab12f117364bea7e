package domain

import "time"

// User represents a registered account. PasswordHash is a bcrypt hash and must
// never leave the API surface.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
