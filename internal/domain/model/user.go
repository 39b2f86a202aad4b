package model

import "time"

// User is a stored credential: an email-shaped identity, a bcrypt hash of
// the password, and the role snapshotted into sessions at login. Identity
// comparison is exact; no normalization is applied to the email.
type User struct {
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
