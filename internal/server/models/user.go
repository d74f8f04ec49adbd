package models

import "time"

// User is a registered account. PasswordHash holds the bcrypt digest and is
// never serialized or logged.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
