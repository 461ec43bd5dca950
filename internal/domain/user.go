package domain

import "time"

// User represents a registered account owning entries.
type User struct {
	ID           int64
	Name         string
	Email        string
	Password     string
	PasswordHash string
	CreatedAt    time.Time
}
