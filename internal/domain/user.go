package domain

import "time"

// User represents a registered account that can rate movies.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Age          *int
	Zipcode      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
