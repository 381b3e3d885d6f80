// Package models defines the server-side data models.
package models

import "time"

// User is the relational half of a registered user. The profile picture
// lives in the blob store under the same ID.
type User struct {
	ID        string
	FirstName string
	Email     string
	Phone     string
	Password  string
	CreatedAt time.Time
}

// Profile is what a lookup returns: the user's fields joined with the
// picture bytes. Picture is nil when the blob store has nothing for the ID.
type Profile struct {
	UserID    string
	FirstName string
	Email     string
	Phone     string
	Picture   []byte
}
