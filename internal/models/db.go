package models

// User represents a registered identity. Username doubles as the email address.
type User struct {
	Username       string `db:"username"`
	HashedPassword string `db:"hashed_password"`
}
