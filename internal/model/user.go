package model

import "time"

// User represents a row in the `users` table. The password is stored as
// a bcrypt hash and is never serialized. IsAdmin gates the admin-only
// delete routes; it is a plain capability flag, not a role hierarchy.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique, normalized to lower case.
//  PasswordHash – bcrypt hash of the password.
//  IsAdmin      – whether the user may hit admin-gated routes.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`    // users.id
	Name         string    `json:"name"`  // users.name
	Email        string    `json:"email"` // users.email
	PasswordHash string    `json:"-"`     // users.password_hash
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"-"` // users.created_at
	UpdatedAt    time.Time `json:"-"` // users.updated_at
}
