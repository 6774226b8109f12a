package entity

import (
	"slices"
	"time"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in PasswordHash; the plaintext never persists.
// Email is stored lower-cased.
type User struct {
	ID           int64
	Name         string
	Age          int
	Email        string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user already holds role
func (u *User) HasRole(role Role) bool {
	return slices.Contains(u.Roles, role)
}

// View projects the user for callers, dropping the password hash.
func (u *User) View() UserView {
	roles := make([]Role, len(u.Roles))
	copy(roles, u.Roles)
	return UserView{
		ID:    u.ID,
		Name:  u.Name,
		Age:   u.Age,
		Email: u.Email,
		Roles: roles,
	}
}

// UserView is the public projection of a user. It never carries the hash.
type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
	Roles []Role `json:"roles"`
}
