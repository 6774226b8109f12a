package application

import "github.com/oksasatya/go-user-management/internal/domain/entity"

// RegisterUserInput carries a registration request. Roles stay as raw names
// so that unknown values can be reported by validation.
type RegisterUserInput struct {
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// UpdateUserInput replaces every mutable field of a user, roles included.
type UpdateUserInput struct {
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// Credentials is a login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserFilter narrows ListUsers. Nil fields impose no constraint; Name and
// Email match as case-insensitive substrings.
type UserFilter struct {
	Name  *string
	Age   *int
	Email *string
	Role  *entity.Role
}

// UserPage is one page of a filtered listing.
type UserPage struct {
	Items      []entity.UserView `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int               `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}
