package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
)

var (
	// ErrNotFound is returned by lookups and deletes when no user matches.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when the store's unique email constraint rejects a write.
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserRepository defines the interface for user-related database operations.
// Every mutating call commits before returning; a user and its roles are
// written atomically.
type UserRepository interface {
	FindAll(ctx context.Context) ([]*entity.User, error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	// FindByEmail matches the stored email exactly.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByEmailFold matches the stored email case-insensitively.
	FindByEmailFold(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, u *entity.User) error
}
