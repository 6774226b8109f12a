package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
)

// PasswordHasher is the credential primitive. Verify never fails loudly: a
// malformed digest simply does not match.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer signs an access token for an identity.
type TokenIssuer interface {
	Issue(email string) (token string, expiresAt time.Time, err error)
}

// UserIndexer keeps a search index of user views. Indexing is best effort.
type UserIndexer interface {
	IndexUser(ctx context.Context, u entity.UserView) error
	DeleteUser(ctx context.Context, id int64) error
	SearchUsers(ctx context.Context, q string, size int) ([]entity.UserView, error)
}

// EmailPublisher enqueues an email job for the worker.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}
