package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
	"github.com/oksasatya/go-user-management/internal/domain/repository"
)

const selectUsers = `
	SELECT u.id, u.name, u.age, u.email, u.password_hash, u.created_at, u.updated_at,
	       COALESCE(array_agg(r.role ORDER BY r.role) FILTER (WHERE r.role IS NOT NULL), '{}')::text[]
	FROM users u
	LEFT JOIN user_roles r ON r.user_id = u.id
`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, selectUsers+` GROUP BY u.id ORDER BY u.id`)
	if err != nil {
		return nil, oops.Code("USER_LIST_FAILED").With("operation", "list users").Wrap(err)
	}
	defer rows.Close()

	users := []*entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, oops.Code("USER_LIST_FAILED").With("operation", "scan user").Wrap(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("USER_LIST_FAILED").With("operation", "iterate users").Wrap(err)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	row := r.db.QueryRow(ctx, selectUsers+` WHERE u.id = $1 GROUP BY u.id`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").With("id", id).Wrap(repository.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_ID_FAILED").With("id", id).Wrap(err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, selectUsers+` WHERE u.email = $1 GROUP BY u.id`, email)
}

func (r *UserRepository) FindByEmailFold(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, selectUsers+` WHERE lower(u.email) = lower($1) GROUP BY u.id`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query, email string) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").With("email", email).Wrap(repository.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_EMAIL_FAILED").With("email", email).Wrap(err)
	}
	return u, nil
}

// Create inserts the user and its roles in one transaction and fills in the
// generated id and timestamps.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return oops.Code("USER_CREATE_FAILED").With("operation", "begin").Wrap(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO users (name, age, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Age, u.Email, u.PasswordHash).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return writeError("USER_CREATE_FAILED", "insert user", err)
	}
	if err := insertRoles(ctx, tx, u); err != nil {
		return writeError("USER_CREATE_FAILED", "insert roles", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return oops.Code("USER_CREATE_FAILED").With("operation", "commit").Wrap(err)
	}
	return nil
}

// Update rewrites the user row and replaces its whole role set.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return oops.Code("USER_UPDATE_FAILED").With("operation", "begin").Wrap(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		UPDATE users
		SET name = $2, age = $3, email = $4, password_hash = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, u.ID, u.Name, u.Age, u.Email, u.PasswordHash).Scan(&u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return oops.Code("USER_NOT_FOUND").With("id", u.ID).Wrap(repository.ErrNotFound)
	}
	if err != nil {
		return writeError("USER_UPDATE_FAILED", "update user", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, u.ID); err != nil {
		return oops.Code("USER_UPDATE_FAILED").With("operation", "clear roles").With("id", u.ID).Wrap(err)
	}
	if err := insertRoles(ctx, tx, u); err != nil {
		return writeError("USER_UPDATE_FAILED", "insert roles", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return oops.Code("USER_UPDATE_FAILED").With("operation", "commit").Wrap(err)
	}
	return nil
}

// Delete removes the user; its roles go with it through ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, u *entity.User) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, u.ID)
	if err != nil {
		return oops.Code("USER_DELETE_FAILED").With("id", u.ID).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").With("id", u.ID).Wrap(repository.ErrNotFound)
	}
	return nil
}

func insertRoles(ctx context.Context, tx pgx.Tx, u *entity.User) error {
	if len(u.Roles) == 0 {
		return nil
	}
	names := make([]string, len(u.Roles))
	for i, role := range u.Roles {
		names[i] = role.String()
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO user_roles (user_id, role)
		SELECT $1, unnest($2::text[])
	`, u.ID, names)
	return err
}

// writeError translates the unique email index violation into
// repository.ErrDuplicateEmail.
func writeError(code, operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return oops.Code("USER_EMAIL_TAKEN").With("constraint", pgErr.ConstraintName).Wrap(repository.ErrDuplicateEmail)
	}
	return oops.Code(code).With("operation", operation).Wrap(err)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var roles []string
	if err := row.Scan(&u.ID, &u.Name, &u.Age, &u.Email, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt, &roles); err != nil {
		return nil, err
	}
	u.Roles = make([]entity.Role, 0, len(roles))
	for _, r := range roles {
		u.Roles = append(u.Roles, entity.Role(r))
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
