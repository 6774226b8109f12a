package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
	"github.com/oksasatya/go-user-management/internal/domain/repository"
)

var userColumns = []string{"id", "name", "age", "email", "password_hash", "created_at", "updated_at", "roles"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepository_FindAll(t *testing.T) {
	mock := newMock(t)
	now := time.Now().UTC()
	rows := pgxmock.NewRows(userColumns).
		AddRow(int64(1), "Ann", 30, "a@x.com", "h1", now, now, []string{"Admin", "User"}).
		AddRow(int64(2), "Bob", 40, "b@x.com", "h2", now, now, []string{})
	mock.ExpectQuery(`FROM users u\s+LEFT JOIN user_roles r`).WillReturnRows(rows)

	users, err := NewUserRepository(mock).FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, []entity.Role{entity.RoleAdmin, entity.RoleUser}, users[0].Roles)
	assert.Empty(t, users[1].Roles)
	assert.Equal(t, "h2", users[1].PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				now := time.Now().UTC()
				mock.ExpectQuery(`WHERE u.id = \$1`).
					WithArgs(int64(7)).
					WillReturnRows(pgxmock.NewRows(userColumns).
						AddRow(int64(7), "Ann", 30, "a@x.com", "h", now, now, []string{"User"}))
			},
		},
		{
			name: "missing",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`WHERE u.id = \$1`).
					WithArgs(int64(7)).
					WillReturnRows(pgxmock.NewRows(userColumns))
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setupMock(mock)

			u, err := NewUserRepository(mock).FindByID(context.Background(), 7)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7), u.ID)
				assert.Equal(t, []entity.Role{entity.RoleUser}, u.Roles)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_FindByID_DatabaseError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`WHERE u.id = \$1`).WithArgs(int64(7)).WillReturnError(errors.New("connection refused"))

	_, err := NewUserRepository(mock).FindByID(context.Background(), 7)
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUserRepository_EmailLookups(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`WHERE u.email = \$1`).WithArgs("A@X.com").WillReturnRows(pgxmock.NewRows(userColumns))
	mock.ExpectQuery(`WHERE lower\(u.email\) = lower\(\$1\)`).WithArgs("A@X.com").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(int64(1), "Ann", 30, "a@x.com", "h", time.Now(), time.Now(), []string{}))

	repo := NewUserRepository(mock)
	_, err := repo.FindByEmail(context.Background(), "A@X.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	u, err := repo.FindByEmailFold(context.Background(), "A@X.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ann", 30, "a@x.com", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))
	mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(int64(11), []string{"User", "Admin"}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	u := &entity.User{Name: "Ann", Age: 30, Email: "a@x.com", PasswordHash: "hash", Roles: []entity.Role{entity.RoleUser, entity.RoleAdmin}}
	require.NoError(t, NewUserRepository(mock).Create(context.Background(), u))
	assert.Equal(t, int64(11), u.ID)
	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_lower_key"})
	mock.ExpectRollback()

	u := &entity.User{Name: "Ann", Age: 30, Email: "a@x.com", PasswordHash: "hash"}
	err := NewUserRepository(mock).Create(context.Background(), u)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update(t *testing.T) {
	mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE users`).
		WithArgs(int64(3), "Ann", 31, "a@x.com", "hash2").
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectExec(`DELETE FROM user_roles`).WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(int64(3), []string{"Support"}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	u := &entity.User{ID: 3, Name: "Ann", Age: 31, Email: "a@x.com", PasswordHash: "hash2", Roles: []entity.Role{entity.RoleSupport}}
	require.NoError(t, NewUserRepository(mock).Update(context.Background(), u))
	assert.Equal(t, now, u.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE users`).WillReturnRows(pgxmock.NewRows([]string{"updated_at"}))
	mock.ExpectRollback()

	err := NewUserRepository(mock).Update(context.Background(), &entity.User{ID: 3})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"deleted", 1, nil},
		{"already gone", 0, repository.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
				WithArgs(int64(4)).
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			err := NewUserRepository(mock).Delete(context.Background(), &entity.User{ID: 4})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
