package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasboard/tracker-service/internal/domain"
	"github.com/atlasboard/tracker-service/internal/repository"
)

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u-1", "alice", "alice@example.com", "hash", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	repo := repository.NewUserRepository(mock)
	user := &domain.User{ID: "u-1", Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now()
		rows := pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "position", "created_at", "updated_at"}).
			AddRow("u-1", "alice", "alice@example.com", "hash", nil, now, now)
		mock.ExpectQuery(`SELECT .+ FROM users WHERE email=\$1`).
			WithArgs("alice@example.com").
			WillReturnRows(rows)

		repo := repository.NewUserRepository(mock)
		user, err := repo.GetByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user surfaces pgx.ErrNoRows", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM users WHERE email=\$1`).
			WithArgs("nobody@example.com").
			WillReturnError(pgx.ErrNoRows)

		repo := repository.NewUserRepository(mock)
		_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})
}

func TestUserRepository_Update(t *testing.T) {
	t.Run("zero rows affected maps to not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE users SET`).
			WithArgs("alice", "alice@example.com", "hash", (*string)(nil), "missing-id").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := repository.NewUserRepository(mock)
		user := &domain.User{ID: "missing-id", Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
		err = repo.Update(context.Background(), user)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		wantErr  error
	}{
		{"existing row deleted", 1, nil, nil},
		{"missing row maps to not found", 0, nil, pgx.ErrNoRows},
		{"store failure propagates", 0, errors.New("connection refused"), errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			exec := mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).WithArgs("u-1")
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
			} else {
				exec.WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))
			}

			repo := repository.NewUserRepository(mock)
			err = repo.Delete(context.Background(), "u-1")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}
		})
	}
}

func TestUserRepository_EmailTaken(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		excludeID string
		taken     bool
	}{
		{"taken by another user", "dup@example.com", "", true},
		{"free", "new@example.com", "", false},
		{"own row excluded on update", "mine@example.com", "u-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs(tt.email, tt.excludeID).
				WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(tt.taken))

			repo := repository.NewUserRepository(mock)
			taken, err := repo.EmailTaken(context.Background(), tt.email, tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.taken, taken)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
