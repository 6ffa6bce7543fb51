package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasboard/tracker-service/internal/domain"
	"github.com/atlasboard/tracker-service/internal/repository"
)

func TestTeamRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO teams`).
		WithArgs("dev-team", "Dev Team", "u-1").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	repo := repository.NewTeamRepository(mock)
	team := &domain.Team{Slug: "dev-team", Name: "Dev Team", CreatorID: "u-1"}
	require.NoError(t, repo.Create(context.Background(), team))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_MissingSlugs(t *testing.T) {
	tests := []struct {
		name    string
		asked   []string
		present []string
		want    []string
	}{
		{"all present", []string{"dev"}, []string{"dev"}, nil},
		{"one missing preserves order", []string{"dev", "missing"}, []string{"dev"}, []string{"missing"}},
		{"all missing", []string{"a", "b"}, nil, []string{"a", "b"}},
		{"empty input short-circuits", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			if len(tt.asked) > 0 {
				rows := pgxmock.NewRows([]string{"slug"})
				for _, slug := range tt.present {
					rows.AddRow(slug)
				}
				mock.ExpectQuery(`SELECT slug FROM teams WHERE slug = ANY`).
					WithArgs(tt.asked).
					WillReturnRows(rows)
			}

			repo := repository.NewTeamRepository(mock)
			missing, err := repo.MissingSlugs(context.Background(), tt.asked)
			require.NoError(t, err)
			assert.Equal(t, tt.want, missing)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTeamRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM teams WHERE slug=\$1`).
		WithArgs("gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := repository.NewTeamRepository(mock)
	err = repo.Delete(context.Background(), "gone")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestStatusRepository_GetByName(t *testing.T) {
	t.Run("resolves existing status", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, name FROM statuses WHERE name=\$1`).
			WithArgs("in_progress").
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(int64(3), "in_progress"))

		repo := repository.NewStatusRepository(mock)
		status, err := repo.GetByName(context.Background(), "in_progress")
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.Equal(t, int64(3), status.ID)
	})

	t.Run("missing status is nil without error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, name FROM statuses WHERE name=\$1`).
			WithArgs("nonexistent").
			WillReturnError(pgx.ErrNoRows)

		repo := repository.NewStatusRepository(mock)
		status, err := repo.GetByName(context.Background(), "nonexistent")
		require.NoError(t, err)
		assert.Nil(t, status)
	})
}
