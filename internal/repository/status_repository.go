package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/atlasboard/tracker-service/internal/domain"
)

// StatusRepository manages the shared workflow status lookup table.
type StatusRepository interface {
	Create(ctx context.Context, status *domain.Status) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Status, error)
	// GetByName resolves a workflow status by its unique name. A missing
	// status is (nil, nil) so callers can distinguish it from query failure.
	GetByName(ctx context.Context, name string) (*domain.Status, error)
	List(ctx context.Context) ([]domain.Status, error)
}

type statusRepository struct {
	db DB
}

// NewStatusRepository constructs repository.
func NewStatusRepository(db DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Create(ctx context.Context, status *domain.Status) error {
	const query = `
        INSERT INTO statuses (name)
        VALUES ($1)
        RETURNING id`
	return r.db.QueryRow(ctx, query, status.Name).Scan(&status.ID)
}

func (r *statusRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM statuses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *statusRepository) GetByID(ctx context.Context, id int64) (*domain.Status, error) {
	var status domain.Status
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM statuses WHERE id=$1`, id).Scan(&status.ID, &status.Name); err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) GetByName(ctx context.Context, name string) (*domain.Status, error) {
	var status domain.Status
	err := r.db.QueryRow(ctx, `SELECT id, name FROM statuses WHERE name=$1`, name).Scan(&status.ID, &status.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) List(ctx context.Context) ([]domain.Status, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM statuses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Status
	for rows.Next() {
		var status domain.Status
		if err := rows.Scan(&status.ID, &status.Name); err != nil {
			return nil, err
		}
		result = append(result, status)
	}
	return result, rows.Err()
}
