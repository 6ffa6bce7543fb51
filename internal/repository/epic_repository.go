package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/atlasboard/tracker-service/internal/domain"
)

// EpicRepository manages persistence for epics.
type EpicRepository interface {
	Create(ctx context.Context, epic *domain.Epic) error
	Update(ctx context.Context, epic *domain.Epic) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Epic, error)
	List(ctx context.Context) ([]domain.Epic, error)
	ListByProject(ctx context.Context, projectSlug string) ([]domain.Epic, error)
}

type epicRepository struct {
	db DB
}

// NewEpicRepository constructs repository.
func NewEpicRepository(db DB) EpicRepository {
	return &epicRepository{db: db}
}

const epicColumns = `id, title, description, priority, status_id, project_slug, creator_id, assignee_id, created_at, updated_at`

func (r *epicRepository) Create(ctx context.Context, epic *domain.Epic) error {
	const query = `
        INSERT INTO epics (title, description, priority, status_id, project_slug, creator_id, assignee_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		epic.Title,
		epic.Description,
		epic.Priority,
		epic.StatusID,
		epic.ProjectSlug,
		epic.CreatorID,
		epic.AssigneeID,
	).Scan(&epic.ID, &epic.CreatedAt, &epic.UpdatedAt)
}

func (r *epicRepository) Update(ctx context.Context, epic *domain.Epic) error {
	const query = `
        UPDATE epics SET title=$1, description=$2, priority=$3, status_id=$4, assignee_id=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.db.Exec(ctx, query,
		epic.Title,
		epic.Description,
		epic.Priority,
		epic.StatusID,
		epic.AssigneeID,
		epic.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *epicRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM epics WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *epicRepository) GetByID(ctx context.Context, id int64) (*domain.Epic, error) {
	var epic domain.Epic
	if err := r.db.QueryRow(ctx, `SELECT `+epicColumns+` FROM epics WHERE id=$1`, id).Scan(
		&epic.ID,
		&epic.Title,
		&epic.Description,
		&epic.Priority,
		&epic.StatusID,
		&epic.ProjectSlug,
		&epic.CreatorID,
		&epic.AssigneeID,
		&epic.CreatedAt,
		&epic.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &epic, nil
}

func (r *epicRepository) List(ctx context.Context) ([]domain.Epic, error) {
	return r.list(ctx, `SELECT `+epicColumns+` FROM epics ORDER BY id`)
}

func (r *epicRepository) ListByProject(ctx context.Context, projectSlug string) ([]domain.Epic, error) {
	return r.list(ctx, `SELECT `+epicColumns+` FROM epics WHERE project_slug=$1 ORDER BY id`, projectSlug)
}

func (r *epicRepository) list(ctx context.Context, query string, args ...any) ([]domain.Epic, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Epic
	for rows.Next() {
		var epic domain.Epic
		if err := rows.Scan(&epic.ID, &epic.Title, &epic.Description, &epic.Priority, &epic.StatusID, &epic.ProjectSlug, &epic.CreatorID, &epic.AssigneeID, &epic.CreatedAt, &epic.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, epic)
	}
	return result, rows.Err()
}
