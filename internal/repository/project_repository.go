package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/atlasboard/tracker-service/internal/domain"
)

// ProjectRepository manages persistence for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, slug string) error
	GetBySlug(ctx context.Context, slug string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	AddTeam(ctx context.Context, projectSlug, teamSlug string) error
	ListTeams(ctx context.Context, projectSlug string) ([]domain.Team, error)
}

type projectRepository struct {
	db DB
}

// NewProjectRepository constructs repository.
func NewProjectRepository(db DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (slug, name, description, status, creator_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		project.Slug,
		project.Name,
		project.Description,
		project.Status,
		project.CreatorID,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET name=$1, description=$2, status=$3, updated_at=NOW()
        WHERE slug=$4`
	cmd, err := r.db.Exec(ctx, query,
		project.Name,
		project.Description,
		project.Status,
		project.Slug,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, slug string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM projects WHERE slug=$1`, slug)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	const query = `
        SELECT slug, name, description, status, creator_id, created_at, updated_at
        FROM projects WHERE slug=$1`
	var project domain.Project
	if err := r.db.QueryRow(ctx, query, slug).Scan(
		&project.Slug,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.CreatorID,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const query = `
        SELECT slug, name, description, status, creator_id, created_at, updated_at
        FROM projects ORDER BY created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Project
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(&project.Slug, &project.Name, &project.Description, &project.Status, &project.CreatorID, &project.CreatedAt, &project.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, project)
	}
	return result, rows.Err()
}

func (r *projectRepository) AddTeam(ctx context.Context, projectSlug, teamSlug string) error {
	const query = `
        INSERT INTO project_teams (project_slug, team_slug)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING`
	_, err := r.db.Exec(ctx, query, projectSlug, teamSlug)
	return err
}

func (r *projectRepository) ListTeams(ctx context.Context, projectSlug string) ([]domain.Team, error) {
	const query = `
        SELECT t.slug, t.name, t.creator_id, t.created_at, t.updated_at
        FROM teams t
        JOIN project_teams pt ON pt.team_slug = t.slug
        WHERE pt.project_slug=$1
        ORDER BY t.slug`
	rows, err := r.db.Query(ctx, query, projectSlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Team
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.Slug, &team.Name, &team.CreatorID, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, team)
	}
	return result, rows.Err()
}
