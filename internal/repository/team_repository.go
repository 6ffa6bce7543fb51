package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/atlasboard/tracker-service/internal/domain"
)

// TeamRepository manages persistence for teams and their membership.
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	Update(ctx context.Context, team *domain.Team) error
	Delete(ctx context.Context, slug string) error
	GetBySlug(ctx context.Context, slug string) (*domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
	AddMember(ctx context.Context, slug, userID string) error
	RemoveMember(ctx context.Context, slug, userID string) error
	ListMembers(ctx context.Context, slug string) ([]domain.User, error)
	MissingSlugs(ctx context.Context, slugs []string) ([]string, error)
}

type teamRepository struct {
	db DB
}

// NewTeamRepository constructs repository.
func NewTeamRepository(db DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	const query = `
        INSERT INTO teams (slug, name, creator_id)
        VALUES ($1, $2, $3)
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		team.Slug,
		team.Name,
		team.CreatorID,
	).Scan(&team.CreatedAt, &team.UpdatedAt)
}

func (r *teamRepository) Update(ctx context.Context, team *domain.Team) error {
	const query = `
        UPDATE teams SET name=$1, updated_at=NOW()
        WHERE slug=$2`
	cmd, err := r.db.Exec(ctx, query, team.Name, team.Slug)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *teamRepository) Delete(ctx context.Context, slug string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM teams WHERE slug=$1`, slug)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *teamRepository) GetBySlug(ctx context.Context, slug string) (*domain.Team, error) {
	const query = `
        SELECT slug, name, creator_id, created_at, updated_at
        FROM teams WHERE slug=$1`
	var team domain.Team
	if err := r.db.QueryRow(ctx, query, slug).Scan(
		&team.Slug,
		&team.Name,
		&team.CreatorID,
		&team.CreatedAt,
		&team.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) List(ctx context.Context) ([]domain.Team, error) {
	const query = `
        SELECT slug, name, creator_id, created_at, updated_at
        FROM teams ORDER BY created_at`
	rows, err := r.db.Query(ctx, query)
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

func (r *teamRepository) AddMember(ctx context.Context, slug, userID string) error {
	const query = `
        INSERT INTO team_members (team_slug, user_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING`
	_, err := r.db.Exec(ctx, query, slug, userID)
	return err
}

func (r *teamRepository) RemoveMember(ctx context.Context, slug, userID string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM team_members WHERE team_slug=$1 AND user_id=$2`, slug, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *teamRepository) ListMembers(ctx context.Context, slug string) ([]domain.User, error) {
	const query = `
        SELECT u.id, u.username, u.email, u.password_hash, u.position, u.created_at, u.updated_at
        FROM users u
        JOIN team_members tm ON tm.user_id = u.id
        WHERE tm.team_slug=$1
        ORDER BY u.username`
	rows, err := r.db.Query(ctx, query, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Position, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

// MissingSlugs returns the subset of slugs that do not exist, preserving the
// caller's order so the first missing one can be named in the error.
func (r *teamRepository) MissingSlugs(ctx context.Context, slugs []string) ([]string, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `SELECT slug FROM teams WHERE slug = ANY($1)`, slugs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[string]struct{}, len(slugs))
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		found[slug] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []string
	for _, slug := range slugs {
		if _, ok := found[slug]; !ok {
			missing = append(missing, slug)
		}
	}
	return missing, nil
}
