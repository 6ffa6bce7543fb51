package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/atlasboard/tracker-service/internal/domain"
)

// CommentRepository manages persistence for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	List(ctx context.Context) ([]domain.Comment, error)
	ListByEpic(ctx context.Context, epicID int64) ([]domain.Comment, error)
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error)
}

type commentRepository struct {
	db DB
}

// NewCommentRepository constructs repository.
func NewCommentRepository(db DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `id, content, creator_id, epic_id, ticket_id, created_at, updated_at`

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (content, creator_id, epic_id, ticket_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		comment.Content,
		comment.CreatorID,
		comment.EpicID,
		comment.TicketID,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	const query = `
        UPDATE comments SET content=$1, updated_at=NOW()
        WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, comment.Content, comment.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id=$1`, id).Scan(
		&comment.ID,
		&comment.Content,
		&comment.CreatorID,
		&comment.EpicID,
		&comment.TicketID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) List(ctx context.Context) ([]domain.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments ORDER BY id`)
}

func (r *commentRepository) ListByEpic(ctx context.Context, epicID int64) ([]domain.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments WHERE epic_id=$1 ORDER BY id`, epicID)
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments WHERE ticket_id=$1 ORDER BY id`, ticketID)
}

func (r *commentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(&comment.ID, &comment.Content, &comment.CreatorID, &comment.EpicID, &comment.TicketID, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
