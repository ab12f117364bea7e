package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// CommentRepositoryPG implements domain.CommentRepository backed by PostgreSQL.
type CommentRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewCommentRepository creates a new CommentRepositoryPG.
func NewCommentRepository(sql infra.SQLExecutor) *CommentRepositoryPG {
	return &CommentRepositoryPG{sql: sql}
}

// Create inserts a new comment.
func (r *CommentRepositoryPG) Create(ctx context.Context, c *domain.Comment) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertComment,
		c.ID, c.FundraiserID, c.AuthorID, c.ParentID, c.Content, c.Anonymous, c.CreatedAt)
	return err
}

// GetByID fetches a comment by id.
func (r *CommentRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	var c domain.Comment
	err := r.sql.QueryRow(ctx, sqlinline.QSelectCommentByID, id).
		Scan(&c.ID, &c.FundraiserID, &c.AuthorID, &c.ParentID, &c.Content, &c.Anonymous, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns comments matching the filter, oldest first so threads read in
// posting order.
func (r *CommentRepositoryPG) List(ctx context.Context, filter domain.CommentFilter) ([]domain.Comment, error) {
	query := sqlinline.QListCommentsBase
	var args []any

	if filter.FundraiserID != "" {
		args = append(args, filter.FundraiserID)
		query += fmt.Sprintf(" and fundraiser_id = $%d::uuid", len(args))
	}
	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		query += fmt.Sprintf(" and author_id = $%d::uuid", len(args))
	}
	if filter.Anonymous != nil {
		args = append(args, *filter.Anonymous)
		query += fmt.Sprintf(" and anonymous = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" and content ilike $%d", len(args))
	}
	query += "\norder by created_at asc;"

	rows, err := r.sql.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.FundraiserID, &c.AuthorID, &c.ParentID, &c.Content, &c.Anonymous, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists the mutable fields of a comment. Author, fundraiser and the
// anonymous flag are frozen at creation and not part of the statement.
func (r *CommentRepositoryPG) Update(ctx context.Context, c *domain.Comment) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateComment, c.ID, c.Content, c.ParentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the comment and its entire reply subtree.
func (r *CommentRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteCommentSubtree, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.CommentRepository = (*CommentRepositoryPG)(nil)
