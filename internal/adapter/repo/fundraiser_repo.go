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

// FundraiserRepositoryPG implements domain.FundraiserRepository backed by PostgreSQL.
type FundraiserRepositoryPG struct {
	sql infra.TxSQLExecutor
}

// NewFundraiserRepository creates a new FundraiserRepositoryPG.
func NewFundraiserRepository(sql infra.TxSQLExecutor) *FundraiserRepositoryPG {
	return &FundraiserRepositoryPG{sql: sql}
}

// Create inserts a new fundraiser.
func (r *FundraiserRepositoryPG) Create(ctx context.Context, f *domain.Fundraiser) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertFundraiser,
		f.ID, f.Title, f.Description, f.Goal, f.Image, f.IsOpen, f.Deadline, f.OwnerID, f.CreatedAt)
	return err
}

// GetByID fetches a fundraiser by id.
func (r *FundraiserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Fundraiser, error) {
	return scanFundraiser(r.sql.QueryRow(ctx, sqlinline.QSelectFundraiserByID, id))
}

// List returns fundraisers matching the filter, newest first.
func (r *FundraiserRepositoryPG) List(ctx context.Context, filter domain.FundraiserFilter) ([]domain.Fundraiser, error) {
	query := sqlinline.QListFundraisersBase
	var args []any

	if filter.IsOpen != nil {
		args = append(args, *filter.IsOpen)
		query += fmt.Sprintf(" and is_open = $%d", len(args))
	}
	if filter.GoalLTE != nil {
		args = append(args, *filter.GoalLTE)
		query += fmt.Sprintf(" and goal <= $%d", len(args))
	}
	if filter.GoalGTE != nil {
		args = append(args, *filter.GoalGTE)
		query += fmt.Sprintf(" and goal >= $%d", len(args))
	}
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		query += fmt.Sprintf(" and owner_id = $%d::uuid", len(args))
	}
	if filter.HasDeadline != nil {
		if *filter.HasDeadline {
			query += " and deadline is not null"
		} else {
			query += " and deadline is null"
		}
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" and (title ilike $%d or description ilike $%d)", len(args), len(args))
	}
	query += "\norder by created_at desc;"

	rows, err := r.sql.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Fundraiser
	for rows.Next() {
		var f domain.Fundraiser
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.Goal, &f.Image, &f.IsOpen, &f.Deadline, &f.OwnerID, &f.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists all mutable fields of the fundraiser.
func (r *FundraiserRepositoryPG) Update(ctx context.Context, f *domain.Fundraiser) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateFundraiser,
		f.ID, f.Title, f.Description, f.Goal, f.Image, f.IsOpen, f.Deadline)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the fundraiser with its pledges and comments in one
// transaction. Comments go first so the parent self-reference never dangles.
func (r *FundraiserRepositoryPG) Delete(ctx context.Context, id string) error {
	tx, err := r.sql.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, sqlinline.QDeleteCommentsByFundraiser, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sqlinline.QDeletePledgesByFundraiser, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, sqlinline.QDeleteFundraiser, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit(ctx)
}

// TotalPledged sums the committed pledge amounts for the fundraiser.
func (r *FundraiserRepositoryPG) TotalPledged(ctx context.Context, fundraiserID string) (int64, error) {
	var total int64
	if err := r.sql.QueryRow(ctx, sqlinline.QSumPledges, fundraiserID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Close flips is_open to false and reports whether a row changed.
func (r *FundraiserRepositoryPG) Close(ctx context.Context, id string) (bool, error) {
	tag, err := r.sql.Exec(ctx, sqlinline.QCloseFundraiser, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanFundraiser(row pgx.Row) (*domain.Fundraiser, error) {
	var f domain.Fundraiser
	if err := row.Scan(&f.ID, &f.Title, &f.Description, &f.Goal, &f.Image, &f.IsOpen, &f.Deadline, &f.OwnerID, &f.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

var _ domain.FundraiserRepository = (*FundraiserRepositoryPG)(nil)
