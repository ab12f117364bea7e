package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// PledgeRepositoryPG implements domain.PledgeRepository backed by PostgreSQL.
type PledgeRepositoryPG struct {
	sql infra.TxSQLExecutor
}

// NewPledgeRepository creates a new PledgeRepositoryPG.
func NewPledgeRepository(sql infra.TxSQLExecutor) *PledgeRepositoryPG {
	return &PledgeRepositoryPG{sql: sql}
}

// Admit runs the admission sequence inside a transaction that locks the
// fundraiser row. The lock strictly orders concurrent admissions against the
// same fundraiser: the second one blocks on the row and sees the first's
// committed total before its capacity check.
//
// When the rejection is a deadline or goal closure, the fundraiser close is
// committed before returning, so a failed attempt still self-heals a stale
// is_open flag.
func (r *PledgeRepositoryPG) Admit(ctx context.Context, fundraiserID, supporterID string, amount int64, comment string, anonymous bool, now time.Time) (*domain.Pledge, *domain.Fundraiser, error) {
	tx, err := r.sql.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	f, err := scanFundraiser(tx.QueryRow(ctx, sqlinline.QSelectFundraiserForUpdate, fundraiserID))
	if err != nil {
		return nil, nil, err
	}

	var total int64
	if err := tx.QueryRow(ctx, sqlinline.QSumPledges, fundraiserID).Scan(&total); err != nil {
		return nil, nil, err
	}

	if admitErr := domain.CheckAdmission(f, total, supporterID, amount, now); admitErr != nil {
		var closed *domain.ClosedError
		if errors.As(admitErr, &closed) && f.Refresh(total, now) {
			if _, err := tx.Exec(ctx, sqlinline.QCloseFundraiser, f.ID); err != nil {
				return nil, nil, err
			}
			if err := tx.Commit(ctx); err != nil {
				return nil, nil, err
			}
		}
		return nil, f, admitErr
	}

	p := &domain.Pledge{
		ID:           uuid.NewString(),
		FundraiserID: fundraiserID,
		SupporterID:  supporterID,
		Amount:       amount,
		Comment:      comment,
		Anonymous:    anonymous,
		CreatedAt:    now,
	}
	if _, err := tx.Exec(ctx, sqlinline.QInsertPledge,
		p.ID, p.FundraiserID, p.SupporterID, p.Amount, p.Comment, p.Anonymous, p.CreatedAt); err != nil {
		return nil, nil, err
	}

	if f.Refresh(total+amount, now) {
		if _, err := tx.Exec(ctx, sqlinline.QCloseFundraiser, f.ID); err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return p, f, nil
}

// GetByID fetches a pledge by id.
func (r *PledgeRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Pledge, error) {
	var p domain.Pledge
	err := r.sql.QueryRow(ctx, sqlinline.QSelectPledgeByID, id).
		Scan(&p.ID, &p.FundraiserID, &p.SupporterID, &p.Amount, &p.Comment, &p.Anonymous, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns pledges matching the filter, newest first.
func (r *PledgeRepositoryPG) List(ctx context.Context, filter domain.PledgeFilter) ([]domain.Pledge, error) {
	query := sqlinline.QListPledgesBase
	var args []any

	if filter.FundraiserID != "" {
		args = append(args, filter.FundraiserID)
		query += fmt.Sprintf(" and fundraiser_id = $%d::uuid", len(args))
	}
	if filter.SupporterID != "" {
		args = append(args, filter.SupporterID)
		query += fmt.Sprintf(" and supporter_id = $%d::uuid", len(args))
	}
	if filter.Anonymous != nil {
		args = append(args, *filter.Anonymous)
		query += fmt.Sprintf(" and anonymous = $%d", len(args))
	}
	if filter.AmountLTE != nil {
		args = append(args, *filter.AmountLTE)
		query += fmt.Sprintf(" and amount <= $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" and comment ilike $%d", len(args))
	}
	query += "\norder by created_at desc;"

	rows, err := r.sql.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Pledge
	for rows.Next() {
		var p domain.Pledge
		if err := rows.Scan(&p.ID, &p.FundraiserID, &p.SupporterID, &p.Amount, &p.Comment, &p.Anonymous, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// HasAnonymousPledge reports whether the supporter holds an anonymous pledge
// on the fundraiser.
func (r *PledgeRepositoryPG) HasAnonymousPledge(ctx context.Context, fundraiserID, supporterID string) (bool, error) {
	var exists bool
	if err := r.sql.QueryRow(ctx, sqlinline.QHasAnonymousPledge, fundraiserID, supporterID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

var _ domain.PledgeRepository = (*PledgeRepositoryPG)(nil)
