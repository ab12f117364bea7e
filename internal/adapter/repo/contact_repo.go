package repo

import (
	"context"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// ContactRepositoryPG implements domain.ContactRepository backed by PostgreSQL.
type ContactRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewContactRepository creates a new ContactRepositoryPG.
func NewContactRepository(sql infra.SQLExecutor) *ContactRepositoryPG {
	return &ContactRepositoryPG{sql: sql}
}

// Create stores an inbound contact message.
func (r *ContactRepositoryPG) Create(ctx context.Context, m *domain.ContactMessage) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertContactMessage,
		m.ID, m.Name, m.Email, m.Message, m.Country, m.Locale, m.CreatedAt)
	return err
}

var _ domain.ContactRepository = (*ContactRepositoryPG)(nil)
