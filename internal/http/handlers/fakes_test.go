package handlers_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
)

// memState is a shared in-memory database. Slices keep insertion order, which
// stands in for the created_at ordering of the SQL repositories. A single
// mutex serializes every operation, mirroring the row lock the real admission
// path takes.
type memState struct {
	mu          sync.Mutex
	users       []domain.User
	fundraisers []domain.Fundraiser
	pledges     []domain.Pledge
	comments    []domain.Comment
	contacts    []domain.ContactMessage
}

type memUsers struct{ s *memState }

func (m *memUsers) Create(_ context.Context, user *domain.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("duplicate user: %w", domain.ErrInvalidInput)
		}
	}
	m.s.users = append(m.s.users, *user)
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) List(_ context.Context) ([]domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]domain.User, len(m.s.users))
	copy(out, m.s.users)
	return out, nil
}

type memFundraisers struct{ s *memState }

func (m *memFundraisers) Create(_ context.Context, f *domain.Fundraiser) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.fundraisers = append(m.s.fundraisers, *f)
	return nil
}

func (m *memFundraisers) GetByID(_ context.Context, id string) (*domain.Fundraiser, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	f, ok := m.findLocked(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

func (m *memFundraisers) findLocked(id string) (domain.Fundraiser, bool) {
	for _, f := range m.s.fundraisers {
		if f.ID == id {
			return f, true
		}
	}
	return domain.Fundraiser{}, false
}

func (m *memFundraisers) List(_ context.Context, filter domain.FundraiserFilter) ([]domain.Fundraiser, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]domain.Fundraiser, 0, len(m.s.fundraisers))
	for _, f := range m.s.fundraisers {
		if filter.IsOpen != nil && f.IsOpen != *filter.IsOpen {
			continue
		}
		if filter.GoalLTE != nil && f.Goal > *filter.GoalLTE {
			continue
		}
		if filter.GoalGTE != nil && f.Goal < *filter.GoalGTE {
			continue
		}
		if filter.OwnerID != "" && f.OwnerID != filter.OwnerID {
			continue
		}
		if filter.HasDeadline != nil && (f.Deadline != nil) != *filter.HasDeadline {
			continue
		}
		if filter.Search != "" && !containsFold(f.Title, filter.Search) && !containsFold(f.Description, filter.Search) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (m *memFundraisers) Update(_ context.Context, f *domain.Fundraiser) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.fundraisers {
		if m.s.fundraisers[i].ID == f.ID {
			m.s.fundraisers[i] = *f
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memFundraisers) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	idx := -1
	for i := range m.s.fundraisers {
		if m.s.fundraisers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	m.s.fundraisers = append(m.s.fundraisers[:idx], m.s.fundraisers[idx+1:]...)

	pledges := m.s.pledges[:0]
	for _, p := range m.s.pledges {
		if p.FundraiserID != id {
			pledges = append(pledges, p)
		}
	}
	m.s.pledges = pledges

	comments := m.s.comments[:0]
	for _, c := range m.s.comments {
		if c.FundraiserID != id {
			comments = append(comments, c)
		}
	}
	m.s.comments = comments
	return nil
}

func (m *memFundraisers) TotalPledged(_ context.Context, fundraiserID string) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.totalLocked(fundraiserID), nil
}

func (m *memFundraisers) totalLocked(fundraiserID string) int64 {
	var total int64
	for _, p := range m.s.pledges {
		if p.FundraiserID == fundraiserID {
			total += p.Amount
		}
	}
	return total
}

func (m *memFundraisers) Close(_ context.Context, id string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.fundraisers {
		if m.s.fundraisers[i].ID == id {
			if !m.s.fundraisers[i].IsOpen {
				return false, nil
			}
			m.s.fundraisers[i].IsOpen = false
			return true, nil
		}
	}
	return false, domain.ErrNotFound
}

type memPledges struct{ s *memState }

func (m *memPledges) Admit(_ context.Context, fundraiserID, supporterID string, amount int64, comment string, anonymous bool, now time.Time) (*domain.Pledge, *domain.Fundraiser, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var f *domain.Fundraiser
	for i := range m.s.fundraisers {
		if m.s.fundraisers[i].ID == fundraiserID {
			f = &m.s.fundraisers[i]
			break
		}
	}
	if f == nil {
		return nil, nil, domain.ErrNotFound
	}

	var total int64
	for _, p := range m.s.pledges {
		if p.FundraiserID == fundraiserID {
			total += p.Amount
		}
	}

	if err := domain.CheckAdmission(f, total, supporterID, amount, now); err != nil {
		f.Refresh(total, now)
		out := *f
		return nil, &out, err
	}

	p := domain.Pledge{
		ID:           uuid.NewString(),
		FundraiserID: fundraiserID,
		SupporterID:  supporterID,
		Amount:       amount,
		Comment:      comment,
		Anonymous:    anonymous,
		CreatedAt:    now,
	}
	m.s.pledges = append(m.s.pledges, p)
	f.Refresh(total+amount, now)
	out := *f
	return &p, &out, nil
}

func (m *memPledges) GetByID(_ context.Context, id string) (*domain.Pledge, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, p := range m.s.pledges {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memPledges) List(_ context.Context, filter domain.PledgeFilter) ([]domain.Pledge, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]domain.Pledge, 0, len(m.s.pledges))
	for _, p := range m.s.pledges {
		if filter.FundraiserID != "" && p.FundraiserID != filter.FundraiserID {
			continue
		}
		if filter.SupporterID != "" && p.SupporterID != filter.SupporterID {
			continue
		}
		if filter.Anonymous != nil && p.Anonymous != *filter.Anonymous {
			continue
		}
		if filter.AmountLTE != nil && p.Amount > *filter.AmountLTE {
			continue
		}
		if filter.Search != "" && !containsFold(p.Comment, filter.Search) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memPledges) HasAnonymousPledge(_ context.Context, fundraiserID, supporterID string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, p := range m.s.pledges {
		if p.FundraiserID == fundraiserID && p.SupporterID == supporterID && p.Anonymous {
			return true, nil
		}
	}
	return false, nil
}

type memComments struct{ s *memState }

func (m *memComments) Create(_ context.Context, c *domain.Comment) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.comments = append(m.s.comments, *c)
	return nil
}

func (m *memComments) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, c := range m.s.comments {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memComments) List(_ context.Context, filter domain.CommentFilter) ([]domain.Comment, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]domain.Comment, 0, len(m.s.comments))
	for _, c := range m.s.comments {
		if filter.FundraiserID != "" && c.FundraiserID != filter.FundraiserID {
			continue
		}
		if filter.AuthorID != "" && c.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Anonymous != nil && c.Anonymous != *filter.Anonymous {
			continue
		}
		if filter.Search != "" && !containsFold(c.Content, filter.Search) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *memComments) Update(_ context.Context, c *domain.Comment) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.comments {
		if m.s.comments[i].ID == c.ID {
			m.s.comments[i] = *c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memComments) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	doomed := map[string]bool{id: true}
	for changed := true; changed; {
		changed = false
		for _, c := range m.s.comments {
			if c.ParentID != nil && doomed[*c.ParentID] && !doomed[c.ID] {
				doomed[c.ID] = true
				changed = true
			}
		}
	}
	kept := m.s.comments[:0]
	found := false
	for _, c := range m.s.comments {
		if doomed[c.ID] {
			found = found || c.ID == id
			continue
		}
		kept = append(kept, c)
	}
	m.s.comments = kept
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

type memContacts struct{ s *memState }

func (m *memContacts) Create(_ context.Context, msg *domain.ContactMessage) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.contacts = append(m.s.contacts, *msg)
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
