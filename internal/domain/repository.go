package domain

import (
	"context"
	"time"
)

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

// FundraiserFilter narrows fundraiser listings. Nil pointer fields and empty
// strings mean "no constraint".
type FundraiserFilter struct {
	IsOpen      *bool
	GoalLTE     *int64
	GoalGTE     *int64
	OwnerID     string
	HasDeadline *bool
	Search      string
}

// FundraiserRepository defines persistence for fundraisers, including the
// derived-state helpers the lifecycle needs.
type FundraiserRepository interface {
	Create(ctx context.Context, f *Fundraiser) error
	GetByID(ctx context.Context, id string) (*Fundraiser, error)
	List(ctx context.Context, filter FundraiserFilter) ([]Fundraiser, error)
	Update(ctx context.Context, f *Fundraiser) error
	// Delete removes the fundraiser together with its pledges and comments
	// (reply subtrees included) as one transaction.
	Delete(ctx context.Context, id string) error
	// TotalPledged sums the amounts of all pledges on the fundraiser.
	TotalPledged(ctx context.Context, fundraiserID string) (int64, error)
	// Close flips is_open to false if it is currently true and reports whether
	// a row changed. It never reopens.
	Close(ctx context.Context, id string) (bool, error)
}

// PledgeFilter narrows pledge listings.
type PledgeFilter struct {
	FundraiserID string
	SupporterID  string
	Anonymous    *bool
	AmountLTE    *int64
	Search       string
}

// PledgeRepository defines pledge persistence. There is deliberately no update
// or delete: pledges are immutable once admitted.
type PledgeRepository interface {
	// Admit runs the full admission sequence for a new pledge under a
	// per-fundraiser serialization discipline. On success it returns the
	// persisted pledge and the fundraiser with any status flip applied. On a
	// deadline or goal rejection the fundraiser close side effect is persisted
	// before the error is returned, and the returned fundraiser reflects it.
	Admit(ctx context.Context, fundraiserID, supporterID string, amount int64, comment string, anonymous bool, now time.Time) (*Pledge, *Fundraiser, error)
	GetByID(ctx context.Context, id string) (*Pledge, error)
	List(ctx context.Context, filter PledgeFilter) ([]Pledge, error)
	// HasAnonymousPledge reports whether the supporter has at least one
	// anonymous pledge on the fundraiser.
	HasAnonymousPledge(ctx context.Context, fundraiserID, supporterID string) (bool, error)
}

// CommentFilter narrows comment listings.
type CommentFilter struct {
	FundraiserID string
	AuthorID     string
	Anonymous    *bool
	Search       string
}

// CommentRepository defines comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	List(ctx context.Context, filter CommentFilter) ([]Comment, error)
	Update(ctx context.Context, c *Comment) error
	// Delete removes the comment and its entire reply subtree.
	Delete(ctx context.Context, id string) error
}

// ContactRepository stores inbound contact messages.
type ContactRepository interface {
	Create(ctx context.Context, m *ContactMessage) error
}
