package domain

import "time"

// Comment is a remark on a fundraiser, optionally a reply to another comment
// on the same fundraiser. Anonymous is derived once at creation time from the
// author's pledge history and frozen; edits never re-derive it.
type Comment struct {
	ID           string
	FundraiserID string
	AuthorID     string
	ParentID     *string
	Content      string
	Anonymous    bool
	CreatedAt    time.Time
}

// ValidateReply checks that a parent comment may take replies for the given
// fundraiser. Cross-fundraiser replies are rejected.
func ValidateReply(parent *Comment, fundraiserID string) error {
	if parent == nil {
		return ErrInvalidInput
	}
	if parent.FundraiserID != fundraiserID {
		return ErrInvalidInput
	}
	return nil
}
