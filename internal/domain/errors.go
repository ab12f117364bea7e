package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrSelfPledge       = errors.New("cannot pledge to own fundraiser")
	ErrGoalExceeded     = errors.New("pledge would exceed fundraiser goal")
	ErrFundraiserClosed = errors.New("fundraiser closed")
)

// ClosedReason records why a fundraiser stopped accepting pledges.
type ClosedReason string

const (
	ClosedReasonDeadline    ClosedReason = "deadline"
	ClosedReasonGoalReached ClosedReason = "goal_reached"
	ClosedReasonOwner       ClosedReason = "owner"
)

// ClosedError is returned when a pledge is rejected because the fundraiser is
// no longer accepting money. It unwraps to ErrFundraiserClosed so callers can
// match with errors.Is while still reading the reason.
type ClosedError struct {
	Reason ClosedReason
}

func (e *ClosedError) Error() string {
	return fmt.Sprintf("fundraiser closed (%s)", e.Reason)
}

func (e *ClosedError) Unwrap() error {
	return ErrFundraiserClosed
}
