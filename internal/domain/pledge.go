package domain

import "time"

// Pledge is an immutable commitment of money toward a fundraiser. Pledges are
// created through admission only and never updated or deleted afterward; they
// disappear solely when their fundraiser is deleted.
type Pledge struct {
	ID           string
	FundraiserID string
	SupporterID  string
	Amount       int64
	Comment      string
	Anonymous    bool
	CreatedAt    time.Time
}

// CheckAdmission evaluates whether a pledge of the given amount by the given
// supporter may be admitted against the fundraiser, with total being the sum
// already pledged. Checks run in a fixed order and the first failure wins:
//
//  1. amount must be positive (ErrInvalidInput)
//  2. supporter must be authenticated (ErrUnauthorized)
//  3. supporter must not own the fundraiser (ErrSelfPledge)
//  4. deadline must not have passed (ClosedError, deadline)
//  5. goal must not already be reached (ClosedError, goal_reached)
//  6. the fundraiser must not have been closed by its owner (ClosedError, owner)
//  7. total+amount must not overshoot the goal (ErrGoalExceeded)
//
// The caller owns serialization: total must be read under the same lock that
// protects the eventual insert, or two racing admissions can both pass check 7.
func CheckAdmission(f *Fundraiser, total int64, supporterID string, amount int64, now time.Time) error {
	if amount <= 0 {
		return ErrInvalidInput
	}
	if supporterID == "" {
		return ErrUnauthorized
	}
	if supporterID == f.OwnerID {
		return ErrSelfPledge
	}
	if f.DeadlinePassed(now) {
		return &ClosedError{Reason: ClosedReasonDeadline}
	}
	if f.GoalReached(total) {
		return &ClosedError{Reason: ClosedReasonGoalReached}
	}
	if !f.IsOpen {
		return &ClosedError{Reason: ClosedReasonOwner}
	}
	if total+amount > f.Goal {
		return ErrGoalExceeded
	}
	return nil
}
