package domain

import "time"

// Fundraiser is a campaign collecting pledges toward a fixed goal. Goal is a
// positive integer in minor currency units. IsOpen is a cached flag kept in
// step with the goal/deadline state after every pledge-affecting mutation;
// admission decisions never trust it alone.
type Fundraiser struct {
	ID          string
	Title       string
	Description string
	Goal        int64
	Image       string
	IsOpen      bool
	Deadline    *time.Time
	OwnerID     string
	CreatedAt   time.Time
}

// DeadlinePassed reports whether a deadline is set and now is at or past it.
func (f *Fundraiser) DeadlinePassed(now time.Time) bool {
	return f.Deadline != nil && !now.Before(*f.Deadline)
}

// GoalReached reports whether the pledged total meets or exceeds the goal.
func (f *Fundraiser) GoalReached(total int64) bool {
	return total >= f.Goal
}

// AcceptingPledges reports whether the fundraiser can take new money: it must
// be open, before its deadline, and short of its goal.
func (f *Fundraiser) AcceptingPledges(total int64, now time.Time) bool {
	return f.IsOpen && !f.DeadlinePassed(now) && !f.GoalReached(total)
}

// DaysLeft returns the whole days remaining until the deadline, rounded up and
// clamped at zero, or nil when no deadline is set.
func (f *Fundraiser) DaysLeft(now time.Time) *int {
	if f.Deadline == nil {
		return nil
	}
	days := 0
	if remaining := f.Deadline.Sub(now); remaining > 0 {
		days = int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
	}
	return &days
}

// Refresh applies the open-to-closed transition in memory: when the fundraiser
// is open and the goal is reached or the deadline has passed, it flips IsOpen
// to false and reports true. It never reopens a closed fundraiser. Callers
// persist the flag only when Refresh reports a change.
func (f *Fundraiser) Refresh(total int64, now time.Time) bool {
	if !f.IsOpen {
		return false
	}
	if !f.GoalReached(total) && !f.DeadlinePassed(now) {
		return false
	}
	f.IsOpen = false
	return true
}
