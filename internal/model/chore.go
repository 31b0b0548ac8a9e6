package model

import "time"

// Chore is a unit of work with a point value. A non-recurring chore is
// retired (soft-deleted) on its first completion; a recurring chore stays
// active indefinitely.
type Chore struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Points      int       `json:"points"`
	IsRecurring bool      `json:"is_recurring"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`

	// LastCompletedAt is only populated for recurring chores with at least
	// one ledger entry. Absence means never completed.
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
}

// ChoreLog is one immutable ledger entry: a chore completed by a user, with
// the chore's point value frozen at completion time. Rows are never updated
// or deleted outside the administrative user purge.
type ChoreLog struct {
	ID           int64     `json:"id"`
	ChoreID      int64     `json:"chore_id"`
	UserID       int64     `json:"user_id"`
	PointsEarned int       `json:"points_earned"`
	CompletedAt  time.Time `json:"completed_at"`
	ChoreTitle   string    `json:"chore_title"`
	Username     string    `json:"username"`
}
