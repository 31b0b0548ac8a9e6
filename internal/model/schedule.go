package model

import "time"

// ChoreSchedule is advisory bookkeeping for a dispatched calendar invite.
// It is written best-effort; the invite is delivered whether or not this
// row persists.
type ChoreSchedule struct {
	ID          int64     `json:"id"`
	ChoreID     int64     `json:"chore_id"`
	UserID      int64     `json:"user_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`
}
