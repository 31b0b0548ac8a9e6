package model

import "time"

// User is a household member who earns points by completing chores.
// TotalPoints is a cached sum of the user's ledger entries, maintained
// transactionally by the ledger.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	TotalPoints    int       `json:"total_points"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Pronouns       string    `json:"pronouns"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
}
