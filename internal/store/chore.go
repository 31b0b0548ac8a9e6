package store

import (
	"database/sql"
	"fmt"

	"chorechart/internal/model"
)

type ChoreStore struct {
	db *sql.DB
}

func NewChoreStore(db *sql.DB) *ChoreStore {
	return &ChoreStore{db: db}
}

const choreCols = `id, title, description, location, points, is_recurring, is_deleted, created_at`

func scanChore(scanner interface{ Scan(...any) error }) (*model.Chore, error) {
	var c model.Chore
	var recurring, deleted int

	err := scanner.Scan(
		&c.ID, &c.Title, &c.Description, &c.Location, &c.Points,
		&recurring, &deleted, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.IsRecurring = recurring != 0
	c.IsDeleted = deleted != 0
	return &c, nil
}

func (s *ChoreStore) Create(title, description, location string, points int, recurring bool) (*model.Chore, error) {
	var rec int
	if recurring {
		rec = 1
	}
	if location == "" {
		location = "Inside"
	}

	result, err := s.db.Exec(
		`INSERT INTO chores (title, description, location, points, is_recurring) VALUES (?, ?, ?, ?, ?)`,
		title, description, location, points, rec,
	)
	if err != nil {
		return nil, fmt.Errorf("insert chore: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// GetByID returns the chore regardless of retired status; retired chores
// stay addressable for historical joins. Returns nil when the id is unknown.
func (s *ChoreStore) GetByID(id int64) (*model.Chore, error) {
	row := s.db.QueryRow(`SELECT `+choreCols+` FROM chores WHERE id = ?`, id)
	c, err := scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", err)
	}
	return c, nil
}

// ListActive returns non-retired chores, newest-created first. Recurring
// chores that have been completed at least once carry their most recent
// completion timestamp.
func (s *ChoreStore) ListActive() ([]model.Chore, error) {
	rows, err := s.db.Query(`
		SELECT ` + choreCols + `,
		       (SELECT MAX(completed_at) FROM chore_logs WHERE chore_id = chores.id)
		FROM chores
		WHERE is_deleted = 0
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	defer rows.Close()

	var chores []model.Chore
	for rows.Next() {
		var c model.Chore
		var recurring, deleted int
		var last sql.NullString

		err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Location, &c.Points,
			&recurring, &deleted, &c.CreatedAt, &last,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}
		c.IsRecurring = recurring != 0
		c.IsDeleted = deleted != 0

		// The MAX() expression has no decltype, so it arrives as text
		if c.IsRecurring && last.Valid {
			t, err := parseStoredTime(last.String)
			if err != nil {
				return nil, fmt.Errorf("parse last completion: %w", err)
			}
			c.LastCompletedAt = &t
		}
		chores = append(chores, c)
	}
	return chores, rows.Err()
}

func (s *ChoreStore) Update(id int64, title, description, location string, points int, recurring bool) (*model.Chore, error) {
	var rec int
	if recurring {
		rec = 1
	}

	_, err := s.db.Exec(
		`UPDATE chores SET title = ?, description = ?, location = ?, points = ?, is_recurring = ? WHERE id = ?`,
		title, description, location, points, rec, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update chore: %w", err)
	}
	return s.GetByID(id)
}

// Retire soft-deletes the chore. Retiring an already-retired chore is a
// no-op success. The bool reports whether the id exists at all.
func (s *ChoreStore) Retire(id int64) (bool, error) {
	result, err := s.db.Exec(`UPDATE chores SET is_deleted = 1 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("retire chore: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows > 0, nil
}
