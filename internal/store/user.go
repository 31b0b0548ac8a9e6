package store

import (
	"database/sql"
	"fmt"

	"chorechart/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userCols = `id, username, total_points, first_name, last_name, pronouns, email, profile_picture, created_at`

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(
		&u.ID, &u.Username, &u.TotalPoints, &u.FirstName, &u.LastName,
		&u.Pronouns, &u.Email, &u.ProfilePicture, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) Create(username string) (*model.User, error) {
	result, err := s.db.Exec(`INSERT INTO users (username) VALUES (?)`, username)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByUsername(username string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// List returns all users, highest point total first.
func (s *UserStore) List() ([]model.User, error) {
	rows, err := s.db.Query(`SELECT ` + userCols + ` FROM users ORDER BY total_points DESC, username ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// ListWithPoints returns users with a positive point total, for the
// distribution view. Zero-point users are a display filter, not missing data.
func (s *UserStore) ListWithPoints() ([]model.User, error) {
	rows, err := s.db.Query(`SELECT ` + userCols + ` FROM users WHERE total_points > 0 ORDER BY total_points DESC, username ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users with points: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *UserStore) Update(id int64, firstName, lastName, pronouns, email, profilePicture string) (*model.User, error) {
	_, err := s.db.Exec(
		`UPDATE users SET first_name = ?, last_name = ?, pronouns = ?, email = ?, profile_picture = ? WHERE id = ?`,
		firstName, lastName, pronouns, email, profilePicture, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes the user and purges their ledger entries and schedules in
// one transaction. Administrative escape hatch; normal operation never
// deletes users.
func (s *UserStore) Delete(id int64) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM chore_logs WHERE user_id = ?`, id); err != nil {
		return false, fmt.Errorf("purge logs: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM chore_schedules WHERE user_id = ?`, id); err != nil {
		return false, fmt.Errorf("purge schedules: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return rows > 0, nil
}
