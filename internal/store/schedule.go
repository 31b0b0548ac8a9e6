package store

import (
	"database/sql"
	"fmt"
	"time"

	"chorechart/internal/model"
)

type ScheduleStore struct {
	db *sql.DB
}

func NewScheduleStore(db *sql.DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

const scheduleCols = `id, chore_id, user_id, scheduled_at, created_at`

func scanSchedule(scanner interface{ Scan(...any) error }) (*model.ChoreSchedule, error) {
	var s model.ChoreSchedule

	err := scanner.Scan(&s.ID, &s.ChoreID, &s.UserID, &s.ScheduledAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	s.ScheduledAt = s.ScheduledAt.UTC()
	return &s, nil
}

func (s *ScheduleStore) Create(choreID, userID int64, scheduledAt time.Time) (*model.ChoreSchedule, error) {
	result, err := s.db.Exec(
		`INSERT INTO chore_schedules (chore_id, user_id, scheduled_at) VALUES (?, ?, ?)`,
		choreID, userID, scheduledAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert schedule: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+scheduleCols+` FROM chore_schedules WHERE id = ?`, id)
	return scanSchedule(row)
}

func (s *ScheduleStore) ListByUser(userID int64) ([]model.ChoreSchedule, error) {
	rows, err := s.db.Query(
		`SELECT `+scheduleCols+` FROM chore_schedules WHERE user_id = ? ORDER BY scheduled_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []model.ChoreSchedule
	for rows.Next() {
		sch, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, *sch)
	}
	return schedules, rows.Err()
}
