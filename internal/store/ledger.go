package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chorechart/internal/model"
)

// timeLayout matches SQLite's datetime('now') output. All timestamps are
// stored as UTC text in this layout so range comparisons stay lexicographic.
const timeLayout = "2006-01-02 15:04:05"

var (
	ErrChoreNotFound = errors.New("chore not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrChoreRetired  = errors.New("chore already retired")
)

// LedgerStore owns the append-only chore_logs table and the cached
// users.total_points counter derived from it.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// CompletionResult is the outcome of one recorded completion.
type CompletionResult struct {
	Entry     model.ChoreLog
	UserTotal int
}

// RecordCompletion appends a ledger entry for the chore/user pair,
// increments the user's point total by the chore's current point value, and
// retires the chore when it is non-recurring, all in one transaction.
//
// The conditional retire runs first and doubles as the concurrency claim:
// of two racing completions of the same non-recurring chore, exactly one
// observes an affected row; the other gets ErrChoreRetired.
func (s *LedgerStore) RecordCompletion(choreID, userID int64) (*CompletionResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE chores
		SET is_deleted = CASE WHEN is_recurring = 0 THEN 1 ELSE is_deleted END
		WHERE id = ? AND is_deleted = 0`,
		choreID,
	)
	if err != nil {
		return nil, fmt.Errorf("claim chore: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		var one int
		err := tx.QueryRow(`SELECT 1 FROM chores WHERE id = ?`, choreID).Scan(&one)
		if err == sql.ErrNoRows {
			return nil, ErrChoreNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("look up chore: %w", err)
		}
		return nil, ErrChoreRetired
	}

	var points int
	if err := tx.QueryRow(`SELECT points FROM chores WHERE id = ?`, choreID).Scan(&points); err != nil {
		return nil, fmt.Errorf("read chore points: %w", err)
	}

	result, err = tx.Exec(`UPDATE users SET total_points = total_points + ? WHERE id = ?`, points, userID)
	if err != nil {
		return nil, fmt.Errorf("credit user: %w", err)
	}
	rows, err = result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrUserNotFound
	}

	completedAt := time.Now().UTC().Truncate(time.Second)
	result, err = tx.Exec(
		`INSERT INTO chore_logs (chore_id, user_id, points_earned, completed_at) VALUES (?, ?, ?, ?)`,
		choreID, userID, points, completedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert log: %w", err)
	}
	logID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	var total int
	if err := tx.QueryRow(`SELECT total_points FROM users WHERE id = ?`, userID).Scan(&total); err != nil {
		return nil, fmt.Errorf("read user total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &CompletionResult{
		Entry: model.ChoreLog{
			ID:           logID,
			ChoreID:      choreID,
			UserID:       userID,
			PointsEarned: points,
			CompletedAt:  completedAt,
		},
		UserTotal: total,
	}, nil
}

const logCols = `l.id, l.chore_id, l.user_id, l.points_earned, l.completed_at, c.title, u.username`

// DATETIME-declared columns come back from the driver as time.Time, so they
// are scanned directly. Only expression columns (no decltype) return the
// stored text; parseStoredTime handles those.
func scanLog(scanner interface{ Scan(...any) error }) (*model.ChoreLog, error) {
	var l model.ChoreLog

	err := scanner.Scan(&l.ID, &l.ChoreID, &l.UserID, &l.PointsEarned, &l.CompletedAt, &l.ChoreTitle, &l.Username)
	if err != nil {
		return nil, err
	}

	l.CompletedAt = l.CompletedAt.UTC()
	return &l, nil
}

// parseStoredTime parses a timestamp that bypassed the driver's DATETIME
// conversion. Accepts the stored layout and RFC 3339 for values that were
// converted and re-serialized along the way.
func parseStoredTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(timeLayout, s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t.UTC(), nil
}

func (s *LedgerStore) CountLogs() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chore_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count logs: %w", err)
	}
	return n, nil
}

// ListLogsPage returns ledger entries newest-first, joined with chore title
// and username for display.
func (s *LedgerStore) ListLogsPage(limit, offset int) ([]model.ChoreLog, error) {
	rows, err := s.db.Query(`
		SELECT `+logCols+`
		FROM chore_logs l
		JOIN chores c ON c.id = l.chore_id
		JOIN users u ON u.id = l.user_id
		ORDER BY l.completed_at DESC, l.id DESC
		LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list logs page: %w", err)
	}
	defer rows.Close()

	var logs []model.ChoreLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// ListLogsSince returns ledger entries with completed_at >= since, oldest
// first.
func (s *LedgerStore) ListLogsSince(since time.Time) ([]model.ChoreLog, error) {
	rows, err := s.db.Query(`
		SELECT `+logCols+`
		FROM chore_logs l
		JOIN chores c ON c.id = l.chore_id
		JOIN users u ON u.id = l.user_id
		WHERE l.completed_at >= ?
		ORDER BY l.completed_at ASC, l.id ASC`,
		since.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("list logs since: %w", err)
	}
	defer rows.Close()

	var logs []model.ChoreLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// TotalEarned sums the ledger for one user. The ledger is the source of
// truth; users.total_points must always equal this sum.
func (s *LedgerStore) TotalEarned(userID int64) (int, error) {
	var total int
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(points_earned), 0) FROM chore_logs WHERE user_id = ?`,
		userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum points earned: %w", err)
	}
	return total, nil
}

// RebuildTotals re-derives every user's cached point total from the ledger.
// Repair procedure for a counter that has drifted; a no-op on healthy data.
func (s *LedgerStore) RebuildTotals() error {
	_, err := s.db.Exec(`
		UPDATE users
		SET total_points = (
			SELECT COALESCE(SUM(points_earned), 0)
			FROM chore_logs
			WHERE user_id = users.id
		)`)
	if err != nil {
		return fmt.Errorf("rebuild totals: %w", err)
	}
	return nil
}
