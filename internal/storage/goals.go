package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ouraiii/LearningJourney/internal/models"
)

// Fixed-width UTC timestamps so that text ordering matches time ordering.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		// tolerate hand-edited rows
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}

// goalRepo holds the goal/day_entries queries shared by the SQL stores.
// Queries are written with ? placeholders and rebound per dialect.
type goalRepo struct {
	db       *sql.DB
	postgres bool
	now      func() time.Time
}

func (r goalRepo) rebind(query string) string {
	if !r.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (r goalRepo) save(snap models.SessionSnapshot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var archivedAt sql.NullString
	if snap.ArchivedAt != nil {
		archivedAt = sql.NullString{String: formatTimestamp(*snap.ArchivedAt), Valid: true}
	}

	_, err = tx.Exec(r.rebind(`
		INSERT INTO goals (id, subject, duration, completed, created_at, updated_at, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			subject = excluded.subject,
			duration = excluded.duration,
			completed = excluded.completed,
			updated_at = excluded.updated_at,
			archived_at = excluded.archived_at`),
		snap.ID, snap.Definition.Subject, string(snap.Definition.Duration), snap.Completed,
		formatTimestamp(snap.CreatedAt), formatTimestamp(snap.UpdatedAt), archivedAt)
	if err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}

	existing := make(map[string]bool)
	rows, err := tx.Query(r.rebind("SELECT day FROM day_entries WHERE goal_id = ?"), snap.ID)
	if err != nil {
		return fmt.Errorf("failed to read day entries: %w", err)
	}
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			rows.Close()
			return err
		}
		existing[day] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	created := formatTimestamp(r.now())
	for _, e := range snap.Entries {
		if e.Status == models.StatusUntouched {
			continue
		}
		if existing[e.Day] {
			delete(existing, e.Day)
			_, err = tx.Exec(r.rebind("UPDATE day_entries SET status = ?, locked = ? WHERE goal_id = ? AND day = ?"),
				string(e.Status), e.Locked, snap.ID, e.Day)
		} else {
			_, err = tx.Exec(r.rebind(`
				INSERT INTO day_entries (goal_id, day, status, locked, created_at)
				VALUES (?, ?, ?, ?, ?)`),
				snap.ID, e.Day, string(e.Status), e.Locked, created)
		}
		if err != nil {
			return fmt.Errorf("failed to save entry %s: %w", e.Day, err)
		}
	}

	for day := range existing {
		if _, err := tx.Exec(r.rebind("DELETE FROM day_entries WHERE goal_id = ? AND day = ?"), snap.ID, day); err != nil {
			return fmt.Errorf("failed to remove entry %s: %w", day, err)
		}
	}

	return tx.Commit()
}

const goalColumns = "id, subject, duration, completed, created_at, updated_at, archived_at"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGoal(row rowScanner, snap *models.SessionSnapshot) error {
	var duration, createdAt, updatedAt string
	var archivedAt sql.NullString
	if err := row.Scan(&snap.ID, &snap.Definition.Subject, &duration, &snap.Completed, &createdAt, &updatedAt, &archivedAt); err != nil {
		return err
	}
	snap.Definition.Duration = models.Duration(duration)

	var err error
	if snap.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return fmt.Errorf("goal %s: invalid created_at: %w", snap.ID, err)
	}
	if snap.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return fmt.Errorf("goal %s: invalid updated_at: %w", snap.ID, err)
	}
	if archivedAt.Valid {
		t, err := parseTimestamp(archivedAt.String)
		if err != nil {
			return fmt.Errorf("goal %s: invalid archived_at: %w", snap.ID, err)
		}
		snap.ArchivedAt = &t
	}
	return nil
}

func (r goalRepo) entries(goalID string) ([]models.DayEntry, error) {
	rows, err := r.db.Query(r.rebind("SELECT day, status, locked FROM day_entries WHERE goal_id = ? ORDER BY day"), goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.DayEntry{}
	for rows.Next() {
		var e models.DayEntry
		var status string
		if err := rows.Scan(&e.Day, &status, &e.Locked); err != nil {
			return nil, err
		}
		e.Status = models.DayStatus(status)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r goalRepo) loadActive() (models.SessionSnapshot, error) {
	var snap models.SessionSnapshot
	row := r.db.QueryRow(`SELECT ` + goalColumns + ` FROM goals
		WHERE archived_at IS NULL
		ORDER BY updated_at DESC
		LIMIT 1`)
	if err := scanGoal(row, &snap); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SessionSnapshot{}, ErrNoSession
		}
		return models.SessionSnapshot{}, err
	}

	entries, err := r.entries(snap.ID)
	if err != nil {
		return models.SessionSnapshot{}, err
	}
	snap.Entries = entries
	return snap, nil
}

func (r goalRepo) get(id string) (models.SessionSnapshot, error) {
	var snap models.SessionSnapshot
	row := r.db.QueryRow(r.rebind(`SELECT `+goalColumns+` FROM goals WHERE id = ?`), id)
	if err := scanGoal(row, &snap); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SessionSnapshot{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return models.SessionSnapshot{}, err
	}

	entries, err := r.entries(id)
	if err != nil {
		return models.SessionSnapshot{}, err
	}
	snap.Entries = entries
	return snap, nil
}

func (r goalRepo) archive(id string) error {
	res, err := r.db.Exec(r.rebind("UPDATE goals SET archived_at = ? WHERE id = ? AND archived_at IS NULL"),
		formatTimestamp(r.now()), id)
	if err != nil {
		return fmt.Errorf("failed to archive goal: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	var exists int
	err = r.db.QueryRow(r.rebind("SELECT count(*) FROM goals WHERE id = ?"), id).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

func (r goalRepo) list(includeArchived bool) ([]models.GoalRecord, error) {
	query := `
		SELECT g.id, g.subject, g.duration, g.completed, g.created_at, g.updated_at, g.archived_at,
			COALESCE(SUM(CASE WHEN e.status = 'learned' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN e.status = 'freezed' THEN 1 ELSE 0 END), 0)
		FROM goals g
		LEFT JOIN day_entries e ON e.goal_id = g.id`
	if !includeArchived {
		query += ` WHERE g.archived_at IS NULL`
	}
	query += ` GROUP BY g.id ORDER BY g.created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.GoalRecord
	for rows.Next() {
		var snap models.SessionSnapshot
		var learned, freezed int
		scan := func(dest ...interface{}) error {
			return rows.Scan(append(dest, &learned, &freezed)...)
		}
		if err := scanGoal(scanFunc(scan), &snap); err != nil {
			return nil, err
		}
		rec := snap.Summarize()
		rec.LearnedDays = learned
		rec.FreezedDays = freezed
		records = append(records, rec)
	}
	return records, rows.Err()
}

type scanFunc func(dest ...interface{}) error

func (f scanFunc) Scan(dest ...interface{}) error { return f(dest...) }
