// Package store handles SQLite persistence for the history log.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"pomoflow/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session and intake history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			phase TEXT NOT NULL,
			planned_seconds INTEGER NOT NULL,
			completed INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS intake (
			id INTEGER PRIMARY KEY,
			at TEXT NOT NULL,
			amount_ml INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_intake_at ON intake(at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a finished countdown.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord) (int64, error) {
	completed := 0
	if rec.Completed {
		completed = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, phase, planned_seconds, completed)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.Phase,
		rec.PlannedSeconds,
		completed,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertIntake stores one logged drink.
func (s *Store) InsertIntake(ctx context.Context, rec model.IntakeRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO intake (at, amount_ml) VALUES (?, ?)`,
		rec.At.Format(time.RFC3339Nano),
		rec.AmountMl,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSessions returns session aggregates filtered by stats config.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, phase, planned_seconds, completed
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		var completed int
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.Phase, &agg.PlannedSeconds, &completed); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		agg.Completed = completed != 0
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	return sessions, nil
}

// ListIntake returns intake records filtered by stats config.
func (s *Store) ListIntake(ctx context.Context, cfg model.StatsConfig) ([]model.IntakeRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT at, amount_ml FROM intake WHERE %s ORDER BY at ASC`,
		strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.IntakeRecord
	for rows.Next() {
		var rec model.IntakeRecord
		var at string
		if err := rows.Scan(&at, &rec.AmountMl); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, err
		}
		rec.At = parsed
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// DayAggregates summarizes completed focus sessions and intake per calendar
// day, in local time, ordered by day ascending.
func (s *Store) DayAggregates(ctx context.Context, cfg model.StatsConfig) ([]model.DayAggregate, error) {
	sessions, err := s.ListSessions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	intake, err := s.ListIntake(ctx, cfg)
	if err != nil {
		return nil, err
	}

	byDay := map[string]*model.DayAggregate{}
	days := []string{}
	dayOf := func(t time.Time) *model.DayAggregate {
		day := t.Local().Format("2006-01-02")
		agg, ok := byDay[day]
		if !ok {
			agg = &model.DayAggregate{Day: day}
			byDay[day] = agg
			days = append(days, day)
		}
		return agg
	}
	for _, sess := range sessions {
		if sess.Phase != "focus" || !sess.Completed {
			continue
		}
		agg := dayOf(sess.EndedAt)
		agg.FocusSessions++
		agg.FocusSeconds += sess.PlannedSeconds
	}
	for _, rec := range intake {
		dayOf(rec.At).IntakeMl += rec.AmountMl
	}

	sort.Strings(days)
	result := make([]model.DayAggregate, 0, len(days))
	for _, day := range days {
		result = append(result, *byDay[day])
	}
	return result, nil
}

// TodayTotals returns the current day's completed focus sessions and logged
// intake, for seeding the widget at startup.
func (s *Store) TodayTotals(ctx context.Context, now time.Time) (model.TodayTotals, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cfg := model.StatsConfig{Since: &start}
	var totals model.TodayTotals
	sessions, err := s.ListSessions(ctx, cfg)
	if err != nil {
		return totals, err
	}
	for _, sess := range sessions {
		if sess.Phase == "focus" && sess.Completed {
			totals.FocusSessions++
		}
	}
	intake, err := s.ListIntake(ctx, cfg)
	if err != nil {
		return totals, err
	}
	for _, rec := range intake {
		totals.IntakeMl += rec.AmountMl
	}
	return totals, nil
}
