package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Entry is the outcome of one exercise
type Entry struct {
	RunID     string
	Lesson    int
	Variant   string
	Prompt    string
	Answer    string
	Choice    int
	Confident bool
	Error     string
	At        time.Time
}

// Summary aggregates the entries of a run
type Summary struct {
	RunID     string
	Total     int
	Confident int
	Failed    int
	ByVariant map[string]int
}

// Journal is an append-only exercise log
type Journal struct {
	db    *sql.DB
	runID string
	now   func() time.Time
}

// Open opens or creates the journal at path and starts a new run.
// Use ":memory:" for a throwaway journal.
func Open(ctx context.Context, path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	// sqlite serialises writers; one connection keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	j := &Journal{db: db, runID: uuid.NewString(), now: time.Now}

	if err := j.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		j.runID, j.now().UTC().Format(time.RFC3339Nano)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	return j, nil
}

func (j *Journal) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS exercises (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			lesson INTEGER NOT NULL,
			variant TEXT NOT NULL,
			prompt TEXT NOT NULL,
			answer TEXT NOT NULL,
			choice INTEGER NOT NULL,
			confident INTEGER NOT NULL,
			error TEXT NOT NULL,
			at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ix_exercises_run ON exercises(run_id)`,
	}

	for _, query := range queries {
		if _, err := j.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create journal tables: %w", err)
		}
	}
	return nil
}

// RunID identifies the current run
func (j *Journal) RunID() string {
	return j.runID
}

// Record appends an entry to the current run
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.At.IsZero() {
		e.At = j.now()
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO exercises (run_id, lesson, variant, prompt, answer, choice, confident, error, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.runID, e.Lesson, e.Variant, e.Prompt, e.Answer, e.Choice,
		boolToInt(e.Confident), e.Error, e.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to record %s exercise: %w", e.Variant, err)
	}
	return nil
}

// Entries returns the entries of the current run in insertion order
func (j *Journal) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT run_id, lesson, variant, prompt, answer, choice, confident, error, at
		 FROM exercises WHERE run_id = ? ORDER BY id`, j.runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			confident int
			at        string
		)
		if err := rows.Scan(&e.RunID, &e.Lesson, &e.Variant, &e.Prompt, &e.Answer,
			&e.Choice, &confident, &e.Error, &at); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.Confident = confident != 0
		if e.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("bad timestamp %q in journal: %w", at, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Summary aggregates the current run
func (j *Journal) Summary(ctx context.Context) (Summary, error) {
	entries, err := j.Entries(ctx)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{RunID: j.runID, ByVariant: make(map[string]int)}
	for _, e := range entries {
		s.Total++
		s.ByVariant[e.Variant]++
		if e.Error != "" {
			s.Failed++
		} else if e.Confident {
			s.Confident++
		}
	}
	return s, nil
}

// Close closes the database
func (j *Journal) Close() error {
	return j.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
