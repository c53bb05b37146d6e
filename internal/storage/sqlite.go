// Package storage provides SQLite-based persistence for replay journals.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/stc/internal/config"
	"github.com/vovakirdan/stc/internal/engine"
	"github.com/vovakirdan/stc/internal/platform/headless"
	"github.com/vovakirdan/stc/internal/replay"
)

// ErrNotFound is returned when a replay ID does not exist.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplayEntry is the listing form of a stored journal, without its frames.
type ReplayEntry struct {
	ID        int64
	Target    string
	Seed      int64
	Frames    int
	Final     replay.Summary
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			target TEXT NOT NULL,
			seed INTEGER NOT NULL,
			rules TEXT NOT NULL,
			frames INTEGER NOT NULL,
			code INTEGER NOT NULL,
			state INTEGER NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL,
			level INTEGER NOT NULL,
			pieces INTEGER NOT NULL,
			shapes TEXT NOT NULL DEFAULT '',
			board TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);

		CREATE TABLE IF NOT EXISTS replay_frames (
			replay_id INTEGER NOT NULL REFERENCES replays(id),
			seq INTEGER NOT NULL,
			time_ms INTEGER NOT NULL,
			start_events INTEGER NOT NULL DEFAULT 0,
			end_events INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (replay_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a journal and its frames in one transaction.
// Returns the ID of the inserted replay.
func (s *Store) SaveReplay(j replay.Journal) (id int64, err error) {
	rules, err := config.Marshal(config.FromEngine(j.Config))
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode rules: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			//nolint:errcheck // err is already being returned
			tx.Rollback()
		}
	}()

	f := j.Final
	result, err := tx.Exec(
		`INSERT INTO replays
		 (target, seed, rules, frames, code, state, score, lines, level, pieces, shapes, board)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.Target, j.Seed, string(rules), len(j.Frames),
		int(f.Code), int(f.State), f.Score, f.Lines, f.Level, f.TotalPieces, formatShapes(f.Pieces), f.Board,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO replay_frames (replay_id, seq, time_ms, start_events, end_events) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for seq, fr := range j.Frames {
		if _, err = stmt.Exec(id, seq, fr.Time, int(fr.Start), int(fr.End)); err != nil {
			return 0, fmt.Errorf("storage: cannot save frame %d: %w", seq, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

// ListReplays retrieves the most recent replays, newest first.
func (s *Store) ListReplays(limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, target, seed, frames, code, state, score, lines, level, pieces, shapes, board, created_at
		 FROM replays
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplayEntry
	for rows.Next() {
		e, _, err := scanReplay(rows, false)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Replay loads a complete journal by ID.
func (s *Store) Replay(id int64) (replay.Journal, error) {
	row := s.db.QueryRow(
		`SELECT id, target, seed, frames, code, state, score, lines, level, pieces, shapes, board, created_at, rules
		 FROM replays
		 WHERE id = ?`,
		id,
	)
	entry, rules, err := scanReplay(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Journal{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return replay.Journal{}, err
	}

	var cfg config.StcConfig
	if err := yaml.Unmarshal([]byte(rules), &cfg); err != nil {
		return replay.Journal{}, fmt.Errorf("storage: cannot decode rules of replay %d: %w", id, err)
	}

	j := replay.Journal{
		ID:        entry.ID,
		Target:    entry.Target,
		Seed:      entry.Seed,
		Config:    cfg.Engine(),
		Final:     entry.Final,
		CreatedAt: entry.CreatedAt,
		Frames:    make([]headless.Frame, 0, entry.Frames),
	}

	rows, err := s.db.Query(
		`SELECT time_ms, start_events, end_events
		 FROM replay_frames
		 WHERE replay_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return replay.Journal{}, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f headless.Frame
		var start, end int
		if err := rows.Scan(&f.Time, &start, &end); err != nil {
			return replay.Journal{}, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		f.Start, f.End = engine.Event(start), engine.Event(end)
		j.Frames = append(j.Frames, f)
	}

	if err := rows.Err(); err != nil {
		return replay.Journal{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return j, nil
}

// DeleteReplay removes a replay and its frames.
func (s *Store) DeleteReplay(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM replay_frames WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	res, err := tx.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanReplay reads the replays columns selected by ListReplays, followed by
// the rules column when withRules is set.
func scanReplay(sc scanner, withRules bool) (ReplayEntry, string, error) {
	var (
		e         ReplayEntry
		code      int
		state     int
		shapes    string
		createdAt any
		rules     string
	)
	dest := []any{
		&e.ID, &e.Target, &e.Seed, &e.Frames,
		&code, &state, &e.Final.Score, &e.Final.Lines, &e.Final.Level, &e.Final.TotalPieces, &shapes, &e.Final.Board,
		&createdAt,
	}
	if withRules {
		dest = append(dest, &rules)
	}

	if err := sc.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, "", err
		}
		return e, "", fmt.Errorf("storage: cannot scan row: %w", err)
	}

	pieces, err := parseShapes(shapes)
	if err != nil {
		return e, "", fmt.Errorf("storage: replay %d: %w", e.ID, err)
	}
	e.Final.Pieces = pieces
	e.Final.Code = engine.ErrorCode(code)
	e.Final.State = engine.State(state)
	e.CreatedAt = parseTime(createdAt)
	return e, rules, nil
}

// formatShapes encodes per-shape piece counts as space-separated integers
// in shape order.
func formatShapes(pieces [engine.ShapeCount]int) string {
	fields := make([]string, len(pieces))
	for i, n := range pieces {
		fields[i] = strconv.Itoa(n)
	}
	return strings.Join(fields, " ")
}

// parseShapes decodes formatShapes output. An empty column reads as zeros.
func parseShapes(s string) ([engine.ShapeCount]int, error) {
	var pieces [engine.ShapeCount]int
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return pieces, nil
	}
	if len(fields) != engine.ShapeCount {
		return pieces, fmt.Errorf("want %d shape counts, got %d", engine.ShapeCount, len(fields))
	}
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return pieces, fmt.Errorf("bad shape count %q: %w", f, err)
		}
		pieces[i] = n
	}
	return pieces, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
