package replay

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store archives finished recordings in a SQLite database so past matches
// can be listed and reloaded without keeping loose files around.
type Store struct {
	db *sql.DB
}

// Summary is the archive listing row for one recording.
type Summary struct {
	ID         string
	RecordedAt time.Time
	Winner     string
	Draw       bool
	Reason     string
	Turns      int
}

// OpenStore opens (creating if needed) the archive at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open replay archive: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS replays (
	id          TEXT PRIMARY KEY,
	recorded_at TEXT NOT NULL,
	winner      TEXT NOT NULL,
	draw        INTEGER NOT NULL,
	reason      TEXT NOT NULL,
	turns       INTEGER NOT NULL,
	document    BLOB NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init replay archive schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save archives one finished recording. Saving the same game id twice is
// an error.
func (s *Store) Save(ctx context.Context, r *Recorder) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	doc := r.Document()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO replays (id, recorded_at, winner, draw, reason, turns, document)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		doc.ID,
		doc.RecordedAt.Format(time.RFC3339Nano),
		doc.Result.Winner,
		boolToInt(doc.Result.Draw),
		doc.Result.Reason,
		len(doc.Turns),
		data,
	)
	if err != nil {
		return fmt.Errorf("archive replay %s: %w", doc.ID, err)
	}
	return nil
}

// Load retrieves and decodes an archived recording by game id.
func (s *Store) Load(ctx context.Context, id string) (*Document, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM replays WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("replay %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load replay %s: %w", id, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode archived replay %s: %w", id, err)
	}
	return &doc, nil
}

// List returns summaries of the most recent recordings, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, recorded_at, winner, draw, reason, turns
		 FROM replays ORDER BY recorded_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list replays: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var recordedAt string
		var draw int
		if err := rows.Scan(&sum.ID, &recordedAt, &sum.Winner, &draw, &sum.Reason, &sum.Turns); err != nil {
			return nil, fmt.Errorf("scan replay summary: %w", err)
		}
		sum.RecordedAt, _ = time.Parse(time.RFC3339Nano, recordedAt)
		sum.Draw = draw != 0
		out = append(out, sum)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
