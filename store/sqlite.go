package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/ayoisaiah/presence/internal/models"
)

const schema = `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp REAL NOT NULL,
		event_type TEXT NOT NULL,
		x INTEGER NOT NULL DEFAULT 0,
		y INTEGER NOT NULL DEFAULT 0,
		window_title TEXT NOT NULL DEFAULT ''
	)
`

const insertEvent = `INSERT INTO events (timestamp, event_type, x, y, window_title) VALUES (?, ?, ?, ?, ?)`

// SQLiteClient stores events in a single SQLite table.
type SQLiteClient struct {
	db *sql.DB
}

// NewSQLiteClient opens (creating if needed) the SQLite event log at path.
func NewSQLiteClient(path string) (*SQLiteClient, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// a single connection serialises the writer and readers in this process
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteClient{db: db}, nil
}

func (c *SQLiteClient) InsertOne(event models.Event) error {
	_, err := c.db.Exec(
		insertEvent,
		event.Unix(),
		string(event.Type),
		event.X,
		event.Y,
		event.WindowTitle,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	return nil
}

func (c *SQLiteClient) InsertBatch(events []models.Event) (err error) {
	if len(events) == 0 {
		return nil
	}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(insertEvent)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}
	defer stmt.Close()

	for i := range events {
		e := &events[i]

		_, err = stmt.Exec(e.Unix(), string(e.Type), e.X, e.Y, e.WindowTitle)
		if err != nil {
			return fmt.Errorf("insert batch: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	return nil
}

func (c *SQLiteClient) ReadAll() ([]models.Event, error) {
	rows, err := c.db.Query(`
		SELECT timestamp, event_type, x, y, window_title
		FROM events
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event

	for rows.Next() {
		var (
			e         models.Event
			ts        float64
			eventType string
		)

		if err := rows.Scan(&ts, &eventType, &e.X, &e.Y, &e.WindowTitle); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		e.Timestamp = models.FromUnix(ts)
		e.Type = models.EventType(eventType)
		events = append(events, e)
	}

	return events, rows.Err()
}

func (c *SQLiteClient) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM events`); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}

	return nil
}

func (c *SQLiteClient) Close() error {
	return c.db.Close()
}
