// Package store persists captured events in an append-only log
package store

import (
	"errors"
	"fmt"

	"github.com/ayoisaiah/presence/internal/models"
)

const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

var (
	ErrLocked = errors.New(
		"is presence already tracking? Only one tracker can use the event log at a time",
	)
	ErrUnknownDriver = errors.New("unknown store driver")
)

// Reader is the read side of the event log.
type Reader interface {
	// ReadAll returns every stored event in insertion order
	ReadAll() ([]models.Event, error)
}

// DB is the event log storage interface. Events are only ever appended or
// deleted in bulk; a stored event is never updated.
type DB interface {
	Reader
	// InsertOne appends a single event
	InsertOne(event models.Event) error
	// InsertBatch appends all events in a single transaction
	InsertBatch(events []models.Event) error
	// Clear deletes every stored event
	Clear() error
	// Close ends the database connection
	Close() error
}

// NewClient opens the event log at dbPath with the named driver.
func NewClient(driver, dbPath string) (DB, error) {
	switch driver {
	case DriverBolt, "":
		return NewBoltClient(dbPath)
	case DriverSQLite:
		return NewSQLiteClient(dbPath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
