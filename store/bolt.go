package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/presence/internal/models"
)

const eventBucket = "events"

// BoltClient is a BoltDB event log.
type BoltClient struct {
	*bolt.DB
}

// itob encodes a bucket sequence number so that keys sort in insertion order.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)

	return b
}

func putEvents(tx *bolt.Tx, events []models.Event) error {
	b := tx.Bucket([]byte(eventBucket))

	for i := range events {
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		value, err := json.Marshal(&events[i])
		if err != nil {
			return err
		}

		err = b.Put(itob(seq), value)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *BoltClient) InsertOne(event models.Event) error {
	return c.Update(func(tx *bolt.Tx) error {
		return putEvents(tx, []models.Event{event})
	})
}

func (c *BoltClient) InsertBatch(events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	return c.Update(func(tx *bolt.Tx) error {
		return putEvents(tx, events)
	})
}

func (c *BoltClient) ReadAll() ([]models.Event, error) {
	var events []models.Event

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(eventBucket))

		events = make([]models.Event, 0, b.Stats().KeyN)

		return b.ForEach(func(_, v []byte) error {
			var e models.Event

			err := json.Unmarshal(v, &e)
			if err != nil {
				return err
			}

			events = append(events, e)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

// Clear drops and recreates the events bucket, which also resets the key
// sequence.
func (c *BoltClient) Clear() error {
	return c.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(eventBucket))
		if err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}

		_, err = tx.CreateBucket([]byte(eventBucket))

		return err
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		// another process holds the file lock
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrLocked
		}

		return nil, err
	}

	return db, nil
}

// NewBoltClient returns a wrapper to a BoltDB connection.
func NewBoltClient(dbPath string) (*BoltClient, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(eventBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltClient{
		db,
	}, nil
}
