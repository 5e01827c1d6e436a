// Package store persists per-window UI state (geometry, scroll offsets
// keyed by element ID path) across application runs, backed by bbolt.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketWindows = []byte("windows")

// WindowState is the persisted snapshot of one window.
type WindowState struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Scrolls maps element ID paths to scroll offsets.
	Scrolls map[string]float64 `json:"scrolls,omitempty"`
}

// DB is a handle to the state database. Safe for use from one goroutine at
// a time; the application shell owns it on the UI goroutine.
type DB struct {
	db *bolt.DB
}

// Open opens or creates the state database at path.
func Open(path string) (*DB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketWindows)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init state db: %w", err)
	}
	return &DB{db: db}, nil
}

// Close releases the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// SaveWindow stores one window's state under its name.
func (d *DB) SaveWindow(name string, st WindowState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode window state: %w", err)
	}
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketWindows).Put([]byte(name), data)
	})
}

// LoadWindow returns a window's saved state; ok is false when none exists.
func (d *DB) LoadWindow(name string) (st WindowState, ok bool, err error) {
	err = d.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketWindows).Get([]byte(name))
		if data == nil {
			return nil
		}
		if jerr := json.Unmarshal(data, &st); jerr != nil {
			return fmt.Errorf("decode window state: %w", jerr)
		}
		ok = true
		return nil
	})
	return st, ok, err
}

// DeleteWindow removes a window's saved state.
func (d *DB) DeleteWindow(name string) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketWindows).Delete([]byte(name))
	})
}
