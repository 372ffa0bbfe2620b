// Package history persists a record of generation runs so an operator can
// see what was generated when, and with how many unresolved placeholders.
package history

import (
	"context"
	"time"
)

// Record describes one generation run.
type Record struct {
	ID         int64
	RunID      string // uuid assigned per run
	Client     string
	OutputPath string
	Unresolved int
	AudioFiles int
	Duration   time.Duration
	Status     string // success|warning|failed
	StartedAt  time.Time
}

// Store defines the interface for persisting and querying run records.
type Store interface {
	// Append adds a run record to the store.
	Append(ctx context.Context, rec Record) error

	// Recent retrieves up to limit records, newest first. An empty client
	// filter matches all clients.
	Recent(ctx context.Context, client string, limit int) ([]Record, error)

	// Close closes the store and releases resources.
	Close() error
}
