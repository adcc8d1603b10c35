// Package store defines the persistence boundary of the engine: one
// profile read before a run, one full result write after. Adapters own
// per-record mutual exclusion; the engine itself holds no state and
// never partially writes a record.
package store

import (
	"context"
	"errors"

	"nestegg/internal/core"
)

var (
	// ErrNotFound marks a client id with no stored profile.
	ErrNotFound = errors.New("client not found")

	// ErrConflict marks a concurrent write detected by the adapter.
	// Retrying the whole run is safe because the engine is idempotent.
	ErrConflict = errors.New("persistence conflict")
)

type (
	ProfileReader interface {
		// GetProfile returns the profile snapshot for a client id.
		GetProfile(ctx context.Context, clientID string) (core.ClientProfile, error)
	}

	ProfileWriter interface {
		// SaveProfile inserts or replaces a profile, bumping its version.
		SaveProfile(ctx context.Context, p core.ClientProfile) error
	}

	ResultWriter interface {
		// WriteResult replaces the client's allocation table in one
		// atomic write. expectedVersion is the profile version the run
		// computed against; a mismatch returns ErrConflict and leaves
		// the stored result untouched.
		WriteResult(ctx context.Context, r core.AllocationResult, expectedVersion int64) error
	}

	ResultReader interface {
		// ReadResult returns the last persisted allocation table.
		ReadResult(ctx context.Context, clientID string) (core.AllocationResult, error)
	}

	// Pending lists clients whose profile changed since their last
	// persisted allocation, for the batch worker's periodic scan.
	Pending interface {
		ListStale(ctx context.Context, limit int) ([]string, error)
	}

	// Store is the full persistence surface a backend provides.
	Store interface {
		ProfileReader
		ProfileWriter
		ResultWriter
		ResultReader
		Pending
	}
)
