// Package backend selects and assembles the persistence store from
// configuration.
package backend

import (
	"fmt"
	"log/slog"

	"nestegg/internal/config"
	"nestegg/internal/store"
	"nestegg/internal/store/memory"
	"nestegg/internal/store/sqlite"
)

// BackendType represents the configured store flavor.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string { return string(bt) }

// IsValid reports whether the backend type is known.
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	}
	return false
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result carries the assembled store and its cleanup.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Create builds the store named by the configuration.
func Create(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	bt := BackendType(cfg.DataBackend)
	if !bt.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch bt {
	case SQLiteBackend:
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil
	default:
		logger.Info("initialized memory backend")
		return &Result{Store: memory.New(), Cleanup: nil}, nil
	}
}
