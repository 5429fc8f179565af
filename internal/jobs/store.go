// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jobs tracks the status of text-to-video jobs. Store has an
// in-memory implementation for single-process use and SQLite and Postgres
// implementations for status that survives restarts or is shared between
// server instances.
package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/research-studio/pkg/types"
)

// InitialMessage is the message of a freshly created job.
const InitialMessage = "Starting text processing..."

// DefaultSQLitePath is used when the sqlite backend has no DSN.
const DefaultSQLitePath = "jobs.db"

var (
	// ErrNotFound is returned when no job has the requested id.
	ErrNotFound = errors.New("job not found")

	// ErrExists is returned when creating a job whose id is taken.
	ErrExists = errors.New("job already exists")
)

// State is the mutable part of a job record.
type State struct {
	Status    types.JobStatus
	Progress  int
	Message   string
	VideoPath string
}

// Store persists job records. Implementations are safe for concurrent use.
type Store interface {
	// Create records a new job in the processing state.
	Create(ctx context.Context, id string) (types.Job, error)

	// Get returns the job with id, or ErrNotFound.
	Get(ctx context.Context, id string) (types.Job, error)

	// Update replaces the state of job id, or returns ErrNotFound.
	Update(ctx context.Context, id string, st State) error

	// List returns up to limit jobs, newest first. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]types.Job, error)

	Close() error
}

// Open returns the store selected by cfg.Backend.
func Open(ctx context.Context, cfg types.JobsConfig) (Store, error) {
	switch cfg.Backend {
	case "", types.JobsMemory:
		return NewMemoryStore(), nil
	case types.JobsSQLite:
		path := cfg.DSN
		if path == "" {
			path = DefaultSQLitePath
		}
		return NewSQLiteStore(path)
	case types.JobsPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres job store requires jobs.dsn")
		}
		return NewPostgresStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown job store backend %q (want memory, sqlite, or postgres)", cfg.Backend)
	}
}

func validate(id string, st State) error {
	if id == "" {
		return fmt.Errorf("job id is empty")
	}
	if !st.Status.Valid() {
		return fmt.Errorf("invalid job status %q", st.Status)
	}
	if st.Progress < 0 || st.Progress > 100 {
		return fmt.Errorf("job progress %d out of range 0-100", st.Progress)
	}
	return nil
}

func initialState() State {
	return State{Status: types.JobProcessing, Message: InitialMessage}
}
