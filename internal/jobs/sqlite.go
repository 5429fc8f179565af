// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-studio/pkg/types"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore persists jobs in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates the database at path and creates the
// schema if it does not exist.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Pipeline goroutines write concurrently; serialize them on one connection.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			progress INTEGER NOT NULL DEFAULT 0,
			message TEXT NOT NULL DEFAULT '',
			video_path TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Create(ctx context.Context, id string) (types.Job, error) {
	st := initialState()
	if err := validate(id, st); err != nil {
		return types.Job{}, err
	}

	now := time.Now().UTC()
	stamp := now.Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, status, progress, message, video_path, created_at, updated_at)
		 VALUES (?, ?, ?, ?, '', ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		id, string(st.Status), st.Progress, st.Message, stamp, stamp,
	)
	if err != nil {
		return types.Job{}, fmt.Errorf("inserting job %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.Job{}, fmt.Errorf("%s: %w", id, ErrExists)
	}

	// Round-trip through the stored format so Create and Get agree.
	now, _ = time.Parse(timeLayout, stamp)
	return types.Job{
		ID:        id,
		Status:    st.Status,
		Message:   st.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (types.Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, progress, message, video_path, created_at, updated_at
		 FROM jobs WHERE id = ?`, id)
	job, err := scanSQLiteJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Job{}, ErrNotFound
	}
	if err != nil {
		return types.Job{}, fmt.Errorf("reading job %s: %w", id, err)
	}
	return job, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id string, st State) error {
	if err := validate(id, st); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, progress = ?, message = ?, video_path = ?, updated_at = ?
		 WHERE id = ?`,
		string(st.Status), st.Progress, st.Message, st.VideoPath,
		time.Now().UTC().Format(timeLayout), id,
	)
	if err != nil {
		return fmt.Errorf("updating job %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating job %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]types.Job, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded.
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, status, progress, message, video_path, created_at, updated_at
		 FROM jobs ORDER BY created_at DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var out []types.Job
	for rows.Next() {
		job, err := scanSQLiteJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteJob(r rowScanner) (types.Job, error) {
	var (
		job              types.Job
		status           string
		created, updated string
	)
	if err := r.Scan(&job.ID, &status, &job.Progress, &job.Message, &job.VideoPath, &created, &updated); err != nil {
		return types.Job{}, err
	}
	job.Status = types.JobStatus(status)

	var err error
	if job.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return types.Job{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if job.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return types.Job{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return job, nil
}
