// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pdiddy/research-studio/pkg/types"
)

// PostgresStore persists jobs in a Postgres table shared by every server
// instance pointing at the same database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to dsn, verifies the connection, and creates
// the jobs table if needed.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) initialize(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			progress INTEGER NOT NULL DEFAULT 0,
			message TEXT NOT NULL DEFAULT '',
			video_path TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating jobs table: %w", err)
	}
	_, err = s.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS jobs_created_at_idx ON jobs (created_at)`)
	if err != nil {
		return fmt.Errorf("creating jobs index: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, id string) (types.Job, error) {
	st := initialState()
	if err := validate(id, st); err != nil {
		return types.Job{}, err
	}

	// Postgres keeps microseconds.
	now := time.Now().UTC().Truncate(time.Microsecond)
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO jobs (id, status, progress, message, video_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, '', $5, $5)
		ON CONFLICT (id) DO NOTHING
	`, id, string(st.Status), st.Progress, st.Message, now)
	if err != nil {
		return types.Job{}, fmt.Errorf("inserting job %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return types.Job{}, fmt.Errorf("%s: %w", id, ErrExists)
	}
	return types.Job{
		ID:        id,
		Status:    st.Status,
		Message:   st.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (types.Job, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, status, progress, message, video_path, created_at, updated_at
		FROM jobs WHERE id = $1
	`, id)
	job, err := scanPostgresJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.Job{}, ErrNotFound
	}
	if err != nil {
		return types.Job{}, fmt.Errorf("reading job %s: %w", id, err)
	}
	return job, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, st State) error {
	if err := validate(id, st); err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE jobs SET status = $2, progress = $3, message = $4, video_path = $5, updated_at = $6
		WHERE id = $1
	`, id, string(st.Status), st.Progress, st.Message, st.VideoPath, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("updating job %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]types.Job, error) {
	query := `SELECT id, status, progress, message, video_path, created_at, updated_at
		FROM jobs ORDER BY created_at DESC, id ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var out []types.Job
	for rows.Next() {
		job, err := scanPostgresJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func scanPostgresJob(r pgx.Row) (types.Job, error) {
	var (
		job    types.Job
		status string
	)
	if err := r.Scan(&job.ID, &status, &job.Progress, &job.Message, &job.VideoPath, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return types.Job{}, err
	}
	job.Status = types.JobStatus(status)
	job.CreatedAt = job.CreatedAt.UTC()
	job.UpdatedAt = job.UpdatedAt.UTC()
	return job, nil
}
