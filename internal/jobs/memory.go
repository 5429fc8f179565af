// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pdiddy/research-studio/pkg/types"
)

// MemoryStore keeps jobs in a map. Records are lost when the process exits.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]types.Job
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]types.Job)}
}

func (m *MemoryStore) Create(_ context.Context, id string) (types.Job, error) {
	st := initialState()
	if err := validate(id, st); err != nil {
		return types.Job{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[id]; ok {
		return types.Job{}, fmt.Errorf("%s: %w", id, ErrExists)
	}
	now := time.Now().UTC()
	job := types.Job{
		ID:        id,
		Status:    st.Status,
		Message:   st.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.jobs[id] = job
	return job, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (types.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return types.Job{}, ErrNotFound
	}
	return job, nil
}

func (m *MemoryStore) Update(_ context.Context, id string, st State) error {
	if err := validate(id, st); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return ErrNotFound
	}
	job.Status = st.Status
	job.Progress = st.Progress
	job.Message = st.Message
	job.VideoPath = st.VideoPath
	job.UpdatedAt = time.Now().UTC()
	m.jobs[id] = job
	return nil
}

func (m *MemoryStore) List(_ context.Context, limit int) ([]types.Job, error) {
	m.mu.RLock()
	out := make([]types.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }
