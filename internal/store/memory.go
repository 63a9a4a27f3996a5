package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/InnoShay/HireSight-sub000/internal/types"
)

// Memory is an in-memory resume store. The CLI rank command uses it to rank
// resumes read from local files, and tests use it in place of PostgreSQL.
type Memory struct {
	mu      sync.RWMutex
	order   []string
	resumes map[string]types.StoredResume
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{resumes: make(map[string]types.StoredResume)}
}

// Add inserts a resume and returns its id. Insertion order is preserved by
// FetchResumes when no ids are given.
func (m *Memory) Add(filename, rawText string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.resumes[id] = types.StoredResume{ID: id, Filename: filename, RawText: rawText}
	m.order = append(m.order, id)
	return id
}

// FetchResumes resolves ids to stored resumes. Empty ids returns the full set
// in insertion order; unknown ids are omitted.
func (m *Memory) FetchResumes(_ context.Context, ids []string) ([]types.StoredResume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(ids) == 0 {
		out := make([]types.StoredResume, 0, len(m.order))
		for _, id := range m.order {
			out = append(out, m.resumes[id])
		}
		return out, nil
	}

	out := make([]types.StoredResume, 0, len(ids))
	for _, id := range ids {
		if r, ok := m.resumes[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// List returns all stored resumes in insertion order.
func (m *Memory) List(ctx context.Context) ([]types.StoredResume, error) {
	return m.FetchResumes(ctx, nil)
}

// IDs returns all resume ids sorted lexicographically.
func (m *Memory) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, len(m.order))
	copy(ids, m.order)
	sort.Strings(ids)
	return ids
}
