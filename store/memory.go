package store

import (
	"context"
	"sort"
	"sync"

	"github.com/oarkflow/logintheme"
	"github.com/oarkflow/logintheme/errors"
	"github.com/oarkflow/logintheme/models"
)

var _ logintheme.ContextStore = (*MemoryStore)(nil)

// NewMemoryStore create fixture store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[logintheme.PageID]map[string]*models.RenderContext),
	}
}

// MemoryStore fixture store kept in process memory
type MemoryStore struct {
	sync.RWMutex
	data map[logintheme.PageID]map[string]*models.RenderContext
}

// Get according to the page and name for the stored context
func (ms *MemoryStore) Get(ctx context.Context, pageID logintheme.PageID, name string) (*models.RenderContext, error) {
	ms.RLock()
	defer ms.RUnlock()

	if rc, ok := ms.data[pageID][name]; ok {
		return rc.Clone(), nil
	}
	return nil, errors.ErrFixtureNotFound
}

// Put set the context under name
func (ms *MemoryStore) Put(ctx context.Context, name string, rc *models.RenderContext) error {
	ms.Lock()
	defer ms.Unlock()

	pageID := logintheme.PageID(rc.PageID)
	if ms.data[pageID] == nil {
		ms.data[pageID] = make(map[string]*models.RenderContext)
	}
	ms.data[pageID][name] = rc.Clone()
	return nil
}

// List the names stored for the page, sorted
func (ms *MemoryStore) List(ctx context.Context, pageID logintheme.PageID) ([]string, error) {
	ms.RLock()
	defer ms.RUnlock()

	names := make([]string, 0, len(ms.data[pageID]))
	for name := range ms.data[pageID] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
