package remote

import (
	"context"
	"sync"
)

// MemoryStore keeps documents in a map. It backs the "memory" remote mode
// and lets tests inject failures and observe calls.
type MemoryStore struct {
	mu        sync.Mutex
	docs      map[string]map[string]interface{}
	setErr    error
	deleteErr error

	// BeforeSet, when not nil, runs before every write is applied
	BeforeSet func(path string)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]interface{})}
}

// FailWrites makes every SetDocument return err until it is reset with nil
func (m *MemoryStore) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

// FailDeletes makes every DeleteDocument return err until reset with nil
func (m *MemoryStore) FailDeletes(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteErr = err
}

func (m *MemoryStore) SetDocument(ctx context.Context, path string, fields map[string]interface{}) error {
	if hook := m.BeforeSet; hook != nil {
		hook(path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	doc := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		doc[k] = v
	}
	m.docs[path] = doc
	return nil
}

func (m *MemoryStore) DeleteDocument(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.docs, path)
	return nil
}

// Document returns a copy of the document at path
func (m *MemoryStore) Document(path string) (map[string]interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[path]
	if !ok {
		return nil, false
	}
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out, true
}

// Len is the number of stored documents
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}
