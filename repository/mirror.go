package repository

import (
	"context"
	"log"
	"sync"

	"github.com/Nyagar-Abraham/Finance-app/remote"
)

// Counts tallies remote mirror outcomes for one collection
type Counts struct {
	Pushed       int64 `json:"pushed"`
	PushFailed   int64 `json:"pushFailed"`
	Deleted      int64 `json:"deleted"`
	DeleteFailed int64 `json:"deleteFailed"`
}

// SyncStats counts mirror successes and failures per collection, so that
// swallowed remote errors stay observable
type SyncStats struct {
	mu     sync.Mutex
	counts map[string]*Counts
}

func NewSyncStats() *SyncStats {
	return &SyncStats{counts: make(map[string]*Counts)}
}

func (s *SyncStats) record(collection string, deleted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counts[collection]
	if !ok {
		c = &Counts{}
		s.counts[collection] = c
	}
	switch {
	case deleted && err != nil:
		c.DeleteFailed++
	case deleted:
		c.Deleted++
	case err != nil:
		c.PushFailed++
	default:
		c.Pushed++
	}
}

// Snapshot returns a copy of the counters keyed by collection
func (s *SyncStats) Snapshot() map[string]Counts {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]Counts, len(s.counts))
	for k, v := range s.counts {
		out[k] = *v
	}
	return out
}

// mirror pushes one collection of one kind to the remote store
type mirror struct {
	remote     remote.Store
	stats      *SyncStats
	collection string
}

func (m mirror) path(ownerID, id string) string {
	if m.collection == "" {
		return remote.UserPath(ownerID)
	}
	return remote.DocumentPath(ownerID, m.collection, id)
}

func (m mirror) name() string {
	if m.collection == "" {
		return "users"
	}
	return m.collection
}

// push writes the document and returns the remote error, already logged
// and counted
func (m mirror) push(ctx context.Context, ownerID, id string, fields map[string]interface{}) error {
	err := m.remote.SetDocument(ctx, m.path(ownerID, id), fields)
	m.stats.record(m.name(), false, err)
	if err != nil {
		log.Printf("Error mirroring %s %s: %v", m.name(), id, err)
	}
	return err
}

func (m mirror) remove(ctx context.Context, ownerID, id string) error {
	err := m.remote.DeleteDocument(ctx, m.path(ownerID, id))
	m.stats.record(m.name(), true, err)
	if err != nil {
		log.Printf("Error deleting mirrored %s %s: %v", m.name(), id, err)
	}
	return err
}
