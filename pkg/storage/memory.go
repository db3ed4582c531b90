package storage

import (
	"context"
	"sync"

	"github.com/matzehuels/moodboard/pkg/timeline"
)

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string][]timeline.Snapshot
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{boards: make(map[string][]timeline.Snapshot)}
}

func (s *MemoryStore) Load(ctx context.Context, boardID string) ([]timeline.Snapshot, error) {
	if err := ValidateBoardID(boardID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.boards[boardID]), nil
}

func (s *MemoryStore) Append(ctx context.Context, boardID string, snap timeline.Snapshot) error {
	if err := ValidateBoardID(boardID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[boardID] = append(s.boards[boardID], snap.Clone())
	return nil
}

// Boards returns the IDs of every board with at least one snapshot.
func (s *MemoryStore) Boards() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.boards))
	for id := range s.boards {
		ids = append(ids, id)
	}
	return ids
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
