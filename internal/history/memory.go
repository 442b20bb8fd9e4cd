// internal/history/memory.go
package history

import (
	"context"
	"sync"
)

// MemoryArchive keeps snapshots in process.
type MemoryArchive struct {
	mu     sync.RWMutex
	byUser map[string][]Snapshot
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{byUser: make(map[string][]Snapshot)}
}

func (m *MemoryArchive) Save(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byUser[snap.UserID] = append(m.byUser[snap.UserID], snap)
	return nil
}

func (m *MemoryArchive) Latest(_ context.Context, userID string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snaps := m.byUser[userID]
	if len(snaps) == 0 {
		return nil, ErrSnapshotNotFound
	}
	latest := snaps[0]
	for _, s := range snaps[1:] {
		if !s.AnalysisDate.Before(latest.AnalysisDate) {
			latest = s
		}
	}
	return &latest, nil
}
