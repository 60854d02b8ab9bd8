package candles

import "sync"

// BestScoreStore persists the best score ever reached. Implementations
// return 0 when nothing is stored.
type BestScoreStore interface {
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
}

// MemoryBestStore keeps the best score in memory. It is safe for
// concurrent use so several sessions can share it.
type MemoryBestStore struct {
	mu   sync.Mutex
	best int
}

// NewMemoryBestStore creates a store holding an initial best score.
func NewMemoryBestStore(initial int) *MemoryBestStore {
	return &MemoryBestStore{best: initial}
}

// LoadBestScore returns the stored best score.
func (m *MemoryBestStore) LoadBestScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

// SaveBestScore replaces the stored best score.
func (m *MemoryBestStore) SaveBestScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = score
	return nil
}

var _ BestScoreStore = (*MemoryBestStore)(nil)
