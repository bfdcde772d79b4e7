package orchestrator

import "sync"

// runLocks hands out one mutex per run id. The engine's admission checks
// are check-then-act over a snapshot, so the read-validate-commit sequence
// for a run must be serialized; unrelated runs proceed concurrently.
type runLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRunLocks() *runLocks {
	return &runLocks{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex for a run id, creating it on first use. Locks are
// never evicted; a run's lock lives as long as the process.
func (l *runLocks) get(runID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[runID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[runID] = m
	}
	return m
}
