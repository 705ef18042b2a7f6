package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/careerfit/internal/assessment"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// Memory is an in-process Store. States are kept as JSON so callers never
// share maps with the store.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemory creates a Memory store with the given idle TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now, entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, id string) (assessment.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok || !m.now().Before(e.expires) {
		delete(m.entries, id)
		return assessment.State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	var st assessment.State
	if err := json.Unmarshal(e.data, &st); err != nil {
		return assessment.State{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return st, nil
}

func (m *Memory) Put(_ context.Context, st assessment.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", st.ID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	m.entries[st.ID] = memoryEntry{data: data, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	return len(m.entries), nil
}

// sweep drops expired entries. Callers hold mu.
func (m *Memory) sweep() {
	now := m.now()
	for id, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, id)
		}
	}
}
