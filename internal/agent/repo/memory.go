package repo

import (
	"context"
	"sync"
	"time"

	"github.com/tdh-assistant/server/internal/agent/model"
)

// MemorySessionStore is a concurrency-safe in-process store used for
// tests and local runs without Redis. Records go through the same
// encode/decode path as the durable stores so the serialization policy
// (unknown-role drop included) behaves identically.
type MemorySessionStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

type memoryRecord struct {
	data    []byte
	savedAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{records: make(map[string]memoryRecord)}
}

func (m *MemorySessionStore) Save(ctx context.Context, session *model.Session) error {
	b, err := encodeSession(session)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.records[session.ThreadID] = memoryRecord{data: b, savedAt: time.Now()}
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Load(ctx context.Context, threadID string) (*model.Session, error) {
	m.mu.RLock()
	rec, ok := m.records[threadID]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decodeSession(rec.data)
}

func (m *MemorySessionStore) Delete(ctx context.Context, threadID string) error {
	m.mu.Lock()
	delete(m.records, threadID)
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) ListThreads(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	threads := make([]string, 0, len(m.records))
	for id := range m.records {
		threads = append(threads, id)
	}
	return threads, nil
}

func (m *MemorySessionStore) Cleanup(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, rec := range m.records {
		if rec.savedAt.Before(cutoff) {
			delete(m.records, id)
		}
	}
	return nil
}

var _ model.SessionStore = (*MemorySessionStore)(nil)
