package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store for tests and ephemeral runs. Documents
// round-trip through JSON so load/save semantics match the durable stores.
type MemStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{docs: map[string][]byte{}}
}

// Load implements Store.
func (s *MemStore) Load(ctx context.Context, name string, defaultPayload, out any) error {
	s.mu.Lock()
	data, ok := s.docs[name]
	s.mu.Unlock()

	if ok && len(data) > 0 {
		if err := json.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	if err := s.Save(ctx, name, defaultPayload); err != nil {
		return err
	}

	data, err := json.Marshal(defaultPayload)
	if err != nil {
		return fmt.Errorf("failed to marshal default payload for %q: %w", name, err)
	}
	return json.Unmarshal(data, out)
}

// Save implements Store.
func (s *MemStore) Save(_ context.Context, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal document %q: %w", name, err)
	}
	s.mu.Lock()
	s.docs[name] = data
	s.mu.Unlock()
	return nil
}

// Snapshot returns the raw stored bytes for a document, nil when absent.
func (s *MemStore) Snapshot(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.docs[name]
	out := make([]byte, len(data))
	copy(out, data)
	return out
}

var _ Store = (*MemStore)(nil)
