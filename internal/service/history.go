package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"taxi_dispatch/internal/models"
	"taxi_dispatch/internal/repository"
)

// HistoryService is the append-only location history. Entries live in memory
// and the whole serialized array is rewritten to the durable store on every
// append; the list is loaded exactly once at startup and only ever grows
// until a logout wipe.
type HistoryService struct {
	kv repository.KV

	mu      sync.Mutex
	entries []models.HistoryEntry
}

func NewHistoryService(kv repository.KV) *HistoryService {
	return &HistoryService{kv: kv}
}

// Load reads the persisted history blob. An absent key is an empty log; a
// malformed blob is an explicit error rather than a latent panic at first
// use.
func (s *HistoryService) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, repository.KeyHistory)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	var entries []models.HistoryEntry
	if ok {
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return fmt.Errorf("malformed history payload: %w", err)
		}
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Append adds one entry and persists the full array. On a write failure the
// in-memory entry stays (no rollback) and the error is returned to the
// caller to surface.
func (s *HistoryService) Append(ctx context.Context, e models.HistoryEntry) error {
	s.mu.Lock()
	s.entries = append(s.entries, e)
	blob, err := json.Marshal(s.entries)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("serialize history: %w", err)
	}
	if err := s.kv.Set(ctx, repository.KeyHistory, string(blob)); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// List returns an ordered snapshot, oldest first.
func (s *HistoryService) List() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Reset drops the in-memory list. Used by logout, whose full store wipe
// removes the durable copy.
func (s *HistoryService) Reset() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}
