package repository

import (
	"context"
	"sync"

	"luxuryline/internal/domain/repository"
)

type memorySlotRepository struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemorySlotRepository keeps slots in process memory. Contents are lost
// on restart.
func NewMemorySlotRepository() repository.SlotStore {
	return &memorySlotRepository{slots: make(map[string][]byte)}
}

func (r *memorySlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.slots[key]
	if !ok {
		return nil, repository.ErrSlotNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *memorySlotRepository) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[key] = append([]byte(nil), value...)
	return nil
}

func (r *memorySlotRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.slots, key)
	return nil
}
