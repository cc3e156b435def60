package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"luxuryline/internal/domain/repository"
	"luxuryline/pkg/logger"
)

const (
	CartSlot     = "luxuryline-cart"
	WishlistSlot = "luxuryline-wishlist"
	OrdersSlot   = "luxuryline-orders"
)

// SlotKey namespaces a slot name by session.
func SlotKey(sessionID, slot string) string {
	return sessionID + ":" + slot
}

// PersistentStore reads and writes one JSON-encoded collection per slot.
// Reads fail soft and writes are fire-and-forget: problems are logged and
// never reach the caller.
type PersistentStore[T any] struct {
	slots repository.SlotStore
}

func NewPersistentStore[T any](slots repository.SlotStore) *PersistentStore[T] {
	return &PersistentStore[T]{slots: slots}
}

// Load returns an empty collection when the slot is absent or malformed.
func (s *PersistentStore[T]) Load(ctx context.Context, key string) []T {
	raw, err := s.slots.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrSlotNotFound) {
			logger.Warn("Failed to read slot %s: %v", key, err)
		}
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("Discarding malformed slot %s: %v", key, err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func (s *PersistentStore[T]) Save(ctx context.Context, key string, items []T) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		logger.Error("Failed to encode slot %s: %v", key, err)
		return
	}
	if err := s.slots.Set(ctx, key, raw); err != nil {
		logger.WithError(err).WithField("slot", key).Error("Failed to write slot")
	}
}

func (s *PersistentStore[T]) Clear(ctx context.Context, key string) {
	if err := s.slots.Delete(ctx, key); err != nil {
		logger.Error("Failed to remove slot %s: %v", key, err)
	}
}
