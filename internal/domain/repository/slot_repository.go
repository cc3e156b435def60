package repository

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned by Get when nothing is stored under the key.
var ErrSlotNotFound = errors.New("slot not found")

// SlotStore is a flat key-value store holding one serialized value per key.
// It stands in for the browser's local storage.
type SlotStore interface {
	// Get returns the stored bytes or ErrSlotNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the slot.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, key string) error
}
