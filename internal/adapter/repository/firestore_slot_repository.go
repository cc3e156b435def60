package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"luxuryline/internal/domain/repository"
)

const slotCollection = "storefront_slots"

type firestoreSlot struct {
	Payload   []byte    `firestore:"payload"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

type firestoreSlotRepository struct {
	client *firestore.Client
}

func NewFirestoreSlotRepository(client *firestore.Client) repository.SlotStore {
	return &firestoreSlotRepository{client: client}
}

func (r *firestoreSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	doc, err := r.client.Collection(slotCollection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrSlotNotFound
		}
		return nil, fmt.Errorf("firestore get %s: %w", key, err)
	}

	var slot firestoreSlot
	if err := doc.DataTo(&slot); err != nil {
		return nil, fmt.Errorf("firestore decode %s: %w", key, err)
	}
	return slot.Payload, nil
}

func (r *firestoreSlotRepository) Set(ctx context.Context, key string, value []byte) error {
	slot := firestoreSlot{Payload: value, UpdatedAt: time.Now()}
	if _, err := r.client.Collection(slotCollection).Doc(key).Set(ctx, slot); err != nil {
		return fmt.Errorf("firestore set %s: %w", key, err)
	}
	return nil
}

func (r *firestoreSlotRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.client.Collection(slotCollection).Doc(key).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return fmt.Errorf("firestore delete %s: %w", key, err)
	}
	return nil
}
