package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"luxuryline/internal/domain/repository"
)

type mongoSlot struct {
	Key       string    `bson:"_id"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoSlotRepository struct {
	collection *mongo.Collection
}

func NewMongoSlotRepository(db *mongo.Database) repository.SlotStore {
	return &mongoSlotRepository{collection: db.Collection(slotCollection)}
}

func (r *mongoSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var slot mongoSlot
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrSlotNotFound
		}
		return nil, fmt.Errorf("mongo find %s: %w", key, err)
	}
	return slot.Payload, nil
}

func (r *mongoSlotRepository) Set(ctx context.Context, key string, value []byte) error {
	slot := mongoSlot{Key: key, Payload: value, UpdatedAt: time.Now()}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, slot, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert %s: %w", key, err)
	}
	return nil
}

func (r *mongoSlotRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}
