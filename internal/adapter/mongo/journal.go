package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"news_moves/internal/domain"
)

// Journal stores cycle results for auditing. It is write-mostly and never
// consulted when deciding what to submit.
type Journal struct {
	collection *mongo.Collection
}

func NewJournal(collection *mongo.Collection) *Journal {
	return &Journal{collection: collection}
}

func (j *Journal) Record(ctx context.Context, result domain.CycleResult) error {
	if _, err := j.collection.InsertOne(ctx, result); err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

// Recent returns the newest results first.
func (j *Journal) Recent(ctx context.Context, limit int64) ([]domain.CycleResult, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := j.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []domain.CycleResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	return results, nil
}

// EnsureIndexes creates the index used by Recent.
func (j *Journal) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := j.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "started_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create index failed: %w", err)
	}
	return nil
}
