package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionCounters = "counters"

// Sequence allocates ids from a counter document updated with $inc, which
// MongoDB applies atomically.
type Sequence struct {
	coll *mongo.Collection
	name string
}

// NewSequence returns the sequence stored under name in the counters collection.
func NewSequence(db *mongo.Database, name string) *Sequence {
	return &Sequence{coll: db.Collection(collectionCounters), name: name}
}

func (s *Sequence) Next(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var counter struct {
		Value int64 `bson:"value"`
	}
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": s.name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", s.name, err)
	}
	return counter.Value, nil
}
