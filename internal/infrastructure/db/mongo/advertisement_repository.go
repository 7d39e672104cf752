package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adsboard/marketplace-api/internal/core/domain"
	"github.com/adsboard/marketplace-api/internal/core/ports"
)

const collectionAdvertisements = "advertisements"

// AdvertisementRepository implements ports.AdvertisementRepository using MongoDB.
type AdvertisementRepository struct {
	col *mongo.Collection
	seq ports.Sequence
}

func NewAdvertisementRepository(db *mongo.Database, seq ports.Sequence) *AdvertisementRepository {
	return &AdvertisementRepository{col: db.Collection(collectionAdvertisements), seq: seq}
}

type advertisementDocument struct {
	ID          int64     `bson:"_id"`
	OwnerUserID int64     `bson:"owner_user_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Price       float64   `bson:"price"`
	Revision    int64     `bson:"rev"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toAdvertisementDocument(a *domain.Advertisement) advertisementDocument {
	return advertisementDocument{
		ID:          a.ID,
		OwnerUserID: a.OwnerUserID,
		Title:       a.Title,
		Description: a.Description,
		Price:       a.Price,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (d advertisementDocument) toDomain() *domain.Advertisement {
	return &domain.Advertisement{
		ID:          d.ID,
		OwnerUserID: d.OwnerUserID,
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// Create inserts a new advertisement document.
func (r *AdvertisementRepository) Create(ctx context.Context, ad *domain.Advertisement) (*domain.Advertisement, error) {
	id, err := r.seq.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate advertisement id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toAdvertisementDocument(ad)
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert advertisement: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdvertisementRepository) FindByID(ctx context.Context, id int64) (*domain.Advertisement, error) {
	doc, err := r.findOne(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *AdvertisementRepository) findOne(ctx context.Context, id int64) (*advertisementDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc advertisementDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdvertisementNotFound
		}
		return nil, fmt.Errorf("find advertisement: %w", err)
	}
	return &doc, nil
}

// Search translates the filter into a query: substring filters become
// escaped case-insensitive regexes, price bounds are inclusive.
func (r *AdvertisementRepository) Search(ctx context.Context, f ports.AdvertisementFilter) ([]*domain.Advertisement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, searchQuery(f), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("search advertisements: %w", err)
	}
	defer cur.Close(ctx)

	var docs []advertisementDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode advertisements: %w", err)
	}

	out := make([]*domain.Advertisement, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func searchQuery(f ports.AdvertisementFilter) bson.M {
	query := bson.M{}
	if f.Title != "" {
		query["title"] = bson.M{"$regex": regexp.QuoteMeta(f.Title), "$options": "i"}
	}
	if f.Description != "" {
		query["description"] = bson.M{"$regex": regexp.QuoteMeta(f.Description), "$options": "i"}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price"] = price
	}
	if f.OwnerUserID != nil {
		query["owner_user_id"] = *f.OwnerUserID
	}
	return query
}

func (r *AdvertisementRepository) Update(ctx context.Context, id int64, mutate func(*domain.Advertisement) error) (*domain.Advertisement, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		current, err := r.findOne(ctx, id)
		if err != nil {
			return nil, err
		}

		ad := current.toDomain()
		if err := mutate(ad); err != nil {
			return nil, err
		}

		next := toAdvertisementDocument(ad)
		next.ID = current.ID
		next.OwnerUserID = current.OwnerUserID
		next.CreatedAt = current.CreatedAt
		next.Revision = current.Revision + 1

		matched, err := r.replace(ctx, current.Revision, next)
		if err != nil {
			return nil, err
		}
		if matched {
			return next.toDomain(), nil
		}
	}
	return nil, fmt.Errorf("update advertisement %d: %w", id, ErrConcurrentUpdate)
}

func (r *AdvertisementRepository) replace(ctx context.Context, revision int64, doc advertisementDocument) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID, "rev": revision}, doc)
	if err != nil {
		return false, fmt.Errorf("replace advertisement: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *AdvertisementRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete advertisement: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAdvertisementNotFound
	}
	return nil
}
