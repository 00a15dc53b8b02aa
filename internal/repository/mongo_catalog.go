package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

// MongoCatalog stores one entity type in a collection keyed by numeric _id.
type MongoCatalog[E model.Entity[E]] struct {
	db         *MongoDB
	collection *mongo.Collection
	name       string
	keyField   string
}

// NewMongoCatalog creates a repository over collection. keyField is the
// document field holding the natural key.
func NewMongoCatalog[E model.Entity[E]](db *MongoDB, collection *mongo.Collection, keyField string) *MongoCatalog[E] {
	return &MongoCatalog[E]{
		db:         db,
		collection: collection,
		name:       collection.Name(),
		keyField:   keyField,
	}
}

func NewMongoProductRepository(db *MongoDB) *MongoCatalog[model.Product] {
	return NewMongoCatalog[model.Product](db, db.Products, "name")
}

func NewMongoCategoryRepository(db *MongoDB) *MongoCatalog[model.Category] {
	return NewMongoCatalog[model.Category](db, db.Categories, "name")
}

func NewMongoBrandRepository(db *MongoDB) *MongoCatalog[model.Brand] {
	return NewMongoCatalog[model.Brand](db, db.Brands, "name")
}

func NewMongoUserRepository(db *MongoDB) *MongoCatalog[model.User] {
	return NewMongoCatalog[model.User](db, db.Users, "email")
}

// FindAll returns every document ordered by _id.
func (r *MongoCatalog[E]) FindAll(ctx context.Context) ([]E, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	items := make([]E, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoCatalog[E]) FindByID(ctx context.Context, id int64) (*E, error) {
	var e E
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *MongoCatalog[E]) Save(ctx context.Context, e E) (E, error) {
	var zero E
	id, err := r.db.NextID(ctx, r.name)
	if err != nil {
		return zero, err
	}

	e = e.WithID(id).Touch(time.Now().UTC())
	if _, err := r.collection.InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return zero, fmt.Errorf("%w: %q", ErrDuplicateKey, e.NaturalKey())
		}
		return zero, err
	}
	return e, nil
}

func (r *MongoCatalog[E]) Update(ctx context.Context, e E) (E, error) {
	var zero E
	e = e.Touch(time.Now().UTC())

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": e.EntityID()}, e)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return zero, fmt.Errorf("%w: %q", ErrDuplicateKey, e.NaturalKey())
		}
		return zero, err
	}
	if res.MatchedCount == 0 {
		return zero, fmt.Errorf("%w: id %d", ErrNotFound, e.EntityID())
	}
	return e, nil
}

func (r *MongoCatalog[E]) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoCatalog[E]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, bson.M{"_id": id})
}

func (r *MongoCatalog[E]) ExistsByNaturalKey(ctx context.Context, key string) (bool, error) {
	return r.exists(ctx, bson.M{r.keyField: key})
}

func (r *MongoCatalog[E]) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
