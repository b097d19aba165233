// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pdiddy/dbinit/pkg/types"
)

// Catalog reads and creates collections and indexes in one database.
type Catalog struct {
	db *mongo.Database
}

// NewCatalog returns a Catalog over db.
func NewCatalog(db *mongo.Database) *Catalog {
	return &Catalog{db: db}
}

// Name returns the database name.
func (c *Catalog) Name() string {
	return c.db.Name()
}

// CollectionExists reports whether the named collection exists.
func (c *Catalog) CollectionExists(ctx context.Context, name string) (bool, error) {
	names, err := c.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return false, fmt.Errorf("listing collections in %s: %w", c.db.Name(), err)
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// CreateCollection creates the named collection with default options.
// The server error is returned unwrapped so callers can classify it.
func (c *Catalog) CreateCollection(ctx context.Context, name string) error {
	return c.db.CreateCollection(ctx, name)
}

// ListIndexes returns the indexes of the named collection, including the
// implicit _id index. A missing collection has no indexes.
func (c *Catalog) ListIndexes(ctx context.Context, collection string) ([]types.IndexSpec, error) {
	specs, err := c.db.Collection(collection).Indexes().ListSpecifications(ctx)
	if err != nil {
		if IsNamespaceNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing indexes on %s: %w", collection, err)
	}

	out := make([]types.IndexSpec, 0, len(specs))
	for _, s := range specs {
		keys, err := decodeKeys(s.KeysDocument)
		if err != nil {
			return nil, fmt.Errorf("decoding keys of index %s: %w", s.Name, err)
		}
		out = append(out, types.IndexSpec{
			Name:               s.Name,
			Keys:               keys,
			Unique:             s.Unique != nil && *s.Unique,
			Sparse:             s.Sparse != nil && *s.Sparse,
			ExpireAfterSeconds: s.ExpireAfterSeconds,
		})
	}
	return out, nil
}

// CreateIndex creates the index and returns the name the server assigned.
// The server error is returned unwrapped.
func (c *Catalog) CreateIndex(ctx context.Context, collection string, spec types.IndexSpec) (string, error) {
	model := mongo.IndexModel{
		Keys:    keysDocument(spec.Keys),
		Options: indexOptions(spec),
	}
	return c.db.Collection(collection).Indexes().CreateOne(ctx, model)
}

// indexOptions sets only the options spec changes from the server defaults.
func indexOptions(spec types.IndexSpec) *options.IndexOptions {
	opts := options.Index().SetName(spec.IndexName())
	if spec.Unique {
		opts.SetUnique(true)
	}
	if spec.Sparse {
		opts.SetSparse(true)
	}
	if spec.ExpireAfterSeconds != nil {
		opts.SetExpireAfterSeconds(*spec.ExpireAfterSeconds)
	}
	return opts
}

// CountMissing counts documents in collection that lack field.
func (c *Catalog) CountMissing(ctx context.Context, collection, field string) (int64, error) {
	filter := bson.D{{Key: field, Value: bson.D{{Key: "$exists", Value: false}}}}
	n, err := c.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("counting documents without %s: %w", field, err)
	}
	return n, nil
}

// keysDocument converts a key pattern to the ordered document the server expects.
func keysDocument(keys []types.IndexKey) bson.D {
	d := make(bson.D, 0, len(keys))
	for _, k := range keys {
		d = append(d, bson.E{Key: k.Field, Value: int32(k.Order)})
	}
	return d
}

// decodeKeys converts a server key document to a key pattern. Numeric values
// keep their sign; string values (text, hashed, 2dsphere) map to order 0.
func decodeKeys(raw bson.Raw) ([]types.IndexKey, error) {
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, err
	}

	keys := make([]types.IndexKey, 0, len(d))
	for _, e := range d {
		keys = append(keys, types.IndexKey{Field: e.Key, Order: orderOf(e.Value)})
	}
	return keys, nil
}

func orderOf(v interface{}) types.SortOrder {
	var f float64
	switch n := v.(type) {
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64:
		f = n
	default:
		return 0
	}
	switch {
	case f > 0:
		return types.Ascending
	case f < 0:
		return types.Descending
	default:
		return 0
	}
}
