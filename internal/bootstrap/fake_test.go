// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pdiddy/dbinit/pkg/types"
)

// fakeCatalog is an in-memory database that mimics the server behavior the
// initializer depends on and records every call.
type fakeCatalog struct {
	name        string
	collections map[string][]types.IndexSpec
	missing     map[string]int64
	failOn      map[string]error // call key -> error returned instead of acting
	calls       []string
	deadlines   int // calls whose context carried a deadline
}

var idIndex = types.IndexSpec{Name: "_id_", Keys: []types.IndexKey{{Field: "_id", Order: types.Ascending}}}

func newFakeCatalog(name string) *fakeCatalog {
	return &fakeCatalog{
		name:        name,
		collections: map[string][]types.IndexSpec{},
		missing:     map[string]int64{},
		failOn:      map[string]error{},
	}
}

func (f *fakeCatalog) call(ctx context.Context, key string) error {
	f.calls = append(f.calls, key)
	if _, ok := ctx.Deadline(); ok {
		f.deadlines++
	}
	return f.failOn[key]
}

func (f *fakeCatalog) Name() string { return f.name }

func (f *fakeCatalog) CollectionExists(ctx context.Context, name string) (bool, error) {
	if err := f.call(ctx, "exists "+name); err != nil {
		return false, err
	}
	_, ok := f.collections[name]
	return ok, nil
}

func (f *fakeCatalog) CreateCollection(ctx context.Context, name string) error {
	if err := f.call(ctx, "createCollection "+name); err != nil {
		return err
	}
	if _, ok := f.collections[name]; ok {
		return mongo.CommandError{Code: 48, Name: "NamespaceExists"}
	}
	f.collections[name] = []types.IndexSpec{idIndex}
	return nil
}

func (f *fakeCatalog) ListIndexes(ctx context.Context, collection string) ([]types.IndexSpec, error) {
	if err := f.call(ctx, "listIndexes "+collection); err != nil {
		return nil, err
	}
	return append([]types.IndexSpec(nil), f.collections[collection]...), nil
}

func (f *fakeCatalog) CreateIndex(ctx context.Context, collection string, spec types.IndexSpec) (string, error) {
	name := spec.IndexName()
	if err := f.call(ctx, "createIndex "+name); err != nil {
		return "", err
	}
	idx, ok := f.collections[collection]
	if !ok {
		// The server creates the collection implicitly.
		idx = []types.IndexSpec{idIndex}
	}
	for _, e := range idx {
		if e.Name == name {
			if !e.SameKeys(spec) {
				return "", mongo.CommandError{Code: 86, Name: "IndexKeySpecsConflict"}
			}
			if !e.SameOptions(spec) {
				return "", mongo.CommandError{Code: 85, Name: "IndexOptionsConflict"}
			}
			return name, nil
		}
	}
	spec.Name = name
	f.collections[collection] = append(idx, spec)
	return name, nil
}

func (f *fakeCatalog) CountMissing(ctx context.Context, collection, field string) (int64, error) {
	if err := f.call(ctx, "countMissing "+field); err != nil {
		return 0, err
	}
	return f.missing[field], nil
}

func (f *fakeCatalog) indexNames(collection string) []string {
	var names []string
	for _, idx := range f.collections[collection] {
		names = append(names, idx.Name)
	}
	return names
}

func (f *fakeCatalog) resetCalls() {
	f.calls = nil
	f.deadlines = 0
}
