// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/pdiddy/dbinit/pkg/types"
)

// Inspector is a Catalog that can also count documents lacking a field.
type Inspector interface {
	Catalog
	CountMissing(ctx context.Context, collection, field string) (int64, error)
}

// IndexState describes a declared index as found in the database.
type IndexState string

const (
	IndexPresent  IndexState = "present"
	IndexMissing  IndexState = "missing"
	IndexConflict IndexState = "conflict"
)

// IndexStatus reports one declared index.
type IndexStatus struct {
	Name  string     `json:"name"`
	Keys  string     `json:"keys"`
	State IndexState `json:"state"`

	// Actual is the name of the matching index when it differs from Name.
	Actual string `json:"actual,omitempty"`
}

// Status is a read-only snapshot of the declared schema in a database.
type Status struct {
	Database         string        `json:"database"`
	Collection       string        `json:"collection"`
	CollectionExists bool          `json:"collection_exists"`
	Indexes          []IndexStatus `json:"indexes"`

	// Missing counts documents lacking each indexed field.
	Missing map[string]int64 `json:"missing_fields,omitempty"`
}

// Ready reports whether the collection and every declared index are present.
func (s Status) Ready() bool {
	if !s.CollectionExists {
		return false
	}
	for _, idx := range s.Indexes {
		if idx.State != IndexPresent {
			return false
		}
	}
	return true
}

// Inspect compares schema against the database without changing it.
func Inspect(ctx context.Context, c Inspector, schema types.CollectionSpec) (Status, error) {
	st := Status{Database: c.Name(), Collection: schema.Name}

	exists, err := c.CollectionExists(ctx, schema.Name)
	if err != nil {
		return st, fmt.Errorf("checking collection %s: %w", schema.Name, err)
	}
	st.CollectionExists = exists

	var existing []types.IndexSpec
	if exists {
		existing, err = c.ListIndexes(ctx, schema.Name)
		if err != nil {
			return st, fmt.Errorf("listing indexes on %s: %w", schema.Name, err)
		}
	}

	for _, spec := range schema.Indexes {
		is := IndexStatus{Name: spec.IndexName(), Keys: describeKeys(spec.Keys), State: IndexMissing}
		if match, ok := matchIndex(existing, spec); ok {
			if match.SameKeys(spec) && match.SameOptions(spec) {
				is.State = IndexPresent
				if match.Name != is.Name {
					is.Actual = match.Name
				}
			} else {
				is.State = IndexConflict
			}
		}
		st.Indexes = append(st.Indexes, is)
	}

	if !exists {
		return st, nil
	}

	st.Missing = make(map[string]int64)
	for _, field := range indexedFields(schema) {
		n, err := c.CountMissing(ctx, schema.Name, field)
		if err != nil {
			return st, err
		}
		st.Missing[field] = n
	}
	return st, nil
}

// indexedFields returns each field named by the schema's indexes once, in
// declaration order.
func indexedFields(schema types.CollectionSpec) []string {
	seen := make(map[string]bool)
	var fields []string
	for _, spec := range schema.Indexes {
		for _, k := range spec.Keys {
			if !seen[k.Field] {
				seen[k.Field] = true
				fields = append(fields, k.Field)
			}
		}
	}
	return fields
}
