// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// SortOrder is the direction of an index key.
type SortOrder int

const (
	Ascending  SortOrder = 1
	Descending SortOrder = -1
)

// String returns "asc", "desc", or "other" for non-ordered keys such as
// text or hashed indexes.
func (o SortOrder) String() string {
	switch o {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "other"
	}
}

// IndexKey is one field of an index key pattern.
type IndexKey struct {
	Field string    `json:"field" yaml:"field"`
	Order SortOrder `json:"order" yaml:"order"`
}

// IndexSpec declares a secondary index. The zero options describe a
// non-unique, non-sparse index without TTL.
type IndexSpec struct {
	// Name is the index name. Empty means the server default derived from Keys.
	Name string `json:"name" yaml:"name"`

	// Keys is the ordered key pattern.
	Keys []IndexKey `json:"keys" yaml:"keys"`

	Unique bool `json:"unique,omitempty" yaml:"unique,omitempty"`
	Sparse bool `json:"sparse,omitempty" yaml:"sparse,omitempty"`

	// ExpireAfterSeconds makes the index a TTL index when set.
	ExpireAfterSeconds *int32 `json:"expire_after_seconds,omitempty" yaml:"expire_after_seconds,omitempty"`
}

// DefaultName returns the name MongoDB assigns to an index with this key
// pattern: field_order pairs joined by underscores (e.g. "created_at_-1").
func (s IndexSpec) DefaultName() string {
	parts := make([]string, 0, len(s.Keys)*2)
	for _, k := range s.Keys {
		parts = append(parts, k.Field, fmt.Sprintf("%d", int(k.Order)))
	}
	return strings.Join(parts, "_")
}

// IndexName returns Name when set, DefaultName otherwise.
func (s IndexSpec) IndexName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.DefaultName()
}

// SameKeys reports whether s and other have the same ordered key pattern.
func (s IndexSpec) SameKeys(other IndexSpec) bool {
	if len(s.Keys) != len(other.Keys) {
		return false
	}
	for i := range s.Keys {
		if s.Keys[i] != other.Keys[i] {
			return false
		}
	}
	return true
}

// SameOptions reports whether s and other agree on uniqueness, sparseness,
// and TTL.
func (s IndexSpec) SameOptions(other IndexSpec) bool {
	if s.Unique != other.Unique || s.Sparse != other.Sparse {
		return false
	}
	if s.ExpireAfterSeconds == nil || other.ExpireAfterSeconds == nil {
		return s.ExpireAfterSeconds == nil && other.ExpireAfterSeconds == nil
	}
	return *s.ExpireAfterSeconds == *other.ExpireAfterSeconds
}

// DescribeOptions renders the non-default options in shell syntax, e.g.
// "{unique: true, expireAfterSeconds: 3600}". Default options render as "{}".
func (s IndexSpec) DescribeOptions() string {
	var parts []string
	if s.Unique {
		parts = append(parts, "unique: true")
	}
	if s.Sparse {
		parts = append(parts, "sparse: true")
	}
	if s.ExpireAfterSeconds != nil {
		parts = append(parts, fmt.Sprintf("expireAfterSeconds: %d", *s.ExpireAfterSeconds))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// CollectionSpec declares a collection and its secondary indexes.
type CollectionSpec struct {
	Name    string      `json:"name" yaml:"name"`
	Indexes []IndexSpec `json:"indexes" yaml:"indexes"`
}

// DefaultSchema returns the knowledge collection with its two indexes:
// category ascending and created_at descending.
func DefaultSchema() CollectionSpec {
	return CollectionSpec{
		Name: KnowledgeCollection,
		Indexes: []IndexSpec{
			{Keys: []IndexKey{{Field: FieldCategory, Order: Ascending}}},
			{Keys: []IndexKey{{Field: FieldCreatedAt, Order: Descending}}},
		},
	}
}
