// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDatabaseName(t *testing.T) {
	assert.Equal(t, "mental_chatbot", ResolveDatabaseName(""))
	assert.Equal(t, "test_db", ResolveDatabaseName("test_db"))
}

func TestIndexSpecNames(t *testing.T) {
	tests := []struct {
		name string
		spec IndexSpec
		want string
	}{
		{
			name: "ascending single field",
			spec: IndexSpec{Keys: []IndexKey{{Field: "category", Order: Ascending}}},
			want: "category_1",
		},
		{
			name: "descending single field",
			spec: IndexSpec{Keys: []IndexKey{{Field: "created_at", Order: Descending}}},
			want: "created_at_-1",
		},
		{
			name: "compound",
			spec: IndexSpec{Keys: []IndexKey{{Field: "a", Order: Ascending}, {Field: "b", Order: Descending}}},
			want: "a_1_b_-1",
		},
		{
			name: "explicit name wins",
			spec: IndexSpec{Name: "by_category", Keys: []IndexKey{{Field: "category", Order: Ascending}}},
			want: "by_category",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.IndexName())
		})
	}
}

func TestSameKeys(t *testing.T) {
	asc := IndexSpec{Keys: []IndexKey{{Field: "category", Order: Ascending}}}
	desc := IndexSpec{Keys: []IndexKey{{Field: "category", Order: Descending}}}
	named := IndexSpec{Name: "other", Keys: []IndexKey{{Field: "category", Order: Ascending}}}

	assert.True(t, asc.SameKeys(named), "names are not part of the key pattern")
	assert.False(t, asc.SameKeys(desc))
	assert.False(t, asc.SameKeys(IndexSpec{}))
}

func TestSameOptions(t *testing.T) {
	ttl := int32(3600)
	otherTTL := int32(60)
	plain := IndexSpec{Keys: []IndexKey{{Field: "created_at", Order: Descending}}}

	tests := []struct {
		name  string
		other IndexSpec
		same  bool
		desc  string
	}{
		{name: "defaults", other: IndexSpec{Name: "recent"}, same: true, desc: "{}"},
		{name: "unique", other: IndexSpec{Unique: true}, desc: "{unique: true}"},
		{name: "sparse", other: IndexSpec{Sparse: true}, desc: "{sparse: true}"},
		{name: "ttl", other: IndexSpec{ExpireAfterSeconds: &ttl}, desc: "{expireAfterSeconds: 3600}"},
		{name: "unique ttl", other: IndexSpec{Unique: true, ExpireAfterSeconds: &ttl}, desc: "{unique: true, expireAfterSeconds: 3600}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.same, plain.SameOptions(tt.other))
			assert.Equal(t, tt.same, tt.other.SameOptions(plain))
			assert.Equal(t, tt.desc, tt.other.DescribeOptions())
		})
	}

	a := IndexSpec{ExpireAfterSeconds: &ttl}
	b := IndexSpec{ExpireAfterSeconds: &otherTTL}
	assert.False(t, a.SameOptions(b))
	assert.True(t, a.SameOptions(IndexSpec{ExpireAfterSeconds: &ttl}), "TTL compares by value")
}

func TestDefaultSchema(t *testing.T) {
	s := DefaultSchema()
	assert.Equal(t, "knowledge", s.Name)
	if assert.Len(t, s.Indexes, 2) {
		assert.Equal(t, "category_1", s.Indexes[0].IndexName())
		assert.Equal(t, "created_at_-1", s.Indexes[1].IndexName())
		for _, idx := range s.Indexes {
			assert.Equal(t, "{}", idx.DescribeOptions(), "declared indexes use default options")
		}
	}
}
