// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dbinit/pkg/types"
)

func TestInspect_FreshDatabase(t *testing.T) {
	c := newFakeCatalog("mental_chatbot")

	st, err := Inspect(context.Background(), c, types.DefaultSchema())
	require.NoError(t, err)

	assert.False(t, st.Ready())
	assert.False(t, st.CollectionExists)
	require.Len(t, st.Indexes, 2)
	assert.Equal(t, IndexMissing, st.Indexes[0].State)
	assert.Equal(t, IndexMissing, st.Indexes[1].State)
	assert.Nil(t, st.Missing)
	assert.NotContains(t, c.calls, "listIndexes knowledge")
}

func TestInspect_AfterRun(t *testing.T) {
	c := newFakeCatalog("mental_chatbot")
	_, err := New(c, Options{}).Run(context.Background())
	require.NoError(t, err)
	c.missing["created_at"] = 3
	c.resetCalls()

	st, err := Inspect(context.Background(), c, types.DefaultSchema())
	require.NoError(t, err)

	assert.True(t, st.Ready())
	assert.Equal(t, []IndexStatus{
		{Name: "category_1", Keys: "{category: 1}", State: IndexPresent},
		{Name: "created_at_-1", Keys: "{created_at: -1}", State: IndexPresent},
	}, st.Indexes)
	assert.Equal(t, map[string]int64{"category": 0, "created_at": 3}, st.Missing)
	for _, call := range c.calls {
		assert.NotContains(t, call, "create", "inspect is read-only")
	}
}

func TestInspect_ConflictAndRename(t *testing.T) {
	c := newFakeCatalog("db")
	c.collections["knowledge"] = []types.IndexSpec{
		idIndex,
		{Name: "category_1", Keys: []types.IndexKey{{Field: "category", Order: types.Descending}}},
		{Name: "recent", Keys: []types.IndexKey{{Field: "created_at", Order: types.Descending}}},
	}

	st, err := Inspect(context.Background(), c, types.DefaultSchema())
	require.NoError(t, err)

	assert.False(t, st.Ready())
	assert.Equal(t, IndexConflict, st.Indexes[0].State)
	assert.Equal(t, IndexPresent, st.Indexes[1].State)
	assert.Equal(t, "recent", st.Indexes[1].Actual)
}

func TestInspect_OptionsConflict(t *testing.T) {
	ttl := int32(3600)
	c := newFakeCatalog("db")
	c.collections["knowledge"] = []types.IndexSpec{
		idIndex,
		{Name: "category_1", Keys: []types.IndexKey{{Field: "category", Order: types.Ascending}}, Unique: true},
		{Name: "created_at_-1", Keys: []types.IndexKey{{Field: "created_at", Order: types.Descending}}, ExpireAfterSeconds: &ttl},
	}

	st, err := Inspect(context.Background(), c, types.DefaultSchema())
	require.NoError(t, err)

	assert.False(t, st.Ready())
	assert.Equal(t, IndexConflict, st.Indexes[0].State)
	assert.Equal(t, IndexConflict, st.Indexes[1].State)
}

func TestInspect_Errors(t *testing.T) {
	errDown := errors.New("server selection timeout")
	for _, key := range []string{"exists knowledge", "listIndexes knowledge", "countMissing category"} {
		t.Run(key, func(t *testing.T) {
			c := newFakeCatalog("db")
			c.collections["knowledge"] = []types.IndexSpec{idIndex}
			c.failOn[key] = errDown

			_, err := Inspect(context.Background(), c, types.DefaultSchema())
			require.ErrorIs(t, err, errDown)
		})
	}
}
