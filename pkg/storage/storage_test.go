package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSetGetDelete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("item:1", record{Name: "rice", Count: 2}))

	var got record
	require.NoError(t, store.Get("item:1", &got))
	assert.Equal(t, record{Name: "rice", Count: 2}, got)

	require.NoError(t, store.Delete("item:1"))
	err := store.Get("item:1", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByPrefix(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetMany(map[string]interface{}{
		"recipe:0002": record{Name: "b"},
		"recipe:0001": record{Name: "a"},
		"profile:1":   record{Name: "p"},
	}))

	keys, err := store.List("recipe:")
	require.NoError(t, err)
	assert.Equal(t, []string{"recipe:0001", "recipe:0002"}, keys)

	keys, err = store.List("pantry:")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestCloseIsIdempotent(t *testing.T) {
	store, err := NewInMemory()
	require.NoError(t, err)
	store.StartGCRoutine(0x7fffffff)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
