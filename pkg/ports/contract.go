package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/animefmt/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	owner := time.Now().UnixNano()

	t.Run("Put and Get", func(t *testing.T) {
		session := &domain.Session{
			OwnerID:     owner,
			Query:       "frieren",
			CurrentPage: 1,
			LastResults: []domain.SearchResultItem{{ID: 154587, TitleRomaji: "Sousou no Frieren", Format: "TV"}},
		}

		require.NoError(t, store.Put(ctx, session), "Put should not return error")

		loaded, err := store.Get(ctx, owner)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, "frieren", loaded.Query)
		assert.Equal(t, 1, loaded.CurrentPage)
		require.Len(t, loaded.LastResults, 1)
		assert.Equal(t, 154587, loaded.LastResults[0].ID)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, owner+1)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, &domain.Session{OwnerID: owner, Query: "first", CurrentPage: 1}))
		require.NoError(t, store.Put(ctx, &domain.Session{OwnerID: owner, Query: "second", CurrentPage: 3}))

		loaded, err := store.Get(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, "second", loaded.Query)
		assert.Equal(t, 3, loaded.CurrentPage)
	})

	t.Run("Isolation", func(t *testing.T) {
		other := owner + 2
		require.NoError(t, store.Put(ctx, &domain.Session{OwnerID: owner, Query: "mine", CurrentPage: 1}))
		require.NoError(t, store.Put(ctx, &domain.Session{OwnerID: other, Query: "theirs", CurrentPage: 2}))
		defer func() { _ = store.Delete(ctx, other) }()

		mine, err := store.Get(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, "mine", mine.Query)

		// Mutating a loaded copy must not leak back into the store.
		mine.Query = "mutated"
		mine.LastResults = append(mine.LastResults, domain.SearchResultItem{ID: 1})
		again, err := store.Get(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, "mine", again.Query)
		assert.Empty(t, again.LastResults)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, &domain.Session{OwnerID: owner, Query: "gone"}))
		require.NoError(t, store.Delete(ctx, owner), "Delete should not return error")

		_, err := store.Get(ctx, owner)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Get after Delete should return ErrSessionNotFound")
	})
}
