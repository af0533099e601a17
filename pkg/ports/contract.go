package ports

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/portrait/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	userID := "contract-user-" + time.Now().Format("20060102150405")

	t.Run("Create and Get", func(t *testing.T) {
		created, err := store.Create(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, created.UserID)
		assert.Equal(t, domain.StatusIdle, created.Status)

		loaded, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusIdle, loaded.Status)
	})

	t.Run("Create Overwrites", func(t *testing.T) {
		s, err := store.Create(ctx, userID)
		require.NoError(t, err)
		s.StartBranch(4)
		require.NoError(t, store.Put(ctx, userID, s))

		_, err = store.Create(ctx, userID)
		require.NoError(t, err)

		loaded, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusIdle, loaded.Status)
		assert.Empty(t, loaded.History)
	})

	t.Run("Put Round Trip", func(t *testing.T) {
		s := domain.NewSession(userID)
		s.StartBranch(2)
		s.MoveTo(3)
		s.Advices = []string{"A.x"}
		s.PortraitTags = []string{"X"}
		require.NoError(t, store.Put(ctx, userID, s))

		loaded, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, loaded.History)
		assert.Equal(t, 3, loaded.CurrentQ)
		assert.Equal(t, []string{"A.x"}, loaded.Advices)
		assert.Equal(t, []string{"X"}, loaded.PortraitTags)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := store.Get(ctx, "missing-"+userID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Remove", func(t *testing.T) {
		_, err := store.Create(ctx, userID)
		require.NoError(t, err)

		require.NoError(t, store.Remove(ctx, userID))
		_, err = store.Get(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Get after Remove should return ErrSessionNotFound")

		assert.NoError(t, store.Remove(ctx, userID), "removing twice is harmless")
	})

	t.Run("Distinct Users Concurrently", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id := fmt.Sprintf("%s-%d", userID, i)
				s, err := store.Create(ctx, id)
				assert.NoError(t, err)
				s.StartBranch(i + 1)
				assert.NoError(t, store.Put(ctx, id, s))
			}(i)
		}
		wg.Wait()

		for i := 0; i < 16; i++ {
			id := fmt.Sprintf("%s-%d", userID, i)
			s, err := store.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, i+1, s.Branch)
			_ = store.Remove(ctx, id)
		}
	})
}
