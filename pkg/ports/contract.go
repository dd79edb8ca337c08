package ports

import (
	"context"
	"testing"
	"time"

	"github.com/kdvornichenko/birthday/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResponseStoreContract verifies that a ResponseStore implementation
// adheres to the interface contract. Every adapter's test suite runs it.
func RunResponseStoreContract(t *testing.T, store ResponseStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		resp := domain.NewResponse(sessionID, domain.Answers{
			"name":    {Text: "Anna"},
			"alcohol": {Selections: []string{"red", "white"}},
		})

		err := store.Save(ctx, sessionID, resp)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.ID)
		assert.Equal(t, "Anna", loaded.Answers["name"].Text)
		assert.Equal(t, []string{"red", "white"}, loaded.Answers["alcohol"].Selections)
		assert.Equal(t, domain.NoticeIdle, loaded.Notice.Status)
	})

	t.Run("Load returns isolated copies", func(t *testing.T) {
		resp := domain.NewResponse(sessionID, domain.Answers{"name": {Text: "Anna"}})
		require.NoError(t, store.Save(ctx, sessionID, resp))

		first, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		first.Answers["name"] = domain.FieldValue{Text: "mutated"}

		second, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "Anna", second.Answers["name"].Text,
			"mutating a loaded response must not affect the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewResponse(sessionID, nil)))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewResponse(id1, nil))
		_ = store.Save(ctx, id2, domain.NewResponse(id2, nil))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
