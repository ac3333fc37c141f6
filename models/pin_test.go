package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPins(t *testing.T) {
	db := setupTestDB(t)

	t.Run("Pin preserves insertion order and is idempotent", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		alice := MockActor(t, tx, "alice", "example.com")
		first := MockPost(t, tx, alice, "first")
		second := MockPost(t, tx, alice, "second")

		pins := NewPins(tx)
		require.NoError(pins.Pin(alice, first))
		require.NoError(pins.Pin(alice, second))
		require.NoError(pins.Pin(alice, first))

		list, err := pins.List(alice)
		require.NoError(err)
		require.Len(list, 2)
		require.Equal(first.ID, list[0].PostID)
		require.Equal(second.ID, list[1].PostID)
	})

	t.Run("Unpin tolerates a missing membership", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		alice := MockActor(t, tx, "alice", "example.com")
		post := MockPost(t, tx, alice, "never pinned")

		require.NoError(NewPins(tx).Unpin(alice, post))
	})

	t.Run("Clear removes all of the actor's pins", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		alice := MockActor(t, tx, "alice", "example.com")
		pins := NewPins(tx)
		require.NoError(pins.Pin(alice, MockPost(t, tx, alice, "one")))
		require.NoError(pins.Pin(alice, MockPost(t, tx, alice, "two")))

		require.NoError(pins.Clear(alice))
		list, err := pins.List(alice)
		require.NoError(err)
		require.Empty(list)
	})
}
