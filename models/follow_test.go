package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFollows(t *testing.T) {
	db := setupTestDB(t)

	t.Run("Create is idempotent per ordered pair", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		alice := MockActor(t, tx, "alice", "example.com")
		bob := MockActor(t, tx, "bob", "remote.example")

		_, err := NewFollows(tx).Create(bob, alice, "accepted")
		require.NoError(err)
		_, err = NewFollows(tx).Create(bob, alice, "accepted")
		require.NoError(err)

		var count int64
		require.NoError(tx.Model(&Follow{}).Where("actor_id = ? AND target_id = ?", bob.ID, alice.ID).Count(&count).Error)
		require.EqualValues(1, count)

		follow, err := NewFollows(tx).Find(bob, alice)
		require.NoError(err)
		require.EqualValues("accepted", follow.Status)
	})

	t.Run("Delete tolerates a missing edge", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		alice := MockActor(t, tx, "alice", "example.com")
		bob := MockActor(t, tx, "bob", "remote.example")

		require.NoError(NewFollows(tx).Delete(bob, alice))

		_, err := NewFollows(tx).Create(bob, alice, "accepted")
		require.NoError(err)
		require.NoError(NewFollows(tx).Delete(bob, alice))

		_, err = NewFollows(tx).Find(bob, alice)
		require.Error(err)
	})

	t.Run("deleting an actor deletes its follows", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		alice := MockActor(t, tx, "alice", "example.com")
		bob := MockActor(t, tx, "bob", "remote.example")
		_, err := NewFollows(tx).Create(bob, alice, "accepted")
		require.NoError(err)

		require.NoError(tx.Delete(bob).Error)

		_, err = NewFollows(tx).Find(bob, alice)
		require.Error(err)
	})
}
