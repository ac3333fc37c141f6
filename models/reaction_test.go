package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReactions(t *testing.T) {
	db := setupTestDB(t)

	t.Run("Like twice leaves exactly one edge", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		alice := MockActor(t, tx, "alice", "example.com")
		bob := MockActor(t, tx, "bob", "remote.example")
		post := MockPost(t, tx, alice, "Hello world")

		require.NoError(NewReactions(tx).Like(bob, post))
		require.NoError(NewReactions(tx).Like(bob, post))

		var count int64
		require.NoError(tx.Model(&Like{}).Where("actor_id = ? AND post_id = ?", bob.ID, post.ID).Count(&count).Error)
		require.EqualValues(1, count)
	})

	t.Run("Unlike without an edge is a no-op", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		alice := MockActor(t, tx, "alice", "example.com")
		bob := MockActor(t, tx, "bob", "remote.example")
		post := MockPost(t, tx, alice, "Hello world")

		require.NoError(NewReactions(tx).Unlike(bob, post))

		liked, err := NewReactions(tx).Liked(bob, post)
		require.NoError(err)
		require.False(liked)
	})

	t.Run("Unboost removes the edge but not the post", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		alice := MockActor(t, tx, "alice", "example.com")
		community := MockActor(t, tx, "gardening", "communities.example", WithType("Group"))
		post := MockPost(t, tx, alice, "Hello world")

		require.NoError(NewReactions(tx).Boost(community, post))
		boosted, err := NewReactions(tx).Boosted(community, post)
		require.NoError(err)
		require.True(boosted)

		require.NoError(NewReactions(tx).Unboost(community, post))
		boosted, err = NewReactions(tx).Boosted(community, post)
		require.NoError(err)
		require.False(boosted)

		_, err = NewPosts(tx).FindByURI(post.URI)
		require.NoError(err)
	})

	t.Run("deleting a post deletes its reactions", func(t *testing.T) {
		require := require.New(t)
		tx := db.Begin()
		defer tx.Rollback()

		alice := MockActor(t, tx, "alice", "example.com")
		bob := MockActor(t, tx, "bob", "remote.example")
		post := MockPost(t, tx, alice, "Hello world")

		require.NoError(NewReactions(tx).Like(bob, post))
		require.NoError(NewReactions(tx).Boost(bob, post))
		require.NoError(tx.Delete(post).Error)

		var likes, boosts int64
		require.NoError(tx.Model(&Like{}).Where("post_id = ?", post.ID).Count(&likes).Error)
		require.NoError(tx.Model(&Boost{}).Where("post_id = ?", post.ID).Count(&boosts).Error)
		require.EqualValues(0, likes)
		require.EqualValues(0, boosts)
	})
}
