package activitypub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActivity(t *testing.T) {
	t.Run("an object expressed as a bare uri", func(t *testing.T) {
		act, err := ParseActivity(map[string]any{
			"id":     "https://remote.example/activities/1",
			"type":   "Like",
			"actor":  "https://remote.example/users/bob",
			"object": "https://home.example/posts/1",
		})
		require.NoError(t, err)
		assert.Equal(t, "Like", act.Kind)
		assert.Equal(t, "https://remote.example/users/bob", act.Actor.URI)
		assert.Equal(t, "https://home.example/posts/1", act.ObjectURI())
	})

	t.Run("an actor expressed as a descriptor", func(t *testing.T) {
		act, err := ParseActivity(map[string]any{
			"type": "Follow",
			"actor": map[string]any{
				"id":                "https://remote.example/users/bob",
				"preferredUsername": "bob",
				"type":              "Group",
				"inbox":             "https://remote.example/users/bob/inbox",
			},
			"object": "https://home.example/users/alice",
			"target": "https://home.example/users/alice/collections/featured",
		})
		require.NoError(t, err)
		assert.Equal(t, "bob", act.Actor.Handle)
		assert.Equal(t, "Group", act.Actor.Kind)
		assert.Equal(t, "https://remote.example/users/bob/inbox", act.Actor.Inbox)
		assert.Equal(t, "https://home.example/users/alice/collections/featured", act.Target)
	})

	t.Run("a tombstone resolves to the same uri", func(t *testing.T) {
		act, err := ParseActivity(map[string]any{
			"type":  "Delete",
			"actor": "https://remote.example/users/bob",
			"object": map[string]any{
				"id":   "https://remote.example/posts/1",
				"type": "Tombstone",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "https://remote.example/posts/1", act.ObjectURI())
	})

	t.Run("malformed activities are rejected", func(t *testing.T) {
		malformed := []map[string]any{
			{"type": "Like", "object": "https://home.example/posts/1"},                // no actor
			{"type": "Like", "actor": "https://remote.example/users/bob"},             // no object
			{"actor": "https://remote.example/users/bob", "object": "https://x.test"}, // no kind
		}
		for _, body := range malformed {
			_, err := ParseActivity(body)
			assert.Error(t, err)
		}
	})
}
