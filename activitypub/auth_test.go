package activitypub

import (
	"testing"

	"github.com/hollowlog/burrow/models"
	"github.com/stretchr/testify/assert"
)

func TestCanDelete(t *testing.T) {
	author := &models.Actor{URI: "https://home.example/users/alice"}
	post := &models.Post{
		URI:   "https://home.example/posts/1",
		Actor: author,
		AddressedTo: []models.PostAddress{
			{URI: "https://community.example/groups/cooking"},
		},
	}

	tests := []struct {
		name  string
		actor *models.Actor
		want  bool
	}{
		{"the author", author, true},
		{"a moderator on the author's instance", &models.Actor{URI: "https://home.example/users/mod"}, true},
		{"a moderator on an addressed community's instance", &models.Actor{URI: "https://community.example/users/mod"}, true},
		{"an actor on an unrelated instance", &models.Actor{URI: "https://elsewhere.example/users/mallory"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDelete(tt.actor, post))
		})
	}

	t.Run("a post without an author cannot be deleted", func(t *testing.T) {
		assert.False(t, CanDelete(author, &models.Post{URI: "https://home.example/posts/2"}))
	})
}

func TestOwnsFeatured(t *testing.T) {
	alice := &models.Actor{URI: "https://home.example/users/alice"}

	assert.True(t, OwnsFeatured(alice, "https://home.example/users/alice/collections/featured"))
	assert.False(t, OwnsFeatured(alice, "https://home.example/users/alice/followers"))
	assert.False(t, OwnsFeatured(alice, "https://home.example/users/bob/collections/featured"))
	assert.False(t, OwnsFeatured(alice, ""))
}

func TestIsSelfDeletion(t *testing.T) {
	assert.True(t, IsSelfDeletion("https://home.example/users/alice", "https://home.example/users/alice"))
	assert.False(t, IsSelfDeletion("https://home.example/posts/1", "https://home.example/users/alice"))
	assert.False(t, IsSelfDeletion("", ""))
}

func TestSameInstance(t *testing.T) {
	assert.True(t, SameInstance("https://home.example/users/alice", "https://home.example/posts/1"))
	assert.False(t, SameInstance("https://home.example/users/alice", "https://other.example/users/alice"))
	assert.False(t, SameInstance("", ""))
	assert.False(t, SameInstance("://nonsense", "://nonsense"))
}
