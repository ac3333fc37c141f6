package activitypub

import (
	"net/url"

	"github.com/hollowlog/burrow/models"
)

// CanDelete reports whether the acting actor has standing to delete the
// post: the post's author, a moderator on the author's instance, or a
// moderator on the instance of a community the post was addressed to. An
// actor on an unrelated third instance has no standing.
func CanDelete(actor *models.Actor, post *models.Post) bool {
	if post.Actor == nil {
		return false
	}
	if actor.URI == post.Actor.URI {
		return true
	}
	if SameInstance(actor.URI, post.Actor.URI) {
		return true
	}
	for _, addr := range post.AddressedTo {
		if SameInstance(actor.URI, addr.URI) {
			return true
		}
	}
	return false
}

// OwnsFeatured reports whether target is the actor's own featured
// collection. Writes to any other collection are not the actor's to make.
func OwnsFeatured(actor *models.Actor, target string) bool {
	return target != "" && target == actor.FeaturedCollectionURI()
}

// IsSelfDeletion reports whether the Delete names the acting actor itself,
// an account deletion signal rather than a post deletion.
func IsSelfDeletion(objectURI, actorURI string) bool {
	return objectURI != "" && objectURI == actorURI
}

// SameInstance reports whether two URIs share a host.
func SameInstance(a, b string) bool {
	ha, hb := urlHost(a), urlHost(b)
	return ha != "" && ha == hb
}

func urlHost(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return u.Host
}
