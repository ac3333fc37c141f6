package activitypub

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hollowlog/burrow/models"
	"gorm.io/gorm"
)

// update edits a post or refreshes an actor profile. Only the author may
// edit a post. A forged update is dropped without error so a sender learns
// nothing from the response.
func (p *Processor) update(actor *models.Actor, act *Activity) error {
	obj := act.Object
	switch kind := stringFromAny(obj["type"]); kind {
	case "Note", "Article", "Page":
		return p.updatePost(actor, obj)
	case "Person", "Group", "Service", "Organization", "Application":
		return p.updateActor(actor, obj)
	default:
		log.Debug("dropping update of unsupported kind", "kind", kind, "id", act.ID)
		return nil
	}
}

func (p *Processor) updatePost(actor *models.Actor, obj map[string]any) error {
	uri := stringFromAny(obj["id"])
	if uri == "" {
		return nil
	}
	posts := models.NewPosts(p.db)
	post, err := posts.FindByURI(uri)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if post.Actor.URI != actor.URI {
		log.Debug("dropping update from non-author", "post", post.URI, "actor", actor.URI)
		return nil
	}
	return posts.Update(post, stringFromAny(obj["content"]), boolFromAny(obj["sensitive"]), stringFromAny(obj["url"]))
}

func (p *Processor) updateActor(actor *models.Actor, obj map[string]any) error {
	if stringFromAny(obj["id"]) != actor.URI {
		log.Debug("dropping profile update for someone else", "actor", actor.URI)
		return nil
	}
	if actor.IsLocal() {
		return nil
	}
	return models.NewActors(p.db).Update(actor, stringFromAny(obj["name"]), stringFromAny(obj["summary"]))
}
