package activitypub

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hollowlog/burrow/models"
)

// follow persists an accepted follow edge from the acting actor to a local
// actor, then responds with an Accept. A follow of an unknown or remote
// target is dropped.
func (p *Processor) follow(actor *models.Actor, act *Activity) error {
	uri := act.ObjectURI()
	if uri == "" {
		return nil
	}
	target, err := models.NewActors(p.db).FindByURI(uri)
	if err != nil {
		return ignoreNotFound(err)
	}
	if target.IsRemote() {
		// not ours to accept
		return nil
	}
	if _, err := models.NewFollows(p.db).Create(actor, target, "accepted"); err != nil {
		return err
	}
	// the edge is committed; the Accept is best effort and its failure
	// must not unwind the follow
	p.accept(target, actor, act)
	return nil
}

// accept hands an Accept response to the delivery collaborator.
func (p *Processor) accept(from, to *models.Actor, act *Activity) {
	if p.deliverer == nil {
		return
	}
	accept := map[string]any{
		"@context": "https://www.w3.org/ns/activitystreams",
		"id":       fmt.Sprintf("https://%s/activities/%s", p.domain, uuid.New()),
		"type":     "Accept",
		"actor":    from.URI,
		"object": map[string]any{
			"id":     act.ID,
			"type":   act.Kind,
			"actor":  act.Actor.URI,
			"object": act.ObjectURI(),
		},
	}
	if err := p.deliverer.Deliver(from, to.InboxURL, accept); err != nil {
		log.Warn("accept delivery failed", "follower", to.URI, "err", err)
	}
}

// undo reverses a previous Follow, Like or Announce. Undoing an edge that
// does not exist is a no-op, as is an undo whose inner object carries no
// uri.
func (p *Processor) undo(actor *models.Actor, act *Activity) error {
	uri := uriFromAny(act.Object["object"])
	if uri == "" {
		return nil
	}
	switch kind := stringFromAny(act.Object["type"]); kind {
	case "Follow":
		target, err := models.NewActors(p.db).FindByURI(uri)
		if err != nil {
			return ignoreNotFound(err)
		}
		return models.NewFollows(p.db).Delete(actor, target)
	case "Like":
		post, err := models.NewPosts(p.db).FindByURI(uri)
		if err != nil {
			return ignoreNotFound(err)
		}
		return models.NewReactions(p.db).Unlike(actor, post)
	case "Announce":
		post, err := models.NewPosts(p.db).FindByURI(uri)
		if err != nil {
			return ignoreNotFound(err)
		}
		return models.NewReactions(p.db).Unboost(actor, post)
	default:
		log.Debug("dropping undo of unsupported kind", "kind", kind, "id", act.ID)
		return nil
	}
}
