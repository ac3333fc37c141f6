package activitypub

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hollowlog/burrow/models"
	"gorm.io/gorm"
)

// delete removes a post or an actor. Both an unknown referent and an
// unauthorised deletion are dropped silently; a sender cannot tell from the
// outcome whether the object existed.
func (p *Processor) delete(actor *models.Actor, act *Activity) error {
	uri := act.ObjectURI()
	if uri == "" {
		return nil
	}
	if IsSelfDeletion(uri, actor.URI) {
		if actor.IsLocal() {
			log.Warn("refusing remote deletion of local actor", "actor", actor.URI)
			return nil
		}
		return models.NewActors(p.db).Delete(actor)
	}

	posts := models.NewPosts(p.db)
	post, err := posts.FindByURI(uri)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !CanDelete(actor, post) {
		log.Debug("dropping unauthorised delete", "post", post.URI, "actor", actor.URI)
		return nil
	}
	return posts.Delete(post)
}
