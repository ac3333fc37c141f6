package activitypub

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/hollowlog/burrow/internal/algorithms"
	"github.com/hollowlog/burrow/internal/httpx"
	"github.com/hollowlog/burrow/internal/to"
	"github.com/hollowlog/burrow/models"
	"gorm.io/gorm"
)

// add pins a post to the actor's featured collection. Only the actor's own
// collection may be the target; anything else is dropped.
func (p *Processor) add(actor *models.Actor, act *Activity) error {
	post, ok, err := p.featuredTarget(actor, act)
	if err != nil || !ok {
		return err
	}
	return models.NewPins(p.db).Pin(actor, post)
}

// remove unpins a post from the actor's featured collection.
func (p *Processor) remove(actor *models.Actor, act *Activity) error {
	post, ok, err := p.featuredTarget(actor, act)
	if err != nil || !ok {
		return err
	}
	return models.NewPins(p.db).Unpin(actor, post)
}

func (p *Processor) featuredTarget(actor *models.Actor, act *Activity) (*models.Post, bool, error) {
	if !OwnsFeatured(actor, act.Target) {
		log.Debug("dropping collection change for foreign target", "target", act.Target, "actor", actor.URI)
		return nil, false, nil
	}
	uri := act.ObjectURI()
	if uri == "" {
		return nil, false, nil
	}
	post, err := models.NewPosts(p.db).FindByURI(uri)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return post, true, nil
}

// FeaturedShow serves an actor's featured collection: the posts the actor
// has pinned, in the order they were pinned.
func FeaturedShow(env *Env, w http.ResponseWriter, r *http.Request) error {
	actor, err := models.NewActors(env.DB).Find(chi.URLParam(r, "name"), r.Host)
	if err != nil {
		return httpx.Error(http.StatusNotFound, err)
	}
	pins, err := models.NewPins(env.DB).List(actor)
	if err != nil {
		return err
	}
	return to.JSON(w, map[string]any{
		"@context":   "https://www.w3.org/ns/activitystreams",
		"id":         actor.FeaturedCollectionURI(),
		"type":       "OrderedCollection",
		"totalItems": len(pins),
		"orderedItems": algorithms.Map(pins, func(pin models.PinnedPost) string {
			return pin.Post.URI
		}),
	})
}
