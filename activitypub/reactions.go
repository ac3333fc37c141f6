package activitypub

import (
	"errors"

	"github.com/hollowlog/burrow/models"
	"gorm.io/gorm"
)

// like records a like edge against a known post. Likes of posts this
// instance has never seen are dropped.
func (p *Processor) like(actor *models.Actor, act *Activity) error {
	uri := act.ObjectURI()
	if uri == "" {
		return nil
	}
	post, err := models.NewPosts(p.db).FindByURI(uri)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return models.NewReactions(p.db).Like(actor, post)
}

// announce records a boost edge against a known post.
func (p *Processor) announce(actor *models.Actor, act *Activity) error {
	uri := act.ObjectURI()
	if uri == "" {
		return nil
	}
	post, err := models.NewPosts(p.db).FindByURI(uri)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return models.NewReactions(p.db).Boost(actor, post)
}
