package models

import (
	"errors"

	"github.com/hollowlog/burrow/internal/snowflake"
	"gorm.io/gorm"
)

// A PinnedPost is an ordered membership of a post in an actor's featured
// collection. Order is insertion order.
type PinnedPost struct {
	ID      uint32       `gorm:"primarykey"`
	ActorID snowflake.ID `gorm:"uniqueIndex:uidx_pinned_posts_actor_id_post_id;not null;"`
	Actor   *Actor       `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	PostID  snowflake.ID `gorm:"uniqueIndex:uidx_pinned_posts_actor_id_post_id;not null;"`
	Post    *Post        `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
}

type Pins struct {
	db *gorm.DB
}

func NewPins(db *gorm.DB) *Pins {
	return &Pins{db: db}
}

// Pin adds the post to the actor's featured collection. Pinning an already
// pinned post is a no-op.
func (p *Pins) Pin(actor *Actor, post *Post) error {
	pin := PinnedPost{ActorID: actor.ID, PostID: post.ID}
	err := p.db.FirstOrCreate(&pin, PinnedPost{ActorID: actor.ID, PostID: post.ID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// Unpin removes the post from the actor's featured collection, if present.
func (p *Pins) Unpin(actor *Actor, post *Post) error {
	return p.db.Where("actor_id = ? AND post_id = ?", actor.ID, post.ID).Delete(&PinnedPost{}).Error
}

// List returns the actor's pinned posts in the order they were pinned.
func (p *Pins) List(actor *Actor) ([]PinnedPost, error) {
	var pins []PinnedPost
	err := p.db.Preload("Post").Where("actor_id = ?", actor.ID).Order("id").Find(&pins).Error
	return pins, err
}

// Clear removes every pin belonging to the actor.
func (p *Pins) Clear(actor *Actor) error {
	return p.db.Where("actor_id = ?", actor.ID).Delete(&PinnedPost{}).Error
}
