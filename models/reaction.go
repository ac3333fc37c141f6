package models

import (
	"errors"

	"github.com/hollowlog/burrow/internal/snowflake"
	"gorm.io/gorm"
)

// A Like is an existence-only edge recording that an actor liked a post.
type Like struct {
	ActorID snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	Actor   *Actor       `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	PostID  snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	Post    *Post        `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
}

// A Boost is an existence-only edge recording that an actor announced a
// post. Whether the boosting actor is a Person or a Group is read from the
// actor record by feed classification downstream, not recorded here.
type Boost struct {
	ActorID snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	Actor   *Actor       `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	PostID  snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	Post    *Post        `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
}

type Reactions struct {
	db *gorm.DB
}

func NewReactions(db *gorm.DB) *Reactions {
	return &Reactions{db: db}
}

// Like records that the actor liked the post. Re-asserting an existing like
// is a no-op, not an error.
func (r *Reactions) Like(actor *Actor, post *Post) error {
	like := Like{ActorID: actor.ID, PostID: post.ID}
	err := r.db.FirstOrCreate(&like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// Unlike removes the actor's like of the post, if present.
func (r *Reactions) Unlike(actor *Actor, post *Post) error {
	return r.db.Where("actor_id = ? AND post_id = ?", actor.ID, post.ID).Delete(&Like{}).Error
}

// Liked reports whether the actor has liked the post.
func (r *Reactions) Liked(actor *Actor, post *Post) (bool, error) {
	var count int64
	err := r.db.Model(&Like{}).Where("actor_id = ? AND post_id = ?", actor.ID, post.ID).Count(&count).Error
	return count > 0, err
}

// Boost records that the actor announced the post. Re-asserting an existing
// boost is a no-op, not an error.
func (r *Reactions) Boost(actor *Actor, post *Post) error {
	boost := Boost{ActorID: actor.ID, PostID: post.ID}
	err := r.db.FirstOrCreate(&boost).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// Unboost removes the actor's boost of the post, if present. The post itself
// is never touched.
func (r *Reactions) Unboost(actor *Actor, post *Post) error {
	return r.db.Where("actor_id = ? AND post_id = ?", actor.ID, post.ID).Delete(&Boost{}).Error
}

// Boosted reports whether the actor has boosted the post.
func (r *Reactions) Boosted(actor *Actor, post *Post) (bool, error) {
	var count int64
	err := r.db.Model(&Boost{}).Where("actor_id = ? AND post_id = ?", actor.ID, post.ID).Count(&count).Error
	return count > 0, err
}
