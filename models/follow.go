package models

import (
	"errors"

	"github.com/hollowlog/burrow/internal/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// A Follow is a directed edge from a follower to a target actor. There is at
// most one edge per ordered pair.
type Follow struct {
	ActorID  snowflake.ID `gorm:"primarykey;autoIncrement:false"` // the follower
	Actor    *Actor       `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	TargetID snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	Target   *Actor       `gorm:"constraint:OnDelete:CASCADE;<-:false;"`
	Status   FollowStatus `gorm:"not null;default:'accepted'"`
}

type FollowStatus string

func (FollowStatus) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql", "postgres":
		return "enum('pending', 'accepted')"
	case "sqlite":
		return "TEXT"
	default:
		return ""
	}
}

type Follows struct {
	db *gorm.DB
}

func NewFollows(db *gorm.DB) *Follows {
	return &Follows{db: db}
}

// Create establishes a follow edge from actor to target with the given
// status. Re-asserting an existing edge is a no-op.
func (f *Follows) Create(actor, target *Actor, status FollowStatus) (*Follow, error) {
	follow := Follow{
		ActorID:  actor.ID,
		TargetID: target.ID,
		Status:   status,
	}
	if err := f.db.FirstOrCreate(&follow, Follow{ActorID: actor.ID, TargetID: target.ID}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return f.Find(actor, target)
		}
		return nil, err
	}
	return &follow, nil
}

// Find returns the follow edge from actor to target, if any.
func (f *Follows) Find(actor, target *Actor) (*Follow, error) {
	var follow Follow
	return &follow, f.db.Take(&follow, "actor_id = ? AND target_id = ?", actor.ID, target.ID).Error
}

// Delete removes the follow edge from actor to target. A missing edge is
// not an error.
func (f *Follows) Delete(actor, target *Actor) error {
	return f.db.Where("actor_id = ? AND target_id = ?", actor.ID, target.ID).Delete(&Follow{}).Error
}
