package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/hollowlog/burrow/internal/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// An Actor is a local or remote account or group, addressable by a globally
// unique URI. The URI is the only identity key; name and domain are
// denormalised from it for display and host comparisons.
type Actor struct {
	ID          snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime:false"`
	Type        ActorType    `gorm:"default:'Person';not null"`
	URI         string       `gorm:"uniqueIndex;size:128;not null"`
	Name        string       `gorm:"size:64;uniqueIndex:idx_actor_name_domain;not null"`
	Domain      string       `gorm:"size:64;uniqueIndex:idx_actor_name_domain;not null"`
	DisplayName string       `gorm:"size:128"`
	Note        string       `gorm:"type:text"` // bio
	InboxURL    string       `gorm:"size:128"`
	PublicKey   []byte
	PostsCount  int32 `gorm:"default:0;not null"`
	LastPostAt  time.Time
}

type ActorType string

func (ActorType) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql", "postgres":
		return "enum('Person', 'Group', 'LocalPerson', 'LocalGroup')"
	case "sqlite":
		return "TEXT"
	default:
		return ""
	}
}

// IsLocal indicates whether the actor is managed by this instance.
func (a *Actor) IsLocal() bool {
	switch a.Type {
	case "LocalPerson", "LocalGroup":
		return true
	default:
		return false
	}
}

// IsRemote indicates whether the actor is not local to the instance.
func (a *Actor) IsRemote() bool {
	return !a.IsLocal()
}

func (a *Actor) IsGroup() bool {
	return a.Type == "Group" || a.Type == "LocalGroup"
}

// ActorType returns the type of the actor as seen on the wire.
func (a *Actor) ActorType() string {
	switch a.Type {
	case "LocalPerson":
		return "Person"
	case "LocalGroup":
		return "Group"
	default:
		return string(a.Type)
	}
}

func (a *Actor) Acct() string {
	if a.IsLocal() {
		return a.Name
	}
	return fmt.Sprintf("%s@%s", a.Name, a.Domain)
}

func (a *Actor) PublicKeyID() string {
	return fmt.Sprintf("%s#main-key", a.URI)
}

// FeaturedCollectionURI returns the canonical URI of the actor's featured
// (pinned posts) collection.
func (a *Actor) FeaturedCollectionURI() string {
	return a.URI + "/collections/featured"
}

type Actors struct {
	db *gorm.DB
}

func NewActors(db *gorm.DB) *Actors {
	return &Actors{db: db}
}

// Find finds an actor by its name and domain.
func (a *Actors) Find(name, domain string) (*Actor, error) {
	var actor Actor
	return &actor, a.db.Where("name = ? AND domain = ?", name, domain).Take(&actor).Error
}

// FindByURI returns an actor by its URI if it exists locally.
func (a *Actors) FindByURI(uri string) (*Actor, error) {
	if uri == "" {
		return nil, errors.New("Actors.FindByURI: uri is empty")
	}
	// use find to avoid the not found error on empty result
	var actors []Actor
	if err := a.db.Where("uri = ?", uri).Find(&actors).Error; err != nil {
		return nil, err
	}
	if len(actors) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &actors[0], nil
}

// FindOrCreate looks up an actor by its URI. If the actor is not known it
// calls fill to build a new row and stores it. An existing row is returned
// unchanged; refreshing a known actor is the Update handler's job, and local
// actors are never written here.
func (a *Actors) FindOrCreate(uri string, fill func(string) (*Actor, error)) (*Actor, error) {
	actor, err := a.FindByURI(uri)
	if err == nil {
		return actor, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	actor, err = fill(uri)
	if err != nil {
		return nil, fmt.Errorf("Actors.FindOrCreate: %w", err)
	}
	if err := a.db.Create(actor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race against a concurrent delivery, the
			// winner's row is authoritative
			return a.FindByURI(uri)
		}
		return nil, err
	}
	return actor, nil
}

// Update refreshes the mutable profile fields of a remote actor.
func (a *Actors) Update(actor *Actor, displayName, note string) error {
	actor.DisplayName = displayName
	actor.Note = note
	actor.UpdatedAt = time.Now()
	return a.db.Model(actor).Select("display_name", "note", "updated_at").Updates(actor).Error
}

// Delete removes the actor. Posts and edges referencing it are removed by
// the schema's cascade constraints.
func (a *Actors) Delete(actor *Actor) error {
	return a.db.Delete(actor).Error
}
