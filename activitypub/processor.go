package activitypub

import (
	"errors"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/hollowlog/burrow/internal/snowflake"
	"github.com/hollowlog/burrow/models"
	"gorm.io/gorm"
)

// A Deliverer hands an outbound activity to the transport on behalf of a
// local actor. Implementations own signing, delivery and retry policy.
type Deliverer interface {
	Deliver(from *models.Actor, inbox string, activity map[string]any) error
}

// A Processor reconciles inbound activities against local storage. Each
// activity is an independent, unordered unit of work; every mutation is an
// upsert-or-ignore keyed by a natural identity, so redelivery of the same
// message is harmless.
type Processor struct {
	db        *gorm.DB
	domain    string
	deliverer Deliverer
}

func NewProcessor(db *gorm.DB, domain string, deliverer Deliverer) *Processor {
	return &Processor{
		db:        db,
		domain:    domain,
		deliverer: deliverer,
	}
}

// handlers is the closed set of activity kinds the processor understands.
// Kinds not listed here are dropped without error.
var handlers = map[string]func(*Processor, *models.Actor, *Activity) error{
	"Follow":   (*Processor).follow,
	"Undo":     (*Processor).undo,
	"Create":   (*Processor).create,
	"Update":   (*Processor).update,
	"Delete":   (*Processor).delete,
	"Like":     (*Processor).like,
	"Announce": (*Processor).announce,
	"Add":      (*Processor).add,
	"Remove":   (*Processor).remove,
}

// Process applies one decoded activity document. A nil return means the
// message is finished with, including the silent no-op outcomes; an error
// means a storage failure worth retrying.
func (p *Processor) Process(body map[string]any) error {
	act, err := ParseActivity(body)
	if err != nil {
		log.Debug("dropping activity", "err", err)
		return nil
	}
	handler, ok := handlers[act.Kind]
	if !ok {
		log.Debug("dropping activity of unsupported kind", "kind", act.Kind, "id", act.ID)
		return nil
	}
	// resolve the acting actor once, before dispatch
	actor, err := models.NewActors(p.db).FindOrCreate(act.Actor.URI, actorFromRef(act.Actor))
	if err != nil {
		return err
	}
	log.Debug("processing activity", "kind", act.Kind, "id", act.ID, "actor", actor.URI)
	return handler(p, actor, act)
}

// actorFromRef builds a remote actor row from the descriptor carried by the
// activity. Only used when the actor is not already known; existing rows,
// local actors in particular, are never written from a descriptor.
func actorFromRef(ref ActorRef) func(string) (*models.Actor, error) {
	return func(uri string) (*models.Actor, error) {
		u, err := url.Parse(uri)
		if err != nil {
			return nil, err
		}
		name := ref.Handle
		if name == "" {
			name = lastPathSegment(u.Path)
		}
		kind := models.ActorType("Person")
		if ref.Kind == "Group" {
			kind = "Group"
		}
		return &models.Actor{
			ID:       snowflake.Now(),
			Type:     kind,
			URI:      uri,
			Name:     name,
			Domain:   u.Host,
			InboxURL: ref.Inbox,
		}, nil
	}
}

func lastPathSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

// ignoreNotFound maps a missing referent to a silent no-op. The protocol
// gives the sender no way to tell not-found from not-allowed.
func ignoreNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
