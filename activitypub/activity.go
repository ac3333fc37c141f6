// Package activitypub implements the inbound activity reconciliation engine:
// it converts decoded, signature-verified activities into consistent local
// storage state.
package activitypub

import (
	"fmt"
	"time"
)

// An Activity is a decoded protocol message: an action performed by an actor
// on an object, optionally targeting a collection. The transport owns
// signature verification; by the time an Activity reaches the processor its
// actor is who it claims to be.
type Activity struct {
	ID     string
	Kind   string
	Actor  ActorRef
	Object map[string]any
	Target string
}

// An ActorRef is the acting actor descriptor carried by an activity.
type ActorRef struct {
	URI    string
	Handle string
	Kind   string // Person or Group
	Inbox  string
}

// ParseActivity decodes an activity document. Activities without an actor or
// an object are malformed and rejected here, before dispatch.
func ParseActivity(obj map[string]any) (*Activity, error) {
	act := &Activity{
		ID:     stringFromAny(obj["id"]),
		Kind:   stringFromAny(obj["type"]),
		Actor:  actorRefFromAny(obj["actor"]),
		Target: stringFromAny(obj["target"]),
	}
	switch object := obj["object"].(type) {
	case string:
		act.Object = map[string]any{"id": object}
	case map[string]any:
		act.Object = object
	}
	if act.Kind == "" || act.Actor.URI == "" || act.Object == nil {
		return nil, fmt.Errorf("malformed activity %q: missing actor or object", act.ID)
	}
	return act, nil
}

// ObjectURI returns the uri identifying the activity's object, whether the
// object was expressed as a bare uri, a tombstone reference, or the original
// object shape.
func (a *Activity) ObjectURI() string {
	return stringFromAny(a.Object["id"])
}

func actorRefFromAny(v any) ActorRef {
	switch v := v.(type) {
	case string:
		return ActorRef{URI: v}
	case map[string]any:
		return ActorRef{
			URI:    stringFromAny(v["id"]),
			Handle: stringFromAny(v["preferredUsername"]),
			Kind:   stringFromAny(v["type"]),
			Inbox:  stringFromAny(v["inbox"]),
		}
	default:
		return ActorRef{}
	}
}

// uriFromAny returns the uri of a value that may be a bare uri or an
// embedded object.
func uriFromAny(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case map[string]any:
		return stringFromAny(v["id"])
	default:
		return ""
	}
}

func stringFromAny(v any) string {
	s, _ := v.(string)
	return s
}

func boolFromAny(v any) bool {
	b, _ := v.(bool)
	return b
}

func mapFromAny(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func anyToSlice(v any) []any {
	switch v := v.(type) {
	case []any:
		return v
	default:
		return nil
	}
}

func timeFromAnyOrZero(v any) time.Time {
	switch v := v.(type) {
	case string:
		t, _ := time.Parse(time.RFC3339, v)
		return t
	case time.Time:
		return v
	default:
		return time.Time{}
	}
}
