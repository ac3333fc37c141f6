package activitypub

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hollowlog/burrow/internal/algorithms"
	"github.com/hollowlog/burrow/internal/snowflake"
	"github.com/hollowlog/burrow/models"
	"gorm.io/gorm"
)

// create stores a new post. A post that already exists locally is left
// untouched, whatever the redelivered payload says. A declared reply parent
// is linked only if the parent is already known; an unknown parent leaves
// the new post unthreaded rather than discarded.
func (p *Processor) create(actor *models.Actor, act *Activity) error {
	obj := act.Object
	kind := stringFromAny(obj["type"])
	switch kind {
	case "Note", "Article", "Page":
		// supported
	default:
		log.Debug("dropping create of unsupported kind", "kind", kind, "id", act.ID)
		return nil
	}
	uri := stringFromAny(obj["id"])
	if uri == "" {
		return nil
	}

	published := timeFromAnyOrZero(obj["published"])
	if published.IsZero() {
		published = time.Now()
	}
	post := &models.Post{
		ID:          snowflake.TimeToID(published),
		URI:         uri,
		ActorID:     actor.ID,
		Type:        models.PostType(kind),
		Content:     stringFromAny(obj["content"]),
		Sensitive:   boolFromAny(obj["sensitive"]),
		URL:         stringFromAny(obj["url"]),
		AddressedTo: addressedTo(obj),
	}
	if kind == "Article" || kind == "Page" {
		post.Title = stringFromAny(obj["name"])
	}

	posts := models.NewPosts(p.db)
	if parentURI := stringFromAny(obj["inReplyTo"]); parentURI != "" {
		parent, err := posts.FindByURI(parentURI)
		switch {
		case err == nil:
			post.InReplyToID = &parent.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			// parent unknown, leave the reply unlinked
		default:
			return err
		}
	}
	if quoteURI := stringFromAny(obj["quoteUrl"]); quoteURI != "" {
		quoted, err := posts.FindByURI(quoteURI)
		switch {
		case err == nil:
			post.QuoteOfID = &quoted.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			// quoted post unknown, leave the quote unlinked
		default:
			return err
		}
	}

	_, err := posts.Create(post)
	return err
}

// addressedTo collects the destination URIs the post declares itself
// delivered to. The destinations decide moderation authority later, so they
// are stored with the post.
func addressedTo(obj map[string]any) []models.PostAddress {
	var uris []string
	for _, key := range []string{"to", "cc", "audience"} {
		switch v := obj[key].(type) {
		case string:
			uris = append(uris, v)
		default:
			for _, entry := range anyToSlice(v) {
				if uri := stringFromAny(entry); uri != "" {
					uris = append(uris, uri)
				}
			}
		}
	}
	seen := make(map[string]bool, len(uris))
	uris = algorithms.Filter(uris, func(uri string) bool {
		if uri == "" || seen[uri] {
			return false
		}
		seen[uri] = true
		return true
	})
	return algorithms.Map(uris, func(uri string) models.PostAddress {
		return models.PostAddress{URI: uri}
	})
}
