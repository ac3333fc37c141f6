package activitypub

import (
	"context"
	"net/url"
	"time"

	"github.com/hollowlog/burrow/internal/snowflake"
	"github.com/hollowlog/burrow/models"
)

// RemoteActorFetcher resolves an actor URI to a fresh Actor row by fetching
// the remote profile document, signed as the given account.
type RemoteActorFetcher struct {
	// signAs is the account that will be used to sign the request
	signAs *models.Account
}

func NewRemoteActorFetcher(signAs *models.Account) *RemoteActorFetcher {
	return &RemoteActorFetcher{signAs: signAs}
}

func (f *RemoteActorFetcher) Fetch(uri string) (*models.Actor, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}
	c, err := NewClient(f.signAs)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := c.Fetch(context.Background(), uri, &obj); err != nil {
		return nil, err
	}

	published := timeFromAnyOrZero(obj["published"])
	if published.IsZero() {
		published = time.Now()
	}

	kind := models.ActorType("Person")
	if stringFromAny(obj["type"]) == "Group" {
		kind = "Group"
	}

	return &models.Actor{
		ID:          snowflake.TimeToID(published),
		Type:        kind,
		URI:         stringFromAny(obj["id"]),
		Name:        stringFromAny(obj["preferredUsername"]),
		Domain:      u.Host,
		DisplayName: stringFromAny(obj["name"]),
		Note:        stringFromAny(obj["summary"]),
		InboxURL:    stringFromAny(obj["inbox"]),
		PublicKey:   []byte(stringFromAny(mapFromAny(obj["publicKey"])["publicKeyPem"])),
	}, nil
}
