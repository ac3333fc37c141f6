package activitypub

import (
	"context"
	"crypto"
	"fmt"
	"net/http"

	"github.com/carlmjohnson/requests"
	"github.com/hollowlog/burrow/internal/httpsig"
	"github.com/hollowlog/burrow/models"
)

// Client fetches and posts ActivityPub resources, signing each request with
// the key of the account it was created for.
type Client struct {
	keyID      string
	privateKey crypto.PrivateKey
}

// NewClient returns a new ActivityPub client signing as the given account.
func NewClient(signAs *models.Account) (*Client, error) {
	privateKey, err := signAs.PrivKey()
	if err != nil {
		return nil, err
	}
	return &Client{
		keyID:      signAs.Actor.PublicKeyID(),
		privateKey: privateKey,
	}, nil
}

// Fetch fetches the ActivityPub resource at the given URL and decodes it into obj.
func (c *Client) Fetch(ctx context.Context, uri string, obj any) error {
	return requests.URL(uri).
		Accept(`application/ld+json; profile="https://www.w3.org/ns/activitystreams"`).
		Transport(c).
		CheckContentType("application/ld+json", "application/activity+json", "application/json").
		CheckStatus(http.StatusOK).
		ToJSON(obj).
		Fetch(ctx)
}

// Post posts the given ActivityPub object to the given URL.
func (c *Client) Post(ctx context.Context, url string, obj map[string]any) error {
	return requests.URL(url).
		Header("Content-Type", `application/ld+json; profile="https://www.w3.org/ns/activitystreams"`).
		BodyJSON(obj).
		Transport(c).
		CheckStatus(http.StatusOK, http.StatusCreated, http.StatusAccepted).
		Fetch(ctx)
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := httpsig.Sign(req, c.keyID, c.privateKey, nil); err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}
	return http.DefaultTransport.RoundTrip(req)
}
