package activitypub

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-fed/httpsig"
	"github.com/go-json-experiment/json"
	"github.com/hollowlog/burrow/internal/httpx"
	"github.com/hollowlog/burrow/models"
	"gorm.io/gorm"
)

// Env is the request environment for the ActivityPub endpoints.
type Env struct {
	DB *gorm.DB
}

// InboxCreate accepts a signed activity and queues it for processing. A
// well-formed, correctly signed delivery is acknowledged with 202 before any
// reconciliation happens; redeliveries of the same activity are queued again
// and deduplicated downstream.
func InboxCreate(env *Env, w http.ResponseWriter, r *http.Request) error {
	if err := validateSignature(env, r); err != nil {
		return httpx.Error(http.StatusUnauthorized, err)
	}

	var body map[string]any
	if err := json.UnmarshalFull(r.Body, &body); err != nil {
		return httpx.Error(http.StatusBadRequest, err)
	}

	if err := env.DB.Create(&models.InboxRequest{Activity: body}).Error; err != nil {
		return err
	}
	w.WriteHeader(http.StatusAccepted)
	return nil
}

func validateSignature(env *Env, r *http.Request) error {
	verifier, err := httpsig.NewVerifier(r)
	if err != nil {
		return fmt.Errorf("validateSignature: %w", err)
	}
	pubKey, err := env.GetKey(verifier.KeyId())
	if err != nil {
		return fmt.Errorf("validateSignature: getKey %s: %w", verifier.KeyId(), err)
	}
	return verifier.Verify(pubKey, httpsig.RSA_SHA256)
}

// GetKey resolves a signature key id to the signer's public key, fetching
// the actor if it is not yet known.
func (e *Env) GetKey(keyID string) (crypto.PublicKey, error) {
	// defer resolving the admin account until we need it to fetch the remote actor
	fetch := func(uri string) (*models.Actor, error) {
		var instance models.Instance
		if err := e.DB.Joins("Admin").Preload("Admin.Actor").Take(&instance, "admin_id is not null").Error; err != nil {
			return nil, err
		}
		return NewRemoteActorFetcher(instance.Admin).Fetch(uri)
	}

	actor, err := models.NewActors(e.DB).FindOrCreate(trimKeyId(keyID), fetch)
	if err != nil {
		return nil, err
	}
	return pemToPublicKey(actor.PublicKey)
}

func pemToPublicKey(key []byte) (crypto.PublicKey, error) {
	block, _ := pem.Decode(key)
	if block == nil {
		return nil, errors.New("pemToPublicKey: invalid pem block")
	}
	if block.Type != "PUBLIC KEY" {
		return nil, fmt.Errorf("pemToPublicKey: invalid pem type: %s", block.Type)
	}
	publicKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("pemToPublicKey: parsepkixpublickey: %w", err)
	}
	return publicKey, nil
}

// trimKeyId removes the #main-key suffix from the key id.
func trimKeyId(id string) string {
	if i := strings.Index(id, "#"); i != -1 {
		return id[:i]
	}
	return id
}
