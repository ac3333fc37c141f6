package models

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/hollowlog/burrow/internal/crypto"
	"github.com/hollowlog/burrow/internal/snowflake"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// An Account is a login on this instance. An Account belongs to a local
// Actor and holds the private key its outbound activities are signed with.
type Account struct {
	ID                snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	UpdatedAt         time.Time
	InstanceID        snowflake.ID
	Instance          *Instance `gorm:"<-:create;"`
	ActorID           snowflake.ID
	Actor             *Actor `gorm:"constraint:OnDelete:CASCADE;<-:create;"`
	Email             string `gorm:"size:64;not null"`
	EncryptedPassword []byte `gorm:"size:60;not null"`
	PrivateKey        []byte `gorm:"not null"`
}

func (a *Account) Name() string {
	return a.Actor.Name
}

func (a *Account) Domain() string {
	return a.Actor.Domain
}

// PublicKeyID returns the key id outbound signatures carry.
func (a *Account) PublicKeyID() string {
	return a.Actor.PublicKeyID()
}

// PrivKey returns the account's RSA private key.
func (a *Account) PrivKey() (*rsa.PrivateKey, error) {
	return crypto.ParseRSAPrivateKey(a.PrivateKey)
}

type Accounts struct {
	db *gorm.DB
}

func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{db: db}
}

// AccountForActor returns the account belonging to the local actor.
func (a *Accounts) AccountForActor(actor *Actor) (*Account, error) {
	var account Account
	if err := a.db.Joins("Actor").First(&account, "accounts.actor_id = ?", actor.ID).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// Create creates a local account, its actor, and a fresh keypair.
func (a *Accounts) Create(instance *Instance, name, email, password string) (*Account, error) {
	var account Account
	err := a.db.Transaction(func(tx *gorm.DB) error {
		keypair, err := crypto.GenerateRSAKeypair()
		if err != nil {
			return err
		}

		passwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		uri := fmt.Sprintf("https://%s/users/%s", instance.Domain, name)
		actor := &Actor{
			ID:          snowflake.Now(),
			Type:        "LocalPerson",
			URI:         uri,
			Name:        name,
			Domain:      instance.Domain,
			DisplayName: name,
			InboxURL:    uri + "/inbox",
			PublicKey:   keypair.PublicKey,
		}
		if err := tx.Create(actor).Error; err != nil {
			return err
		}

		account = Account{
			ID:                snowflake.Now(),
			InstanceID:        instance.ID,
			ActorID:           actor.ID,
			Actor:             actor,
			Email:             email,
			EncryptedPassword: passwd,
			PrivateKey:        keypair.PrivateKey,
		}
		return tx.Create(&account).Error
	})
	return &account, err
}
