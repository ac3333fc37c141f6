package models

import (
	"fmt"
	"testing"

	"github.com/hollowlog/burrow/internal/crypto"
	"github.com/hollowlog/burrow/internal/snowflake"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// WithType sets the type of an actor.
func WithType(t ActorType) func(*Actor) {
	return func(a *Actor) {
		a.Type = t
	}
}

// MockActor creates a new actor in the database.
func MockActor(t *testing.T, tx *gorm.DB, name, domain string, opts ...func(*Actor)) *Actor {
	t.Helper()
	require := require.New(t)

	kp, err := crypto.GenerateRSAKeypair()
	require.NoError(err)

	uri := fmt.Sprintf("https://%s/users/%s", domain, name)
	actor := &Actor{
		ID:          snowflake.Now(),
		URI:         uri,
		Name:        name,
		Domain:      domain,
		DisplayName: name,
		InboxURL:    uri + "/inbox",
		PublicKey:   kp.PublicKey,
	}
	for _, opt := range opts {
		opt(actor)
	}
	require.NoError(tx.Create(actor).Error)
	return actor
}

// MockPost creates a new post by the actor in the database.
func MockPost(t *testing.T, tx *gorm.DB, actor *Actor, content string, opts ...func(*Post)) *Post {
	t.Helper()
	require := require.New(t)

	id := snowflake.Now()
	post := &Post{
		ID:      id,
		URI:     fmt.Sprintf("https://%s/posts/%d", actor.Domain, id),
		ActorID: actor.ID,
		Content: content,
	}
	for _, opt := range opts {
		opt(post)
	}
	require.NoError(tx.Create(post).Error)
	return post
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	require := require.New(t)
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger: logger.Default.LogMode(logger.Warn),
	})
	require.NoError(err)

	err = db.AutoMigrate(AllTables()...)
	require.NoError(err)

	// enable foreign key constraints
	err = db.Exec("PRAGMA foreign_keys = ON").Error
	require.NoError(err)

	return db
}
