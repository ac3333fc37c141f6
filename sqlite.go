//go:build sqlite

package main

// sqlite support

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newDialector(dsn string) gorm.Dialector {
	return &sqlite.Dialector{
		DSN: dsn,
	}
}

func configureDB(db *gorm.DB) error {
	// the actor -> post -> edge cascades depend on foreign keys being
	// enforced, which sqlite does not do by default
	return db.Exec("PRAGMA foreign_keys = ON").Error
}
