package main

import (
	"github.com/hollowlog/burrow/models"
	"gorm.io/gorm"
)

type AutoMigrateCmd struct {
}

func (a *AutoMigrateCmd) Run(ctx *Context) error {
	db, err := gorm.Open(ctx.Dialector, &ctx.Config)
	if err != nil {
		return err
	}
	return db.AutoMigrate(models.AllTables()...)
}
