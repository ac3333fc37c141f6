package main

import (
	"github.com/hollowlog/burrow/models"
	"gorm.io/gorm"
)

type CreateAccountCmd struct {
	Name     string `required:"" help:"username of the account to create"`
	Domain   string `required:"" help:"domain of the instance to create the account on"`
	Email    string `required:"" help:"email address of the account to create"`
	Password string `required:"" help:"password of the account to create"`
	Admin    bool   `help:"make this account the instance admin"`
}

func (c *CreateAccountCmd) Run(ctx *Context) error {
	db, err := gorm.Open(ctx.Dialector, &ctx.Config)
	if err != nil {
		return err
	}

	instance, err := models.NewInstances(db).FindByDomain(c.Domain)
	if err != nil {
		return err
	}
	account, err := models.NewAccounts(db).Create(instance, c.Name, c.Email, c.Password)
	if err != nil {
		return err
	}
	if c.Admin {
		// the admin account signs requests not attributable to a
		// particular local actor, remote actor fetches in particular
		return db.Model(instance).Update("admin_id", account.ID).Error
	}
	return nil
}
