package main

import (
	"github.com/hollowlog/burrow/models"
	"gorm.io/gorm"
)

type CreateInstanceCmd struct {
	Domain      string `required:"" help:"domain name of the instance to create"`
	Title       string `required:"" help:"title of the instance to create"`
	Description string `help:"description of the instance to create"`
}

func (c *CreateInstanceCmd) Run(ctx *Context) error {
	db, err := gorm.Open(ctx.Dialector, &ctx.Config)
	if err != nil {
		return err
	}
	_, err = models.NewInstances(db).Create(c.Domain, c.Title, c.Description)
	return err
}
