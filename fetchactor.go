package main

import (
	"errors"
	"fmt"

	"github.com/hollowlog/burrow/activitypub"
	"github.com/hollowlog/burrow/models"
	"gorm.io/gorm"
)

type FetchActorCmd struct {
	Domain string `required:"" help:"domain of the local instance to sign the request as"`
	Actor  string `arg:"" help:"uri of the actor to fetch"`
}

func (f *FetchActorCmd) Run(ctx *Context) error {
	db, err := gorm.Open(ctx.Dialector, &ctx.Config)
	if err != nil {
		return err
	}

	instance, err := models.NewInstances(db).FindByDomain(f.Domain)
	if err != nil {
		return fmt.Errorf("failed to find instance: %w", err)
	}
	if instance.Admin == nil {
		return errors.New("instance has no admin account to sign the request with")
	}

	fetcher := activitypub.NewRemoteActorFetcher(instance.Admin)
	actor, err := models.NewActors(db).FindOrCreate(f.Actor, fetcher.Fetch)
	if err != nil {
		return fmt.Errorf("failed to fetch actor: %w", err)
	}
	fmt.Println(actor.URI, actor.Acct())
	return nil
}
