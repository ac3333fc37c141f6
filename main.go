package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type Context struct {
	Debug     bool
	Dialector gorm.Dialector

	gorm.Config
}

var cli struct {
	DSN   string `required:"" help:"data source name of the database."`
	Debug bool   `help:"Enable debug logging."`

	Serve          ServeCmd          `cmd:"" help:"Serve the instance."`
	AutoMigrate    AutoMigrateCmd    `cmd:"" help:"Create or update the database schema."`
	CreateInstance CreateInstanceCmd `cmd:"" help:"Create a new instance."`
	CreateAccount  CreateAccountCmd  `cmd:"" help:"Create a new account on an instance."`
	FetchActor     FetchActorCmd     `cmd:"" help:"Fetch a remote actor by uri."`
}

func main() {
	ctx := kong.Parse(&cli)
	if cli.Debug {
		log.SetLevel(log.DebugLevel)
	}
	err := ctx.Run(&Context{
		Debug:     cli.Debug,
		Dialector: newDialector(cli.DSN),
		Config: gorm.Config{
			// map unique constraint violations to gorm.ErrDuplicatedKey,
			// the models rely on it for their upsert-or-ignore semantics
			TranslateError: true,
		},
	})
	ctx.FatalIfErrorf(err)
}
