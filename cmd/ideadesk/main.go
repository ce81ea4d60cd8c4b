package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/aussiebroadwan/ideadesk/internal/console/app"
)

// CLI is the root command.
type CLI struct {
	Config  string           `short:"c" help:"YAML configuration file (same as IDEADESK_CONFIG)" type:"path"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve  ServeCmd  `cmd:"" default:"1" help:"Serve the console views over HTTP"`
	Login  LoginCmd  `cmd:"" help:"Sign in and persist the session"`
	Logout LogoutCmd `cmd:"" help:"Sign out and clear the persisted session"`
	Whoami WhoamiCmd `cmd:"" help:"Show the signed in user"`
	List   ListCmd   `cmd:"" help:"List the records of one resource"`
}

// AfterApply hands the config flag to the loader.
func (c *CLI) AfterApply() error {
	if c.Config != "" {
		return os.Setenv("IDEADESK_CONFIG", c.Config)
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("ideadesk"),
		kong.Description("Back office console for the Idea business platform."),
		kong.UsageOnError(),
		kong.Vars{"version": app.BuildVersion},
	)
	ctx.FatalIfErrorf(ctx.Run(&cli))
}
