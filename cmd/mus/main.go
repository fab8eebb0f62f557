package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version     kong.VersionFlag `short:"v" help:"Show version"`
	NoColor     bool             `help:"Disable colour output"`
	Play        PlayCmd          `cmd:"" default:"withargs" help:"Play at a table against bots"`
	Simulate    SimulateCmd      `cmd:"" help:"Run bot-only tournaments and report win rates per preset"`
	CheckConfig CheckConfigCmd   `cmd:"" help:"Load and validate a table config file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mus"),
		kong.Description("Mus, the Basque card game, against personality-driven bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	setupColor(cli.NoColor)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
