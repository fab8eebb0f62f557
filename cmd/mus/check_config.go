package main

import (
	"fmt"

	"github.com/lox/musforbots/internal/config"
)

type CheckConfigCmd struct {
	File string `arg:"" type:"path" help:"HCL config file"`
}

func (c *CheckConfigCmd) Run() error {
	cfg, err := config.LoadConfig(c.File)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println(errStyle.Render("invalid: ") + err.Error())
		return err
	}

	fmt.Println(okStyle.Render("ok: ") + c.File)
	rules := cfg.GameRules()
	fmt.Printf("  rules: %d raw per marker, %d markers per match, %d matches per tournament\n",
		rules.RawPerMarker, rules.MarkersPerMatch, rules.MatchesPerTournament)
	for i, seat := range cfg.Seats {
		kind := "human"
		switch {
		case seat.Bot && seat.Traits != nil:
			kind = "bot (custom traits)"
		case seat.Bot:
			kind = "bot (" + seat.Preset + ")"
		}
		fmt.Printf("  seat %d: %s [%s] %s\n", i+1, seat.Name, seat.Team, kind)
	}
	return nil
}
