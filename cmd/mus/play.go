package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/musforbots/internal/config"
	"github.com/lox/musforbots/internal/game"
	"github.com/lox/musforbots/internal/randutil"
	"github.com/lox/musforbots/internal/table"
	"github.com/lox/musforbots/internal/tui"
)

type PlayCmd struct {
	Config string `short:"c" default:"mus.hcl" type:"path" help:"HCL config file; defaults apply when it is missing"`
	Seat   string `help:"Seat id to play; defaults to the first human seat"`
	Seed   int64  `help:"RNG seed, overriding the config (0 keeps the config value)"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", c.Config, err)
	}

	me, err := c.pickSeat(cfg.Players())
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Table.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           cfg.Level(),
	})

	seed := cfg.Table.Seed
	if c.Seed != 0 {
		seed = c.Seed
	}
	seed = randutil.Seed(seed)
	logger.Info("starting table", "seed", seed, "seat", me)

	rng := randutil.New(seed)
	tbl, err := table.New(cfg.Players(),
		table.WithLogger(logger),
		table.WithRNG(rng),
		table.WithRules(cfg.GameRules()),
		table.WithPacing(cfg.TablePacing()),
		table.WithAgents(cfg.Agents(rng, logger)),
		table.WithAutoDeal(cfg.Table.AutoDeal),
	)
	if err != nil {
		return err
	}
	defer tbl.Close()

	return tui.Run(tbl, me, logger)
}

func (c *PlayCmd) pickSeat(players []game.Player) (game.PlayerID, error) {
	for _, p := range players {
		switch {
		case c.Seat != "" && string(p.ID) == c.Seat:
			if p.IsBot {
				return "", fmt.Errorf("seat %s is a bot", c.Seat)
			}
			return p.ID, nil
		case c.Seat == "" && !p.IsBot:
			return p.ID, nil
		}
	}
	if c.Seat != "" {
		return "", fmt.Errorf("no seat %q in config", c.Seat)
	}
	return "", fmt.Errorf("config has no human seat")
}
