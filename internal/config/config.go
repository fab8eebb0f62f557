// Package config loads table settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/musforbots/internal/bot"
	"github.com/lox/musforbots/internal/game"
	"github.com/lox/musforbots/internal/randutil"
	"github.com/lox/musforbots/internal/table"
)

// Config is the complete table configuration.
type Config struct {
	Table  TableSettings `hcl:"table,block"`
	Rules  *RulesConfig  `hcl:"rules,block"`
	Pacing *PacingConfig `hcl:"pacing,block"`
	Seats  []SeatConfig  `hcl:"seat,block"`
}

// TableSettings holds process-level settings.
type TableSettings struct {
	Seed     int64  `hcl:"seed,optional"` // zero picks a seed from the clock
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
	AutoDeal bool   `hcl:"auto_deal,optional"`
}

// RulesConfig overrides the numeric rules. Unset values keep their defaults.
type RulesConfig struct {
	RawPerMarker         int  `hcl:"raw_per_marker,optional"`
	MarkersPerMatch      int  `hcl:"markers_per_match,optional"`
	MatchesPerTournament int  `hcl:"matches_per_tournament,optional"`
	BaseReward           int  `hcl:"base_reward,optional"`
	Deje                 int  `hcl:"deje,optional"`
	MinRaise             int  `hcl:"min_raise,optional"`
	RaiseIncrement       int  `hcl:"raise_increment,optional"`
	AllInStake           int  `hcl:"all_in_stake,optional"`
	AdentroUnits         int  `hcl:"adentro_units,optional"`
	LogSize              int  `hcl:"log_size,optional"`
	CategoryBonuses      bool `hcl:"category_bonuses,optional"`
}

// PacingConfig sets the bot delays in milliseconds. Unset values keep their
// defaults; pass -1 for no delay.
type PacingConfig struct {
	MusMS      int `hcl:"mus_ms,optional"`
	DiscardMS  int `hcl:"discard_ms,optional"`
	BetMS      int `hcl:"bet_ms,optional"`
	AnnounceMS int `hcl:"announce_ms,optional"`
	NextHandMS int `hcl:"next_hand_ms,optional"`
	SignalMS   int `hcl:"signal_ms,optional"`
}

// SeatConfig describes one seat. Seats are listed in table order; the
// first one is mano.
type SeatConfig struct {
	ID     string      `hcl:"id,label"`
	Name   string      `hcl:"name,optional"`
	Team   string      `hcl:"team"`
	Bot    bool        `hcl:"bot,optional"`
	Preset string      `hcl:"preset,optional"`
	Traits *bot.Traits `hcl:"traits,block"`
}

// DefaultConfig returns one human seat against three bots.
func DefaultConfig() *Config {
	return &Config{
		Table: TableSettings{
			LogLevel: "info",
			LogFile:  "mus.log",
		},
		Seats: []SeatConfig{
			{ID: "you", Name: "Tú", Team: "A"},
			{ID: "maite", Name: "Maite", Team: "B", Bot: true, Preset: "prudent"},
			{ID: "koldo", Name: "Koldo", Team: "A", Bot: true, Preset: "steady"},
			{ID: "arantxa", Name: "Arantxa", Team: "B", Bot: true, Preset: "bluffer"},
		},
	}
}

// LoadConfig loads the configuration from an HCL file. A missing file
// yields DefaultConfig.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// ParseConfig decodes configuration from HCL source.
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Table.LogLevel == "" {
		config.Table.LogLevel = "info"
	}
	if config.Table.LogFile == "" {
		config.Table.LogFile = "mus.log"
	}
	if len(config.Seats) == 0 {
		config.Seats = DefaultConfig().Seats
	}
	for i := range config.Seats {
		seat := &config.Seats[i]
		if seat.Name == "" {
			seat.Name = seat.ID
		}
		seat.Team = strings.ToUpper(seat.Team)
		if seat.Bot && seat.Preset == "" && seat.Traits == nil {
			seat.Preset = table.DefaultPreset
		}
	}
	return &config, nil
}

// Validate checks seating, rules and bot traits.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Table.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Table.LogLevel)
	}
	if err := c.GameRules().Validate(); err != nil {
		return err
	}
	if len(c.Seats) != game.NumPlayers {
		return fmt.Errorf("need %d seats, got %d", game.NumPlayers, len(c.Seats))
	}

	seen := make(map[string]bool, len(c.Seats))
	perTeam := map[string]int{}
	for _, seat := range c.Seats {
		if seen[seat.ID] {
			return fmt.Errorf("duplicate seat %q", seat.ID)
		}
		seen[seat.ID] = true
		if seat.Team != "A" && seat.Team != "B" {
			return fmt.Errorf("seat %s: team must be A or B, got %q", seat.ID, seat.Team)
		}
		perTeam[seat.Team]++

		if !seat.Bot {
			if seat.Preset != "" || seat.Traits != nil {
				return fmt.Errorf("seat %s: only bots take a preset or traits", seat.ID)
			}
			continue
		}
		if seat.Traits != nil {
			if err := seat.Traits.Validate(); err != nil {
				return fmt.Errorf("seat %s: %w", seat.ID, err)
			}
		} else if _, ok := bot.Preset(seat.Preset, randutil.New(0)); !ok {
			return fmt.Errorf("seat %s: unknown preset %q (known: %s)", seat.ID, seat.Preset, strings.Join(bot.PresetNames(), ", "))
		}
	}
	if perTeam["A"] != 2 || perTeam["B"] != 2 {
		return fmt.Errorf("teams must have two seats each, got %d and %d", perTeam["A"], perTeam["B"])
	}
	return nil
}

// GameRules merges the rules block over game.DefaultRules.
func (c *Config) GameRules() game.Rules {
	r := game.DefaultRules()
	if c.Rules == nil {
		return r
	}
	override := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	override(&r.RawPerMarker, c.Rules.RawPerMarker)
	override(&r.MarkersPerMatch, c.Rules.MarkersPerMatch)
	override(&r.MatchesPerTournament, c.Rules.MatchesPerTournament)
	override(&r.BaseReward, c.Rules.BaseReward)
	override(&r.Deje, c.Rules.Deje)
	override(&r.MinRaise, c.Rules.MinRaise)
	override(&r.RaiseIncrement, c.Rules.RaiseIncrement)
	override(&r.AllInStake, c.Rules.AllInStake)
	override(&r.AdentroUnits, c.Rules.AdentroUnits)
	override(&r.LogSize, c.Rules.LogSize)
	r.CategoryBonuses = c.Rules.CategoryBonuses
	return r
}

// TablePacing merges the pacing block over table.DefaultPacing.
func (c *Config) TablePacing() table.Pacing {
	p := table.DefaultPacing()
	if c.Pacing == nil {
		return p
	}
	override := func(dst *time.Duration, ms int) {
		switch {
		case ms < 0:
			*dst = 0
		case ms > 0:
			*dst = time.Duration(ms) * time.Millisecond
		}
	}
	override(&p.Mus, c.Pacing.MusMS)
	override(&p.Discard, c.Pacing.DiscardMS)
	override(&p.Bet, c.Pacing.BetMS)
	override(&p.Announce, c.Pacing.AnnounceMS)
	override(&p.NextHand, c.Pacing.NextHandMS)
	override(&p.Signal, c.Pacing.SignalMS)
	return p
}

// Players returns the seats in table order.
func (c *Config) Players() []game.Player {
	players := make([]game.Player, len(c.Seats))
	for i, seat := range c.Seats {
		team := game.TeamA
		if seat.Team == "B" {
			team = game.TeamB
		}
		players[i] = game.Player{
			ID:      game.PlayerID(seat.ID),
			Name:    seat.Name,
			Team:    team,
			IsBot:   seat.Bot,
			Persona: seat.Preset,
		}
	}
	return players
}

// Agents builds bots for seats with explicit traits. Seats that only name a
// preset are left to the table.
func (c *Config) Agents(rng *rand.Rand, logger *log.Logger) map[game.PlayerID]game.Agent {
	agents := make(map[game.PlayerID]game.Agent)
	for _, seat := range c.Seats {
		if seat.Bot && seat.Traits != nil {
			agents[game.PlayerID(seat.ID)] = bot.New(seat.Name, *seat.Traits, randutil.Child(rng), logger)
		}
	}
	return agents
}

// Level returns the configured log level.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.Table.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
