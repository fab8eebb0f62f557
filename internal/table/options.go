package table

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/musforbots/internal/game"
)

// Pacing holds the artificial delays that make bot turns visible. Zero
// delays apply the action synchronously.
type Pacing struct {
	Mus      time.Duration
	Discard  time.Duration
	Bet      time.Duration
	Announce time.Duration
	NextHand time.Duration
	Signal   time.Duration // how long a companion signal stays up
}

// DefaultPacing returns delays suited to a human watching the table.
func DefaultPacing() Pacing {
	return Pacing{
		Mus:      800 * time.Millisecond,
		Discard:  time.Second,
		Bet:      1200 * time.Millisecond,
		Announce: 3 * time.Second,
		NextHand: 4 * time.Second,
		Signal:   3 * time.Second,
	}
}

// Instant is the pacing used by simulations: everything happens at once
// except signals, which still expire on the clock.
func Instant() Pacing {
	return Pacing{Signal: 3 * time.Second}
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the structured logger.
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) { t.logger = logger }
}

// WithClock sets the clock used for pacing; tests pass a quartz mock.
func WithClock(clock quartz.Clock) Option {
	return func(t *Table) { t.clock = clock }
}

// WithRNG sets the random source for shuffles, match ids and default bots.
func WithRNG(rng *rand.Rand) Option {
	return func(t *Table) { t.rng = rng }
}

// WithRules replaces the default rule set.
func WithRules(rules game.Rules) Option {
	return func(t *Table) { t.rules = rules }
}

// WithPacing sets the bot and announcement delays.
func WithPacing(p Pacing) Option {
	return func(t *Table) { t.pacing = p }
}

// WithAgents sets the agent playing each bot seat. Bot seats without an
// agent get one built from their persona preset.
func WithAgents(agents map[game.PlayerID]game.Agent) Option {
	return func(t *Table) {
		for id, a := range agents {
			t.agents[id] = a
		}
	}
}

// WithAutoDeal deals the next hand on its own after the scoring pause.
func WithAutoDeal(on bool) Option {
	return func(t *Table) { t.autoDeal = on }
}
