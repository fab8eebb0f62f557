// Package table is the engine facade: it owns the authoritative game state
// for one table, exposes the operations a presentation layer calls, and
// paces bot turns on a clock.
package table

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/musforbots/internal/bot"
	"github.com/lox/musforbots/internal/game"
	"github.com/lox/musforbots/internal/gameid"
	"github.com/lox/musforbots/internal/randutil"
	"github.com/lox/musforbots/mus"
)

// DefaultPreset is the personality given to bot seats without a persona.
const DefaultPreset = "steady"

// Table runs one Mus table. All methods are safe to call from several
// goroutines; they are serialised on an internal lock.
type Table struct {
	mu sync.Mutex

	state    game.State
	agents   map[game.PlayerID]game.Agent
	rules    game.Rules
	pacing   Pacing
	autoDeal bool

	rng    *rand.Rand
	clock  quartz.Clock
	logger *log.Logger

	turns   *Scheduler
	signals *Scheduler
	pending turnKey

	subs   map[int]chan game.State
	nextID int
	closed bool
}

// turnKey identifies the turn a scheduled task was created for.
type turnKey struct {
	epoch   uint64
	turn    uint64
	current game.PlayerID
}

func keyOf(s game.State) turnKey {
	return turnKey{epoch: s.Epoch, turn: s.Turn, current: s.Current}
}

// New seats four players, the first as mano. Bot seats are played by the
// agents given with WithAgents or by a bot built from their persona.
func New(players []game.Player, opts ...Option) (*Table, error) {
	t := &Table{
		agents: make(map[game.PlayerID]game.Agent),
		rules:  game.DefaultRules(),
		pacing: DefaultPacing(),
		clock:  quartz.NewReal(),
		logger: log.Default(),
		subs:   make(map[int]chan game.State),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rng == nil {
		t.rng = randutil.New(randutil.Seed(0))
	}
	if err := t.rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if err := validateSeats(players); err != nil {
		return nil, err
	}

	matchID := gameid.NewGenerator(randutil.Reader(t.rng)).Generate()
	t.logger = t.logger.WithPrefix("table").With("match", matchID)
	t.turns = NewScheduler(t.clock, "turn")
	t.signals = NewScheduler(t.clock, "signal")

	for _, p := range players {
		if !p.IsBot || t.agents[p.ID] != nil {
			continue
		}
		preset := p.Persona
		if preset == "" {
			preset = DefaultPreset
		}
		rng := randutil.Child(t.rng)
		traits, ok := bot.Preset(preset, rng)
		if !ok {
			return nil, fmt.Errorf("player %s: unknown bot preset %q", p.ID, preset)
		}
		t.agents[p.ID] = bot.New(p.Name, traits, rng, t.logger)
	}

	t.state = game.NewState(players, t.rules, matchID)
	t.logger.Info("table ready", "players", len(players), "bots", len(t.agents))
	return t, nil
}

func validateSeats(players []game.Player) error {
	if len(players) != game.NumPlayers {
		return fmt.Errorf("need %d players, got %d", game.NumPlayers, len(players))
	}
	var perTeam [2]int
	seen := make(map[game.PlayerID]bool, len(players))
	for _, p := range players {
		switch {
		case p.ID == "":
			return errors.New("player with empty id")
		case seen[p.ID]:
			return fmt.Errorf("duplicate player id %q", p.ID)
		case p.Team > game.TeamB:
			return fmt.Errorf("player %s has invalid team %d", p.ID, p.Team)
		}
		seen[p.ID] = true
		perTeam[p.Team]++
	}
	if perTeam[game.TeamA] != 2 || perTeam[game.TeamB] != 2 {
		return fmt.Errorf("teams must have two players each, got %d and %d", perTeam[game.TeamA], perTeam[game.TeamB])
	}
	return nil
}

// State returns a snapshot of the table. Changing it does not affect the table.
func (t *Table) State() game.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// View returns what player id may see.
func (t *Table) View(id game.PlayerID) (game.View, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return game.ViewFor(t.state, id)
}

// DealNewRound shuffles and deals a new hand. It reports whether the deal
// happened; a finished match needs a reset first.
func (t *Table) DealNewRound() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.act(game.Deal{Deck: mus.NewShuffledDeck(t.rng)})
}

// ProcessMusDecision applies a mus or cut answer.
func (t *Table) ProcessMusDecision(id game.PlayerID, choice game.MusChoice) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.act(game.MusDecision{Player: id, Choice: choice})
}

// DiscardCards replaces the cards at the given hand positions.
func (t *Table) DiscardCards(id game.PlayerID, indices []int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.act(game.Discard{Player: id, Indices: indices})
}

// PlaceBet makes a bid for id.
func (t *Table) PlaceBet(id game.PlayerID, bid game.Bid) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.act(game.PlaceBid{Player: id, Bid: bid})
}

// SendCompanionSignal shows a hint to id's partner until the signal pacing
// elapses.
func (t *Table) SendCompanionSignal(id game.PlayerID, value game.Signal) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.apply(game.SendSignal{Player: id, Value: value}) {
		return false
	}
	seq := t.state.Signal.Seq
	t.signals.Cancel()
	t.signals.Schedule(t.pacing.Signal, func(task uint64) {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.signals.Claim(task) {
			t.apply(game.ClearSignal{Seq: seq})
		}
	})
	return true
}

// ProcessBotActions lets a bot act if it is a bot's turn. With a pacing delay
// the action is scheduled; without one it is applied before returning. It
// reports whether anything was applied or scheduled, and is a no-op while
// a bot action is already in flight.
func (t *Table) ProcessBotActions() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.botTurn() || t.turns.InFlight() {
		return false
	}
	before := t.state.Version
	t.kick()
	return t.turns.InFlight() || t.state.Version != before
}

// ResetToNewGame starts a new match, keeping the tournament tally. Pending
// bot actions and signal timers are dropped. It is ignored once the
// tournament is over, and then leaves the timers running.
func (t *Table) ResetToNewGame() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.apply(game.ResetGame{Deck: mus.NewShuffledDeck(t.rng)}) {
		return false
	}
	t.cancelAll()
	t.kick()
	return true
}

// ResetTournament clears every score and deals a fresh hand.
func (t *Table) ResetTournament() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelAll()
	t.act(game.ResetTournament{Deck: mus.NewShuffledDeck(t.rng)})
}

// Subscribe returns a channel that receives a snapshot after every change.
// Slow readers only see the latest snapshot. Call the returned function to
// unsubscribe.
func (t *Table) Subscribe() (<-chan game.State, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch := make(chan game.State, 1)
	if t.closed {
		close(ch)
		return ch, func() {}
	}
	id := t.nextID
	t.nextID++
	t.subs[id] = ch
	ch <- t.state.Clone()
	return ch, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if c, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(c)
		}
	}
}

// Close stops pending timers and closes subscriptions.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelAll()
	t.closed = true
	for id, ch := range t.subs {
		delete(t.subs, id)
		close(ch)
	}
}

// act applies a caller's action and lets the table move on by itself.
func (t *Table) act(a game.Action) bool {
	if !t.apply(a) {
		return false
	}
	t.kick()
	return true
}

// apply runs the reducer. Rejected actions are logged and dropped.
func (t *Table) apply(a game.Action) bool {
	prev := t.state
	next, err := game.Apply(prev, a)
	if err != nil {
		if game.Ignorable(err) {
			t.logger.Debug("ignored action", "action", fmt.Sprintf("%T", a), "err", err)
		} else {
			t.logger.Error("action failed", "action", fmt.Sprintf("%T", a), "err", err)
		}
		return false
	}
	t.state = next
	t.observe(prev, next, a)
	t.notify()
	return true
}

// observe logs hand and match boundaries.
func (t *Table) observe(prev, next game.State, a game.Action) {
	switch {
	case next.TournamentOver && !prev.TournamentOver:
		t.logger.Info("tournament won", "team", next.MatchWinner, "all_in", next.WonByAllIn)
	case next.MatchOver && !prev.MatchOver:
		t.logger.Info("match won", "team", next.MatchWinner, "all_in", next.WonByAllIn,
			"matches", next.Ledger.Team(next.MatchWinner).Matches)
	case next.Phase == game.PhaseScoring && prev.Phase != game.PhaseScoring:
		ta, tb := next.Ledger.Team(game.TeamA), next.Ledger.Team(game.TeamB)
		t.logger.Info("hand scored", "round", next.Round,
			"a_markers", ta.Markers, "a_raw", ta.Raw, "b_markers", tb.Markers, "b_raw", tb.Raw)
	case next.SubPhase == game.SubMusDecision && prev.SubPhase != game.SubMusDecision && next.MusCount == 0:
		t.logger.Debug("hand dealt", "round", next.Round, "mano", next.Players[next.ManoSeat()].Name)
	}
	if d, ok := a.(game.Discard); ok {
		if p, _ := next.Player(d.Player); len(p.Hand) < mus.HandSize {
			t.logger.Warn("deck ran short during discard", "player", p.Name, "cards", len(p.Hand))
		}
	}
}

func (t *Table) notify() {
	snap := t.state.Clone()
	for _, ch := range t.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (t *Table) cancelAll() {
	t.turns.Cancel()
	t.signals.Cancel()
}

func (t *Table) botTurn() bool {
	if t.state.Current == "" {
		return false
	}
	p, ok := t.state.CurrentPlayer()
	return ok && p.IsBot && t.agents[p.ID] != nil
}

// nextDelay reports whether the table has something to do on its own in the
// current state, and after how long.
func (t *Table) nextDelay() (time.Duration, bool) {
	s := t.state
	switch {
	case s.SubPhase == game.SubAnnouncing:
		return t.pacing.Announce, true
	case s.Phase == game.PhaseScoring:
		return t.pacing.NextHand, t.autoDeal
	case !t.botTurn():
		return 0, false
	case s.SubPhase == game.SubMusDecision:
		return t.pacing.Mus, true
	case s.SubPhase == game.SubDiscarding:
		return t.pacing.Discard, true
	case s.SubPhase == game.SubBetting:
		return t.pacing.Bet, true
	default:
		return 0, false
	}
}

// kick runs or schedules whatever the table does by itself next: bot turns,
// the end of an announcement and, with auto-deal, the next hand. Zero delays
// run in a loop until a human has to act.
func (t *Table) kick() {
	for {
		if t.turns.InFlight() {
			if t.pending == keyOf(t.state) {
				return
			}
			t.turns.Cancel()
		}
		delay, ok := t.nextDelay()
		if !ok {
			return
		}
		key := keyOf(t.state)
		if delay > 0 {
			t.pending = key
			t.turns.Schedule(delay, func(id uint64) { t.fire(id, key) })
			return
		}
		if !t.runTask(key) {
			return
		}
	}
}

func (t *Table) fire(id uint64, key turnKey) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.turns.Claim(id) {
		return
	}
	if keyOf(t.state) != key {
		t.logger.Debug("dropping stale task", "epoch", key.epoch, "turn", key.turn, "player", key.current)
	} else {
		t.runTask(key)
	}
	t.kick()
}

// runTask performs the automatic action for the current state, provided the
// state still matches key.
func (t *Table) runTask(key turnKey) bool {
	s := t.state
	if keyOf(s) != key {
		return false
	}
	switch {
	case s.SubPhase == game.SubAnnouncing:
		return t.apply(game.EndAnnouncement{})
	case s.Phase == game.PhaseScoring:
		return t.apply(game.Deal{Deck: mus.NewShuffledDeck(t.rng)})
	}

	agent := t.agents[s.Current]
	v, ok := game.ViewFor(s, s.Current)
	if agent == nil || !ok {
		return false
	}
	var a game.Action
	switch s.SubPhase {
	case game.SubMusDecision:
		a = game.MusDecision{Player: s.Current, Choice: agent.DecideMus(v)}
	case game.SubDiscarding:
		a = game.Discard{Player: s.Current, Indices: agent.ChooseDiscards(v)}
	default:
		a = game.PlaceBid{Player: s.Current, Bid: agent.DecideBid(v)}
	}
	if t.apply(a) {
		return true
	}
	t.logger.Error("bot action rejected, using fallback", "player", s.Current, "action", fmt.Sprintf("%#v", a))
	return t.apply(fallback(s))
}

// fallback is the most conservative legal move for the player to act.
func fallback(s game.State) game.Action {
	switch s.SubPhase {
	case game.SubMusDecision:
		return game.MusDecision{Player: s.Current, Choice: game.Cut}
	case game.SubDiscarding:
		return game.Discard{Player: s.Current}
	}
	if s.Bet.Awaiting {
		return game.PlaceBid{Player: s.Current, Bid: game.Decline{}}
	}
	return game.PlaceBid{Player: s.Current, Bid: game.Pass{}}
}
