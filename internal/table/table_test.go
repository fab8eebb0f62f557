package table

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/musforbots/internal/game"
	"github.com/lox/musforbots/internal/randutil"
	"github.com/lox/musforbots/mus"
)

// cutter cuts the mus, never discards and never bets.
type cutter struct{}

func (cutter) DecideMus(game.View) game.MusChoice { return game.Cut }
func (cutter) ChooseDiscards(game.View) []int    { return nil }
func (cutter) DecideBid(v game.View) game.Bid {
	if v.Bet.Awaiting {
		return game.Decline{}
	}
	return game.Pass{}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// seats returns four players; the listed seats are bots.
func seats(bots ...int) []game.Player {
	players := []game.Player{
		{ID: "p1", Name: "Ane", Team: game.TeamA},
		{ID: "p2", Name: "Bea", Team: game.TeamB},
		{ID: "p3", Name: "Iker", Team: game.TeamA},
		{ID: "p4", Name: "Jon", Team: game.TeamB},
	}
	for _, i := range bots {
		players[i].IsBot = true
	}
	return players
}

func cutters(players []game.Player) map[game.PlayerID]game.Agent {
	agents := make(map[game.PlayerID]game.Agent)
	for _, p := range players {
		if p.IsBot {
			agents[p.ID] = cutter{}
		}
	}
	return agents
}

func newTable(t *testing.T, players []game.Player, opts ...Option) *Table {
	t.Helper()
	base := []Option{
		WithLogger(quietLogger()),
		WithRNG(randutil.New(11)),
		WithAgents(cutters(players)),
	}
	tbl, err := New(players, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(tbl.Close)
	return tbl
}

func advance(t *testing.T, clk *quartz.Mock) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, w := clk.AdvanceNext()
	w.MustWait(ctx)
}

func TestNewValidatesTable(t *testing.T) {
	t.Parallel()
	_, err := New(seats()[:3], WithLogger(quietLogger()))
	assert.Error(t, err)

	bad := seats(1)
	bad[1].Persona = "nobody"
	_, err = New(bad, WithLogger(quietLogger()))
	assert.ErrorContains(t, err, "unknown bot preset")

	rules := game.DefaultRules()
	rules.RawPerMarker = 0
	_, err = New(seats(), WithLogger(quietLogger()), WithRules(rules))
	assert.ErrorContains(t, err, "raw_per_marker")

	tbl, err := New(seats(1, 3), WithLogger(quietLogger()), WithRNG(randutil.New(1)))
	require.NoError(t, err)
	defer tbl.Close()
	assert.Len(t, tbl.agents, 2, "bots without agents get a preset bot")
}

func TestInstantPacingPlaysBotsSynchronously(t *testing.T) {
	t.Parallel()
	tbl := newTable(t, seats(1, 2, 3), WithPacing(Instant()))

	require.True(t, tbl.DealNewRound())
	require.True(t, tbl.ProcessMusDecision("p1", game.Cut))
	require.True(t, tbl.PlaceBet("p1", game.Pass{}))

	s := tbl.State()
	assert.Equal(t, game.PhaseLow, s.Phase)
	assert.Equal(t, game.PlayerID("p1"), s.Current)
}

func TestPacedBotTurnsWaitForTheClock(t *testing.T) {
	t.Parallel()
	clk := quartz.NewMock(t)
	tbl := newTable(t, seats(1, 2, 3), WithClock(clk))

	require.True(t, tbl.DealNewRound())
	require.True(t, tbl.ProcessMusDecision("p1", game.Cut))
	require.True(t, tbl.PlaceBet("p1", game.Pass{}))

	s := tbl.State()
	assert.Equal(t, game.PlayerID("p2"), s.Current)
	assert.False(t, tbl.ProcessBotActions(), "bot turn already in flight")
	assert.Equal(t, s.Version, tbl.State().Version)

	for _, next := range []game.PlayerID{"p3", "p4"} {
		advance(t, clk)
		assert.Equal(t, next, tbl.State().Current)
	}
	advance(t, clk)
	s = tbl.State()
	assert.Equal(t, game.PhaseLow, s.Phase)
	assert.Equal(t, game.PlayerID("p1"), s.Current)
	_, pending := clk.Peek()
	assert.False(t, pending)
}

func TestResetDropsPendingBotAction(t *testing.T) {
	t.Parallel()
	clk := quartz.NewMock(t)
	tbl := newTable(t, seats(1, 2, 3), WithClock(clk))

	tbl.DealNewRound()
	tbl.ProcessMusDecision("p1", game.Cut)
	tbl.PlaceBet("p1", game.Pass{})
	require.True(t, tbl.turns.InFlight())

	require.True(t, tbl.ResetToNewGame())
	s := tbl.State()
	assert.Equal(t, uint64(1), s.Epoch)
	assert.Equal(t, game.SubMusDecision, s.SubPhase)
	assert.Equal(t, game.PlayerID("p1"), s.Current)
	assert.False(t, tbl.turns.InFlight())
	_, pending := clk.Peek()
	assert.False(t, pending)
}

func TestStaleTaskIsDropped(t *testing.T) {
	t.Parallel()
	clk := quartz.NewMock(t)
	tbl := newTable(t, seats(1, 2, 3), WithClock(clk))

	tbl.DealNewRound()
	tbl.ProcessMusDecision("p1", game.Cut)
	tbl.PlaceBet("p1", game.Pass{})
	stale := keyOf(tbl.State())

	tbl.ResetTournament()
	before := tbl.State()
	assert.False(t, tbl.runTask(stale))
	assert.Empty(t, cmp.Diff(before, tbl.State(), cmp.AllowUnexported(mus.Deck{})))
}

func TestAutoDealPlaysBotMatchToTheEnd(t *testing.T) {
	t.Parallel()
	tbl := newTable(t, seats(0, 1, 2, 3), WithPacing(Instant()), WithAutoDeal(true))

	require.True(t, tbl.DealNewRound())

	s := tbl.State()
	require.Equal(t, game.PhaseFinished, s.Phase)
	assert.True(t, s.MatchOver)
	assert.False(t, s.WonByAllIn, "cutters never bet")
	assert.GreaterOrEqual(t, s.Ledger.Team(s.MatchWinner).Markers, s.Rules.MarkersPerMatch)
	assert.Greater(t, s.Round, 1)
	assert.False(t, tbl.DealNewRound(), "a finished match needs a reset")
}

func TestScoringWaitsForDealWithoutAutoDeal(t *testing.T) {
	t.Parallel()
	tbl := newTable(t, seats(0, 1, 2, 3), WithPacing(Instant()))

	require.True(t, tbl.DealNewRound())
	s := tbl.State()
	assert.Equal(t, game.PhaseScoring, s.Phase)
	assert.Equal(t, 1, s.Round)
	assert.False(t, tbl.ProcessBotActions())
}

func TestOutOfTurnActionsAreIgnored(t *testing.T) {
	t.Parallel()
	tbl := newTable(t, seats())
	tbl.DealNewRound()
	before := tbl.State()

	assert.False(t, tbl.PlaceBet("p2", game.Pass{}))
	assert.False(t, tbl.ProcessMusDecision("p3", game.Cut))
	assert.False(t, tbl.DiscardCards("p1", []int{0}))
	assert.False(t, tbl.ProcessBotActions(), "nobody is a bot")
	assert.Empty(t, cmp.Diff(before, tbl.State(), cmp.AllowUnexported(mus.Deck{})))
}

func TestStateReturnsSnapshots(t *testing.T) {
	t.Parallel()
	tbl := newTable(t, seats())
	tbl.DealNewRound()

	a, b := tbl.State(), tbl.State()
	assert.Empty(t, cmp.Diff(a, b, cmp.AllowUnexported(mus.Deck{})))

	a.Players[0].Hand = nil
	a.Ledger.Teams[0].Raw = 4
	c := tbl.State()
	assert.Len(t, c.Players[0].Hand, mus.HandSize)
	assert.Zero(t, c.Ledger.Teams[0].Raw)
}

func TestCompanionSignalExpires(t *testing.T) {
	t.Parallel()
	clk := quartz.NewMock(t)
	tbl := newTable(t, seats(1, 3), WithClock(clk))

	require.True(t, tbl.SendCompanionSignal("p1", game.SignalGood))
	assert.False(t, tbl.SendCompanionSignal("p2", game.SignalBad), "bots do not signal")

	v, _ := tbl.View("p3")
	assert.Equal(t, game.SignalGood, v.Signal)

	advance(t, clk)
	assert.Equal(t, game.SignalNone, tbl.State().Signal.Value)
}

func TestRefusedResetKeepsSignalTimer(t *testing.T) {
	t.Parallel()
	clk := quartz.NewMock(t)
	rules := game.DefaultRules()
	rules.RawPerMarker = 1
	rules.MarkersPerMatch = 1
	rules.MatchesPerTournament = 1
	tbl := newTable(t, seats(), WithClock(clk), WithRules(rules), WithPacing(Instant()))

	require.True(t, tbl.DealNewRound())
	require.True(t, tbl.SendCompanionSignal("p1", game.SignalGood))
	require.True(t, tbl.ProcessMusDecision("p1", game.Cut))
	require.True(t, tbl.PlaceBet("p1", game.AllIn{}))
	require.True(t, tbl.PlaceBet("p2", game.Decline{}))
	require.True(t, tbl.PlaceBet("p4", game.Decline{}))
	require.True(t, tbl.State().TournamentOver)

	assert.False(t, tbl.ResetToNewGame())
	assert.Equal(t, game.SignalGood, tbl.State().Signal.Value)

	advance(t, clk)
	assert.Equal(t, game.SignalNone, tbl.State().Signal.Value)
}

func TestNewSignalReplacesOld(t *testing.T) {
	t.Parallel()
	clk := quartz.NewMock(t)
	tbl := newTable(t, seats(), WithClock(clk))

	tbl.SendCompanionSignal("p1", game.SignalGood)
	tbl.SendCompanionSignal("p3", game.SignalBad)

	s := tbl.State()
	assert.Equal(t, game.SignalBad, s.Signal.Value)
	assert.Equal(t, 2, s.Signal.Seq)

	advance(t, clk)
	assert.Equal(t, game.SignalNone, tbl.State().Signal.Value)
}

func TestSubscribeSeesLatestState(t *testing.T) {
	t.Parallel()
	tbl := newTable(t, seats())

	ch, unsubscribe := tbl.Subscribe()
	tbl.DealNewRound()

	got := <-ch
	assert.Equal(t, game.SubMusDecision, got.SubPhase)

	unsubscribe()
	_, open := <-ch
	assert.False(t, open)
}
