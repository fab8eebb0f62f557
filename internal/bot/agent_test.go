package bot

import (
	"io"
	"math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/musforbots/internal/game"
	"github.com/lox/musforbots/internal/randutil"
	"github.com/lox/musforbots/mus"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newAgent(t *testing.T, preset string, seed int64) *Agent {
	t.Helper()
	rng := randutil.New(seed)
	traits, ok := Preset(preset, rng)
	require.True(t, ok, "preset %s", preset)
	return New(preset, traits, rng, quietLogger())
}

func viewWith(hand string) game.View {
	return game.View{
		Self:     game.Player{ID: "p1", Name: "Ane", Hand: mus.MustParseHand(hand)},
		Phase:    game.PhaseMus,
		SubPhase: game.SubMusDecision,
		Rules:    game.DefaultRules(),
	}
}

func TestPresetsAreValid(t *testing.T) {
	t.Parallel()
	names := PresetNames()
	assert.Len(t, names, 9)
	assert.Contains(t, names, Wildcard)

	rng := randutil.New(1)
	for _, name := range names {
		traits, ok := Preset(name, rng)
		require.True(t, ok, name)
		assert.NoError(t, traits.Validate(), name)
	}
	_, ok := Preset("nobody", rng)
	assert.False(t, ok)
}

func TestTraitsValidateRange(t *testing.T) {
	t.Parallel()
	assert.Error(t, Traits{Boldness: 11}.Validate())
	assert.Error(t, Traits{Low: -1}.Validate())
	assert.NoError(t, Traits{}.Validate())
}

func TestStrengthRespectsCategoryOrder(t *testing.T) {
	t.Parallel()
	duples := Strength(mus.Pairs, mus.MustParseHand("Ao Ac 4o 4c"))
	medias := Strength(mus.Pairs, mus.MustParseHand("Ro Rc Re 4o"))
	par := Strength(mus.Pairs, mus.MustParseHand("Ro Rc 4o 5o"))
	none := Strength(mus.Pairs, mus.MustParseHand("Ro 4c 5o 6o"))

	assert.Greater(t, duples, medias)
	assert.Greater(t, medias, par)
	assert.Greater(t, par, none)
	assert.Zero(t, none)

	assert.Equal(t, 10.0, Strength(mus.Game, mus.MustParseHand("Ro Rc So Ao")))
	assert.Equal(t, 8.0, Strength(mus.Game, mus.MustParseHand("Ro Rc So Sc")))
	assert.Zero(t, Strength(mus.Point, mus.MustParseHand("Ro Rc So Sc")))
}

func TestChooseDiscardsKeepsPairsAndExtremes(t *testing.T) {
	t.Parallel()
	v := viewWith("Ro Rc 5o 4e")
	for seed := range int64(200) {
		a := newAgent(t, "steady", seed)
		got := a.ChooseDiscards(v)

		require.NotEmpty(t, got)
		require.LessOrEqual(t, len(got), 3)
		assert.IsNonDecreasing(t, got)
		assert.Contains(t, got, 2, "the five goes first")
		if len(got) == 2 {
			assert.Equal(t, []int{2, 3}, got)
		}
	}
}

func TestAgentsAreReproducible(t *testing.T) {
	t.Parallel()
	v := viewWith("Ro 4c 5o 6o")
	v.Phase = game.PhaseHigh
	v.SubPhase = game.SubBetting
	v.Valid = []game.ValidBid{{Kind: game.BidPass}, {Kind: game.BidRaise, MinAmount: 2, MaxAmount: 39}, {Kind: game.BidAllIn}}

	a, b := newAgent(t, Wildcard, 99), newAgent(t, Wildcard, 99)
	assert.Equal(t, a.Traits(), b.Traits())
	for range 50 {
		assert.Equal(t, a.DecideMus(v), b.DecideMus(v))
		assert.Equal(t, a.ChooseDiscards(v), b.ChooseDiscards(v))
		assert.Equal(t, a.DecideBid(v), b.DecideBid(v))
	}
}

func TestStrongHandsCutMoreOften(t *testing.T) {
	t.Parallel()
	a := newAgent(t, "prudent", 7)
	strong, weak := viewWith("Ro Rc Re So"), viewWith("4o 5c 6e 7b")

	var strongCuts, weakCuts int
	for range 1000 {
		if a.DecideMus(strong) == game.Cut {
			strongCuts++
		}
		if a.DecideMus(weak) == game.Cut {
			weakCuts++
		}
	}
	assert.Greater(t, strongCuts, weakCuts+150)
}

func TestAllInResponseFollowsHandValue(t *testing.T) {
	t.Parallel()
	a := newAgent(t, "steady", 3)
	pending := func(hand string) game.View {
		v := viewWith(hand)
		v.Phase = game.PhaseHigh
		v.SubPhase = game.SubBetting
		v.Bet = game.ActiveBid{Kind: game.BidAllIn, Amount: 40, Proposer: "p2", Awaiting: true}
		v.Valid = []game.ValidBid{{Kind: game.BidAccept}, {Kind: game.BidDecline}}
		return v
	}
	strong, weak := pending("Ro 4o 5o 6o"), pending("Ao 2c 4o 5o")

	var strongAccepts, weakAccepts int
	for range 500 {
		if _, ok := a.DecideBid(strong).(game.Accept); ok {
			strongAccepts++
		}
		if _, ok := a.DecideBid(weak).(game.Accept); ok {
			weakAccepts++
		}
	}
	assert.Greater(t, strongAccepts, 400)
	assert.Less(t, weakAccepts, 150)
}

func TestSignalReading(t *testing.T) {
	t.Parallel()
	v := viewWith("Ro 4c 5o 6o")

	attentive := New("a", Traits{SignalReading: MaxTrait}, randutil.New(1), quietLogger())
	blind := New("b", Traits{SignalReading: 0}, randutil.New(1), quietLogger())

	v.Signal = game.SignalGood
	assert.Equal(t, 1.0, attentive.signalLean(v))
	assert.Zero(t, blind.signalLean(v))

	v.Signal = game.SignalBad
	assert.Equal(t, -1.0, attentive.signalLean(v))

	v.Signal = game.SignalMedium
	assert.Zero(t, attentive.signalLean(v))
}

func TestBidFallsBackToValidChoice(t *testing.T) {
	t.Parallel()
	a := New("a", Traits{}, randutil.New(1), quietLogger())
	v := viewWith("Ro 4c 5o 6o")
	v.Valid = []game.ValidBid{{Kind: game.BidPass}, {Kind: game.BidRaise, MinAmount: 4, MaxAmount: 6}}

	assert.Equal(t, game.Raise{Amount: 4}, a.choose(v, game.Raise{Amount: 2}))
	assert.Equal(t, game.Raise{Amount: 5}, a.choose(v, game.Raise{Amount: 5}))
	assert.Equal(t, game.Raise{Amount: 6}, a.choose(v, game.Raise{Amount: 30}))
	assert.Equal(t, game.Pass{}, a.choose(v, game.AllIn{}))

	v.Bet.Awaiting = true
	v.Valid = []game.ValidBid{{Kind: game.BidAccept}, {Kind: game.BidDecline}}
	assert.Equal(t, game.Accept{}, a.choose(v, game.RaiseAgain{}))
}

// TestBotsPlayWholeTournaments seats four agents and drives the reducer
// directly, checking that no agent ever produces a rejected action.
func TestBotsPlayWholeTournaments(t *testing.T) {
	t.Parallel()
	presets := []string{"reckless", "prudent", "bluffer", Wildcard}

	for seed := range int64(10) {
		rng := randutil.New(seed)
		players := make([]game.Player, game.NumPlayers)
		agents := make(map[game.PlayerID]game.Agent, game.NumPlayers)
		for i, preset := range presets {
			id := game.PlayerID(string(rune('a' + i)))
			players[i] = game.Player{ID: id, Name: preset, Team: game.Team(i % 2), IsBot: true, Persona: preset}
			traits, _ := Preset(preset, rng)
			agents[id] = New(preset, traits, randutil.Child(rng), quietLogger())
		}

		s := game.NewState(players, game.DefaultRules(), "bots")
		s = mustApply(t, s, game.Deal{Deck: mus.NewShuffledDeck(rng)})

		steps := 0
		for !s.TournamentOver {
			steps++
			require.Less(t, steps, 50000, "seed %d: tournament did not finish", seed)
			s = mustApply(t, s, nextAction(rng, s, agents))
		}
		winner := s.Ledger.Team(s.MatchWinner)
		assert.Equal(t, s.Rules.MatchesPerTournament, winner.Matches)
	}
}

func nextAction(rng *rand.Rand, s game.State, agents map[game.PlayerID]game.Agent) game.Action {
	switch {
	case s.Phase == game.PhaseFinished:
		return game.ResetGame{Deck: mus.NewShuffledDeck(rng)}
	case s.Phase == game.PhaseScoring:
		return game.Deal{Deck: mus.NewShuffledDeck(rng)}
	case s.SubPhase == game.SubAnnouncing:
		return game.EndAnnouncement{}
	}
	v, _ := game.ViewFor(s, s.Current)
	agent := agents[s.Current]
	switch s.SubPhase {
	case game.SubMusDecision:
		return game.MusDecision{Player: s.Current, Choice: agent.DecideMus(v)}
	case game.SubDiscarding:
		return game.Discard{Player: s.Current, Indices: agent.ChooseDiscards(v)}
	default:
		return game.PlaceBid{Player: s.Current, Bid: agent.DecideBid(v)}
	}
}

func mustApply(t *testing.T, s game.State, a game.Action) game.State {
	t.Helper()
	next, err := game.Apply(s, a)
	require.NoError(t, err, "%#v in %s/%s", a, s.Phase, s.SubPhase)
	return next
}
