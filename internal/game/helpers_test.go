package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/lox/musforbots/mus"
)

var stateOpts = cmp.Options{cmp.AllowUnexported(mus.Deck{})}

func testPlayers() []Player {
	return []Player{
		{ID: "p1", Name: "Ane", Team: TeamA},
		{ID: "p2", Name: "Bea", Team: TeamB},
		{ID: "p3", Name: "Iker", Team: TeamA},
		{ID: "p4", Name: "Jon", Team: TeamB},
	}
}

// stackedDeck returns a deck that deals the given hands in seat order
// starting from mano.
func stackedDeck(t *testing.T, hands ...string) *mus.Deck {
	t.Helper()
	parsed := make([]mus.Hand, len(hands))
	for i, h := range hands {
		parsed[i] = mus.MustParseHand(h)
	}
	d, err := mus.StackedDeck(parsed...)
	require.NoError(t, err)
	return d
}

// dealt returns a fresh table dealt with the given hands.
func dealt(t *testing.T, hands ...string) State {
	t.Helper()
	s := NewState(testPlayers(), DefaultRules(), "test")
	s, err := Apply(s, Deal{Deck: stackedDeck(t, hands...)})
	require.NoError(t, err)
	return s
}

// apply applies every action and fails the test on the first error.
func apply(t *testing.T, s State, actions ...Action) State {
	t.Helper()
	for _, a := range actions {
		var err error
		s, err = Apply(s, a)
		require.NoError(t, err, "applying %#v in %s/%s", a, s.Phase, s.SubPhase)
	}
	return s
}

func bid(id PlayerID, b Bid) Action {
	return PlaceBid{Player: id, Bid: b}
}

func passes(ids ...PlayerID) []Action {
	out := make([]Action, len(ids))
	for i, id := range ids {
		out[i] = bid(id, Pass{})
	}
	return out
}

// Hands with no pairs and no game anywhere. Team B holds the best high card
// and the best point; low is tied.
var plainHands = []string{
	"Ao 4o 5o 6o",
	"Ac 4c 5c 7c",
	"2o 4e 5e 6e",
	"2c 4b 5b 6b",
}
