package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/musforbots/mus"
)

// randomAction picks a legal action for whoever is to act.
func randomAction(rng *rand.Rand, s State) Action {
	switch {
	case s.Phase == PhaseFinished:
		return ResetGame{Deck: mus.NewShuffledDeck(rng)}
	case s.Phase == PhaseScoring:
		return Deal{Deck: mus.NewShuffledDeck(rng)}
	case s.SubPhase == SubAnnouncing:
		return EndAnnouncement{}
	case s.SubPhase == SubMusDecision:
		choice := Mus
		if rng.IntN(3) == 0 {
			choice = Cut
		}
		return MusDecision{Player: s.Current, Choice: choice}
	case s.SubPhase == SubDiscarding:
		p, _ := s.CurrentPlayer()
		var idx []int
		for i := range p.Hand {
			if rng.IntN(2) == 0 {
				idx = append(idx, i)
			}
		}
		return Discard{Player: s.Current, Indices: idx}
	}

	valid := ValidBids(s)
	v := valid[rng.IntN(len(valid))]
	var b Bid
	switch v.Kind {
	case BidPass:
		b = Pass{}
	case BidRaise:
		b = Raise{Amount: min(v.MinAmount+rng.IntN(3), v.MaxAmount)}
	case BidRaiseAgain:
		b = RaiseAgain{}
	case BidAllIn:
		b = AllIn{}
	case BidAccept:
		b = Accept{}
	case BidDecline:
		b = Decline{}
	}
	return PlaceBid{Player: s.Current, Bid: b}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	t.Parallel()
	for seed := range uint64(40) {
		rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
		s := NewState(testPlayers(), DefaultRules(), "prop")
		s = apply(t, s, Deal{Deck: mus.NewShuffledDeck(rng)})

		for step := 0; step < 3000 && !s.TournamentOver; step++ {
			a := randomAction(rng, s)
			next, err := Apply(s, a)
			require.NoError(t, err, "seed %d step %d: %#v", seed, step, a)
			s = next

			require.Equal(t, mus.DeckSize, s.CardsInPlay(), "seed %d step %d", seed, step)
			manos := 0
			for _, p := range s.Players {
				if p.Mano {
					manos++
				}
				require.Len(t, p.Hand, mus.HandSize)
				require.Equal(t, mus.Sum(p.Hand) >= mus.GameThreshold, p.HasGame)
				require.LessOrEqual(t, p.PointTotal, mus.Sum(p.Hand))
			}
			require.Equal(t, 1, manos)

			for _, ts := range s.Ledger.Teams {
				require.Equal(t, ts.TotalRaw, ts.Raw+s.Rules.RawPerMarker*ts.Markers)
			}
			switch {
			case s.SubPhase == SubBetting && s.Phase.IsBidding():
				require.True(t, s.Eligible(s.Current), "seed %d step %d: %s not eligible", seed, step, s.Current)
			case s.SubPhase == SubMusDecision || s.SubPhase == SubDiscarding:
				require.NotEmpty(t, s.Current)
			}
			if s.Phase == PhaseFinished && !s.WonByAllIn {
				require.GreaterOrEqual(t, s.Ledger.Team(s.MatchWinner).Markers, s.Rules.MarkersPerMatch)
			}
		}
	}
}
