// Package mus models the 40-card Spanish deck and scores four-card hands for
// the five bidding categories of Mus.
//
// Cards carry a strength value that differs from their printed rank: aces and
// twos count 1, threes and figures count 10. Every evaluator works on that
// value, is a pure function of the hand, and returns NotEligible for hands
// that cannot take part in a category so callers can compare scores directly.
//
//	hand := mus.MustParseHand("Ao Ac Re Rb")
//	mus.HighScore(hand)  // 10
//	mus.PairsOf(hand)    // duples 10/1
//
// Decks take an explicit *rand.Rand so deals are reproducible:
//
//	deck := mus.NewShuffledDeck(rand.New(rand.NewPCG(42, 42)))
//	hands := deck.Deal(4)
package mus
