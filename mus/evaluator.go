package mus

import "fmt"

// Category is one of the five bidding categories a hand is scored in.
type Category uint8

const (
	High  Category = iota // grande
	Low                   // chica
	Pairs                 // pares
	Game                  // juego
	Point                 // punto
)

// Categories lists the bidding categories in the order they are played.
var Categories = [...]Category{High, Low, Pairs, Game, Point}

func (c Category) String() string {
	switch c {
	case High:
		return "grande"
	case Low:
		return "chica"
	case Pairs:
		return "pares"
	case Game:
		return "juego"
	case Point:
		return "punto"
	default:
		return "?"
	}
}

const (
	// LowConstant is subtracted from so that the lowest card gives the highest Low score.
	LowConstant = 11

	// GameThreshold is the minimum sum for a hand to have game.
	GameThreshold = 31

	// NotEligible is the score of a hand that cannot take part in a category.
	NotEligible = 0
)

// gameRanks ranks game totals: 31 is best, then 32, then 40 down to 33.
var gameRanks = map[int]int{
	31: 10,
	32: 9,
	40: 8,
	39: 7,
	38: 6,
	37: 5,
	36: 4,
	35: 3,
	34: 2,
	33: 1,
}

// Sum returns the total strength of the hand. This is the point total.
func Sum(h Hand) int {
	total := 0
	for _, c := range h {
		total += c.Strength()
	}
	return total
}

// HighScore is the strongest card in the hand.
func HighScore(h Hand) int {
	best := NotEligible
	for _, c := range h {
		best = max(best, c.Strength())
	}
	return best
}

// LowScore is LowConstant minus the weakest card, so lower hands score higher.
func LowScore(h Hand) int {
	if len(h) == 0 {
		return NotEligible
	}
	lowest := h[0].Strength()
	for _, c := range h[1:] {
		lowest = min(lowest, c.Strength())
	}
	return LowConstant - lowest
}

// HasGame reports whether the hand sums to at least 31.
func HasGame(h Hand) bool {
	return Sum(h) >= GameThreshold
}

// GameScore ranks a hand with game. Hands without game score NotEligible.
func GameScore(h Hand) int {
	return GameRank(Sum(h))
}

// GameRank ranks a game total: 31 scores 10, 33 scores 1, anything under 31 scores 0.
func GameRank(total int) int {
	return gameRanks[total]
}

// PointScore is the sum of a hand without game. Hands with game score NotEligible.
func PointScore(h Hand) int {
	total := Sum(h)
	if total >= GameThreshold {
		return NotEligible
	}
	return total
}

// PairsKind classifies the repeated values in a hand.
type PairsKind uint8

const (
	NoPairs PairsKind = iota
	Par               // pares: one pair
	Medias            // three of a kind
	Duples            // two pairs, or four of a kind
)

func (k PairsKind) String() string {
	switch k {
	case NoPairs:
		return "no pares"
	case Par:
		return "pares"
	case Medias:
		return "medias"
	case Duples:
		return "duples"
	default:
		return "?"
	}
}

// PairsHand describes the pairs held. High and Low are the strength values
// of the groups; Low is only set for duples.
type PairsHand struct {
	Kind PairsKind
	High int
	Low  int
}

func (p PairsHand) String() string {
	switch p.Kind {
	case NoPairs:
		return p.Kind.String()
	case Duples:
		return fmt.Sprintf("%s %d/%d", p.Kind, p.High, p.Low)
	default:
		return fmt.Sprintf("%s %d", p.Kind, p.High)
	}
}

// Score orders pairs hands: every duples beats every medias, which beats every par.
func (p PairsHand) Score() int {
	if p.Kind == NoPairs {
		return NotEligible
	}
	return int(p.Kind)*1000 + p.High*16 + p.Low
}

// PairsOf groups the hand by strength value.
func PairsOf(h Hand) PairsHand {
	counts := make(map[int]int, len(h))
	for _, c := range h {
		counts[c.Strength()]++
	}

	var groups []int // values appearing at least twice
	var trips, quads int
	for v, n := range counts {
		switch {
		case n >= 4:
			quads = v
		case n == 3:
			trips = v
		case n == 2:
			groups = append(groups, v)
		}
	}

	switch {
	case quads > 0:
		return PairsHand{Kind: Duples, High: quads, Low: quads}
	case len(groups) == 2:
		hi, lo := groups[0], groups[1]
		if lo > hi {
			hi, lo = lo, hi
		}
		return PairsHand{Kind: Duples, High: hi, Low: lo}
	case trips > 0:
		return PairsHand{Kind: Medias, High: trips}
	case len(groups) == 1:
		return PairsHand{Kind: Par, High: groups[0]}
	default:
		return PairsHand{Kind: NoPairs}
	}
}

// HasPairs reports whether any strength value repeats.
func HasPairs(h Hand) bool {
	return PairsOf(h).Kind != NoPairs
}

// PairsScore is PairsOf(h).Score().
func PairsScore(h Hand) int {
	return PairsOf(h).Score()
}

// Eligible reports whether the hand takes part in the category.
func Eligible(c Category, h Hand) bool {
	switch c {
	case Pairs:
		return HasPairs(h)
	case Game:
		return HasGame(h)
	case Point:
		return !HasGame(h)
	default:
		return len(h) > 0
	}
}

// Score evaluates the hand for a category. Higher is better in every
// category; ineligible hands score NotEligible.
func Score(c Category, h Hand) int {
	switch c {
	case High:
		return HighScore(h)
	case Low:
		return LowScore(h)
	case Pairs:
		return PairsScore(h)
	case Game:
		return GameScore(h)
	case Point:
		return PointScore(h)
	default:
		return NotEligible
	}
}
