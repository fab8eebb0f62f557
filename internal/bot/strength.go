package bot

import "github.com/lox/musforbots/mus"

// Strength rates a hand in a category on a 0 to 10 scale. Ineligible hands
// rate zero.
func Strength(c mus.Category, h mus.Hand) float64 {
	if !mus.Eligible(c, h) {
		return 0
	}
	switch c {
	case mus.High, mus.Low:
		return float64(mus.Score(c, h))
	case mus.Pairs:
		p := mus.PairsOf(h)
		base := map[mus.PairsKind]float64{mus.Par: 3, mus.Medias: 6, mus.Duples: 8}[p.Kind]
		return base + float64(p.High)/5
	case mus.Game:
		return float64(mus.GameScore(h))
	case mus.Point:
		return min(10, float64(mus.PointScore(h))/3)
	default:
		return 0
	}
}

// Overall blends the categories into one rating, weighting pairs and game
// the way the mus decision does.
func Overall(h mus.Hand) float64 {
	high := Strength(mus.High, h)
	low := Strength(mus.Low, h)
	pairs := Strength(mus.Pairs, h)
	game := Strength(mus.Game, h)
	return (high + low + 2*pairs + 3*game) / 7
}

// discardScores rates each card by how much it is worth keeping. Mid cards
// score badly; figures, aces and cards that pair up score well.
func discardScores(h mus.Hand) []int {
	counts := make(map[int]int, len(h))
	for _, c := range h {
		counts[c.Strength()]++
	}
	scores := make([]int, len(h))
	for i, c := range h {
		v := c.Strength()
		switch {
		case v >= 4 && v <= 6:
			scores[i] -= 2
		case v == 10, v == 1:
			scores[i] += 2
		}
		if n := counts[v]; n > 1 {
			scores[i] += n
		}
	}
	return scores
}
