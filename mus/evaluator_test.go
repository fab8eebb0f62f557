package mus

import "testing"

func TestExampleHandFromRules(t *testing.T) {
	t.Parallel()
	hand := MustParseHand("Ao Ac Re Rc")

	if got := HighScore(hand); got != 10 {
		t.Errorf("expected high 10, got %d", got)
	}
	p := PairsOf(hand)
	if p.Kind != Duples || p.High != 10 || p.Low != 1 {
		t.Errorf("expected duples 10/1, got %v", p)
	}
}

func TestLowScore(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hand string
		want int
	}{
		{"Ao 4c 5e 6b", 10},
		{"2o 4c 5e 6b", 10},
		{"4o 5c 6e 7b", 7},
		{"Ro Rc Re 3b", 1},
	}
	for _, tt := range tests {
		if got := LowScore(MustParseHand(tt.hand)); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.hand, tt.want, got)
		}
	}
	if LowScore(nil) != NotEligible {
		t.Error("empty hand should not be eligible")
	}
}

func TestGameRanking(t *testing.T) {
	t.Parallel()
	// Best to worst.
	order := []int{31, 32, 40, 39, 38, 37, 36, 35, 34, 33}
	for i := 1; i < len(order); i++ {
		if GameRank(order[i-1]) <= GameRank(order[i]) {
			t.Errorf("expected %d to rank above %d", order[i-1], order[i])
		}
	}
	for total := 0; total < GameThreshold; total++ {
		if GameRank(total) != NotEligible {
			t.Errorf("total %d should not have game", total)
		}
	}

	h31 := MustParseHand("Ro Rc Se Ab")
	if Sum(h31) != 31 || GameScore(h31) != 10 {
		t.Errorf("expected 31 to be best game, sum=%d score=%d", Sum(h31), GameScore(h31))
	}
	h40 := MustParseHand("Ro Rc Re Rb")
	h32 := MustParseHand("Ro Rc 6e 6b")
	if GameScore(h40) >= GameScore(h32) {
		t.Error("40 should rank below 32")
	}
}

func TestPointOnlyWithoutGame(t *testing.T) {
	t.Parallel()
	if got := PointScore(MustParseHand("Ro Rc 7e 2b")); got != 28 {
		t.Errorf("expected point 28, got %d", got)
	}
	if got := PointScore(MustParseHand("Ro Rc Re Ab")); got != NotEligible {
		t.Errorf("hand with game should not play point, got %d", got)
	}
}

func TestPairsClassification(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hand string
		kind PairsKind
		high int
		low  int
	}{
		{"Ao 4c 5e 6b", NoPairs, 0, 0},
		{"Ao 2c 5e 6b", Par, 1, 0}, // ace and two share value 1
		{"Ro 3c 5e 6b", Par, 10, 0},
		{"Ro Rc Se 6b", Medias, 10, 0},
		{"7o 7c 4e 4b", Duples, 7, 4},
		{"Ro Sc Ce 3b", Duples, 10, 10},
	}
	for _, tt := range tests {
		got := PairsOf(MustParseHand(tt.hand))
		if got.Kind != tt.kind || got.High != tt.high || got.Low != tt.low {
			t.Errorf("%s: expected %v %d/%d, got %v", tt.hand, tt.kind, tt.high, tt.low, got)
		}
	}
}

func TestPairsCategoriesAreStrict(t *testing.T) {
	t.Parallel()
	var duples, medias, pares []int
	forEachHand(func(h Hand) {
		p := PairsOf(h)
		switch p.Kind {
		case Duples:
			duples = append(duples, p.Score())
		case Medias:
			medias = append(medias, p.Score())
		case Par:
			pares = append(pares, p.Score())
		}
	})

	if minOf(duples) <= maxOf(medias) {
		t.Errorf("weakest duples %d does not beat strongest medias %d", minOf(duples), maxOf(medias))
	}
	if minOf(medias) <= maxOf(pares) {
		t.Errorf("weakest medias %d does not beat strongest pares %d", minOf(medias), maxOf(pares))
	}
	if minOf(pares) <= NotEligible {
		t.Error("pares must score above NotEligible")
	}
}

func TestEvaluatorsAgreeWithEligibility(t *testing.T) {
	t.Parallel()
	forEachHand(func(h Hand) {
		sum := Sum(h)
		if HasGame(h) != (sum >= GameThreshold) {
			t.Fatalf("%v: game eligibility disagrees with sum %d", h, sum)
		}
		if HasGame(h) != (GameScore(h) > NotEligible) {
			t.Fatalf("%v: game score disagrees with eligibility", h)
		}
		if HasGame(h) == (PointScore(h) > NotEligible) {
			t.Fatalf("%v: point and game must be exclusive", h)
		}
		if HasPairs(h) != (PairsScore(h) > NotEligible) {
			t.Fatalf("%v: pairs score disagrees with eligibility", h)
		}
		if Score(Pairs, h) != Score(Pairs, h) {
			t.Fatalf("%v: evaluator is not deterministic", h)
		}
	})
}

// forEachHand visits every multiset of four ranks, using suits to keep cards distinct.
func forEachHand(fn func(Hand)) {
	n := len(Ranks)
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			for c := b; c < n; c++ {
				for d := c; d < n; d++ {
					fn(Hand{
						NewCard(Ranks[a], Oros),
						NewCard(Ranks[b], Copas),
						NewCard(Ranks[c], Espadas),
						NewCard(Ranks[d], Bastos),
					})
				}
			}
		}
	}
}

func minOf(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		m = min(m, x)
	}
	return m
}

func maxOf(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		m = max(m, x)
	}
	return m
}
