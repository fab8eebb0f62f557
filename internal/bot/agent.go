package bot

import (
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/musforbots/internal/game"
	"github.com/lox/musforbots/mus"
)

// Agent plays a seat according to its traits. All randomness comes from the
// injected rng, so a seeded agent is reproducible.
type Agent struct {
	name   string
	traits Traits
	rng    *rand.Rand
	logger *log.Logger
}

var _ game.Agent = (*Agent)(nil)

// New creates an agent.
func New(name string, traits Traits, rng *rand.Rand, logger *log.Logger) *Agent {
	return &Agent{
		name:   name,
		traits: traits,
		rng:    rng,
		logger: logger.WithPrefix("bot").With("player", name),
	}
}

// Name returns the seat name the agent plays as.
func (a *Agent) Name() string { return a.name }

// Traits returns the agent's personality.
func (a *Agent) Traits() Traits { return a.traits }

// DecideMus chooses between asking for mus and cutting.
func (a *Agent) DecideMus(v game.View) game.MusChoice {
	h := v.Self.Hand
	overall := Overall(h)
	strongPairs := Strength(mus.Pairs, h) >= 6
	strongGame := Strength(mus.Game, h) >= 9
	strongEnds := Strength(mus.High, h) >= 10 && Strength(mus.Low, h) >= 10

	choice := game.Mus
	if strongPairs || strongGame || strongEnds {
		if a.rng.Float64() < 0.7 {
			choice = game.Cut
		}
	} else {
		chance := float64(a.traits.CutTendency)/20 + overall/20 + a.signalLean(v)*0.15
		chance += float64(v.MusCount) * 0.1
		chance += (a.rng.Float64() - 0.5) * 0.4
		if chance > 0.6 {
			choice = game.Cut
		}
	}

	a.logger.Debug("mus decision", "hand", h, "overall", overall, "choice", choice)
	return choice
}

// ChooseDiscards picks one to three cards to throw, worst first.
func (a *Agent) ChooseDiscards(v game.View) []int {
	h := v.Self.Hand
	scores := discardScores(h)
	order := make([]int, len(h))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int { return scores[x] - scores[y] })

	n := min(1+a.rng.IntN(3), len(order))
	out := slices.Clone(order[:n])
	slices.Sort(out)

	a.logger.Debug("discard", "hand", h, "indices", out)
	return out
}

// DecideBid chooses a bid from the view's valid bids.
func (a *Agent) DecideBid(v game.View) game.Bid {
	cat, ok := v.Phase.Category()
	if !ok || len(v.Valid) == 0 {
		return game.Pass{}
	}

	value := Strength(cat, v.Self.Hand)
	var b game.Bid
	if v.Bet.Awaiting {
		b = a.respond(v, cat, value)
	} else {
		b = a.open(v, cat, value)
	}

	a.logger.Debug("bid", "phase", v.Phase, "hand", v.Self.Hand, "value", value, "bid", b)
	return b
}

func (a *Agent) open(v game.View, cat mus.Category, value float64) game.Bid {
	value = a.luck(value)
	value, bluffed := a.bluff(value)
	value = a.think(value)
	value += a.aggression(cat) + a.signalLean(v)
	value += (a.rng.Float64() - 0.5) * 3

	allInChance := 0.3 + float64(a.traits.Boldness)*0.05
	if bluffed {
		allInChance *= 1 - float64(a.traits.Fairness)/(2*MaxTrait)
	}
	switch {
	case value >= 9 && a.rng.Float64() < allInChance:
		return a.choose(v, game.AllIn{})
	case value >= 6 && a.rng.Float64() < 0.8,
		value >= 3 && a.rng.Float64() < 0.3+float64(a.traits.Boldness)*0.03:
		amount := v.Rules.MinRaise
		if a.traits.Boldness >= 7 && value >= 8 {
			amount++
		}
		return a.choose(v, game.Raise{Amount: amount})
	default:
		return game.Pass{}
	}
}

func (a *Agent) respond(v game.View, cat mus.Category, value float64) game.Bid {
	value += float64(a.traits.Boldness-5) / 5
	value += a.aggression(cat) + a.signalLean(v)
	if a.rng.Float64() < float64(a.traits.Bluffing)/(3*MaxTrait) {
		value += 2
	}
	value += (a.rng.Float64() - 0.5) * 2

	if v.Bet.Kind == game.BidAllIn {
		accept := max(0, min(1, (value-5)/5))
		if a.rng.Float64() < accept {
			return game.Accept{}
		}
		return game.Decline{}
	}
	switch {
	case value >= 8 && a.rng.Float64() < 0.6:
		return a.choose(v, game.RaiseAgain{})
	case value >= 4 && a.rng.Float64() < 0.7:
		return game.Accept{}
	default:
		return game.Decline{}
	}
}

// choose returns want when it is a valid bid, falling back to the most
// cautious valid answer.
func (a *Agent) choose(v game.View, want game.Bid) game.Bid {
	for _, vb := range v.Valid {
		if vb.Kind != want.Kind() {
			continue
		}
		if r, ok := want.(game.Raise); ok {
			return game.Raise{Amount: min(max(r.Amount, vb.MinAmount), vb.MaxAmount)}
		}
		return want
	}
	if v.Bet.Awaiting {
		return game.Accept{}
	}
	return game.Pass{}
}

// luck adds upward noise scaled by the luck trait.
func (a *Agent) luck(value float64) float64 {
	return value + a.rng.Float64()*float64(a.traits.Luck)/5
}

// bluff sometimes inflates the value and reports whether it did.
func (a *Agent) bluff(value float64) (float64, bool) {
	if a.rng.Float64() < float64(a.traits.Bluffing)/MaxTrait {
		return value + a.rng.Float64()*2, true
	}
	return value, false
}

// think adds noise that shrinks as deliberation grows.
func (a *Agent) think(value float64) float64 {
	spread := float64(MaxTrait-a.traits.Deliberation) / MaxTrait
	return value + (a.rng.Float64()-0.5)*spread
}

func (a *Agent) aggression(cat mus.Category) float64 {
	trait := a.traits.HighPairsGame
	if cat == mus.Low {
		trait = a.traits.Low
	}
	return float64(trait-5) / 5
}

// signalLean is +1 or -1 when the agent notices a good or bad signal from
// its partner.
func (a *Agent) signalLean(v game.View) float64 {
	if v.Signal == game.SignalNone || a.rng.Float64() >= float64(a.traits.SignalReading)/MaxTrait {
		return 0
	}
	switch v.Signal {
	case game.SignalGood:
		return 1
	case game.SignalBad:
		return -1
	default:
		return 0
	}
}
