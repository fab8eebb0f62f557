// Package bot implements personality-driven Mus players. An Agent reads a
// game.View and answers with the same mus, discard and bid decisions a human
// would make.
package bot

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// MaxTrait is the upper bound of every trait; zero is the lower bound.
const MaxTrait = 10

// Traits is a personality profile. Each trait runs from 0 to MaxTrait.
type Traits struct {
	Boldness      int `hcl:"boldness,optional"`        // appetite for raises and all-ins
	Bluffing      int `hcl:"bluffing,optional"`        // chance of inflating a weak hand
	Luck          int `hcl:"luck,optional"`            // upward noise on hand value
	CutTendency   int `hcl:"cut_tendency,optional"`    // preference for cutting the mus
	SignalReading int `hcl:"signal_reading,optional"`  // attention paid to partner signals
	Deliberation  int `hcl:"deliberation,optional"`    // less noise when high
	Fairness      int `hcl:"fairness,optional"`        // restraint on bluffed all-ins
	HighPairsGame int `hcl:"high_pairs_game,optional"` // aggression in grande, pares, juego and punto
	Low           int `hcl:"low,optional"`             // aggression in chica
}

// Validate checks every trait is in range.
func (t Traits) Validate() error {
	for _, f := range t.fields() {
		if f.value < 0 || f.value > MaxTrait {
			return fmt.Errorf("trait %s must be between 0 and %d, got %d", f.name, MaxTrait, f.value)
		}
	}
	return nil
}

type traitField struct {
	name  string
	value int
}

func (t Traits) fields() []traitField {
	return []traitField{
		{"boldness", t.Boldness},
		{"bluffing", t.Bluffing},
		{"luck", t.Luck},
		{"cut_tendency", t.CutTendency},
		{"signal_reading", t.SignalReading},
		{"deliberation", t.Deliberation},
		{"fairness", t.Fairness},
		{"high_pairs_game", t.HighPairsGame},
		{"low", t.Low},
	}
}

// Wildcard is the preset whose traits are drawn at random for each seat.
const Wildcard = "wildcard"

var presets = map[string]Traits{
	"reckless": {Boldness: 8, Bluffing: 6, Luck: 5, CutTendency: 3, SignalReading: 2, Deliberation: 2, Fairness: 3, HighPairsGame: 6, Low: 4},
	"prudent":  {Boldness: 5, Bluffing: 3, Luck: 6, CutTendency: 9, SignalReading: 8, Deliberation: 9, Fairness: 9, HighPairsGame: 8, Low: 3},
	"bluffer":  {Boldness: 9, Bluffing: 8, Luck: 6, CutTendency: 4, SignalReading: 5, Deliberation: 4, Fairness: 2, HighPairsGame: 7, Low: 4},
	"steady":   {Boldness: 6, Bluffing: 3, Luck: 6, CutTendency: 6, SignalReading: 5, Deliberation: 6, Fairness: 7, HighPairsGame: 6, Low: 5},
	"lucky":    {Boldness: 7, Bluffing: 4, Luck: 9, CutTendency: 6, SignalReading: 5, Deliberation: 6, Fairness: 10, HighPairsGame: 8, Low: 2},
	"daring":   {Boldness: 9, Bluffing: 9, Luck: 7, CutTendency: 7, SignalReading: 4, Deliberation: 3, Fairness: 5, HighPairsGame: 9, Low: 1},
	"careful":  {Boldness: 4, Bluffing: 2, Luck: 4, CutTendency: 8, SignalReading: 7, Deliberation: 8, Fairness: 10, HighPairsGame: 7, Low: 3},
	"watcher":  {Boldness: 5, Bluffing: 4, Luck: 5, CutTendency: 9, SignalReading: 10, Deliberation: 7, Fairness: 9, HighPairsGame: 8, Low: 4},
}

// PresetNames lists the known presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets)+1)
	for name := range presets {
		names = append(names, name)
	}
	names = append(names, Wildcard)
	slices.Sort(names)
	return names
}

// Preset returns the traits of a named preset. The wildcard preset draws
// each trait from rng.
func Preset(name string, rng *rand.Rand) (Traits, bool) {
	if name == Wildcard {
		return RandomTraits(rng), true
	}
	t, ok := presets[name]
	return t, ok
}

// RandomTraits draws every trait uniformly from 1 to MaxTrait.
func RandomTraits(rng *rand.Rand) Traits {
	roll := func() int { return 1 + rng.IntN(MaxTrait) }
	return Traits{
		Boldness:      roll(),
		Bluffing:      roll(),
		Luck:          roll(),
		CutTendency:   roll(),
		SignalReading: roll(),
		Deliberation:  roll(),
		Fairness:      roll(),
		HighPairsGame: roll(),
		Low:           roll(),
	}
}
