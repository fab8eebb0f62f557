package game

import "github.com/lox/musforbots/mus"

// PlayerID identifies a seated player.
type PlayerID string

// NumPlayers is the number of seats at a Mus table.
const NumPlayers = 4

// Team is one of the two partnerships.
type Team uint8

const (
	TeamA Team = iota
	TeamB
)

func (t Team) String() string {
	return [...]string{"A", "B"}[t]
}

// Other returns the opposing team.
func (t Team) Other() Team {
	return 1 - t
}

// Phase is the stage of a hand.
type Phase uint8

const (
	PhaseMus Phase = iota
	PhaseHigh
	PhaseLow
	PhasePairs
	PhaseGame
	PhasePoint
	PhaseScoring
	PhaseFinished
)

func (p Phase) String() string {
	return [...]string{"mus", "grande", "chica", "pares", "juego", "punto", "scoring", "finished"}[p]
}

// Category returns the hand category bid on in p. Only the five bidding
// phases have one.
func (p Phase) Category() (mus.Category, bool) {
	switch p {
	case PhaseHigh:
		return mus.High, true
	case PhaseLow:
		return mus.Low, true
	case PhasePairs:
		return mus.Pairs, true
	case PhaseGame:
		return mus.Game, true
	case PhasePoint:
		return mus.Point, true
	default:
		return 0, false
	}
}

// IsBidding reports whether p is one of the five bidding phases.
func (p Phase) IsBidding() bool {
	_, ok := p.Category()
	return ok
}

// SubPhase is the step within a phase.
type SubPhase uint8

const (
	SubDealing SubPhase = iota
	SubMusDecision
	SubDiscarding
	SubAnnouncing
	SubBetting
	SubRevealing
)

func (s SubPhase) String() string {
	return [...]string{"dealing", "mus-decision", "discarding", "announcing", "betting", "revealing"}[s]
}

// MusChoice is a player's answer in the mus round.
type MusChoice uint8

const (
	// Mus asks to discard and redraw.
	Mus MusChoice = iota
	// Cut locks the hands in and starts the bidding.
	Cut
)

func (c MusChoice) String() string {
	return [...]string{"mus", "cut"}[c]
}

// Signal is a companion hint about hand quality.
type Signal uint8

const (
	SignalNone Signal = iota
	SignalGood
	SignalMedium
	SignalBad
)

func (s Signal) String() string {
	return [...]string{"none", "good", "medium", "bad"}[s]
}

// Word is the table-talk name of the signal.
func (s Signal) Word() string {
	return [...]string{"", "buenas", "regulares", "malas"}[s]
}
