package game

import (
	"fmt"

	"github.com/lox/musforbots/mus"
)

// Action is an input to Apply. The concrete types are Deal, MusDecision,
// Discard, PlaceBid, SendSignal, ClearSignal, EndAnnouncement, ResetGame and
// ResetTournament.
type Action interface {
	isAction()
}

// Deal shuffles in a fresh deck and deals a new hand. Dealing from the
// scoring phase passes mano to the next seat.
type Deal struct {
	Deck *mus.Deck
}

// MusDecision answers the mus round.
type MusDecision struct {
	Player PlayerID
	Choice MusChoice
}

// Discard replaces the cards at Indices with cards from the deck.
type Discard struct {
	Player  PlayerID
	Indices []int
}

// PlaceBid makes a bid in the current bidding phase.
type PlaceBid struct {
	Player PlayerID
	Bid    Bid
}

// SendSignal shows a hint to the sender's partner. Only human players signal.
type SendSignal struct {
	Player PlayerID
	Value  Signal
}

// ClearSignal expires the signal with sequence Seq. Stale sequences are rejected.
type ClearSignal struct {
	Seq int
}

// EndAnnouncement closes the pairs or game announcement and opens the betting.
type EndAnnouncement struct{}

// ResetGame starts a new match and keeps the tournament tally. A nil Deck
// leaves the table waiting for a Deal.
type ResetGame struct {
	Deck *mus.Deck
}

// ResetTournament clears all scores and starts over. A nil Deck leaves the
// table waiting for a Deal.
type ResetTournament struct {
	Deck *mus.Deck
}

func (Deal) isAction()            {}
func (MusDecision) isAction()     {}
func (Discard) isAction()         {}
func (PlaceBid) isAction()        {}
func (SendSignal) isAction()      {}
func (ClearSignal) isAction()     {}
func (EndAnnouncement) isAction() {}
func (ResetGame) isAction()       {}
func (ResetTournament) isAction() {}

// Apply returns the state that results from applying a to s. The input state
// is never modified. Rejected actions return s unchanged together with an
// error wrapping ErrOutOfTurn, ErrInvalidAction or ErrUnknownPlayer.
func Apply(s State, a Action) (State, error) {
	next := s.Clone()

	var err error
	turn := true
	switch a := a.(type) {
	case Deal:
		err = next.deal(a.Deck)
	case MusDecision:
		err = next.musDecision(a.Player, a.Choice)
	case Discard:
		err = next.discard(a.Player, a.Indices)
	case PlaceBid:
		err = next.placeBid(a.Player, a.Bid)
	case SendSignal:
		err = next.sendSignal(a.Player, a.Value)
		turn = false
	case ClearSignal:
		err = next.clearSignal(a.Seq)
		turn = false
	case EndAnnouncement:
		err = next.endAnnouncement()
	case ResetGame:
		err = next.resetGame(a.Deck)
	case ResetTournament:
		next.resetTournament(a.Deck)
	default:
		err = fmt.Errorf("%w: unsupported action %T", ErrInvalidAction, a)
	}
	if err != nil {
		return s, err
	}

	next.Version++
	if turn {
		next.Turn++
	}
	return next, nil
}

// expect checks that id is seated and is the player to act in phase/sub.
func (s *State) expect(id PlayerID, phase Phase, sub SubPhase) error {
	if s.seatOf(id) < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
	}
	if s.Phase != phase || s.SubPhase != sub {
		return fmt.Errorf("%w: %s/%s, want %s/%s", ErrInvalidAction, s.Phase, s.SubPhase, phase, sub)
	}
	if s.Current != id {
		return fmt.Errorf("%w: %s acted, %s to act", ErrOutOfTurn, id, s.Current)
	}
	return nil
}

func (s *State) sendSignal(id PlayerID, value Signal) error {
	i := s.seatOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
	}
	p := s.Players[i]
	switch {
	case p.IsBot:
		return fmt.Errorf("%w: bots do not signal", ErrInvalidAction)
	case value == SignalNone || value > SignalBad:
		return fmt.Errorf("%w: signal %d", ErrInvalidAction, value)
	case s.Phase == PhaseFinished:
		return fmt.Errorf("%w: match is over", ErrInvalidAction)
	}
	s.SignalSeq++
	s.Signal = CompanionSignal{From: id, Team: p.Team, Value: value, Seq: s.SignalSeq}
	s.sayf(id, EntrySignal, "%s: %s", p.Name, value.Word())
	return nil
}

func (s *State) clearSignal(seq int) error {
	if s.Signal.Value == SignalNone || s.Signal.Seq != seq {
		return fmt.Errorf("%w: signal %d already gone", ErrInvalidAction, seq)
	}
	s.Signal = CompanionSignal{}
	return nil
}
