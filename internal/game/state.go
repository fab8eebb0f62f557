package game

import (
	"fmt"

	"github.com/lox/musforbots/mus"
)

// PhaseResult records how a bidding phase of the current hand was settled.
type PhaseResult struct {
	Phase  Phase
	Winner Team
	Tie    bool
	Units  int
	Reason string
}

// CompanionSignal is the hint currently shown between partners.
type CompanionSignal struct {
	From  PlayerID
	Team  Team
	Value Signal
	Seq   int
}

// State is the authoritative state of one table. Treat it as a value: use
// Apply to move it forward and Clone to hand it to someone else.
type State struct {
	MatchID string
	Rules   Rules
	Version uint64 // bumped on every applied action
	Turn    uint64 // bumped on every applied action except signals
	Epoch   uint64 // bumped on resets; stale scheduled work compares against it

	Phase    Phase
	SubPhase SubPhase
	Current  PlayerID // empty when nobody is to act
	Round    int
	MusCount int // completed discard rounds this hand
	MusVotes int // players who asked for mus in the current decision round

	Ledger  Ledger
	Bet     ActiveBid
	Passed  []PlayerID
	History []BidRecord
	Results []PhaseResult

	Log       Narrative
	Signal    CompanionSignal
	SignalSeq int

	MatchOver      bool
	MatchWinner    Team
	WonByAllIn     bool
	TournamentOver bool

	Deck    *mus.Deck
	Players [NumPlayers]Player
}

// NewState seats four players in order; the first one is mano. Teams must
// split two and two. It panics on a malformed table since that is a
// programming error in the caller.
func NewState(players []Player, rules Rules, matchID string) State {
	if len(players) != NumPlayers {
		panic(fmt.Sprintf("game: need %d players, got %d", NumPlayers, len(players)))
	}
	var perTeam [2]int
	seen := make(map[PlayerID]bool, NumPlayers)
	s := State{
		MatchID:  matchID,
		Rules:    rules,
		Phase:    PhaseMus,
		SubPhase: SubDealing,
		Round:    1,
		Log:      NewNarrative(rules.LogSize),
		Deck:     mus.NewDeck(),
	}
	for i, p := range players {
		if p.ID == "" || seen[p.ID] {
			panic(fmt.Sprintf("game: player %d has empty or duplicate id %q", i, p.ID))
		}
		seen[p.ID] = true
		if p.Team > TeamB {
			panic(fmt.Sprintf("game: player %s has invalid team %d", p.ID, p.Team))
		}
		perTeam[p.Team]++
		p.Seat = i
		p.Mano = i == 0
		p.Hand = nil
		s.Players[i] = p
	}
	if perTeam[TeamA] != 2 || perTeam[TeamB] != 2 {
		panic(fmt.Sprintf("game: teams must have two players each, got %d and %d", perTeam[TeamA], perTeam[TeamB]))
	}
	return s
}

// Clone returns a deep copy sharing no mutable storage with s.
func (s State) Clone() State {
	out := s
	out.Bet = s.Bet.clone()
	out.Passed = append([]PlayerID(nil), s.Passed...)
	out.History = append([]BidRecord(nil), s.History...)
	out.Results = append([]PhaseResult(nil), s.Results...)
	out.Log = s.Log.clone()
	out.Deck = s.Deck.Clone()
	for i := range s.Players {
		out.Players[i] = s.Players[i].clone()
	}
	return out
}

// Player returns the player with the given id.
func (s State) Player(id PlayerID) (Player, bool) {
	i := s.seatOf(id)
	if i < 0 {
		return Player{}, false
	}
	return s.Players[i], true
}

// CurrentPlayer returns the player to act, if any.
func (s State) CurrentPlayer() (Player, bool) {
	return s.Player(s.Current)
}

// ManoSeat returns the seat holding mano.
func (s State) ManoSeat() int {
	for i, p := range s.Players {
		if p.Mano {
			return i
		}
	}
	return 0
}

// Teammate returns the partner of id.
func (s State) Teammate(id PlayerID) (Player, bool) {
	p, ok := s.Player(id)
	if !ok {
		return Player{}, false
	}
	for _, q := range s.Players {
		if q.Team == p.Team && q.ID != id {
			return q, true
		}
	}
	return Player{}, false
}

// Eligible reports whether the player takes part in the current bidding phase.
func (s State) Eligible(id PlayerID) bool {
	p, ok := s.Player(id)
	if !ok {
		return false
	}
	cat, ok := s.Phase.Category()
	if !ok {
		return false
	}
	return mus.Eligible(cat, p.Hand)
}

// CardsInPlay counts the cards in the deck and in every hand.
func (s State) CardsInPlay() int {
	n := 0
	if s.Deck != nil {
		n = s.Deck.Len()
	}
	for _, p := range s.Players {
		n += len(p.Hand)
	}
	return n
}

func (s State) seatOf(id PlayerID) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *State) say(id PlayerID, kind EntryKind, text string) {
	s.Log.Add(id, kind, text)
}

func (s *State) sayf(id PlayerID, kind EntryKind, format string, args ...any) {
	s.Log.Add(id, kind, fmt.Sprintf(format, args...))
}

// nextSeat returns the first seat after from (exclusive) that satisfies ok,
// or -1 when none does.
func (s State) nextSeat(from int, ok func(Player) bool) int {
	for step := 1; step <= NumPlayers; step++ {
		i := (from + step) % NumPlayers
		if ok(s.Players[i]) {
			return i
		}
	}
	return -1
}

// checkInvariants panics if the deal broke card conservation. A failure here
// is an engine bug, not a user error.
func (s State) checkInvariants() {
	seen := make(map[mus.Card]bool, mus.DeckSize)
	count := 0
	mark := func(c mus.Card) {
		if seen[c] {
			panic(fmt.Sprintf("game: card %v appears twice", c))
		}
		seen[c] = true
		count++
	}
	for _, c := range s.Deck.Cards() {
		mark(c)
	}
	for _, p := range s.Players {
		for _, c := range p.Hand {
			mark(c)
		}
	}
	if count != mus.DeckSize {
		panic(fmt.Sprintf("game: %d cards in play, want %d", count, mus.DeckSize))
	}
}
