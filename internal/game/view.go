package game

import "github.com/lox/musforbots/mus"

// Seat is the public face of another player: what anyone at the table can see.
type Seat struct {
	ID    PlayerID
	Name  string
	Team  Team
	Seat  int
	Mano  bool
	IsBot bool
	Cards int

	// Set once the pairs or game announcement has been made this hand.
	PairsAnnounced bool
	HasPairs       bool
	GameAnnounced  bool
	HasGame        bool
}

// View is everything one player may know when deciding. It never carries
// another player's cards.
type View struct {
	Self     Player
	Seats    [NumPlayers]Seat
	Phase    Phase
	SubPhase SubPhase
	Current  PlayerID
	Round    int
	MusCount int
	Rules    Rules
	Ledger   Ledger
	Bet      ActiveBid
	History  []BidRecord
	Eligible bool
	Valid    []ValidBid

	// Signal is the partner's companion signal, if one is showing.
	Signal Signal
}

// Team returns the viewer's team.
func (v View) Team() Team { return v.Self.Team }

// Teammate returns the public seat of the viewer's partner.
func (v View) Teammate() Seat {
	for _, s := range v.Seats {
		if s.Team == v.Self.Team && s.ID != v.Self.ID {
			return s
		}
	}
	return Seat{}
}

// Score evaluates the viewer's own hand in c.
func (v View) Score(c mus.Category) int {
	return mus.Score(c, v.Self.Hand)
}

// ViewFor builds the view of the player id.
func ViewFor(s State, id PlayerID) (View, bool) {
	self, ok := s.Player(id)
	if !ok {
		return View{}, false
	}
	v := View{
		Self:     self.clone(),
		Phase:    s.Phase,
		SubPhase: s.SubPhase,
		Current:  s.Current,
		Round:    s.Round,
		MusCount: s.MusCount,
		Rules:    s.Rules,
		Ledger:   s.Ledger,
		Bet:      s.Bet.clone(),
		History:  append([]BidRecord(nil), s.History...),
		Eligible: s.Eligible(id),
	}
	if s.Current == id {
		v.Valid = ValidBids(s)
	}
	pairsOut := s.Phase >= PhasePairs && s.Phase != PhaseFinished
	gameOut := s.Phase >= PhaseGame && s.Phase != PhaseFinished
	for i, p := range s.Players {
		v.Seats[i] = Seat{
			ID:             p.ID,
			Name:           p.Name,
			Team:           p.Team,
			Seat:           p.Seat,
			Mano:           p.Mano,
			IsBot:          p.IsBot,
			Cards:          len(p.Hand),
			PairsAnnounced: pairsOut,
			GameAnnounced:  gameOut,
		}
		if pairsOut {
			v.Seats[i].HasPairs = p.HasPairs
		}
		if gameOut {
			v.Seats[i].HasGame = p.HasGame
		}
	}
	if sig := s.Signal; sig.Value != SignalNone && sig.Team == self.Team && sig.From != id {
		v.Signal = sig.Value
	}
	return v, true
}

// Agent makes decisions for a seat. Implementations see only the View and
// answer with the same inputs a human gives.
type Agent interface {
	DecideMus(v View) MusChoice
	ChooseDiscards(v View) []int
	DecideBid(v View) Bid
}
