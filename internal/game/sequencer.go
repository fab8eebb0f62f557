package game

import (
	"fmt"

	"github.com/lox/musforbots/mus"
)

func (s *State) deal(deck *mus.Deck) error {
	if deck == nil || deck.Len() != mus.DeckSize {
		return fmt.Errorf("%w: deal needs a full deck", ErrInvalidAction)
	}
	switch {
	case s.Phase == PhaseFinished:
		return fmt.Errorf("%w: match is over, reset first", ErrInvalidAction)
	case s.Phase == PhaseScoring:
		s.rotateMano()
		s.Round++
	}
	s.dealFrom(deck)
	return nil
}

// dealFrom gives every player four cards, mano first, and opens the mus round.
func (s *State) dealFrom(deck *mus.Deck) {
	s.Deck = deck.Clone()
	mano := s.ManoSeat()
	hands := s.Deck.Deal(NumPlayers)
	for k, h := range hands {
		p := &s.Players[(mano+k)%NumPlayers]
		p.Hand = h
		p.refresh()
		if len(p.Hand) != mus.HandSize {
			panic(fmt.Sprintf("game: dealt %d cards to %s", len(p.Hand), p.ID))
		}
	}
	s.checkInvariants()

	s.Phase = PhaseMus
	s.SubPhase = SubMusDecision
	s.Current = s.Players[mano].ID
	s.MusCount = 0
	s.MusVotes = 0
	s.Bet = ActiveBid{}
	s.Passed = nil
	s.History = nil
	s.Results = nil
	s.sayf("", EntrySystem, "Ronda %d, mano %s", s.Round, s.Players[mano].Name)
}

func (s *State) rotateMano() {
	mano := s.ManoSeat()
	s.Players[mano].Mano = false
	s.Players[(mano+1)%NumPlayers].Mano = true
}

func (s *State) musDecision(id PlayerID, choice MusChoice) error {
	if err := s.expect(id, PhaseMus, SubMusDecision); err != nil {
		return err
	}
	seat := s.seatOf(id)
	name := s.Players[seat].Name
	switch choice {
	case Cut:
		s.say(id, EntryMus, name+": corto")
		s.MusVotes = 0
		s.enterPhase(PhaseHigh)
	case Mus:
		s.say(id, EntryMus, name+": mus")
		s.MusVotes++
		if s.MusVotes == NumPlayers {
			s.MusVotes = 0
			s.SubPhase = SubDiscarding
			s.Current = s.Players[s.ManoSeat()].ID
			return nil
		}
		s.Current = s.Players[(seat+1)%NumPlayers].ID
	default:
		return fmt.Errorf("%w: mus choice %d", ErrInvalidAction, choice)
	}
	return nil
}

func (s *State) discard(id PlayerID, indices []int) error {
	if err := s.expect(id, PhaseMus, SubDiscarding); err != nil {
		return err
	}
	seat := s.seatOf(id)
	p := &s.Players[seat]

	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(p.Hand) || drop[i] {
			return fmt.Errorf("%w: discard index %d", ErrInvalidAction, i)
		}
		drop[i] = true
	}

	kept := make(mus.Hand, 0, mus.HandSize)
	var thrown []mus.Card
	for i, c := range p.Hand {
		if drop[i] {
			thrown = append(thrown, c)
		} else {
			kept = append(kept, c)
		}
	}
	drawn := s.Deck.Draw(len(thrown))
	p.Hand = append(kept, drawn...)
	p.refresh()
	s.Deck.PutBottom(thrown...)

	if len(drawn) < len(thrown) {
		s.sayf(id, EntryDiscard, "%s descarta %d, quedan %d en el mazo", p.Name, len(thrown), s.Deck.Len())
	} else {
		s.sayf(id, EntryDiscard, "%s descarta %d", p.Name, len(thrown))
	}

	nextSeat := (seat + 1) % NumPlayers
	if nextSeat == s.ManoSeat() {
		s.MusCount++
		s.SubPhase = SubMusDecision
	}
	s.Current = s.Players[nextSeat].ID
	return nil
}

// enterPhase opens phase p, skipping forward past phases nobody can play.
func (s *State) enterPhase(p Phase) {
	for ; p <= PhasePoint; p++ {
		s.Phase = p
		s.Bet = ActiveBid{}
		s.Passed = nil

		if p == PhasePoint && s.anyoneHasGame() {
			continue
		}
		teams := s.eligibleTeams()
		if len(teams) == 0 {
			s.sayf("", EntryAnnounce, "Nadie juega %s", p)
			continue
		}
		if p == PhasePairs || p == PhaseGame {
			s.announce(p)
		}
		if len(teams) == 1 {
			if s.resolveUncontested(teams[0]) {
				return
			}
			continue
		}
		if p == PhasePairs || p == PhaseGame {
			s.SubPhase = SubAnnouncing
			s.Current = ""
			return
		}
		s.beginBetting()
		return
	}
	s.enterScoring()
}

func (s *State) endAnnouncement() error {
	if s.SubPhase != SubAnnouncing {
		return fmt.Errorf("%w: nothing to announce in %s/%s", ErrInvalidAction, s.Phase, s.SubPhase)
	}
	s.beginBetting()
	return nil
}

func (s *State) announce(p Phase) {
	for _, seat := range s.seatsFromMano() {
		pl := s.Players[seat]
		var text string
		switch {
		case p == PhasePairs && pl.HasPairs:
			text = "pares sí"
		case p == PhasePairs:
			text = "pares no"
		case pl.HasGame:
			text = "juego sí"
		default:
			text = "juego no"
		}
		s.say(pl.ID, EntryAnnounce, pl.Name+": "+text)
	}
}

// advance moves past the current bidding phase.
func (s *State) advance() {
	if s.Phase >= PhasePoint {
		s.enterScoring()
		return
	}
	s.enterPhase(s.Phase + 1)
}

func (s *State) enterScoring() {
	s.Phase = PhaseScoring
	s.SubPhase = SubRevealing
	s.Current = ""
	s.Bet = ActiveBid{}
	s.Passed = nil
	for _, seat := range s.seatsFromMano() {
		p := s.Players[seat]
		s.sayf(p.ID, EntryReveal, "%s: %s", p.Name, p.Hand)
	}
	a, b := s.Ledger.Team(TeamA), s.Ledger.Team(TeamB)
	s.sayf("", EntryScore, "A %d+%d, B %d+%d", a.Markers, a.Raw, b.Markers, b.Raw)
}

// award pays units to team and closes the match if that reaches the target.
// It reports whether the match ended.
func (s *State) award(team Team, units int) bool {
	if !s.Ledger.Award(s.Rules, team, units) {
		return false
	}
	s.winMatch(team, false)
	return true
}

func (s *State) winMatch(team Team, allIn bool) {
	s.MatchOver = true
	s.MatchWinner = team
	s.WonByAllIn = allIn
	s.TournamentOver = s.Ledger.WinMatch(s.Rules, team)
	s.Phase = PhaseFinished
	s.SubPhase = SubRevealing
	s.Current = ""
	s.Bet = ActiveBid{}
	s.Passed = nil
	if s.TournamentOver {
		s.sayf("", EntryScore, "Equipo %s gana el torneo", team)
	} else {
		s.sayf("", EntryScore, "Equipo %s gana la partida", team)
	}
}

func (s *State) resetGame(deck *mus.Deck) error {
	if s.TournamentOver {
		return fmt.Errorf("%w: tournament is over", ErrInvalidAction)
	}
	s.Ledger.ResetMatch()
	s.restart()
	if s.MatchOver {
		s.rotateMano()
	}
	s.MatchOver = false
	s.WonByAllIn = false
	s.say("", EntrySystem, "Nueva partida")
	if deck != nil && deck.Len() == mus.DeckSize {
		s.dealFrom(deck)
	}
	return nil
}

func (s *State) resetTournament(deck *mus.Deck) {
	s.Ledger.Reset()
	s.restart()
	for i := range s.Players {
		s.Players[i].Mano = i == 0
	}
	s.MatchOver = false
	s.WonByAllIn = false
	s.TournamentOver = false
	s.MatchWinner = TeamA
	s.say("", EntrySystem, "Nuevo torneo")
	if deck != nil && deck.Len() == mus.DeckSize {
		s.dealFrom(deck)
	}
}

// restart clears the hand in progress and invalidates scheduled work.
func (s *State) restart() {
	s.Epoch++
	s.Round = 1
	s.Phase = PhaseMus
	s.SubPhase = SubDealing
	s.Current = ""
	s.MusCount = 0
	s.MusVotes = 0
	s.Bet = ActiveBid{}
	s.Passed = nil
	s.History = nil
	s.Results = nil
	s.Signal = CompanionSignal{}
	s.Deck = mus.NewDeck()
	for i := range s.Players {
		s.Players[i].Hand = nil
		s.Players[i].refresh()
	}
}

// seatsFromMano lists the seats in playing order for this hand.
func (s State) seatsFromMano() [NumPlayers]int {
	var out [NumPlayers]int
	mano := s.ManoSeat()
	for k := range out {
		out[k] = (mano + k) % NumPlayers
	}
	return out
}

func (s State) anyoneHasGame() bool {
	for _, p := range s.Players {
		if p.HasGame {
			return true
		}
	}
	return false
}

// eligibleTeams lists the teams with at least one eligible player in the
// current phase.
func (s State) eligibleTeams() []Team {
	var has [2]bool
	for _, p := range s.Players {
		if s.Eligible(p.ID) {
			has[p.Team] = true
		}
	}
	var out []Team
	for t, ok := range has {
		if ok {
			out = append(out, Team(t))
		}
	}
	return out
}
