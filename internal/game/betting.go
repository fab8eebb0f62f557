package game

import (
	"fmt"
	"slices"

	"github.com/lox/musforbots/mus"
)

// beginBetting hands the turn to the first eligible player from mano.
func (s *State) beginBetting() {
	s.SubPhase = SubBetting
	s.Bet = ActiveBid{}
	s.Passed = nil
	mano := s.ManoSeat()
	seat := mano
	if !s.Eligible(s.Players[mano].ID) {
		seat = s.nextEligible(mano, func(Player) bool { return true })
	}
	s.Current = s.Players[seat].ID
}

// nextEligible returns the next seat after from whose player is eligible in
// the current phase and satisfies ok.
func (s State) nextEligible(from int, ok func(Player) bool) int {
	return s.nextSeat(from, func(p Player) bool {
		return s.Eligible(p.ID) && ok(p)
	})
}

func (s *State) placeBid(id PlayerID, bid Bid) error {
	if !s.Phase.IsBidding() {
		if s.seatOf(id) < 0 {
			return fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
		}
		return fmt.Errorf("%w: no betting in %s", ErrInvalidAction, s.Phase)
	}
	if err := s.expect(id, s.Phase, SubBetting); err != nil {
		return err
	}
	if !IsValidBid(*s, bid) {
		return fmt.Errorf("%w: %v not allowed now", ErrInvalidAction, bid)
	}

	seat := s.seatOf(id)
	p := s.Players[seat]
	s.sayf(id, EntryBid, "%s: %s", p.Name, bid)

	switch b := bid.(type) {
	case Pass:
		s.record(id, BidPass)
		s.Passed = append(s.Passed, id)
		if s.allPassed() {
			s.resolvePassed()
			return nil
		}
		s.Current = s.Players[s.nextEligible(seat, func(q Player) bool {
			return !slices.Contains(s.Passed, q.ID)
		})].ID
	case Raise:
		if s.Bet.Awaiting {
			s.Bet.Amount += b.Amount
		} else {
			s.Bet.Amount = b.Amount
		}
		s.Bet.Kind = BidRaise
		s.propose(id, seat, BidRaise)
	case RaiseAgain:
		s.Bet.Amount += s.Rules.RaiseIncrement
		s.propose(id, seat, BidRaiseAgain)
	case AllIn:
		s.Bet.Kind = BidAllIn
		s.Bet.Amount = s.Rules.AllInStake
		s.propose(id, seat, BidAllIn)
	case Accept:
		s.record(id, BidAccept)
		s.resolveAccepted()
	case Decline:
		s.record(id, BidDecline)
		s.Bet.Declined = append(s.Bet.Declined, id)
		mate := s.nextEligible(seat, func(q Player) bool {
			return q.Team == p.Team && !slices.Contains(s.Bet.Declined, q.ID)
		})
		if mate >= 0 {
			s.Current = s.Players[mate].ID
			return nil
		}
		s.resolveDeclined()
	}
	return nil
}

// propose makes id the reference player of the bet and hands the response to
// the opposing team.
func (s *State) propose(id PlayerID, seat int, kind BidKind) {
	s.Bet.Proposer = id
	s.Bet.Awaiting = true
	s.Bet.Declined = nil
	s.record(id, kind)
	team := s.Players[seat].Team
	s.Current = s.Players[s.nextEligible(seat, func(q Player) bool {
		return q.Team != team
	})].ID
}

func (s *State) record(id PlayerID, kind BidKind) {
	s.History = append(s.History, BidRecord{Player: id, Phase: s.Phase, Kind: kind, Amount: s.Bet.Amount})
}

func (s State) allPassed() bool {
	for _, p := range s.Players {
		if s.Eligible(p.ID) && !slices.Contains(s.Passed, p.ID) {
			return false
		}
	}
	return true
}

func (s *State) resolvePassed() {
	winner, tie := s.phaseWinner()
	units := 0
	if !tie {
		units = s.passedReward(winner)
	}
	if s.settle(winner, tie, units, "en paso") {
		return
	}
	s.advance()
}

// resolveUncontested settles a phase where only team holds eligible hands.
// It reports whether the award ended the match.
func (s *State) resolveUncontested(team Team) bool {
	s.SubPhase = SubBetting
	s.Current = ""
	return s.settle(team, false, s.passedReward(team), "sin rival")
}

func (s *State) resolveAccepted() {
	winner, tie := s.phaseWinner()
	if s.Bet.Kind == BidAllIn {
		if tie {
			s.settle(winner, true, 0, "órdago empatado")
			s.advance()
			return
		}
		s.Results = append(s.Results, PhaseResult{Phase: s.Phase, Winner: winner, Reason: "órdago"})
		s.sayf("", EntryScore, "Equipo %s gana el órdago a %s", winner, s.Phase)
		s.winMatch(winner, true)
		return
	}
	units := 0
	if !tie {
		units = s.Bet.Amount + s.bonus(winner)
	}
	if s.settle(winner, tie, units, "querido") {
		return
	}
	s.advance()
}

func (s *State) resolveDeclined() {
	proposer, _ := s.Player(s.Bet.Proposer)
	if s.settle(proposer.Team, false, s.Rules.Deje, "no querido") {
		return
	}
	s.advance()
}

// settle records the phase result and pays the winner. It reports whether
// the match ended.
func (s *State) settle(team Team, tie bool, units int, reason string) bool {
	s.Results = append(s.Results, PhaseResult{Phase: s.Phase, Winner: team, Tie: tie, Units: units, Reason: reason})
	if tie {
		s.sayf("", EntryScore, "Empate a %s, no se cobra", s.Phase)
		return false
	}
	s.sayf("", EntryScore, "Equipo %s cobra %d a %s (%s)", team, units, s.Phase, reason)
	return s.award(team, units)
}

// phaseWinner compares the best eligible hand of each team in the current
// phase. Equal scores are a tie.
func (s State) phaseWinner() (Team, bool) {
	cat, _ := s.Phase.Category()
	best := [2]int{mus.NotEligible, mus.NotEligible}
	for _, p := range s.Players {
		if !mus.Eligible(cat, p.Hand) {
			continue
		}
		best[p.Team] = max(best[p.Team], mus.Score(cat, p.Hand))
	}
	switch {
	case best[TeamA] > best[TeamB]:
		return TeamA, false
	case best[TeamB] > best[TeamA]:
		return TeamB, false
	default:
		return TeamA, true
	}
}

func (s State) passedReward(team Team) int {
	if b := s.bonus(team); b > 0 {
		return b
	}
	return s.Rules.BaseReward
}

// bonus is the extra pay for pairs and game held by team's best hand. It is
// zero unless the table plays with category bonuses.
func (s State) bonus(team Team) int {
	if !s.Rules.CategoryBonuses {
		return 0
	}
	best := 0
	for _, p := range s.Players {
		if p.Team != team {
			continue
		}
		switch s.Phase {
		case PhasePairs:
			best = max(best, int(mus.PairsOf(p.Hand).Kind))
		case PhaseGame:
			switch {
			case mus.Sum(p.Hand) == mus.GameThreshold:
				best = max(best, 3)
			case p.HasGame:
				best = max(best, 2)
			}
		}
	}
	return best
}
