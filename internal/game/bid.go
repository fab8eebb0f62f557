package game

import "fmt"

// BidKind names the bid vocabulary.
type BidKind uint8

const (
	BidPass BidKind = iota
	BidRaise
	BidRaiseAgain
	BidAllIn
	BidAccept
	BidDecline
)

func (k BidKind) String() string {
	return [...]string{"pass", "raise", "raise-again", "all-in", "accept", "decline"}[k]
}

// Bid is a betting action. The concrete types are Pass, Raise, RaiseAgain,
// AllIn, Accept and Decline.
type Bid interface {
	Kind() BidKind
	fmt.Stringer
	isBid()
}

// Pass declines to open the betting.
type Pass struct{}

// Raise opens the betting with Amount, or raises a pending bid by Amount.
type Raise struct {
	Amount int
}

// RaiseAgain answers a pending bid by adding the fixed raise increment.
type RaiseAgain struct{}

// AllIn stakes the whole match (órdago).
type AllIn struct{}

// Accept takes a pending bid.
type Accept struct{}

// Decline refuses a pending bid.
type Decline struct{}

func (Pass) Kind() BidKind       { return BidPass }
func (Raise) Kind() BidKind      { return BidRaise }
func (RaiseAgain) Kind() BidKind { return BidRaiseAgain }
func (AllIn) Kind() BidKind      { return BidAllIn }
func (Accept) Kind() BidKind     { return BidAccept }
func (Decline) Kind() BidKind    { return BidDecline }

func (Pass) String() string       { return "paso" }
func (r Raise) String() string    { return fmt.Sprintf("envido %d", r.Amount) }
func (RaiseAgain) String() string { return "echo más" }
func (AllIn) String() string      { return "órdago" }
func (Accept) String() string     { return "quiero" }
func (Decline) String() string    { return "no quiero" }

func (Pass) isBid()       {}
func (Raise) isBid()      {}
func (RaiseAgain) isBid() {}
func (AllIn) isBid()      {}
func (Accept) isBid()     {}
func (Decline) isBid()    {}

// ValidBid is a bid the current player may legally make. Raises carry the
// range of amounts that keeps the stake below the all-in stake.
type ValidBid struct {
	Kind      BidKind
	MinAmount int // for raises
	MaxAmount int // for raises
}

// ValidBids returns the bids open to the current player. It is empty outside
// the betting sub-phase. Once no raise fits under the all-in stake, the
// all-in is the only way up.
func ValidBids(s State) []ValidBid {
	if s.SubPhase != SubBetting || !s.Phase.IsBidding() || s.Current == "" {
		return nil
	}
	staked := 0
	if s.Bet.Awaiting {
		staked = s.Bet.Amount
	}
	ceiling := s.Rules.AllInStake - 1 - staked
	raise := ValidBid{Kind: BidRaise, MinAmount: s.Rules.MinRaise, MaxAmount: ceiling}
	canRaise := ceiling >= s.Rules.MinRaise

	if !s.Bet.Awaiting {
		valid := []ValidBid{{Kind: BidPass}}
		if canRaise {
			valid = append(valid, raise)
		}
		return append(valid, ValidBid{Kind: BidAllIn})
	}
	valid := []ValidBid{{Kind: BidAccept}, {Kind: BidDecline}}
	if s.Bet.Kind != BidAllIn {
		if canRaise {
			valid = append(valid, raise)
		}
		if s.Rules.RaiseIncrement <= ceiling {
			valid = append(valid, ValidBid{Kind: BidRaiseAgain})
		}
		valid = append(valid, ValidBid{Kind: BidAllIn})
	}
	return valid
}

// IsValidBid reports whether b is among the bids open to the current player.
func IsValidBid(s State, b Bid) bool {
	if b == nil {
		return false
	}
	for _, v := range ValidBids(s) {
		if v.Kind != b.Kind() {
			continue
		}
		if r, ok := b.(Raise); ok && (r.Amount < v.MinAmount || r.Amount > v.MaxAmount) {
			return false
		}
		return true
	}
	return false
}

// ActiveBid is the bid on the table in the current phase. Kind is BidPass
// when nothing has been bid.
type ActiveBid struct {
	Kind     BidKind // BidPass, BidRaise or BidAllIn
	Amount   int
	Proposer PlayerID // reference player whose team collects a deje
	Awaiting bool
	Declined []PlayerID // responders who declined so far
}

// Active reports whether a bid has been made.
func (b ActiveBid) Active() bool {
	return b.Kind != BidPass
}

func (b ActiveBid) clone() ActiveBid {
	b.Declined = append([]PlayerID(nil), b.Declined...)
	return b
}

// BidRecord is one entry of the bid history.
type BidRecord struct {
	Player PlayerID
	Phase  Phase
	Kind   BidKind
	Amount int // stake on the table after the bid
}
