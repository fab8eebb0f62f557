package mus

import (
	"fmt"
	"strings"
)

// Suit is one of the four Spanish suits.
type Suit uint8

const (
	Oros Suit = iota
	Copas
	Espadas
	Bastos
)

// NumSuits is the number of suits in the deck.
const NumSuits = 4

// String returns the suit name.
func (s Suit) String() string {
	switch s {
	case Oros:
		return "oros"
	case Copas:
		return "copas"
	case Espadas:
		return "espadas"
	case Bastos:
		return "bastos"
	default:
		return "?"
	}
}

// Symbol returns the single-character notation used by ParseCard.
func (s Suit) Symbol() byte {
	switch s {
	case Oros:
		return 'o'
	case Copas:
		return 'c'
	case Espadas:
		return 'e'
	case Bastos:
		return 'b'
	default:
		return '?'
	}
}

// Rank is the printed number of a card. Eights and nines are not part of the deck.
type Rank uint8

const (
	As      Rank = 1
	Dos     Rank = 2
	Tres    Rank = 3
	Cuatro  Rank = 4
	Cinco   Rank = 5
	Seis    Rank = 6
	Siete   Rank = 7
	Sota    Rank = 10
	Caballo Rank = 11
	Rey     Rank = 12
)

// Ranks lists the ten ranks of the deck in ascending printed order.
var Ranks = [...]Rank{As, Dos, Tres, Cuatro, Cinco, Seis, Siete, Sota, Caballo, Rey}

// Valid reports whether r is a rank present in the 40-card deck.
func (r Rank) Valid() bool {
	return (r >= As && r <= Siete) || (r >= Sota && r <= Rey)
}

// Strength is the game value of the rank: aces and twos count 1, threes and
// figures count 10, everything else counts its face.
func (r Rank) Strength() int {
	switch {
	case r == As || r == Dos:
		return 1
	case r == Tres || r >= Sota:
		return 10
	default:
		return int(r)
	}
}

// Name returns the display name of the rank.
func (r Rank) Name() string {
	switch r {
	case As:
		return "As"
	case Sota:
		return "Sota"
	case Caballo:
		return "Caballo"
	case Rey:
		return "Rey"
	default:
		if r.Valid() {
			return fmt.Sprintf("%d", r)
		}
		return "?"
	}
}

// Symbol returns the single-character notation used by ParseCard.
func (r Rank) Symbol() byte {
	switch r {
	case As:
		return 'A'
	case Sota:
		return 'S'
	case Caballo:
		return 'C'
	case Rey:
		return 'R'
	default:
		if r.Valid() {
			return byte('0' + r)
		}
		return '?'
	}
}

// Card is a single card of the Spanish deck.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a card.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}

// Strength returns the game value of the card. See Rank.Strength.
func (c Card) Strength() int {
	return c.Rank.Strength()
}

// Name returns the display name, e.g. "Rey de copas".
func (c Card) Name() string {
	return c.Rank.Name() + " de " + c.Suit.String()
}

// String returns the short notation, e.g. "Rc".
func (c Card) String() string {
	return string([]byte{c.Rank.Symbol(), c.Suit.Symbol()})
}

// Valid reports whether the card exists in the deck.
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit < NumSuits
}

// ParseCard parses the short notation produced by Card.String.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: want rank and suit", s)
	}

	var rank Rank
	switch r := s[0]; {
	case r == 'A' || r == 'a':
		rank = As
	case r >= '2' && r <= '7':
		rank = Rank(r - '0')
	case r == 'S' || r == 's':
		rank = Sota
	case r == 'C':
		rank = Caballo
	case r == 'R' || r == 'r':
		rank = Rey
	default:
		return Card{}, fmt.Errorf("invalid rank %q in card %q", r, s)
	}

	var suit Suit
	switch s[1] {
	case 'o':
		suit = Oros
	case 'c':
		suit = Copas
	case 'e':
		suit = Espadas
	case 'b':
		suit = Bastos
	default:
		return Card{}, fmt.Errorf("invalid suit %q in card %q", s[1], s)
	}

	return NewCard(rank, suit), nil
}

// MustParseCard is ParseCard for literals in tests and tables; it panics on bad input.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hand is the cards held by one player.
type Hand []Card

// ParseHand parses a space-separated list of cards, e.g. "Ao Ac Re Rb".
func ParseHand(s string) (Hand, error) {
	fields := strings.Fields(s)
	hand := make(Hand, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		hand = append(hand, c)
	}
	return hand, nil
}

// MustParseHand is ParseHand that panics on bad input.
func MustParseHand(s string) Hand {
	h, err := ParseHand(s)
	if err != nil {
		panic(err)
	}
	return h
}

// Clone returns a copy that shares no storage with h.
func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

// String returns the cards in short notation separated by spaces.
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
