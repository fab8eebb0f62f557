package mus

import (
	"fmt"
	"math/rand/v2"
)

// DeckSize is the number of cards in a Spanish deck without eights and nines.
const DeckSize = 40

// HandSize is the number of cards each player holds.
const HandSize = 4

// Deck is an ordered pile of cards. Cards are drawn from the tail and
// discards are returned to the head, so a deck and the hands dealt from it
// always add up to the full 40 cards.
type Deck struct {
	cards []Card
}

// NewDeck returns the 40 cards in suit-major order, unshuffled.
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, DeckSize)}
	for suit := range Suit(NumSuits) {
		for _, rank := range Ranks {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// NewShuffledDeck returns a full deck shuffled with rng.
func NewShuffledDeck(rng *rand.Rand) *Deck {
	d := NewDeck()
	d.Shuffle(rng)
	return d
}

// DeckOf builds a deck from explicit cards. The last card is drawn first.
func DeckOf(cards ...Card) *Deck {
	out := make([]Card, len(cards))
	copy(out, cards)
	return &Deck{cards: out}
}

// StackedDeck returns a full deck that deals the given hands, in order, to
// the first len(hands) players of a Deal. The remaining cards follow in
// suit-major order.
func StackedDeck(hands ...Hand) (*Deck, error) {
	var order []Card
	for i, h := range hands {
		if len(h) != HandSize {
			return nil, fmt.Errorf("hand %d has %d cards, want %d", i, len(h), HandSize)
		}
	}
	for r := range HandSize {
		for _, h := range hands {
			order = append(order, h[r])
		}
	}

	used := make(map[Card]bool, len(order))
	for _, c := range order {
		if !c.Valid() {
			return nil, fmt.Errorf("invalid card %v", c)
		}
		if used[c] {
			return nil, fmt.Errorf("card %v listed twice", c)
		}
		used[c] = true
	}

	cards := make([]Card, 0, DeckSize)
	for _, c := range NewDeck().cards {
		if !used[c] {
			cards = append(cards, c)
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		cards = append(cards, order[i])
	}
	return &Deck{cards: cards}, nil
}

// Shuffle shuffles the deck using Fisher-Yates.
func (d *Deck) Shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes up to n cards from the tail. When the deck runs short it
// returns what is left rather than failing.
func (d *Deck) Draw(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	if n <= 0 {
		return nil
	}
	start := len(d.cards) - n
	out := make([]Card, n)
	// Pop order: the tail card comes out first.
	for i := range n {
		out[i] = d.cards[len(d.cards)-1-i]
	}
	d.cards = d.cards[:start]
	return out
}

// PutBottom returns cards to the head of the deck, where they are drawn last.
func (d *Deck) PutBottom(cards ...Card) {
	if len(cards) == 0 {
		return
	}
	merged := make([]Card, 0, len(d.cards)+len(cards))
	merged = append(merged, cards...)
	merged = append(merged, d.cards...)
	d.cards = merged
}

// Deal hands out HandSize cards to each of players hands, one card at a time
// in seat order. Hands are short if the deck runs out.
func (d *Deck) Deal(players int) []Hand {
	hands := make([]Hand, players)
	for i := range hands {
		hands[i] = make(Hand, 0, HandSize)
	}
	for range HandSize {
		for p := range players {
			c := d.Draw(1)
			if len(c) == 0 {
				return hands
			}
			hands[p] = append(hands[p], c[0])
		}
	}
	return hands
}

// Len returns the number of cards left.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, head first.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Clone returns an independent copy of the deck.
func (d *Deck) Clone() *Deck {
	if d == nil {
		return nil
	}
	return DeckOf(d.cards...)
}
