package game

import "github.com/lox/musforbots/mus"

// Player is a seated player and the derived facts about their hand.
type Player struct {
	ID      PlayerID
	Name    string
	Team    Team
	Seat    int
	Hand    mus.Hand
	IsBot   bool
	Persona string // bot personality preset, informational
	Mano    bool   // holds the dealer-anchor seat this hand

	HasPairs   bool
	HasGame    bool
	PointTotal int
}

// refresh recomputes the derived hand facts.
func (p *Player) refresh() {
	p.HasPairs = mus.HasPairs(p.Hand)
	p.HasGame = mus.HasGame(p.Hand)
	p.PointTotal = mus.Sum(p.Hand)
}

func (p Player) clone() Player {
	p.Hand = p.Hand.Clone()
	return p
}
