// Package game implements the rules of Mus as a pure state machine.
//
// The main type is State, a value describing one table: four seated players,
// the current phase and sub-phase, the active bid, the scoring ledger and a
// short narrative of what happened. State is never mutated in place by
// callers; every transition goes through Apply:
//
//	s := game.NewState(players, game.DefaultRules(), matchID)
//	s, err := game.Apply(s, game.Deal{Deck: mus.NewShuffledDeck(rng)})
//	s, err = game.Apply(s, game.MusDecision{Player: "p1", Choice: game.Cut})
//	s, err = game.Apply(s, game.PlaceBid{Player: "p1", Bid: game.Raise{Amount: 2}})
//
// Apply returns ErrOutOfTurn or ErrInvalidAction, leaving the input state
// untouched, when an action does not fit the current turn or sub-phase.
// Callers that follow the "ignore stale actions" policy can drop those errors.
//
// # Architecture
//
// Apply clones the input and hands the copy to a specialised step:
//   - Sequencer (sequencer.go): mus rounds, discards, phase order and skipping
//   - Betting (betting.go): pass/raise/all-in/accept/decline and turn rotation
//   - Ledger (ledger.go): stake units, match markers and tournament markers
//
// Bots and humans act through the same actions. Agents receive a View that
// only contains what the acting seat is allowed to see.
package game
