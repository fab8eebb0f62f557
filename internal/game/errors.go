package game

import "errors"

var (
	// ErrOutOfTurn is returned when an action names a player other than the current one.
	ErrOutOfTurn = errors.New("out of turn")

	// ErrInvalidAction is returned when an action does not fit the current sub-phase.
	ErrInvalidAction = errors.New("invalid action")

	// ErrUnknownPlayer is returned when an action names a player not seated at the table.
	ErrUnknownPlayer = errors.New("unknown player")
)

// Ignorable reports whether err is one of the errors the table treats as a
// silent no-op: stale, out-of-turn or malformed input from a trusted caller.
func Ignorable(err error) bool {
	return errors.Is(err, ErrOutOfTurn) || errors.Is(err, ErrInvalidAction) || errors.Is(err, ErrUnknownPlayer)
}
