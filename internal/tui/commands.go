package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/musforbots/internal/game"
	"github.com/lox/musforbots/internal/table"
)

// command is one line typed at the prompt, ready to run against the table.
type command struct {
	name string
	run  func(t *table.Table, me game.PlayerID) bool
}

const (
	cmdQuit = "quit"
	cmdHelp = "help"
	cmdNext = "next"
)

// commandHelp is shown by the help command.
var commandHelp = []string{
	"mus | corto            ask for mus or cut",
	"descarto 1 3           discard cards by position",
	"paso                   pass",
	"envido [n]             raise, by the minimum if n is left out",
	"mas                    raise again",
	"ordago                 all-in",
	"quiero | no            accept or decline",
	"señal buenas|regulares|malas",
	"reparte | nueva | torneo   deal, new match, new tournament",
	"enter on an empty line moves on after a hand or match",
}

// parseCommand reads a prompt line. English words are accepted as well.
func parseCommand(input string) (command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return command{name: cmdNext}, nil
	}
	verb, args := fields[0], fields[1:]

	bid := func(name string, b game.Bid) (command, error) {
		return command{name: name, run: func(t *table.Table, me game.PlayerID) bool {
			return t.PlaceBet(me, b)
		}}, nil
	}

	switch verb {
	case "q", "quit", "salir":
		return command{name: cmdQuit}, nil
	case "?", "help", "ayuda":
		return command{name: cmdHelp}, nil
	case "mus":
		return command{name: "mus", run: func(t *table.Table, me game.PlayerID) bool {
			return t.ProcessMusDecision(me, game.Mus)
		}}, nil
	case "corto", "cut":
		return command{name: "cut", run: func(t *table.Table, me game.PlayerID) bool {
			return t.ProcessMusDecision(me, game.Cut)
		}}, nil
	case "descarto", "discard", "d":
		indices := make([]int, 0, len(args))
		for _, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil || n < 1 {
				return command{}, fmt.Errorf("card positions run from 1: %q", a)
			}
			indices = append(indices, n-1)
		}
		return command{name: "discard", run: func(t *table.Table, me game.PlayerID) bool {
			return t.DiscardCards(me, indices)
		}}, nil
	case "paso", "pass":
		return bid("pass", game.Pass{})
	case "envido", "raise":
		amount := 0
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return command{}, fmt.Errorf("invalid amount %q", args[0])
			}
			amount = n
		}
		return command{name: "raise", run: func(t *table.Table, me game.PlayerID) bool {
			n := amount
			if n == 0 {
				n = t.State().Rules.MinRaise
			}
			return t.PlaceBet(me, game.Raise{Amount: n})
		}}, nil
	case "mas", "más", "again":
		return bid("raise-again", game.RaiseAgain{})
	case "ordago", "órdago", "allin", "all-in":
		return bid("all-in", game.AllIn{})
	case "quiero", "accept":
		return bid("accept", game.Accept{})
	case "no", "decline":
		return bid("decline", game.Decline{})
	case "señal", "senal", "signal":
		if len(args) != 1 {
			return command{}, fmt.Errorf("señal needs one of buenas, regulares, malas")
		}
		sig, ok := parseSignal(args[0])
		if !ok {
			return command{}, fmt.Errorf("unknown signal %q", args[0])
		}
		return command{name: "signal", run: func(t *table.Table, me game.PlayerID) bool {
			return t.SendCompanionSignal(me, sig)
		}}, nil
	case "reparte", "deal":
		return command{name: "deal", run: func(t *table.Table, _ game.PlayerID) bool {
			return t.DealNewRound()
		}}, nil
	case "nueva", "new":
		return command{name: "new", run: func(t *table.Table, _ game.PlayerID) bool {
			return t.ResetToNewGame()
		}}, nil
	case "torneo", "tournament":
		return command{name: "tournament", run: func(t *table.Table, _ game.PlayerID) bool {
			t.ResetTournament()
			return true
		}}, nil
	}
	return command{}, fmt.Errorf("unknown command %q", verb)
}

func parseSignal(word string) (game.Signal, bool) {
	for s := game.SignalGood; s <= game.SignalBad; s++ {
		if word == s.Word() || word == s.String() {
			return s, true
		}
	}
	return game.SignalNone, false
}

// next is what an empty line does: deal after a hand, start a new match
// after a match, and a new tournament after a tournament.
func next(t *table.Table, _ game.PlayerID) bool {
	s := t.State()
	switch {
	case s.TournamentOver:
		t.ResetTournament()
		return true
	case s.Phase == game.PhaseFinished:
		return t.ResetToNewGame()
	case s.Phase == game.PhaseScoring, s.SubPhase == game.SubDealing:
		return t.DealNewRound()
	}
	return false
}
