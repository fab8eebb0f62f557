// Package script replays YAML scenarios against the game reducer. A scenario
// deals fixed hands, applies a list of table actions and checks the state
// after any step.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lox/musforbots/internal/game"
	"github.com/lox/musforbots/mus"
)

// Scenario is the content of one scenario file.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Rules       Rules  `yaml:"rules"`
	Steps       []Step `yaml:"steps"`
}

// Rules overrides the default rule set. Zero values keep the default.
type Rules struct {
	RawPerMarker         int  `yaml:"raw-per-marker"`
	MarkersPerMatch      int  `yaml:"markers-per-match"`
	MatchesPerTournament int  `yaml:"matches-per-tournament"`
	CategoryBonuses      bool `yaml:"category-bonuses"`
}

// Step is one entry of the steps list. Exactly one of Deal, Reset or Action
// is set, unless the step only verifies.
//
//	- deal: ["Ro Rc Re Rb", "Ao Ac Ae Ab", "5o 5c 4e 4b", "7o 6c So Cb"]
//	- action: p1, raise, 3
//	  verify:
//	    current: p2
type Step struct {
	Deal   []string `yaml:"deal"`  // hands in seat order from mano
	Reset  string   `yaml:"reset"` // "game" or "tournament"; deals Deal hands if given
	Action *Action  `yaml:"action"`
	Reject bool     `yaml:"reject"` // the action must be refused
	Verify *Verify  `yaml:"verify"`
}

// Action is a player action written as a comma-separated expression.
//
//	p1, cut
//	p2, raise, 3
//	p3, discard, 0 2
//	p4, signal, good
//	end-announcement
type Action struct {
	Player game.PlayerID
	Verb   string
	Arg    string
}

// UnmarshalYAML parses the action expression.
func (a *Action) UnmarshalYAML(value *yaml.Node) error {
	var expr string
	if err := value.Decode(&expr); err != nil {
		return errors.Wrapf(err, "line %d: action must be a string", value.Line)
	}
	tokens := strings.Split(expr, ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	switch len(tokens) {
	case 1:
		a.Verb = tokens[0]
	case 2:
		a.Player, a.Verb = game.PlayerID(tokens[0]), tokens[1]
	case 3:
		a.Player, a.Verb, a.Arg = game.PlayerID(tokens[0]), tokens[1], tokens[2]
	default:
		return fmt.Errorf("line %d: invalid action expression [%s], need 1 to 3 comma-separated tokens", value.Line, expr)
	}
	return nil
}

func (a Action) String() string {
	parts := []string{string(a.Player), a.Verb, a.Arg}
	return strings.Trim(strings.Join(parts, ", "), ", ")
}

// GameAction converts the expression into a reducer action.
func (a Action) GameAction() (game.Action, error) {
	if a.Verb == "end-announcement" {
		return game.EndAnnouncement{}, nil
	}
	if a.Player == "" {
		return nil, fmt.Errorf("action %q needs a player", a.Verb)
	}

	switch a.Verb {
	case "mus":
		return game.MusDecision{Player: a.Player, Choice: game.Mus}, nil
	case "cut":
		return game.MusDecision{Player: a.Player, Choice: game.Cut}, nil
	case "discard":
		var indices []int
		for _, f := range strings.Fields(a.Arg) {
			i, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.Wrapf(err, "cannot convert discard index [%s]", f)
			}
			indices = append(indices, i)
		}
		return game.Discard{Player: a.Player, Indices: indices}, nil
	case "signal":
		for s := game.SignalGood; s <= game.SignalBad; s++ {
			if s.String() == a.Arg {
				return game.SendSignal{Player: a.Player, Value: s}, nil
			}
		}
		return nil, fmt.Errorf("unknown signal [%s]", a.Arg)
	}

	bid, err := parseBid(a.Verb, a.Arg)
	if err != nil {
		return nil, err
	}
	return game.PlaceBid{Player: a.Player, Bid: bid}, nil
}

func parseBid(verb, arg string) (game.Bid, error) {
	switch verb {
	case "pass":
		return game.Pass{}, nil
	case "raise":
		amount, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot convert raise amount [%s]", arg)
		}
		return game.Raise{Amount: amount}, nil
	case "raise-again":
		return game.RaiseAgain{}, nil
	case "all-in":
		return game.AllIn{}, nil
	case "accept":
		return game.Accept{}, nil
	case "decline":
		return game.Decline{}, nil
	default:
		return nil, fmt.Errorf("unknown action [%s]", verb)
	}
}

// Verify lists the expected state. Unset fields are not checked.
type Verify struct {
	Phase       string               `yaml:"phase"`
	SubPhase    string               `yaml:"sub-phase"`
	Current     *string              `yaml:"current"`
	Round       int                  `yaml:"round"`
	MusCount    *int                 `yaml:"mus-count"`
	Hands       map[string]string    `yaml:"hands"`
	Score       map[string]TeamScore `yaml:"score"` // keyed by team, A or B
	Results     []Result             `yaml:"results"`
	Bet         *Bet                 `yaml:"bet"`
	Signal      string               `yaml:"signal"`
	MatchOver   *bool                `yaml:"match-over"`
	MatchWinner string               `yaml:"match-winner"`
	WonByAllIn  *bool                `yaml:"won-by-all-in"`
	Tournament  *bool                `yaml:"tournament-over"`
	LogContains []string             `yaml:"log-contains"`
}

// TeamScore is the expected ledger of one team.
type TeamScore struct {
	Raw     *int  `yaml:"raw"`
	Markers *int  `yaml:"markers"`
	Matches *int  `yaml:"matches"`
	Adentro *bool `yaml:"adentro"`
}

// Result is an expected phase result. The winner is ignored for ties.
type Result struct {
	Phase  string `yaml:"phase"`
	Winner string `yaml:"winner"`
	Tie    bool   `yaml:"tie"`
	Units  int    `yaml:"units"`
	Reason string `yaml:"reason"`
}

// Bet is the expected pending bid.
type Bet struct {
	Kind     string `yaml:"kind"`
	Amount   int    `yaml:"amount"`
	Proposer string `yaml:"proposer"`
	Awaiting bool   `yaml:"awaiting"`
}

// ReadScenario reads a scenario file.
func ReadScenario(fileName string) (*Scenario, error) {
	bytes, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading scenario file [%s]", fileName)
	}
	var sc Scenario
	if err := yaml.Unmarshal(bytes, &sc); err != nil {
		return nil, errors.Wrapf(err, "error parsing YAML file [%s]", fileName)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	}
	return &sc, nil
}

// ReadDir reads every .yaml file in dir, sorted by file name.
func ReadDir(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, errors.Wrapf(err, "error listing scenarios in [%s]", dir)
	}
	sort.Strings(matches)
	scenarios := make([]*Scenario, 0, len(matches))
	for _, m := range matches {
		sc, err := ReadScenario(m)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// deck builds the stacked deck for a deal step.
func deck(hands []string) (*mus.Deck, error) {
	parsed := make([]mus.Hand, len(hands))
	for i, h := range hands {
		hand, err := mus.ParseHand(h)
		if err != nil {
			return nil, errors.Wrapf(err, "hand %d", i)
		}
		parsed[i] = hand
	}
	d, err := mus.StackedDeck(parsed...)
	return d, errors.Wrap(err, "cannot stack deck")
}
