package script

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/lox/musforbots/internal/game"
	"github.com/lox/musforbots/mus"
)

// Players are the four seats every scenario plays with; p1 is mano.
func Players() []game.Player {
	return []game.Player{
		{ID: "p1", Name: "Ane", Team: game.TeamA},
		{ID: "p2", Name: "Bea", Team: game.TeamB},
		{ID: "p3", Name: "Iker", Team: game.TeamA},
		{ID: "p4", Name: "Jon", Team: game.TeamB},
	}
}

// Runner replays scenarios.
type Runner struct {
	logger *log.Logger
}

// NewRunner returns a runner that logs each step at debug level.
func NewRunner(logger *log.Logger) *Runner {
	return &Runner{logger: logger.WithPrefix("script")}
}

// Run plays sc from a fresh table and returns the final state. It stops at
// the first step that fails to apply or verify.
func (r *Runner) Run(sc *Scenario) (game.State, error) {
	s := game.NewState(Players(), sc.rules(), sc.Name)
	logger := r.logger.With("scenario", sc.Name)

	for i, step := range sc.Steps {
		next, err := r.step(s, step)
		if err != nil {
			return s, errors.Wrapf(err, "%s: step %d", sc.Name, i+1)
		}
		s = next
		logger.Debug("step", "n", i+1, "phase", s.Phase, "sub", s.SubPhase, "current", s.Current)

		if step.Verify != nil {
			if err := step.Verify.Check(s); err != nil {
				return s, errors.Wrapf(err, "%s: step %d", sc.Name, i+1)
			}
		}
	}
	return s, nil
}

func (r *Runner) step(s game.State, step Step) (game.State, error) {
	var a game.Action
	switch {
	case step.Reset != "":
		var d *mus.Deck
		if len(step.Deal) > 0 {
			var err error
			if d, err = deck(step.Deal); err != nil {
				return s, err
			}
		}
		switch step.Reset {
		case "game":
			a = game.ResetGame{Deck: d}
		case "tournament":
			a = game.ResetTournament{Deck: d}
		default:
			return s, fmt.Errorf("unknown reset [%s]", step.Reset)
		}
	case len(step.Deal) > 0:
		d, err := deck(step.Deal)
		if err != nil {
			return s, err
		}
		a = game.Deal{Deck: d}
	case step.Action != nil:
		ga, err := step.Action.GameAction()
		if err != nil {
			return s, err
		}
		a = ga
	default:
		return s, nil
	}

	next, err := game.Apply(s, a)
	switch {
	case step.Reject && err == nil:
		return s, fmt.Errorf("action [%s] was accepted, want rejection", describe(step))
	case step.Reject:
		r.logger.Debug("rejected as expected", "action", describe(step), "err", err)
		return s, nil
	case err != nil:
		return s, errors.Wrapf(err, "action [%s]", describe(step))
	}
	return next, nil
}

func describe(step Step) string {
	switch {
	case step.Action != nil:
		return step.Action.String()
	case step.Reset != "":
		return "reset " + step.Reset
	default:
		return "deal"
	}
}

func (sc *Scenario) rules() game.Rules {
	r := game.DefaultRules()
	if sc.Rules.RawPerMarker > 0 {
		r.RawPerMarker = sc.Rules.RawPerMarker
	}
	if sc.Rules.MarkersPerMatch > 0 {
		r.MarkersPerMatch = sc.Rules.MarkersPerMatch
	}
	if sc.Rules.MatchesPerTournament > 0 {
		r.MatchesPerTournament = sc.Rules.MatchesPerTournament
	}
	r.CategoryBonuses = sc.Rules.CategoryBonuses
	return r
}

// Check compares s against the expectations and reports every mismatch.
func (v *Verify) Check(s game.State) error {
	var problems []string
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if v.Phase != "" && v.Phase != s.Phase.String() {
		fail("phase: got %s, want %s", s.Phase, v.Phase)
	}
	if v.SubPhase != "" && v.SubPhase != s.SubPhase.String() {
		fail("sub-phase: got %s, want %s", s.SubPhase, v.SubPhase)
	}
	if v.Current != nil && *v.Current != string(s.Current) {
		fail("current: got %q, want %q", s.Current, *v.Current)
	}
	if v.Round != 0 && v.Round != s.Round {
		fail("round: got %d, want %d", s.Round, v.Round)
	}
	if v.MusCount != nil && *v.MusCount != s.MusCount {
		fail("mus-count: got %d, want %d", s.MusCount, *v.MusCount)
	}
	for id, want := range v.Hands {
		p, ok := s.Player(game.PlayerID(id))
		if !ok {
			fail("hands: unknown player %s", id)
			continue
		}
		if got := p.Hand.String(); got != want {
			fail("hand %s: got %s, want %s", id, got, want)
		}
	}
	for name, want := range v.Score {
		team, ok := parseTeam(name)
		if !ok {
			fail("score: unknown team %s", name)
			continue
		}
		want.check(fail, name, s.Ledger.Team(team))
	}
	v.checkResults(fail, s.Results)
	if v.Bet != nil {
		b := s.Bet
		if v.Bet.Kind != b.Kind.String() || v.Bet.Amount != b.Amount ||
			v.Bet.Proposer != string(b.Proposer) || v.Bet.Awaiting != b.Awaiting {
			fail("bet: got %s %d by %s (awaiting %t), want %s %d by %s (awaiting %t)",
				b.Kind, b.Amount, b.Proposer, b.Awaiting,
				v.Bet.Kind, v.Bet.Amount, v.Bet.Proposer, v.Bet.Awaiting)
		}
	}
	if v.Signal != "" && v.Signal != s.Signal.Value.String() {
		fail("signal: got %s, want %s", s.Signal.Value, v.Signal)
	}
	if v.MatchOver != nil && *v.MatchOver != s.MatchOver {
		fail("match-over: got %t, want %t", s.MatchOver, *v.MatchOver)
	}
	if v.MatchWinner != "" && v.MatchWinner != s.MatchWinner.String() {
		fail("match-winner: got %s, want %s", s.MatchWinner, v.MatchWinner)
	}
	if v.WonByAllIn != nil && *v.WonByAllIn != s.WonByAllIn {
		fail("won-by-all-in: got %t, want %t", s.WonByAllIn, *v.WonByAllIn)
	}
	if v.Tournament != nil && *v.Tournament != s.TournamentOver {
		fail("tournament-over: got %t, want %t", s.TournamentOver, *v.Tournament)
	}
	for _, text := range v.LogContains {
		if !slices.ContainsFunc(s.Log.Entries, func(e game.Entry) bool { return strings.Contains(e.Text, text) }) {
			fail("log: no entry containing %q", text)
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func (want TeamScore) check(fail func(string, ...any), name string, got game.TeamScore) {
	if want.Raw != nil && *want.Raw != got.Raw {
		fail("team %s raw: got %d, want %d", name, got.Raw, *want.Raw)
	}
	if want.Markers != nil && *want.Markers != got.Markers {
		fail("team %s markers: got %d, want %d", name, got.Markers, *want.Markers)
	}
	if want.Matches != nil && *want.Matches != got.Matches {
		fail("team %s matches: got %d, want %d", name, got.Matches, *want.Matches)
	}
	if want.Adentro != nil && *want.Adentro != got.Adentro {
		fail("team %s adentro: got %t, want %t", name, got.Adentro, *want.Adentro)
	}
}

func (v *Verify) checkResults(fail func(string, ...any), results []game.PhaseResult) {
	if v.Results == nil {
		return
	}
	if len(results) != len(v.Results) {
		fail("results: got %d, want %d", len(results), len(v.Results))
		return
	}
	for i, want := range v.Results {
		got := results[i]
		ok := want.Phase == got.Phase.String() && want.Tie == got.Tie &&
			want.Units == got.Units && want.Reason == got.Reason &&
			(got.Tie || want.Winner == got.Winner.String())
		if !ok {
			fail("result %d: got %+v, want %+v", i+1, got, want)
		}
	}
}

func parseTeam(name string) (game.Team, bool) {
	switch strings.ToUpper(name) {
	case "A":
		return game.TeamA, true
	case "B":
		return game.TeamB, true
	}
	return 0, false
}
