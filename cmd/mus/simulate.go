package main

import (
	"context"
	"fmt"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/musforbots/internal/bot"
	"github.com/lox/musforbots/internal/game"
	"github.com/lox/musforbots/internal/randutil"
	mustable "github.com/lox/musforbots/internal/table"
)

// maxMatches bounds a single tournament in case the rules never finish it.
const maxMatches = 1000

type SimulateCmd struct {
	Tournaments int      `short:"n" default:"100" help:"Number of tournaments to play"`
	Parallel    int      `short:"p" default:"4" help:"Tournaments played at once"`
	Seed        int64    `help:"RNG seed (0 picks one)"`
	Presets     []string `help:"Bot presets to rotate through the seats (default: all)"`
	Matches     int      `default:"0" help:"Matches per tournament (0 keeps the default rules)"`
	LogLevel    string   `default:"warn" enum:"debug,info,warn,error" help:"Log level for table logs"`
}

// seatResult is what one seat earned in one tournament.
type seatResult struct {
	Preset      string
	Team        game.Team
	Matches     int
	AllInWins   int
	WonTourney  bool
	MatchesSeen int
}

type tournamentResult struct {
	Seats  [game.NumPlayers]seatResult
	Winner game.Team
	Hands  int
}

// presetStats aggregates seat results by preset.
type presetStats struct {
	Seats       int
	Tournaments int
	Matches     int
	MatchesSeen int
	AllInWins   int
}

func (c *SimulateCmd) Run() error {
	if c.Tournaments <= 0 {
		return fmt.Errorf("tournaments must be positive")
	}
	presets := c.Presets
	if len(presets) == 0 {
		presets = bot.PresetNames()
	}
	for _, name := range presets {
		if _, ok := bot.Preset(name, randutil.New(1)); !ok {
			return fmt.Errorf("unknown preset %q", name)
		}
	}
	rules := game.DefaultRules()
	if c.Matches > 0 {
		rules.MatchesPerTournament = c.Matches
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger(c.LogLevel)
	seed := randutil.Seed(c.Seed)
	logger.Info("starting simulation", "tournaments", c.Tournaments, "parallel", c.Parallel, "seed", seed)

	start := time.Now()
	results, err := simulate(ctx, c.Tournaments, c.Parallel, seed, presets, rules, logger)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Mus simulation: %d tournaments, seed %d", len(results), seed)))
	fmt.Println(renderStats(aggregate(results)))
	hands, wins := 0, [2]int{}
	for _, r := range results {
		hands += r.Hands
		wins[r.Winner]++
	}
	fmt.Printf("hands played: %d, team A won %d, team B won %d\n", hands, wins[game.TeamA], wins[game.TeamB])
	fmt.Printf("took %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// simulate plays n tournaments with at most parallel running at once. Each
// tournament gets its own seed derived from seed, so results do not depend
// on scheduling.
func simulate(ctx context.Context, n, parallel int, seed int64, presets []string, rules game.Rules, logger *log.Logger) ([]tournamentResult, error) {
	if parallel <= 0 {
		parallel = 1
	}
	master := randutil.New(seed)
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = master.Int64()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	resultsCh := make(chan tournamentResult, n)

	for i := range n {
		var lineup [game.NumPlayers]string
		for s := range lineup {
			lineup[s] = presets[(i+s)%len(presets)]
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := playTournament(ctx, seeds[i], lineup, rules, logger)
			if err != nil {
				return fmt.Errorf("tournament %d: %w", i, err)
			}
			resultsCh <- res
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(resultsCh)
	}()

	results := make([]tournamentResult, 0, n)
	for res := range resultsCh {
		results = append(results, res)
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// playTournament runs one all-bot tournament to the end.
func playTournament(ctx context.Context, seed int64, lineup [game.NumPlayers]string, rules game.Rules, logger *log.Logger) (tournamentResult, error) {
	players := make([]game.Player, game.NumPlayers)
	for i, preset := range lineup {
		team := game.TeamA
		if i%2 == 1 {
			team = game.TeamB
		}
		players[i] = game.Player{
			ID:      game.PlayerID(fmt.Sprintf("p%d", i+1)),
			Name:    fmt.Sprintf("%s-%d", preset, i+1),
			Team:    team,
			IsBot:   true,
			Persona: preset,
		}
	}

	tbl, err := mustable.New(players,
		mustable.WithLogger(logger),
		mustable.WithRNG(randutil.New(seed)),
		mustable.WithRules(rules),
		mustable.WithPacing(mustable.Instant()),
		mustable.WithAutoDeal(true),
	)
	if err != nil {
		return tournamentResult{}, err
	}
	defer tbl.Close()

	var res tournamentResult
	for i, p := range players {
		res.Seats[i] = seatResult{Preset: lineup[i], Team: p.Team}
	}

	if !tbl.DealNewRound() {
		return res, fmt.Errorf("table refused to deal")
	}
	// With auto-deal and instant pacing every call plays a whole match.
	for range maxMatches {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		s := tbl.State()
		if !s.MatchOver {
			return res, fmt.Errorf("match stopped in %s/%s", s.Phase, s.SubPhase)
		}
		res.Hands += s.Round
		for i := range res.Seats {
			res.Seats[i].MatchesSeen++
			if res.Seats[i].Team == s.MatchWinner {
				res.Seats[i].Matches++
				if s.WonByAllIn {
					res.Seats[i].AllInWins++
				}
			}
		}
		if s.TournamentOver {
			res.Winner = s.MatchWinner
			for i := range res.Seats {
				res.Seats[i].WonTourney = res.Seats[i].Team == s.MatchWinner
			}
			return res, nil
		}
		if !tbl.ResetToNewGame() {
			return res, fmt.Errorf("table refused a new match")
		}
	}
	return res, fmt.Errorf("no winner after %d matches", maxMatches)
}

func aggregate(results []tournamentResult) map[string]*presetStats {
	stats := make(map[string]*presetStats)
	for _, r := range results {
		for _, seat := range r.Seats {
			st := stats[seat.Preset]
			if st == nil {
				st = &presetStats{}
				stats[seat.Preset] = st
			}
			st.Seats++
			st.Matches += seat.Matches
			st.MatchesSeen += seat.MatchesSeen
			st.AllInWins += seat.AllInWins
			if seat.WonTourney {
				st.Tournaments++
			}
		}
	}
	return stats
}

func pct(n, d int) string {
	if d == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(d))
}

func renderStats(stats map[string]*presetStats) string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	slices.Sort(names)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("preset", "seats", "tournaments won", "matches won", "all-in wins").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, name := range names {
		st := stats[name]
		t.Row(name,
			fmt.Sprint(st.Seats),
			pct(st.Tournaments, st.Seats),
			pct(st.Matches, st.MatchesSeen),
			fmt.Sprint(st.AllInWins),
		)
	}
	return t.Render()
}
