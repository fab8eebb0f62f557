package game

import "fmt"

// Rules holds the numeric constants of the game. Regional variants disagree
// on several of them, so they are configurable per table.
type Rules struct {
	RawPerMarker         int  // stake units that roll over into one match marker
	MarkersPerMatch      int  // markers needed to win a match (amarracos)
	MatchesPerTournament int  // matches needed to win the tournament (vacas)
	BaseReward           int  // units for a phase resolved without bets
	Deje                 int  // units for a declined bid
	MinRaise             int  // smallest raise
	RaiseIncrement       int  // fixed increment of raise-again
	AllInStake           int  // nominal amount of an all-in bid
	AdentroUnits         int  // units at which a team is flagged adentro
	LogSize              int  // narrative entries kept
	CategoryBonuses      bool // pay 1/2/3 for pairs and 2/3 for game when passed
}

// DefaultRules returns the reference rule set.
func DefaultRules() Rules {
	return Rules{
		RawPerMarker:         5,
		MarkersPerMatch:      8,
		MatchesPerTournament: 3,
		BaseReward:           1,
		Deje:                 1,
		MinRaise:             2,
		RaiseIncrement:       2,
		AllInStake:           40,
		AdentroUnits:         35,
		LogSize:              8,
	}
}

// Validate checks that every threshold is positive.
func (r Rules) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"raw_per_marker", r.RawPerMarker},
		{"markers_per_match", r.MarkersPerMatch},
		{"matches_per_tournament", r.MatchesPerTournament},
		{"base_reward", r.BaseReward},
		{"deje", r.Deje},
		{"min_raise", r.MinRaise},
		{"raise_increment", r.RaiseIncrement},
		{"all_in_stake", r.AllInStake},
		{"log_size", r.LogSize},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("rule %s must be positive, got %d", c.name, c.value)
		}
	}
	if r.AllInStake <= r.MinRaise {
		return fmt.Errorf("rule all_in_stake must exceed min_raise %d, got %d", r.MinRaise, r.AllInStake)
	}
	if r.AdentroUnits < 0 {
		return fmt.Errorf("rule adentro_units must not be negative, got %d", r.AdentroUnits)
	}
	return nil
}
