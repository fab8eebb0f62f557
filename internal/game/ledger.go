package game

// TeamScore is one team's side of the ledger.
type TeamScore struct {
	Raw      int  // stake units not yet rolled into a marker
	Markers  int  // match points (amarracos)
	Matches  int  // matches won this tournament (vacas)
	TotalRaw int  // every unit awarded this match
	Adentro  bool // leading and close to winning the match; advisory only
}

// Units returns the team's standing in stake units.
func (t TeamScore) Units(r Rules) int {
	return t.Markers*r.RawPerMarker + t.Raw
}

// Ledger accumulates stakes for both teams.
type Ledger struct {
	Teams [2]TeamScore
}

// Team returns the score of t.
func (l Ledger) Team(t Team) TeamScore {
	return l.Teams[t]
}

// Award adds units to team and rolls complete groups of RawPerMarker into
// markers. It reports whether the team reached the match target.
func (l *Ledger) Award(r Rules, team Team, units int) bool {
	if units <= 0 {
		return false
	}
	ts := &l.Teams[team]
	ts.TotalRaw += units
	ts.Raw += units
	ts.Markers += ts.Raw / r.RawPerMarker
	ts.Raw %= r.RawPerMarker
	l.flagAdentro(r)
	return ts.Markers >= r.MarkersPerMatch
}

// flagAdentro marks the team that leads with at least AdentroUnits. An award
// can clear the flag of the other side.
func (l *Ledger) flagAdentro(r Rules) {
	a, b := l.Teams[TeamA].Units(r), l.Teams[TeamB].Units(r)
	near := func(units, rival int) bool {
		return r.AdentroUnits > 0 && units >= r.AdentroUnits && units > rival
	}
	l.Teams[TeamA].Adentro = near(a, b)
	l.Teams[TeamB].Adentro = near(b, a)
}

// WinMatch records a match for team and reports whether that wins the tournament.
func (l *Ledger) WinMatch(r Rules, team Team) bool {
	l.Teams[team].Matches++
	return l.Teams[team].Matches >= r.MatchesPerTournament
}

// ResetMatch clears stakes and markers but keeps the tournament tally.
func (l *Ledger) ResetMatch() {
	for i := range l.Teams {
		l.Teams[i] = TeamScore{Matches: l.Teams[i].Matches}
	}
}

// Reset clears everything.
func (l *Ledger) Reset() {
	l.Teams = [2]TeamScore{}
}
