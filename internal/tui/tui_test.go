package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/musforbots/internal/game"
	"github.com/lox/musforbots/internal/randutil"
	"github.com/lox/musforbots/internal/table"
)

func newTestModel(t *testing.T) (*Model, *table.Table) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	players := []game.Player{
		{ID: "me", Name: "Tú", Team: game.TeamA},
		{ID: "b1", Name: "Maite", Team: game.TeamB, IsBot: true, Persona: "prudent"},
		{ID: "b2", Name: "Koldo", Team: game.TeamA, IsBot: true, Persona: "steady"},
		{ID: "b3", Name: "Arantxa", Team: game.TeamB, IsBot: true, Persona: "bluffer"},
	}
	tbl, err := table.New(players,
		table.WithLogger(logger),
		table.WithRNG(randutil.New(5)),
		table.WithPacing(table.Instant()),
	)
	require.NoError(t, err)
	t.Cleanup(tbl.Close)

	m := New(tbl, "me", logger)
	t.Cleanup(m.unsubscribe)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, tbl
}

func typeLine(m *Model, line string) {
	m.input.SetValue(line)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestParseCommand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		name  string
	}{
		{"", cmdNext},
		{"  ", cmdNext},
		{"mus", "mus"},
		{"Corto", "cut"},
		{"descarto 1 4", "discard"},
		{"paso", "pass"},
		{"envido", "raise"},
		{"envido 5", "raise"},
		{"más", "raise-again"},
		{"órdago", "all-in"},
		{"quiero", "accept"},
		{"no", "decline"},
		{"señal buenas", "signal"},
		{"signal bad", "signal"},
		{"reparte", "deal"},
		{"nueva", "new"},
		{"torneo", "tournament"},
		{"salir", cmdQuit},
		{"?", cmdHelp},
	}
	for _, tt := range tests {
		c, err := parseCommand(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.name, c.name, tt.input)
	}

	for _, bad := range []string{"descarto 0", "descarto x", "envido -2", "señal", "señal fatal", "farol"} {
		_, err := parseCommand(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseSignal(t *testing.T) {
	t.Parallel()
	for word, want := range map[string]game.Signal{
		"buenas": game.SignalGood, "good": game.SignalGood,
		"regulares": game.SignalMedium, "malas": game.SignalBad,
	} {
		got, ok := parseSignal(word)
		assert.True(t, ok, word)
		assert.Equal(t, want, got, word)
	}
}

func TestEnterDealsAndCommandsReachTheTable(t *testing.T) {
	t.Parallel()
	m, tbl := newTestModel(t)

	assert.Contains(t, m.View(), "Enter para repartir")

	typeLine(m, "")
	s := tbl.State()
	require.Equal(t, game.SubMusDecision, s.SubPhase)
	require.Equal(t, game.PlayerID("me"), s.Current)
	assert.Len(t, m.view.Self.Hand, 4)
	assert.Contains(t, m.View(), "¿Mus o corto?")

	typeLine(m, "paso")
	assert.Contains(t, m.status, "pass is not allowed now")
	assert.Equal(t, s.Version, tbl.State().Version)

	typeLine(m, "corto")
	assert.Empty(t, m.status)
	assert.NotEqual(t, game.PhaseMus, tbl.State().Phase)
	assert.Equal(t, tbl.State().Version, m.state.Version, "model shows the latest snapshot")
}

func TestNarrativeIsAppendedOnce(t *testing.T) {
	t.Parallel()
	m, tbl := newTestModel(t)

	typeLine(m, "reparte")
	n := len(m.lines)
	require.NotZero(t, n)

	m.Update(stateMsg(tbl.State()))
	assert.Len(t, m.lines, n, "the same snapshot adds nothing")
}

func TestBadCommandShowsError(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t)

	typeLine(m, "farol")
	assert.Contains(t, m.status, "unknown command")
	assert.Empty(t, m.input.Value())
}

func TestFocusAndHelp(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, paneLog, m.focusedPane)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "descarto 1 3")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, paneInput, m.focusedPane)
}

func TestQuit(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())

	_, open := <-m.updates
	for open {
		_, open = <-m.updates
	}
	assert.False(t, open, "quitting unsubscribes")
}
