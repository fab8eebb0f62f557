// Package tui is a terminal front end for one human seat. It renders the
// table from state snapshots and sends typed commands to the table; it
// holds no game rules of its own.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/musforbots/internal/game"
	"github.com/lox/musforbots/internal/table"
	"github.com/lox/musforbots/mus"
)

const (
	paneLog = iota
	paneInput
)

// Model is the Bubble Tea model for a human player at a table.
type Model struct {
	table  *table.Table
	me     game.PlayerID
	logger *log.Logger

	updates     <-chan game.State
	unsubscribe func()

	logViewport viewport.Model
	input       textinput.Model
	help        help.Model
	keys        keyMap

	state   game.State
	view    game.View
	lines   []string
	lastSeq int
	status  string

	focusedPane int
	showHelp    bool
	width       int
	height      int
	initialized bool
	quitting    bool
}

// stateMsg carries a table snapshot into the update loop.
type stateMsg game.State

// closedMsg reports that the table stopped publishing.
type closedMsg struct{}

// New returns a model for player me at tbl. It subscribes to the table
// straight away so no change is missed before the program starts.
func New(tbl *table.Table, me game.PlayerID, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "mus, corto, descarto 1 3, paso, envido 2, quiero, no, ordago..."
	ti.Focus()
	ti.CharLimit = 60
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(focusColor).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	updates, unsubscribe := tbl.Subscribe()
	m := &Model{
		table:       tbl,
		me:          me,
		logger:      logger.WithPrefix("tui"),
		updates:     updates,
		unsubscribe: unsubscribe,
		logViewport: vp,
		input:       ti,
		help:        help.New(),
		keys:        defaultKeyMap(),
		focusedPane: paneInput,
	}
	m.apply(tbl.State())
	return m
}

// Run starts the terminal program and blocks until the player quits.
func Run(tbl *table.Table, me game.PlayerID, logger *log.Logger) error {
	m := New(tbl, me, logger)
	defer m.unsubscribe()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Init starts listening for table snapshots.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForState())
}

func (m *Model) waitForState() tea.Cmd {
	ch := m.updates
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return stateMsg(s)
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case stateMsg:
		m.apply(game.State(msg))
		return m, m.waitForState()

	case closedMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("resized", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		case key.Matches(msg, m.keys.Focus):
			if m.focusedPane == paneLog {
				m.focusedPane = paneInput
				m.input.Focus()
			} else {
				m.focusedPane = paneLog
				m.input.Blur()
			}
			return m, nil
		case key.Matches(msg, m.keys.Submit) && m.focusedPane == paneInput:
			line := m.input.Value()
			m.input.SetValue("")
			return m, m.submit(line)
		case key.Matches(msg, m.keys.Help) && m.focusedPane == paneLog:
			m.showHelp = !m.showHelp
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == paneInput {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		m.logViewport, cmd = m.logViewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.unsubscribe()
	return tea.Sequence(tea.ClearScreen, tea.Quit)
}

// submit runs a prompt line against the table.
func (m *Model) submit(line string) tea.Cmd {
	c, err := parseCommand(line)
	if err != nil {
		m.status = ErrorStyle.Render(err.Error())
		return nil
	}

	switch c.name {
	case cmdQuit:
		return m.quit()
	case cmdHelp:
		m.showHelp = !m.showHelp
		m.status = ""
		return nil
	case cmdNext:
		if !next(m.table, m.me) {
			m.status = InfoStyle.Render("nothing to do, waiting for the table")
			return nil
		}
	default:
		if !c.run(m.table, m.me) {
			m.status = WarningStyle.Render(c.name + " is not allowed now")
			m.logger.Debug("command refused", "command", c.name, "phase", m.state.Phase, "sub", m.state.SubPhase)
			return nil
		}
	}
	m.status = ""
	m.apply(m.table.State())
	return nil
}

// apply takes a new snapshot and appends new narrative entries to the log.
func (m *Model) apply(s game.State) {
	if s.Log.Seq < m.lastSeq {
		m.lastSeq = 0
	}
	for _, e := range s.Log.Since(m.lastSeq) {
		m.lines = append(m.lines, renderEntry(e))
	}
	m.lastSeq = s.Log.Seq
	m.state = s
	m.view, _ = game.ViewFor(s, m.me)

	m.logViewport.SetContent(strings.Join(m.lines, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

func renderEntry(e game.Entry) string {
	switch e.Kind {
	case game.EntryScore:
		return SuccessStyle.Render(e.Text)
	case game.EntryBid:
		return ActionsStyle.Render(e.Text)
	case game.EntrySignal:
		return WarningStyle.Render(e.Text)
	case game.EntrySystem:
		return InfoStyle.Render("── " + e.Text + " ──")
	default:
		return LogStyle.Render(e.Text)
	}
}

// View renders the screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blurColor).
		Width(max(1, m.width-2)).
		Height(max(1, actionHeight))
	if m.focusedPane == paneInput {
		actionStyle = actionStyle.BorderForeground(focusColor)
	}
	actionPane := actionStyle.Render(actionContent)

	paneHeight := max(1, m.height-actionHeight-4)

	sidebarContent := m.renderSidebar()
	sidebarWidth := max(28, lipgloss.Width(sidebarContent))
	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blurColor).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(1, m.width-sidebarWidth-4)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blurColor).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == paneLog {
		logStyle = logStyle.BorderForeground(focusColor)
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) renderSidebar() string {
	var b strings.Builder
	s := m.state

	b.WriteString(HeaderStyle.Render(fmt.Sprintf("Ronda %d · %s", s.Round, s.Phase)))
	b.WriteString("\n\n")

	for _, team := range []game.Team{game.TeamA, game.TeamB} {
		ts := s.Ledger.Team(team)
		line := fmt.Sprintf("Equipo %s  %d+%d  vacas %d", team, ts.Markers, ts.Raw, ts.Matches)
		if ts.Adentro {
			line += " (adentro)"
		}
		if team == m.view.Team() {
			b.WriteString(SuccessStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, seat := range m.view.Seats {
		marker := "  "
		if seat.ID == s.Current {
			marker = "▸ "
		}
		name := seat.Name
		if seat.Mano {
			name += " (mano)"
		}
		if seat.IsBot {
			name += " ·bot"
		}
		line := fmt.Sprintf("%s%s [%s]", marker, name, seat.Team)
		if seat.PairsAnnounced {
			line += " " + yesNo("pares", seat.HasPairs)
		}
		if seat.GameAnnounced {
			line += " " + yesNo("juego", seat.HasGame)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if bet := m.view.Bet; bet.Active() {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Envite: %s %d", bet.Kind, bet.Amount)))
		b.WriteString("\n")
	}
	if m.view.Signal != game.SignalNone {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render("Compañero: " + m.view.Signal.Word()))
		b.WriteString("\n")
	}
	return b.String()
}

func yesNo(what string, yes bool) string {
	if yes {
		return what + " sí"
	}
	return what + " no"
}

func (m *Model) renderActionPane() string {
	var b strings.Builder

	if hand := m.view.Self.Hand; len(hand) > 0 {
		b.WriteString(HandInfoStyle.Render("Mano: "))
		b.WriteString(renderNumberedHand(hand))
		b.WriteString("\n")
	}
	b.WriteString(m.prompt())
	b.WriteString("\n")

	if m.showHelp {
		for _, h := range commandHelp {
			b.WriteString(InfoStyle.Render(h))
			b.WriteString("\n")
		}
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// prompt says what the table is waiting for.
func (m *Model) prompt() string {
	s := m.state
	switch {
	case s.TournamentOver:
		return SuccessStyle.Render(fmt.Sprintf("Equipo %s gana el torneo. Enter para empezar otro.", s.MatchWinner))
	case s.Phase == game.PhaseFinished:
		return SuccessStyle.Render(fmt.Sprintf("Equipo %s gana la partida. Enter para la siguiente.", s.MatchWinner))
	case s.Phase == game.PhaseScoring:
		return InfoStyle.Render("Mano terminada. Enter para repartir.")
	case s.SubPhase == game.SubDealing:
		return InfoStyle.Render("Enter para repartir.")
	case s.SubPhase == game.SubAnnouncing:
		return InfoStyle.Render("Declarando...")
	case s.Current != m.me:
		p, _ := s.CurrentPlayer()
		return InfoStyle.Render("Esperando a " + p.Name + "...")
	case s.SubPhase == game.SubMusDecision:
		return ActionsStyle.Render("¿Mus o corto?")
	case s.SubPhase == game.SubDiscarding:
		return ActionsStyle.Render("Descarta por posición, p. ej. descarto 1 3")
	}
	return ActionsStyle.Render("Puedes: " + renderValid(m.view.Valid))
}

func renderValid(valid []game.ValidBid) string {
	words := make([]string, 0, len(valid))
	for _, v := range valid {
		switch v.Kind {
		case game.BidPass:
			words = append(words, "paso")
		case game.BidRaise:
			words = append(words, fmt.Sprintf("envido %d-%d", v.MinAmount, v.MaxAmount))
		case game.BidRaiseAgain:
			words = append(words, "mas")
		case game.BidAllIn:
			words = append(words, "ordago")
		case game.BidAccept:
			words = append(words, "quiero")
		case game.BidDecline:
			words = append(words, "no")
		}
	}
	if len(words) == 0 {
		return "nada"
	}
	return strings.Join(words, ", ")
}

func renderNumberedHand(h mus.Hand) string {
	cards := make([]string, len(h))
	for i, c := range h {
		cards[i] = fmt.Sprintf("%d:%s", i+1, CardStyle(c).Render(c.Name()))
	}
	return strings.Join(cards, "  ")
}
