package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

// Replay browser layout constants
const (
	tableMinHeight = 3
	maxReplays     = 100 // Max replays to load
)

// ReplayStore lists and deletes saved replays. *storage.Store implements it.
type ReplayStore interface {
	ListReplays(limit int) ([]replay.Replay, error)
	DeleteReplay(id int64) error
}

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Run    key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Run, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Run, k.Delete, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "re-simulate"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for browsing saved replays.
type ReplaysModel struct {
	store    ReplayStore
	logger   *log.Logger
	replays  []replay.Replay
	table    table.Model
	help     help.Model
	keys     ReplaysKeyMap
	status   string
	width    int
	height   int
	quitting bool
}

// NewReplaysModel creates a replay browser and loads the most recent replays.
func NewReplaysModel(store ReplayStore, logger *log.Logger, width, height int) ReplaysModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := ReplaysModel{
		store:  store,
		logger: logger,
		keys:   DefaultReplaysKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Seed", Width: 20},
		{Title: "Ticks", Width: 8},
		{Title: "Jumps", Width: 7},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-8, tableMinHeight)), // Leave room for title, status, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ReplaysModel) loadReplays() {
	m.replays = nil
	if m.store != nil {
		reps, err := m.store.ListReplays(maxReplays)
		if err != nil {
			m.logger.Warn("could not list replays", "error", err)
			m.status = "could not list replays"
		} else {
			m.replays = reps
		}
	}

	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.Seed),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", len(r.Jumps)),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
}

// selected returns the replay under the cursor.
func (m ReplaysModel) selected() (replay.Replay, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return replay.Replay{}, false
	}
	return m.replays[i], true
}

// Status returns the last status line shown under the table.
func (m ReplaysModel) Status() string {
	return m.status
}

// Init initializes the replay browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Run):
			if rep, ok := m.selected(); ok {
				m.status = m.resimulate(rep)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if rep, ok := m.selected(); ok && m.store != nil {
				if err := m.store.DeleteReplay(rep.ID); err != nil {
					m.logger.Warn("could not delete replay", "id", rep.ID, "error", err)
					m.status = fmt.Sprintf("replay %d: delete failed", rep.ID)
				} else {
					m.status = fmt.Sprintf("replay %d deleted", rep.ID)
				}
				m.loadReplays()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadReplays()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ReplaysModel) resimulate(rep replay.Replay) string {
	res, err := replay.Run(rep, m.logger)
	if err != nil {
		m.logger.Warn("replay failed", "id", rep.ID, "error", err)
		return fmt.Sprintf("replay %d: %v", rep.ID, err)
	}
	if !res.Ended {
		return fmt.Sprintf("replay %d: score %d, still alive after %d ticks", rep.ID, res.Score, res.Ticks)
	}
	return fmt.Sprintf("replay %d: score %d in %d ticks", rep.ID, res.Score, res.Ticks)
}

// View renders the replay browser.
func (m ReplaysModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("REPLAYS"))
	b.WriteString("\n\n")

	if len(m.replays) == 0 {
		b.WriteString(statusStyle.Render("No replays yet. Play a round first."))
		b.WriteString("\n")
	} else {
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(tableStyle.Render(m.table.View()))
		b.WriteString("\n")
	}

	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunReplays starts the replay browser and returns its last status line.
func RunReplays(store ReplayStore, logger *log.Logger) (string, error) {
	model := NewReplaysModel(store, logger, 80, 24)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if rm, ok := final.(ReplaysModel); ok {
		return rm.Status(), nil
	}
	return "", nil
}
