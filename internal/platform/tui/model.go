package tui

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/game"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

// ReplaySaver persists finished attempts. *storage.Store implements it.
type ReplaySaver interface {
	SaveReplay(r replay.Replay) (int64, error)
}

// Options configure a play model. Only Game and Runtime are required.
type Options struct {
	Game    config.GameConfig
	Runtime core.RuntimeConfig
	Assets  fs.FS       // nil uses the embedded assets
	Store   ReplaySaver // nil disables replay recording
	Logger  *log.Logger // nil discards
}

// Model is the Bubble Tea model for a flappy session.
type Model struct {
	session    *game.Session
	recorder   *replay.Recorder
	store      ReplaySaver
	logger     *log.Logger
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	quitting   bool
}

// NewModel creates a play model and starts loading its assets.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fsys := opts.Assets
	if fsys == nil {
		fsys = assets.EmbeddedFS()
	}

	session, err := game.NewSession(opts.Game, game.Deps{
		Logger: logger,
		Assets: assets.LoadBundle(assets.NewServer(fsys)),
		Seed:   cfg.Seed,
	})
	if err != nil {
		return Model{}, err
	}
	logger.Info("session created", "seed", cfg.Seed, "tick_rate", cfg.TickRate)

	return Model{
		session:    session,
		recorder:   replay.NewRecorder(opts.Game, cfg.TickRate),
		store:      opts.Store,
		logger:     logger,
		screen:     core.NewScreen(cfg.ScreenW, playRows(cfg.ScreenH)),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}, nil
}

// playRows leaves one row for the help line.
func playRows(h int) int {
	return core.Max(h-1, 1)
}

// Session returns the underlying game session.
func (m Model) Session() *game.Session {
	return m.session
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playRows(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick advances the session by one fixed tick.
// dt is always 1/tick_rate, the same step replay.Run uses.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.recorder.Observe(m.session, m.inputFrame)
	res := m.session.Tick(m.inputFrame, m.config.TickSeconds())
	if res.Ended != nil {
		m.saveReplay(*res.Ended)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

func (m Model) saveReplay(sum game.AttemptSummary) {
	rep := m.recorder.Finish(sum)
	if m.store == nil {
		return
	}
	// Best-effort save, the session continues regardless
	id, err := m.store.SaveReplay(rep)
	if err != nil {
		m.logger.Warn("could not save replay", "error", err)
		return
	}
	m.logger.Debug("replay saved", "id", id, "score", sum.Score, "ticks", sum.Ticks)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("flappy_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot not written", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for a local play session.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
