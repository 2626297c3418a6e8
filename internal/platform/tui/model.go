package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/bloom-burst/internal/core"
	"github.com/vovakirdan/bloom-burst/internal/registry"
	"github.com/vovakirdan/bloom-burst/internal/storage"
)

// footerHeight is the number of rows reserved below the game screen.
const footerHeight = 1

// noticeMsg carries a one-line status for the footer.
type noticeMsg string

// Model is the Bubble Tea model for running a Bloom Burst mode.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	sessionID  string // Tags the score row of the current round
	resume     []byte // Saved state loaded on Init
	notice     string
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for storage events.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithResume restores a saved session once the game has been reset.
func WithResume(payload []byte) Option {
	return func(m *Model) {
		m.resume = payload
	}
}

// WithBackToMenu enables the key that leaves a finished or paused game.
func WithBackToMenu() Option {
	return func(m *Model) {
		m.keys.Back.SetEnabled(true)
	}
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		sessionID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// gameHeight returns the rows left for the game once the footer is drawn.
func gameHeight(h int) int {
	if h <= footerHeight {
		return 1
	}
	return h - footerHeight
}

// runtimeConfig returns the config handed to the game.
func (m Model) runtimeConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.runtimeConfig())
	// Note: gameState will be set on first tick (value receiver limitation)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.resume != nil {
		cmds = append(cmds, m.restore())
	}
	return tea.Batch(cmds...)
}

// restore loads the saved state into the freshly reset game.
func (m Model) restore() tea.Cmd {
	saver, ok := m.game.(registry.Saver)
	if !ok {
		return noticeCmd("This mode cannot be resumed")
	}
	if err := saver.LoadState(m.resume); err != nil {
		m.logger.Warn("could not resume game", "game", m.game.ID(), "error", err)
		return noticeCmd("Could not resume: " + err.Error())
	}
	m.logger.Info("game resumed", "game", m.game.ID())
	return noticeCmd("Resumed saved garden")
}

func noticeCmd(s string) tea.Cmd {
	return func() tea.Msg { return noticeMsg(s) }
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case noticeMsg:
		m.notice = string(msg)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
		}
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.saveGame()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
// The game lays itself out on every render, so the round keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A restart opens a new round with its own score row.
	if wasOver && !m.gameState.GameOver {
		m.sessionID = uuid.NewString()
		m.scoreSaved = false
		m.notice = ""
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished round. Errors are logged, play continues.
func (m *Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	turns := 0
	if tc, ok := m.game.(registry.TurnCounter); ok {
		turns = tc.Turns()
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.sessionID, m.gameState.Score, turns); err != nil {
		m.logger.Error("could not save score", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Debug("score saved", "game", m.game.ID(), "score", m.gameState.Score, "turns", turns)
}

// saveGame stores the running session so it can be resumed later.
func (m *Model) saveGame() {
	saver, ok := m.game.(registry.Saver)
	switch {
	case !ok:
		m.notice = "This mode cannot be saved"
		return
	case m.store == nil:
		m.notice = "No database, the game cannot be saved"
		return
	case m.game.State().GameOver:
		m.notice = "Nothing to save, the round is over"
		return
	}

	data, err := saver.SaveState()
	if err != nil {
		m.logger.Error("could not encode game", "game", m.game.ID(), "error", err)
		m.notice = "Save failed: " + err.Error()
		return
	}
	id, err := m.store.SaveGame(m.game.ID(), data)
	if err != nil {
		m.logger.Error("could not save game", "game", m.game.ID(), "error", err)
		m.notice = "Save failed: " + err.Error()
		return
	}
	m.logger.Info("game saved", "game", m.game.ID(), "id", id)
	m.notice = "Garden saved (" + id[:8] + ")"
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.notice = "Screenshot failed: " + err.Error()
		return
	}
	dir := filepath.Join(home, ".bloomburst", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.notice = "Screenshot failed: " + err.Error()
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.notice = "Screenshot failed: " + err.Error()
		return
	}
	m.notice = "Screenshot saved to " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + m.footer()
}

// footer renders the notice, or the help line when there is nothing to say.
func (m Model) footer() string {
	if m.notice != "" {
		return theme.Notice.Render(m.notice)
	}
	return m.help.View(m.keys)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
