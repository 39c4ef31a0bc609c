package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcane-flight/internal/core"
	"github.com/vovakirdan/arcane-flight/internal/metrics"
	"github.com/vovakirdan/arcane-flight/internal/registry"
)

// Store is the persistence the host needs: run history plus the best-score scalar.
type Store interface {
	core.BestStore
	SaveScore(gameID, character string, score int) (int64, error)
}

// errorer is implemented by games that report non-fatal storage or config problems.
type errorer interface {
	Err() error
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      Store
	logger     *log.Logger
	keys       KeyMap
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	lastErr    error
	gameErr    error // last error reported by the game, logged once
	quitting   bool
	scoreSaved bool // Whether the current game over has been recorded
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger routes non-fatal errors to logger.
func WithLogger(logger *log.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logger
	}
}

// NewModel creates a Bubble Tea model for the given game. A nil store disables persistence.
func NewModel(game registry.Game, store Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if p, ok := game.(registry.Persistent); ok && store != nil {
		p.SetBestStore(store)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		keys:       DefaultKeyMap(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	// Reset here rather than in Init: Init has a value receiver and
	// the first View may run before the first tick.
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
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
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		if _, err := m.saveScreenshot(); err != nil {
			m.logError(err)
		}
		return m, nil
	}

	if action := m.keys.Action(msg); action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse turns a left click into whatever the game says it means there.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	action := core.ActionJump
	if p, ok := m.game.(registry.Pointer); ok {
		action = p.PointerAction(msg.X, msg.Y, m.screen.Width(), m.screen.Height())
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize only changes the viewport. Games simulate in their own
// coordinates, so a run in progress survives.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	start := time.Now()
	result := m.game.Step(m.inputFrame)
	metrics.ObserveTick(time.Since(start))
	metrics.RecordStep(result)
	m.gameState = result.State

	m.recordGameOver()

	if e, ok := m.game.(errorer); ok {
		if err := e.Err(); err != nil && err != m.gameErr {
			m.gameErr = err
			m.logError(err)
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordGameOver saves a finished run once. Zero-score runs are not kept.
func (m *Model) recordGameOver() {
	if !m.gameState.GameOver {
		m.scoreSaved = false
		return
	}
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Variant, m.gameState.Score); err != nil {
		m.logError(err)
	}
}

func (m *Model) logError(err error) {
	m.lastErr = err
	if m.logger != nil {
		m.logger.Warn("game error", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot writes the current screen as text under ~/.arcade/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Err returns the last non-fatal error the host ran into.
func (m Model) Err() error {
	return m.lastErr
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for game on the local terminal.
func Run(game registry.Game, store Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
