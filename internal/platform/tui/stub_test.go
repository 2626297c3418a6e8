package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bloom-burst/internal/core"
	"github.com/vovakirdan/bloom-burst/internal/registry"
	"github.com/vovakirdan/bloom-burst/internal/storage"
)

// stubGame records what the platform hands it.
type stubGame struct {
	resets int
	steps  []core.InputFrame
	state  core.GameState
	turns  int
	loaded []byte
}

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub Garden" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub garden") }
func (g *stubGame) State() core.GameState   { return g.state }
func (g *stubGame) Turns() int              { return g.turns }

func (g *stubGame) SaveState() ([]byte, error) { return []byte(`{"stub":true}`), nil }

func (g *stubGame) LoadState(data []byte) error {
	g.loaded = data
	return nil
}

func (g *stubGame) lastStep(t *testing.T) core.InputFrame {
	t.Helper()
	if len(g.steps) == 0 {
		t.Fatal("game was never stepped")
	}
	return g.steps[len(g.steps)-1]
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
