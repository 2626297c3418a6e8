package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bloom-burst/internal/core"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, want SessionModel", next)
	}
	return sm
}

// selectStub moves the menu cursor to the stub mode and picks it.
func selectStub(t *testing.T, m SessionModel) SessionModel {
	t.Helper()
	for i, item := range m.menu.items {
		if item.GameID == "stub" {
			m.menu.cursor = i
		}
	}
	return sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.Address != ":23234" {
		t.Errorf("Address = %q", cfg.Address)
	}
	if cfg.DBPath != "~/.bloomburst/scores.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.TickRate <= 0 {
		t.Errorf("TickRate = %d, want positive", cfg.TickRate)
	}
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), log.New(io.Discard))

	m = selectStub(t, m)
	if m.gameModel == nil {
		t.Fatal("selecting a mode should start a round")
	}
	stub, ok := m.gameModel.game.(*stubGame)
	if !ok {
		t.Fatalf("game = %T, want *stubGame", m.gameModel.game)
	}
	if stub.resets != 1 {
		t.Errorf("resets = %d, want 1", stub.resets)
	}

	stub.state = core.GameState{GameOver: true}
	m = sessionUpdate(t, m, TickMsg{})
	m = sessionUpdate(t, m, runes("b"))
	if m.gameModel != nil {
		t.Fatal("b after game over should return to the menu")
	}
	if m.menu.Selected() != nil {
		t.Error("menu should be fresh after returning")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), log.New(io.Discard))

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.board == nil {
		t.Fatal("tab should open the scoreboard")
	}
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.board != nil {
		t.Error("esc should close the scoreboard")
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), log.New(io.Discard))
	m = selectStub(t, m)
	m = sessionUpdate(t, m, runes("q"))
	if !m.quitting || m.View() != "" {
		t.Error("q in a round should end the session")
	}
}
