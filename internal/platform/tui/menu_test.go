package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bloom-burst/internal/core"
)

func TestMenuListsModes(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())
	if len(m.items) == 0 {
		t.Fatal("menu has no items")
	}
	if !strings.Contains(m.View(), "Stub Garden") {
		t.Error("View() should list the stub mode")
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if cmd == nil {
		t.Error("select should quit the menu program")
	}
	if m.Selected() == nil {
		t.Fatal("Selected() = nil after enter")
	}

	res := m.result()
	if res.GameID != m.items[0].GameID || res.Quit || res.WantsScoreboard {
		t.Errorf("result() = %+v", res)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).result().WantsScoreboard {
		t.Error("tab should open the scoreboard")
	}

	next, _ = m.Update(runes("q"))
	if !next.(MenuModel).result().Quit {
		t.Error("q should quit")
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	cfg := next.(MenuModel).Config()
	if cfg.ScreenW != 100 || cfg.ScreenH != 30 {
		t.Errorf("Config() = %dx%d, want 100x30", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestLevelMenu(t *testing.T) {
	items := []LevelItem{
		{ID: "first_bouquet", Name: "First Bouquet"},
		{ID: "sunset_serenade", Name: "Sunset Serenade"},
	}

	tests := []struct {
		name string
		keys []tea.KeyMsg
		want string
	}{
		{"from beginning", []tea.KeyMsg{{Type: tea.KeyEnter}}, ""},
		{"second level", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyEnter}}, "sunset_serenade"},
		{"down stops at last", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyEnter}}, "sunset_serenade"},
		{"up stops at top", []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyDown}, {Type: tea.KeyEnter}}, "first_bouquet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = NewLevelMenuModel(items, 80, 24)
			for _, k := range tt.keys {
				m, _ = m.Update(k)
			}
			sel := m.(LevelMenuModel).Selected()
			if sel == nil {
				t.Fatal("Selected() = nil")
			}
			if sel.LevelID != tt.want {
				t.Errorf("LevelID = %q, want %q", sel.LevelID, tt.want)
			}
		})
	}
}

func TestLevelMenuBack(t *testing.T) {
	m := NewLevelMenuModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No levels found") {
		t.Error("empty picker should say so")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	lm := next.(LevelMenuModel)
	if !lm.WantsBack() {
		t.Error("WantsBack() = false after esc")
	}
	if lm.Selected() != nil {
		t.Error("Selected() should be nil after back")
	}
}

func TestLevelMenuScrolls(t *testing.T) {
	items := make([]LevelItem, 20)
	for i := range items {
		items[i] = LevelItem{ID: string(rune('a' + i)), Name: string(rune('A' + i))}
	}
	var m tea.Model = NewLevelMenuModel(items, 80, 14) // Four visible rows
	for range 10 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	lm := m.(LevelMenuModel)
	if lm.scrollOffset != 6 {
		t.Errorf("scrollOffset = %d, want 6", lm.scrollOffset)
	}
	if !strings.Contains(lm.View(), "more above") {
		t.Error("View() should show the upper scroll hint")
	}
}
