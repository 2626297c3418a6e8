package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestScoreboardLoadsScores(t *testing.T) {
	store := openTestStore(t)
	for _, score := range []int{120, 300} {
		if _, err := store.SaveScore("stub", "s", score, 9); err != nil {
			t.Fatalf("SaveScore() error = %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	idx := -1
	for i, mode := range m.modes {
		if mode.ID == "stub" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("stub mode is not listed")
	}
	m.modeCursor = idx
	m.loadScores("stub")

	if len(m.scores) != 2 || m.scores[0].Score != 300 {
		t.Fatalf("scores = %+v, want 300 first", m.scores)
	}
	if m.stats == nil || m.stats.GamesCount != 2 {
		t.Fatalf("stats = %+v, want two rounds", m.stats)
	}
	if line := m.statsLine(); !strings.Contains(line, "2 rounds") || !strings.Contains(line, "best 300") {
		t.Errorf("statsLine() = %q", line)
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES - Stub Garden", "Modes", "Turns"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() is missing %q", want)
		}
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if m.showSidebar {
		t.Error("narrow scoreboard should hide the sidebar")
	}
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("View() should show the empty message")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}

	next, _ = m.Update(runes("q"))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}
