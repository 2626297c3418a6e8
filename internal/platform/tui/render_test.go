package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/bloom-burst/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "garden")
	s.DrawTextColor(0, 1, "rose", core.ColorRed)
	s.DrawTextColor(5, 1, "lily", core.ColorWhite)

	out := RenderScreen(s)

	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("line breaks = %d, want 2", got)
	}
	for _, want := range []string{"garden", "rose", "lily"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q", want)
		}
	}
}

func TestColorStylesCoverPalette(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abc", 6, " abc"},
		{"toolong", 4, "toolong"},
	}
	for _, tt := range tests {
		if got := centerText(tt.text, tt.width); got != tt.want {
			t.Errorf("centerText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
