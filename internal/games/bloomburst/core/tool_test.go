package core

import (
	"errors"
	"testing"
)

func TestToolClearConsumesUse(t *testing.T) {
	tests := []struct {
		name        string
		seeds       []Coord
		top         Coord
		wantCleared int
	}{
		{"no hazard in area", nil, C(2, 2), 0},
		{"one hazard", []Coord{C(0, 1)}, C(0, 0), 1},
		{"full area", []Coord{C(0, 0), C(0, 1), C(1, 0), C(1, 1)}, C(0, 0), 4},
		{"hazard outside area", []Coord{C(3, 3)}, C(0, 0), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid(4, 4)
			sim, err := NewSimulator(g, HazardConfig{Seeds: tc.seeds, Ceiling: 16}, never())
			if err != nil {
				t.Fatalf("NewSimulator failed: %v", err)
			}
			tool := NewTool("shears", 3)

			cleared, err := tool.Clear(sim, tc.top)
			if err != nil {
				t.Fatalf("Clear failed: %v", err)
			}
			if cleared != tc.wantCleared {
				t.Errorf("cleared = %d, want %d", cleared, tc.wantCleared)
			}
			if tool.Uses() != 2 {
				t.Errorf("Uses() = %d, want 2", tool.Uses())
			}
			if sim.Coverage() != g.HazardCount() {
				t.Errorf("Coverage() = %d, grid has %d", sim.Coverage(), g.HazardCount())
			}
		})
	}
}

func TestToolClearLeavesPieces(t *testing.T) {
	g := NewGrid(2, 2)
	g.Place(mustPiece(t, "rose"), C(0, 0))
	sim, _ := NewSimulator(g, HazardConfig{Seeds: []Coord{C(1, 1)}, Ceiling: 4}, never())

	cleared, err := NewTool("shears", 1).Clear(sim, C(0, 0))
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if cleared != 1 {
		t.Errorf("cleared = %d, want 1", cleared)
	}
	if cell, _ := g.At(C(0, 0)); !cell.IsOccupied() {
		t.Error("Clear removed a piece")
	}
}

func TestToolClearErrors(t *testing.T) {
	tests := []struct {
		name string
		uses int
		top  Coord
		want error
	}{
		{"out of tools", 0, C(0, 0), ErrOutOfTools},
		{"past bottom edge", 2, C(3, 0), ErrAreaOutOfBounds},
		{"past right edge", 2, C(0, 3), ErrAreaOutOfBounds},
		{"negative corner", 2, C(-1, 0), ErrAreaOutOfBounds},
		{"out of tools wins over bounds", 0, C(9, 9), ErrOutOfTools},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid(4, 4)
			sim, _ := NewSimulator(g, HazardConfig{Seeds: []Coord{C(3, 3), C(0, 3)}, Ceiling: 16}, never())
			tool := NewTool("shears", tc.uses)

			_, err := tool.Clear(sim, tc.top)
			if !errors.Is(err, tc.want) {
				t.Errorf("Clear = %v, want %v", err, tc.want)
			}
			if tool.Uses() != tc.uses {
				t.Errorf("failed Clear changed uses from %d to %d", tc.uses, tool.Uses())
			}
			if g.HazardCount() != 2 || sim.Coverage() != 2 {
				t.Error("failed Clear changed the hazard")
			}
		})
	}
}

func TestToolboxIndependentTools(t *testing.T) {
	g := NewGrid(4, 4)
	sim, _ := NewSimulator(g, HazardConfig{Ceiling: 16}, never())
	tb := NewToolbox(map[string]int{"gloves": 1, "shears": 3})

	shears, err := tb.Get("shears")
	if err != nil {
		t.Fatalf("Get(shears) failed: %v", err)
	}
	shears.Clear(sim, C(0, 0))

	if got := tb.Uses(); got["shears"] != 2 || got["gloves"] != 1 {
		t.Errorf("Uses() = %v, want shears 2, gloves 1", got)
	}
	if _, err := tb.Get("rake"); !errors.Is(err, ErrUnknownTool) {
		t.Errorf("Get(rake) = %v, want ErrUnknownTool", err)
	}
	if names := tb.Names(); len(names) != 2 || names[0] != "gloves" {
		t.Errorf("Names() = %v, want sorted [gloves shears]", names)
	}
}
