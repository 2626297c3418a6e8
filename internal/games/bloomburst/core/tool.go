package core

import (
	"fmt"
	"sort"
)

// ToolAreaSize is the side length of the square a tool clears.
const ToolAreaSize = 2

// Tool is a limited-use hazard clearing tool (pruning shears).
type Tool struct {
	Name string
	uses int
}

// NewTool creates a tool with the given number of uses.
func NewTool(name string, uses int) *Tool {
	if uses < 0 {
		uses = 0
	}
	return &Tool{Name: name, uses: uses}
}

// Uses returns the number of uses remaining.
func (t *Tool) Uses() int { return t.uses }

// Clear removes every hazard cell in the 2x2 area whose top-left corner is top.
// A successful call always consumes one use, even when no hazard was present.
// Returns the number of cells cleared.
func (t *Tool) Clear(sim *Simulator, top Coord) (int, error) {
	if t.uses <= 0 {
		return 0, fmt.Errorf("%s: %w", t.Name, ErrOutOfTools)
	}
	bottom := top.Add(ToolAreaSize-1, ToolAreaSize-1)
	if !sim.grid.InBounds(top) || !sim.grid.InBounds(bottom) {
		return 0, fmt.Errorf("%s at %s: %w", t.Name, top, ErrAreaOutOfBounds)
	}

	cleared := 0
	for dr := 0; dr < ToolAreaSize; dr++ {
		for dc := 0; dc < ToolAreaSize; dc++ {
			if sim.grid.prune(top.Add(dr, dc)) {
				cleared++
			}
		}
	}
	sim.pruned(cleared)
	t.uses--
	return cleared, nil
}

// Toolbox holds independent tool instances by name.
type Toolbox struct {
	tools map[string]*Tool
}

// NewToolbox creates a toolbox from name -> uses.
func NewToolbox(uses map[string]int) *Toolbox {
	tb := &Toolbox{tools: make(map[string]*Tool, len(uses))}
	for name, n := range uses {
		tb.tools[name] = NewTool(name, n)
	}
	return tb
}

// Get returns the named tool.
func (tb *Toolbox) Get(name string) (*Tool, error) {
	t, ok := tb.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool %q: %w", name, ErrUnknownTool)
	}
	return t, nil
}

// Names returns the tool names, sorted.
func (tb *Toolbox) Names() []string {
	names := make([]string, 0, len(tb.tools))
	for name := range tb.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Uses returns name -> remaining uses.
func (tb *Toolbox) Uses() map[string]int {
	out := make(map[string]int, len(tb.tools))
	for name, t := range tb.tools {
		out[name] = t.uses
	}
	return out
}
