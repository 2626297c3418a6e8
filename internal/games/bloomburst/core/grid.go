package core

import "fmt"

// Grid is the game board. Cells are stored in row-major order: index = row*cols + col.
// The grid owns its cells; external code mutates them only through Place and
// Remove, and hazard cells only change through the Simulator and Tool.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
	types map[string]PieceType // Piece types that have been placed, by ID
}

// NewGrid creates an empty grid with the given dimensions.
// Non-positive dimensions are raised to 1.
func NewGrid(rows, cols int) *Grid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
		types: make(map[string]PieceType),
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Row*g.cols + c.Col
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the cell at c, or ErrOutOfBounds.
func (g *Grid) At(c Coord) (Cell, error) {
	if !g.InBounds(c) {
		return Cell{}, fmt.Errorf("cell %s in %dx%d grid: %w", c, g.rows, g.cols, ErrOutOfBounds)
	}
	return g.cells[g.index(c)], nil
}

// Place puts piece at c. The target must be in bounds and Empty.
func (g *Grid) Place(piece PieceType, c Coord) error {
	if piece.ID == "" {
		return fmt.Errorf("place at %s: %w", c, ErrUnknownPieceType)
	}
	if !g.InBounds(c) {
		return fmt.Errorf("place %s at %s: %w", piece.ID, c, ErrOutOfBounds)
	}
	i := g.index(c)
	if !g.cells[i].IsEmpty() {
		return fmt.Errorf("place %s at %s: %w", piece.ID, c, ErrOccupiedSlot)
	}
	g.cells[i] = Occupied(piece.ID)
	g.types[piece.ID] = piece
	return nil
}

// Remove clears the piece at c. The target must be in bounds and Occupied.
func (g *Grid) Remove(c Coord) error {
	if !g.InBounds(c) {
		return fmt.Errorf("remove at %s: %w", c, ErrOutOfBounds)
	}
	i := g.index(c)
	if !g.cells[i].IsOccupied() {
		return fmt.Errorf("remove at %s: %w", c, ErrEmptySlot)
	}
	g.cells[i] = Empty()
	return nil
}

// spread marks an Empty cell as hazard. Returns false if c is not Empty.
func (g *Grid) spread(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	i := g.index(c)
	if !g.cells[i].IsEmpty() {
		return false
	}
	g.cells[i] = Hazard()
	return true
}

// prune clears a hazard cell. Returns false if c is not a hazard.
func (g *Grid) prune(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	i := g.index(c)
	if !g.cells[i].IsHazard() {
		return false
	}
	g.cells[i] = Empty()
	return true
}

// HazardCount counts hazard cells directly from the grid.
func (g *Grid) HazardCount() int {
	count := 0
	for _, cell := range g.cells {
		if cell.IsHazard() {
			count++
		}
	}
	return count
}

// OccupiedCount returns the number of cells holding a piece.
func (g *Grid) OccupiedCount() int {
	count := 0
	for _, cell := range g.cells {
		if cell.IsOccupied() {
			count++
		}
	}
	return count
}

// Arrangement returns the placed piece types in row-major order.
func (g *Grid) Arrangement() []PieceType {
	return g.Snapshot().Arrangement()
}

// Snapshot returns a read-only copy of the board.
func (g *Grid) Snapshot() Snapshot {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	types := make(map[string]PieceType, len(g.types))
	for id, p := range g.types {
		types[id] = p
	}
	return Snapshot{rows: g.rows, cols: g.cols, cells: cells, types: types}
}

// Snapshot is an immutable copy of a grid used for scoring and rendering.
type Snapshot struct {
	rows  int
	cols  int
	cells []Cell
	types map[string]PieceType
}

// Rows returns the number of rows.
func (s Snapshot) Rows() int { return s.rows }

// Cols returns the number of columns.
func (s Snapshot) Cols() int { return s.cols }

// InBounds returns true if the coordinate is within the snapshot.
func (s Snapshot) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < s.rows && c.Col >= 0 && c.Col < s.cols
}

// At returns the cell at c. Out-of-bounds coordinates read as Empty.
func (s Snapshot) At(c Coord) Cell {
	if !s.InBounds(c) {
		return Empty()
	}
	return s.cells[c.Row*s.cols+c.Col]
}

// Piece resolves the piece type held by an occupied cell.
func (s Snapshot) Piece(c Coord) (PieceType, bool) {
	cell := s.At(c)
	if !cell.IsOccupied() {
		return PieceType{}, false
	}
	p, ok := s.types[cell.Piece]
	return p, ok
}

// Arrangement returns the placed piece types in row-major order.
func (s Snapshot) Arrangement() []PieceType {
	out := make([]PieceType, 0)
	for _, cell := range s.cells {
		if !cell.IsOccupied() {
			continue
		}
		if p, ok := s.types[cell.Piece]; ok {
			out = append(out, p)
		}
	}
	return out
}

// HazardCount returns the number of hazard cells in the snapshot.
func (s Snapshot) HazardCount() int {
	count := 0
	for _, cell := range s.cells {
		if cell.IsHazard() {
			count++
		}
	}
	return count
}

// Cells returns a copy of the cells in row-major order.
func (s Snapshot) Cells() []Cell {
	return append([]Cell(nil), s.cells...)
}
