package core

// CellKind is the content class of a grid cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellOccupied
	CellHazard
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellOccupied:
		return "occupied"
	case CellHazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Cell represents a single cell in the grid.
// Two cells hold identical content iff they compare equal.
type Cell struct {
	Kind  CellKind
	Piece string // Piece type ID, valid only when Kind is CellOccupied
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{Kind: CellEmpty}
}

// Occupied returns a cell holding the given piece type ID.
func Occupied(pieceID string) Cell {
	return Cell{Kind: CellOccupied, Piece: pieceID}
}

// Hazard returns a hazard cell.
func Hazard() Cell {
	return Cell{Kind: CellHazard}
}

// IsEmpty reports whether the cell holds nothing.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// IsOccupied reports whether the cell holds a piece.
func (c Cell) IsOccupied() bool { return c.Kind == CellOccupied }

// IsHazard reports whether the cell is covered by the hazard.
func (c Cell) IsHazard() bool { return c.Kind == CellHazard }
