// Package core provides the game logic for the Bloom Burst arrangement puzzle.
// This package is UI-agnostic and deterministic for a given random source.
package core

import "fmt"

// Coord addresses a grid cell. Row grows downward, Col grows to the right.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns a new Coord offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// orthogonal lists the up, right, down, left offsets in that order.
var orthogonal = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// Orthogonal returns the four orthogonal neighbours of c (up, right, down, left).
// Neighbours may be out of bounds; callers filter with Grid.InBounds.
func (c Coord) Orthogonal() [4]Coord {
	var out [4]Coord
	for i, d := range orthogonal {
		out[i] = c.Add(d[0], d[1])
	}
	return out
}
