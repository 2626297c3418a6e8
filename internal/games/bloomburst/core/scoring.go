package core

// DensityThreshold is the number of occupied neighbours a cell needs to count
// as part of a cluster.
const DensityThreshold = 3

// Scores bundles the derived metrics of an arrangement.
type Scores struct {
	Density  float64        // Percent of cells with >= DensityThreshold occupied neighbours
	Symmetry float64        // Percent of cells matching their 180-degree counterpart
	Coverage int            // Hazard cells
	Counts   map[string]int // Piece type ID -> placed count
}

// ComputeScores evaluates every metric on s.
func ComputeScores(s Snapshot) Scores {
	return Scores{
		Density:  DensityScore(s),
		Symmetry: SymmetryScore(s),
		Coverage: s.HazardCount(),
		Counts:   PieceCounts(s),
	}
}

// DensityScore returns the percentage of cells whose 8 surrounding cells
// contain at least DensityThreshold occupied cells. Hazard cells never count
// as occupied.
func DensityScore(s Snapshot) float64 {
	total := s.Rows() * s.Cols()
	if total == 0 {
		return 0
	}

	qualifying := 0
	for r := 0; r < s.Rows(); r++ {
		for c := 0; c < s.Cols(); c++ {
			if occupiedNeighbours(s, C(r, c)) >= DensityThreshold {
				qualifying++
			}
		}
	}
	return 100 * float64(qualifying) / float64(total)
}

func occupiedNeighbours(s Snapshot, at Coord) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if s.At(at.Add(dr, dc)).IsOccupied() {
				n++
			}
		}
	}
	return n
}

// SymmetryScore returns the percentage of coordinates whose content equals
// that of their point reflection (rows-1-r, cols-1-c). The exact centre of a
// grid with odd rows and odd cols is skipped. Each coordinate is counted on
// its own, so a mirrored pair contributes twice to both terms.
func SymmetryScore(s Snapshot) float64 {
	rows, cols := s.Rows(), s.Cols()
	hasCentre := rows%2 == 1 && cols%2 == 1
	centre := C(rows/2, cols/2)

	counted, symmetric := 0, 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			at := C(r, c)
			if hasCentre && at == centre {
				continue
			}
			counted++
			if s.At(at) == s.At(C(rows-1-r, cols-1-c)) {
				symmetric++
			}
		}
	}
	if counted == 0 {
		return 100
	}
	return 100 * float64(symmetric) / float64(counted)
}

// PieceCounts returns the number of placed pieces per piece type ID.
func PieceCounts(s Snapshot) map[string]int {
	counts := make(map[string]int)
	for _, cell := range s.cells {
		if cell.IsOccupied() {
			counts[cell.Piece]++
		}
	}
	return counts
}
