package core

import "fmt"

// Rand is the random source consumed by the simulator and the requirement
// generator. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// HazardStatus is the state of the hazard simulation.
type HazardStatus uint8

const (
	HazardGrowing HazardStatus = iota
	HazardContained
	HazardOverrun // Terminal
)

// String returns the string representation of a hazard status.
func (s HazardStatus) String() string {
	switch s {
	case HazardGrowing:
		return "growing"
	case HazardContained:
		return "contained"
	case HazardOverrun:
		return "overrun"
	default:
		return "unknown"
	}
}

// HazardConfig configures a Simulator.
type HazardConfig struct {
	Seeds      []Coord // Fixed growth origins
	GrowthRate float64 // Per-source spawn probability each tick (0.0-1.0)
	Ceiling    int     // Coverage above this is terminal
}

// TickResult reports what happened during one hazard tick.
type TickResult struct {
	Tick     uint64
	Spawned  []Coord
	Coverage int
	Status   HazardStatus
}

// Simulator spreads the hazard over empty cells.
//
// Growth rules per tick:
//  1. Sources are every seed location plus every hazard cell present at tick start
//  2. Each source with at least one Empty orthogonal neighbour rolls once against GrowthRate
//  3. On success one such neighbour, picked uniformly, becomes Hazard
//  4. Coverage is recounted from the grid; coverage > Ceiling is Overrun
type Simulator struct {
	grid       *Grid
	rng        Rand
	seeds      []Coord
	growthRate float64
	ceiling    int

	coverage int
	status   HazardStatus
	tick     uint64
}

// NewSimulator creates a simulator over grid. Empty seed cells are marked as
// hazard immediately; seeds on occupied cells stay roots without a marker.
func NewSimulator(grid *Grid, cfg HazardConfig, rng Rand) (*Simulator, error) {
	for _, s := range cfg.Seeds {
		if !grid.InBounds(s) {
			return nil, fmt.Errorf("hazard seed %s: %w", s, ErrOutOfBounds)
		}
	}

	sim := &Simulator{
		grid:       grid,
		rng:        rng,
		seeds:      append([]Coord(nil), cfg.Seeds...),
		growthRate: clampRate(cfg.GrowthRate),
		ceiling:    cfg.Ceiling,
	}
	for _, s := range sim.seeds {
		grid.spread(s)
	}
	sim.recount()
	return sim, nil
}

// restoreSimulator rebuilds a simulator without re-marking seeds.
func restoreSimulator(grid *Grid, cfg HazardConfig, rng Rand, status HazardStatus, tick uint64) *Simulator {
	sim := &Simulator{
		grid:       grid,
		rng:        rng,
		seeds:      append([]Coord(nil), cfg.Seeds...),
		growthRate: clampRate(cfg.GrowthRate),
		ceiling:    cfg.Ceiling,
		tick:       tick,
	}
	sim.coverage = grid.HazardCount()
	sim.status = status
	return sim
}

func clampRate(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Tick runs one growth pass. Once Overrun, Tick changes nothing.
func (s *Simulator) Tick() TickResult {
	if s.status == HazardOverrun {
		return TickResult{Tick: s.tick, Coverage: s.coverage, Status: s.status}
	}
	s.tick++

	result := TickResult{Tick: s.tick, Spawned: make([]Coord, 0)}
	for _, src := range s.sources() {
		open := s.openNeighbours(src)
		if len(open) == 0 {
			continue
		}
		if s.rng.Float64() >= s.growthRate {
			continue
		}
		target := open[s.rng.Intn(len(open))]
		if s.grid.spread(target) {
			result.Spawned = append(result.Spawned, target)
		}
	}

	s.recount()
	result.Coverage = s.coverage
	result.Status = s.status
	return result
}

// sources returns seeds followed by the hazard cells present now, deduplicated,
// in seed order then row-major order.
func (s *Simulator) sources() []Coord {
	seen := make(map[Coord]bool, len(s.seeds))
	out := make([]Coord, 0, len(s.seeds)+s.coverage)
	for _, c := range s.seeds {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for r := 0; r < s.grid.rows; r++ {
		for c := 0; c < s.grid.cols; c++ {
			coord := C(r, c)
			if seen[coord] || !s.grid.cells[s.grid.index(coord)].IsHazard() {
				continue
			}
			seen[coord] = true
			out = append(out, coord)
		}
	}
	return out
}

// openNeighbours returns the orthogonal neighbours of c that are Empty.
func (s *Simulator) openNeighbours(c Coord) []Coord {
	open := make([]Coord, 0, 4)
	for _, n := range c.Orthogonal() {
		if cell, err := s.grid.At(n); err == nil && cell.IsEmpty() {
			open = append(open, n)
		}
	}
	return open
}

// recount refreshes coverage from the grid and updates the status.
func (s *Simulator) recount() {
	s.coverage = s.grid.HazardCount()
	s.updateStatus()
}

func (s *Simulator) updateStatus() {
	if s.status == HazardOverrun {
		return
	}
	if s.coverage > s.ceiling {
		s.status = HazardOverrun
		return
	}
	for _, src := range s.sources() {
		if len(s.openNeighbours(src)) > 0 {
			s.status = HazardGrowing
			return
		}
	}
	s.status = HazardContained
}

// pruned records hazard cells removed out of band.
func (s *Simulator) pruned(n int) {
	s.coverage -= n
	if s.coverage < 0 {
		s.coverage = 0
	}
	s.updateStatus()
}

// Coverage returns the current number of hazard cells.
func (s *Simulator) Coverage() int { return s.coverage }

// Status returns the current hazard status.
func (s *Simulator) Status() HazardStatus { return s.status }

// Ceiling returns the configured coverage ceiling.
func (s *Simulator) Ceiling() int { return s.ceiling }

// GrowthRate returns the current spawn probability.
func (s *Simulator) GrowthRate() float64 { return s.growthRate }

// SetGrowthRate changes the spawn probability for subsequent ticks.
func (s *Simulator) SetGrowthRate(rate float64) {
	s.growthRate = clampRate(rate)
}

// Seeds returns a copy of the seed locations.
func (s *Simulator) Seeds() []Coord {
	return append([]Coord(nil), s.seeds...)
}

// Ticks returns the number of growth passes run so far.
func (s *Simulator) Ticks() uint64 { return s.tick }

// Terminal reports whether the hazard has overrun the grid.
func (s *Simulator) Terminal() bool { return s.status == HazardOverrun }
