package core

import "fmt"

// Record is a flat, serialisable form of a Session.
type Record struct {
	Rows        int               `json:"rows"`
	Cols        int               `json:"cols"`
	Cells       []CellRecord      `json:"cells"` // Non-empty cells only
	Hazard      HazardRecord      `json:"hazard"`
	Tools       map[string]int    `json:"tools"`
	Effects     []EffectRecord    `json:"effects,omitempty"` // Active effects only
	Requirement RequirementSpec   `json:"requirement"`
	Objective   *RequirementSpec  `json:"objective,omitempty"`
	Mode        string            `json:"mode"`
	Score       int               `json:"score"`
	Turn        int               `json:"turn"`
	Fulfilled   int               `json:"fulfilled"`
	Over        bool              `json:"over"`
	Cleared     bool              `json:"cleared"`
	Message     string            `json:"message,omitempty"`
	Points      int               `json:"points"`
	Meta        map[string]string `json:"meta,omitempty"` // Caller-owned labels (level id, ...)
}

// CellRecord is one non-empty cell.
type CellRecord struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Kind  string `json:"kind"` // "occupied" or "hazard"
	Piece string `json:"piece,omitempty"`
}

// HazardRecord holds the simulator state.
type HazardRecord struct {
	Seeds        []Coord `json:"seeds"`
	GrowthRate   float64 `json:"growth_rate"` // Base rate before modifiers
	GrowthFactor float64 `json:"growth_factor"`
	Ceiling      int     `json:"ceiling"`
	Status       string  `json:"status"`
	Ticks        uint64  `json:"ticks"`
}

// EffectRecord holds the remaining time of an active effect.
type EffectRecord struct {
	Name      string  `json:"name"`
	Remaining float64 `json:"remaining"`
}

// Record captures the session state.
func (s *Session) Record() Record {
	snap := s.grid.Snapshot()
	cells := make([]CellRecord, 0)
	for r := 0; r < snap.Rows(); r++ {
		for c := 0; c < snap.Cols(); c++ {
			cell := snap.At(C(r, c))
			if cell.IsEmpty() {
				continue
			}
			cells = append(cells, CellRecord{Row: r, Col: c, Kind: cell.Kind.String(), Piece: cell.Piece})
		}
	}

	effects := make([]EffectRecord, 0)
	for _, name := range s.EffectNames() {
		if e := s.effects[name]; e.Active() {
			effects = append(effects, EffectRecord{Name: name, Remaining: e.Remaining()})
		}
	}

	var objective *RequirementSpec
	if s.objective != nil {
		o := *s.objective
		objective = &o
	}

	return Record{
		Rows:  snap.Rows(),
		Cols:  snap.Cols(),
		Cells: cells,
		Hazard: HazardRecord{
			Seeds:        s.sim.Seeds(),
			GrowthRate:   s.baseGrowth,
			GrowthFactor: s.growthFactor,
			Ceiling:      s.sim.Ceiling(),
			Status:       s.sim.Status().String(),
			Ticks:        s.sim.Ticks(),
		},
		Tools:       s.tools.Uses(),
		Effects:     effects,
		Requirement: s.requirement.Spec(),
		Objective:   objective,
		Mode:        s.mode.String(),
		Score:       s.score,
		Turn:        s.turn,
		Fulfilled:   s.fulfilled,
		Over:        s.over,
		Cleared:     s.cleared,
		Message:     s.message,
		Points:      s.fulfillPoints,
	}
}

func parseHazardStatus(s string) (HazardStatus, bool) {
	switch s {
	case "growing":
		return HazardGrowing, true
	case "contained":
		return HazardContained, true
	case "overrun":
		return HazardOverrun, true
	default:
		return HazardGrowing, false
	}
}

// RestoreSession rebuilds a session from rec. Piece IDs are resolved against
// catalog. Effects listed in rec resume with their remaining time once the
// caller registers them with AddEffect; their applied state (score, growth
// modifier) is already part of the record.
func RestoreSession(rec Record, catalog *Catalog, rng Rand) (*Session, error) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	mode, ok := ParseMode(rec.Mode)
	if !ok {
		return nil, fmt.Errorf("restore: unknown mode %q", rec.Mode)
	}
	status, ok := parseHazardStatus(rec.Hazard.Status)
	if !ok {
		return nil, fmt.Errorf("restore: unknown hazard status %q", rec.Hazard.Status)
	}

	grid := NewGrid(rec.Rows, rec.Cols)
	for _, cr := range rec.Cells {
		at := C(cr.Row, cr.Col)
		switch cr.Kind {
		case "occupied":
			piece, err := catalog.Lookup(cr.Piece)
			if err != nil {
				return nil, fmt.Errorf("restore: %w", err)
			}
			if err := grid.Place(piece, at); err != nil {
				return nil, fmt.Errorf("restore: %w", err)
			}
		case "hazard":
			if !grid.spread(at) {
				return nil, fmt.Errorf("restore: hazard at %s: %w", at, ErrOccupiedSlot)
			}
		default:
			return nil, fmt.Errorf("restore: unknown cell kind %q", cr.Kind)
		}
	}
	for _, seed := range rec.Hazard.Seeds {
		if !grid.InBounds(seed) {
			return nil, fmt.Errorf("restore: hazard seed %s: %w", seed, ErrOutOfBounds)
		}
	}

	factor := rec.Hazard.GrowthFactor
	if factor <= 0 {
		factor = 1
	}
	cfg := HazardConfig{Seeds: rec.Hazard.Seeds, GrowthRate: rec.Hazard.GrowthRate * factor, Ceiling: rec.Hazard.Ceiling}
	sim := restoreSimulator(grid, cfg, rng, status, rec.Hazard.Ticks)

	s := newSession(SessionConfig{
		Catalog:       catalog,
		Tools:         rec.Tools,
		Objective:     rec.Objective,
		FulfillPoints: rec.Points,
		Mode:          mode,
	}, grid, sim, rng)
	s.baseGrowth = clampRate(rec.Hazard.GrowthRate)
	s.growthFactor = factor
	s.requirement = NewRequirement(rec.Requirement)
	s.score = rec.Score
	s.turn = rec.Turn
	s.fulfilled = rec.Fulfilled
	s.over = rec.Over
	s.cleared = rec.Cleared
	s.message = rec.Message
	for _, er := range rec.Effects {
		s.pendingEffects[er.Name] = er.Remaining
	}
	s.last = TurnReport{Turn: s.turn, Scores: s.Scores(), Hazard: TickResult{Tick: sim.Ticks(), Coverage: sim.Coverage(), Status: sim.Status()}}
	return s, nil
}
