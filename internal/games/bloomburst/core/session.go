package core

import (
	"fmt"
	"sort"
	"time"
)

// Mode selects the failure policy for a failed order check.
type Mode uint8

const (
	ModeStrict Mode = iota // A failed check ends the game
	ModeZen                // A failed check is advisory only
)

// String returns the string representation of a mode.
func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeZen:
		return "zen"
	default:
		return "unknown"
	}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "strict", "":
		return ModeStrict, true
	case "zen", "lenient":
		return ModeZen, true
	default:
		return ModeStrict, false
	}
}

// DefaultFulfillPoints is awarded per fulfilled order when the config leaves it unset.
const DefaultFulfillPoints = 100

// SessionConfig describes a round of play.
type SessionConfig struct {
	Rows          int
	Cols          int
	Catalog       *Catalog
	Hazard        HazardConfig
	Tools         map[string]int
	Preplaced     map[Coord]string // Piece type IDs placed before the first turn
	Objective     *RequirementSpec // Fixed objective; nil draws random orders
	FulfillPoints int
	Mode          Mode
}

// Status is the externally visible game status.
type Status struct {
	Terminal bool
	Cleared  bool // Fixed objective fulfilled
	Message  string
}

// TurnReport describes the pipeline run that closed a turn.
type TurnReport struct {
	Turn    int
	Hazard  TickResult
	Expired []string // Effects that ran out this turn
	Scores  Scores
}

// Session runs the turn pipeline: command -> hazard growth -> effects -> scoring,
// with order evaluation on request. It owns every piece of mutable game state.
type Session struct {
	catalog *Catalog
	grid    *Grid
	sim     *Simulator
	tools   *Toolbox
	gen     *Generator

	mode          Mode
	objective     *RequirementSpec
	requirement   Requirement
	fulfillPoints int

	baseGrowth   float64
	growthFactor float64

	effects        map[string]*Effect
	pendingEffects map[string]float64 // Remaining time restored from a record

	score     int
	turn      int
	fulfilled int
	over      bool
	cleared   bool
	message   string
	last      TurnReport
}

// NewSession validates cfg and sets up the board, hazard and first order.
func NewSession(cfg SessionConfig, rng Rand) (*Session, error) {
	if cfg.Catalog == nil {
		cfg.Catalog = DefaultCatalog()
	}
	grid := NewGrid(cfg.Rows, cfg.Cols)
	for _, at := range sortedCoords(cfg.Preplaced) {
		piece, err := cfg.Catalog.Lookup(cfg.Preplaced[at])
		if err != nil {
			return nil, fmt.Errorf("preplaced: %w", err)
		}
		if err := grid.Place(piece, at); err != nil {
			return nil, fmt.Errorf("preplaced: %w", err)
		}
	}

	sim, err := NewSimulator(grid, cfg.Hazard, rng)
	if err != nil {
		return nil, err
	}

	s := newSession(cfg, grid, sim, rng)
	s.nextRequirement()
	s.last = TurnReport{Scores: s.Scores(), Hazard: TickResult{Coverage: sim.Coverage(), Status: sim.Status()}}
	return s, nil
}

func newSession(cfg SessionConfig, grid *Grid, sim *Simulator, rng Rand) *Session {
	points := cfg.FulfillPoints
	if points <= 0 {
		points = DefaultFulfillPoints
	}
	var objective *RequirementSpec
	if cfg.Objective != nil {
		o := NewRequirement(*cfg.Objective).Spec()
		objective = &o
	}
	return &Session{
		catalog:        cfg.Catalog,
		grid:           grid,
		sim:            sim,
		tools:          NewToolbox(cfg.Tools),
		gen:            NewGenerator(rng),
		mode:           cfg.Mode,
		objective:      objective,
		fulfillPoints:  points,
		baseGrowth:     sim.GrowthRate(),
		growthFactor:   1,
		effects:        make(map[string]*Effect),
		pendingEffects: make(map[string]float64),
	}
}

func sortedCoords(m map[Coord]string) []Coord {
	coords := make([]Coord, 0, len(m))
	for c := range m {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Row != coords[j].Row {
			return coords[i].Row < coords[j].Row
		}
		return coords[i].Col < coords[j].Col
	})
	return coords
}

// nextRequirement installs the fixed objective or draws a random order.
func (s *Session) nextRequirement() {
	if s.objective != nil {
		s.requirement = NewRequirement(*s.objective)
		return
	}
	s.requirement = s.gen.Generate(s.catalog.AttributeDomains())
}

func (s *Session) checkOpen() error {
	if s.over || s.cleared {
		return ErrGameOver
	}
	return nil
}

// Place puts the piece with the given ID at c and closes the turn.
func (s *Session) Place(pieceID string, at Coord) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	piece, err := s.catalog.Lookup(pieceID)
	if err != nil {
		return err
	}
	if err := s.grid.Place(piece, at); err != nil {
		return err
	}
	s.endTurn()
	return nil
}

// Remove clears the piece at c and closes the turn.
func (s *Session) Remove(at Coord) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.grid.Remove(at); err != nil {
		return err
	}
	s.endTurn()
	return nil
}

// UseTool applies the named tool with its area's top-left corner at top and
// closes the turn. Returns the number of hazard cells cleared.
func (s *Session) UseTool(name string, top Coord) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	tool, err := s.tools.Get(name)
	if err != nil {
		return 0, err
	}
	cleared, err := tool.Clear(s.sim, top)
	if err != nil {
		return 0, err
	}
	s.endTurn()
	return cleared, nil
}

// Pass closes the turn without a command.
func (s *Session) Pass() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.endTurn()
	return nil
}

// endTurn runs hazard growth, turn-based effect countdown and scoring.
func (s *Session) endTurn() {
	s.turn++
	tick := s.sim.Tick()
	expired := s.tickEffects()

	s.last = TurnReport{
		Turn:    s.turn,
		Hazard:  tick,
		Expired: expired,
		Scores:  s.Scores(),
	}

	if tick.Status == HazardOverrun {
		s.over = true
		s.message = fmt.Sprintf("The creepers have overrun the garden (%d cells > %d)", tick.Coverage, s.sim.Ceiling())
	}
}

func (s *Session) tickEffects() []string {
	expired := make([]string, 0)
	for _, name := range s.EffectNames() {
		e := s.effects[name]
		if e.Base() != TimeBaseTurns {
			continue
		}
		done, _ := e.Tick()
		if done {
			expired = append(expired, name)
		}
	}
	return expired
}

// ElapseEffects advances wall-clock effects by d. Returns the names that expired.
func (s *Session) ElapseEffects(d time.Duration) []string {
	expired := make([]string, 0)
	for _, name := range s.EffectNames() {
		e := s.effects[name]
		if e.Base() != TimeBaseSeconds {
			continue
		}
		done, _ := e.Elapse(d)
		if done {
			expired = append(expired, name)
		}
	}
	return expired
}

// Check evaluates the current arrangement against the active order.
// A fulfilled random order awards points and is replaced; a fulfilled fixed
// objective clears the session. A failure ends a strict game.
func (s *Session) Check() (Evaluation, error) {
	if err := s.checkOpen(); err != nil {
		return Evaluation{}, err
	}

	snap := s.grid.Snapshot()
	ev := Evaluate(s.requirement, snap.Arrangement(), ComputeScores(snap))
	if ev.Fulfilled {
		s.score += s.fulfillPoints
		s.fulfilled++
		s.message = ev.Message
		if s.objective != nil {
			s.cleared = true
			return ev, nil
		}
		s.nextRequirement()
		return ev, nil
	}

	s.message = ev.Message
	if s.mode == ModeStrict {
		s.over = true
		s.message = ev.Message + " Game Over"
	}
	return ev, nil
}

// AddEffect registers a timed effect so the session ticks it each turn.
func (s *Session) AddEffect(e *Effect) error {
	if _, dup := s.effects[e.Name]; dup {
		return fmt.Errorf("effect %q already registered", e.Name)
	}
	if rem, ok := s.pendingEffects[e.Name]; ok {
		e.restore(rem)
		delete(s.pendingEffects, e.Name)
	}
	s.effects[e.Name] = e
	return nil
}

// Effect returns the registered effect with the given name.
func (s *Session) Effect(name string) (*Effect, bool) {
	e, ok := s.effects[name]
	return e, ok
}

// EffectNames returns registered effect names, sorted.
func (s *Session) EffectNames() []string {
	names := make([]string, 0, len(s.effects))
	for name := range s.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActivateEffect starts a registered effect.
func (s *Session) ActivateEffect(name string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	e, ok := s.effects[name]
	if !ok {
		return fmt.Errorf("effect %q: %w", name, ErrUnknownEffect)
	}
	return e.Activate()
}

// DeactivateEffect cancels a running effect.
func (s *Session) DeactivateEffect(name string) error {
	e, ok := s.effects[name]
	if !ok {
		return fmt.Errorf("effect %q: %w", name, ErrUnknownEffect)
	}
	return e.Deactivate()
}

// AddPoints adjusts the score. Used by effects.
func (s *Session) AddPoints(n int) {
	s.score += n
}

// SetBaseGrowthRate changes the unmodified hazard growth rate.
func (s *Session) SetBaseGrowthRate(rate float64) {
	s.baseGrowth = clampRate(rate)
	s.sim.SetGrowthRate(s.baseGrowth * s.growthFactor)
}

// ScaleGrowth multiplies the growth modifier by factor. Non-positive factors are ignored.
func (s *Session) ScaleGrowth(factor float64) {
	if factor <= 0 {
		return
	}
	s.growthFactor *= factor
	s.sim.SetGrowthRate(s.baseGrowth * s.growthFactor)
}

// BaseGrowthRate returns the growth rate before modifiers.
func (s *Session) BaseGrowthRate() float64 { return s.baseGrowth }

// Scores recomputes every metric from the current board.
func (s *Session) Scores() Scores {
	return ComputeScores(s.grid.Snapshot())
}

// Snapshot returns a read-only copy of the board.
func (s *Session) Snapshot() Snapshot { return s.grid.Snapshot() }

// Requirement returns the active order.
func (s *Session) Requirement() Requirement { return s.requirement }

// Catalog returns the piece catalog.
func (s *Session) Catalog() *Catalog { return s.catalog }

// Hazard returns the hazard simulator for read access.
func (s *Session) Hazard() *Simulator { return s.sim }

// Tools returns the toolbox.
func (s *Session) Tools() *Toolbox { return s.tools }

// Mode returns the failure policy in use.
func (s *Session) Mode() Mode { return s.mode }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Turn returns the number of completed turns.
func (s *Session) Turn() int { return s.turn }

// Fulfilled returns the number of orders fulfilled.
func (s *Session) Fulfilled() int { return s.fulfilled }

// LastTurn returns the report of the most recent turn.
func (s *Session) LastTurn() TurnReport { return s.last }

// Status returns the terminal flag and the latest diagnostic message.
func (s *Session) Status() Status {
	return Status{Terminal: s.over || s.cleared, Cleared: s.cleared, Message: s.message}
}
