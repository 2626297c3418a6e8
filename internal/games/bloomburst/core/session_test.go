package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func redOrder() *RequirementSpec {
	return &RequirementSpec{Attributes: map[string]string{"color": "red"}}
}

func newTestSession(t *testing.T, cfg SessionConfig, rng Rand) *Session {
	t.Helper()
	if cfg.Rows == 0 {
		cfg.Rows, cfg.Cols = 5, 5
	}
	if cfg.Hazard.Ceiling == 0 {
		cfg.Hazard.Ceiling = 10
	}
	s, err := NewSession(cfg, rng)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestCheckStrictFailureEndsGame(t *testing.T) {
	s := newTestSession(t, SessionConfig{Objective: redOrder(), Mode: ModeStrict}, never())
	if err := s.Place("tulip", C(0, 0)); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	ev, err := s.Check()
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if ev.Fulfilled {
		t.Fatal("tulip fulfilled a red order")
	}
	st := s.Status()
	if !st.Terminal || st.Cleared {
		t.Errorf("Status = %+v, want terminal and not cleared", st)
	}
	if !strings.HasSuffix(st.Message, "Game Over") {
		t.Errorf("Message = %q, want Game Over suffix", st.Message)
	}
	if err := s.Place("rose", C(1, 1)); !errors.Is(err, ErrGameOver) {
		t.Errorf("Place after game over = %v, want ErrGameOver", err)
	}
	if _, err := s.Check(); !errors.Is(err, ErrGameOver) {
		t.Errorf("Check after game over = %v, want ErrGameOver", err)
	}
}

func TestCheckZenFailureContinues(t *testing.T) {
	s := newTestSession(t, SessionConfig{Objective: redOrder(), Mode: ModeZen}, never())

	ev, _ := s.Check()
	if ev.Fulfilled {
		t.Fatal("empty board fulfilled a red order")
	}
	if s.Status().Terminal {
		t.Fatal("zen failure ended the game")
	}
	if s.Status().Message != ev.Message {
		t.Errorf("Message = %q, want %q", s.Status().Message, ev.Message)
	}

	if err := s.Place("crimson_rose", C(2, 2)); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	ev, _ = s.Check()
	if !ev.Fulfilled {
		t.Fatalf("crimson rose did not fulfill a red order: %s", ev.Message)
	}
	st := s.Status()
	if !st.Terminal || !st.Cleared {
		t.Errorf("Status = %+v, want cleared", st)
	}
	if s.Score() != DefaultFulfillPoints {
		t.Errorf("Score() = %d, want %d", s.Score(), DefaultFulfillPoints)
	}
}

func TestCheckRandomOrdersRegenerate(t *testing.T) {
	s := newTestSession(t, SessionConfig{FulfillPoints: 150}, never())

	for i := 1; i <= 3; i++ {
		ev, err := s.Check()
		if err != nil {
			t.Fatalf("Check %d failed: %v", i, err)
		}
		if !ev.Fulfilled {
			t.Fatalf("open order %d not fulfilled: %s", i, ev.Message)
		}
	}
	if s.Score() != 450 || s.Fulfilled() != 3 {
		t.Errorf("Score/Fulfilled = %d/%d, want 450/3", s.Score(), s.Fulfilled())
	}
	if s.Status().Terminal {
		t.Error("random orders should keep the game running")
	}
	if s.Turn() != 0 {
		t.Errorf("Check advanced the turn to %d", s.Turn())
	}
}

func TestFailedCommandsKeepTurn(t *testing.T) {
	s := newTestSession(t, SessionConfig{
		Hazard: HazardConfig{Seeds: []Coord{C(4, 4)}, GrowthRate: 1, Ceiling: 20},
		Tools:  map[string]int{"shears": 1},
	}, always())

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"unknown piece", func() error { return s.Place("cactus", C(0, 0)) }, ErrUnknownPieceType},
		{"out of bounds", func() error { return s.Place("rose", C(5, 0)) }, ErrOutOfBounds},
		{"onto hazard", func() error { return s.Place("rose", C(4, 4)) }, ErrOccupiedSlot},
		{"remove empty", func() error { return s.Remove(C(0, 0)) }, ErrEmptySlot},
		{"unknown tool", func() error { _, err := s.UseTool("rake", C(0, 0)); return err }, ErrUnknownTool},
		{"tool off board", func() error { _, err := s.UseTool("shears", C(4, 4)); return err }, ErrAreaOutOfBounds},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
			if s.Turn() != 0 || s.Hazard().Ticks() != 0 {
				t.Errorf("failed command advanced the turn: turn %d, ticks %d", s.Turn(), s.Hazard().Ticks())
			}
		})
	}
	if uses := s.Tools().Uses()["shears"]; uses != 1 {
		t.Errorf("shears uses = %d, want 1", uses)
	}
}

func TestTurnPipeline(t *testing.T) {
	s := newTestSession(t, SessionConfig{
		Hazard: HazardConfig{Seeds: []Coord{C(0, 0)}, GrowthRate: 1, Ceiling: 20},
		Tools:  map[string]int{"shears": 2},
	}, always())

	if err := s.Place("rose", C(4, 4)); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	rep := s.LastTurn()
	if rep.Turn != 1 || rep.Hazard.Tick != 1 {
		t.Errorf("report turn/tick = %d/%d, want 1/1", rep.Turn, rep.Hazard.Tick)
	}
	if rep.Hazard.Coverage != 2 || rep.Scores.Coverage != 2 {
		t.Errorf("coverage = %d/%d, want 2", rep.Hazard.Coverage, rep.Scores.Coverage)
	}

	cleared, err := s.UseTool("shears", C(0, 0))
	if err != nil {
		t.Fatalf("UseTool failed: %v", err)
	}
	if cleared != 2 {
		t.Errorf("cleared = %d, want 2", cleared)
	}
	if s.Turn() != 2 {
		t.Errorf("Turn() = %d, want 2", s.Turn())
	}
	// The seed regrows during the same turn's hazard step.
	if got, want := s.Hazard().Coverage(), s.Snapshot().HazardCount(); got != want {
		t.Errorf("Coverage() = %d, grid has %d", got, want)
	}

	if err := s.Remove(C(4, 4)); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := s.Pass(); err != nil {
		t.Fatalf("Pass failed: %v", err)
	}
	if s.Turn() != 4 {
		t.Errorf("Turn() = %d, want 4", s.Turn())
	}
}

func TestOverrunEndsSession(t *testing.T) {
	s := newTestSession(t, SessionConfig{
		Rows: 3, Cols: 3,
		Hazard: HazardConfig{Seeds: []Coord{C(1, 1)}, GrowthRate: 1, Ceiling: 2},
	}, always())

	var err error
	for i := 0; i < 10 && err == nil; i++ {
		err = s.Pass()
	}
	if !errors.Is(err, ErrGameOver) {
		t.Fatalf("Pass loop ended with %v, want ErrGameOver", err)
	}
	st := s.Status()
	if !st.Terminal || !strings.Contains(st.Message, "overrun") {
		t.Errorf("Status = %+v, want overrun", st)
	}
	if s.Hazard().Status() != HazardOverrun {
		t.Errorf("hazard status = %v", s.Hazard().Status())
	}
}

func TestPreplacedPieces(t *testing.T) {
	s := newTestSession(t, SessionConfig{Preplaced: map[Coord]string{C(2, 2): "sunflower"}}, never())
	if p, ok := s.Snapshot().Piece(C(2, 2)); !ok || p.ID != "sunflower" {
		t.Errorf("Piece(2,2) = %v, %v; want sunflower", p, ok)
	}

	_, err := NewSession(SessionConfig{Rows: 2, Cols: 2, Preplaced: map[Coord]string{C(0, 0): "cactus"}}, never())
	if !errors.Is(err, ErrUnknownPieceType) {
		t.Errorf("NewSession with unknown preplaced piece = %v", err)
	}
}

func slowCreepers(s *Session) *Effect {
	return NewEffect("slow", 0.5, 3, TimeBaseTurns,
		func(m float64) { s.ScaleGrowth(m) },
		func(m float64) { s.ScaleGrowth(1 / m) })
}

func TestSessionEffects(t *testing.T) {
	s := newTestSession(t, SessionConfig{Hazard: HazardConfig{GrowthRate: 0.4, Ceiling: 10}}, never())
	if err := s.AddEffect(slowCreepers(s)); err != nil {
		t.Fatalf("AddEffect failed: %v", err)
	}
	if err := s.AddEffect(slowCreepers(s)); err == nil {
		t.Error("duplicate AddEffect succeeded")
	}

	if err := s.ActivateEffect("slow"); err != nil {
		t.Fatalf("ActivateEffect failed: %v", err)
	}
	if !approx(s.Hazard().GrowthRate(), 0.2) {
		t.Errorf("GrowthRate() = %v, want 0.2", s.Hazard().GrowthRate())
	}

	for i := 1; i <= 3; i++ {
		s.Pass()
		expired := s.LastTurn().Expired
		if (len(expired) == 1) != (i == 3) {
			t.Errorf("turn %d expired = %v", i, expired)
		}
	}
	if !approx(s.Hazard().GrowthRate(), 0.4) {
		t.Errorf("GrowthRate() = %v after expiry, want 0.4", s.Hazard().GrowthRate())
	}

	if err := s.ActivateEffect("haste"); !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("ActivateEffect(haste) = %v, want ErrUnknownEffect", err)
	}
	if err := s.DeactivateEffect("slow"); !errors.Is(err, ErrNotActive) {
		t.Errorf("DeactivateEffect(slow) = %v, want ErrNotActive", err)
	}
}

func TestSessionElapseEffects(t *testing.T) {
	s := newTestSession(t, SessionConfig{}, never())
	var c counter
	if err := s.AddEffect(NewEffect("bloom", 1, 2, TimeBaseSeconds,
		func(float64) { c.applied++ },
		func(float64) { c.reverted++ })); err != nil {
		t.Fatalf("AddEffect failed: %v", err)
	}
	if err := s.AddEffect(slowCreepers(s)); err != nil {
		t.Fatalf("AddEffect failed: %v", err)
	}
	if err := s.ActivateEffect("bloom"); err != nil {
		t.Fatalf("ActivateEffect failed: %v", err)
	}
	if err := s.ActivateEffect("slow"); err != nil {
		t.Fatalf("ActivateEffect failed: %v", err)
	}

	s.Pass()
	if got := s.LastTurn().Expired; len(got) != 0 {
		t.Errorf("turn expired %v", got)
	}
	if e, _ := s.Effect("bloom"); e.Remaining() != 2 {
		t.Errorf("turns should not count down a seconds effect, remaining %v", e.Remaining())
	}

	if got := s.ElapseEffects(time.Second); len(got) != 0 {
		t.Errorf("expired after 1s of 2s: %v", got)
	}
	got := s.ElapseEffects(1500 * time.Millisecond)
	if len(got) != 1 || got[0] != "bloom" {
		t.Errorf("ElapseEffects = %v, want [bloom]", got)
	}
	if c.reverted != 1 {
		t.Errorf("reverted = %d, want 1", c.reverted)
	}
	if e, _ := s.Effect("slow"); !e.Active() {
		t.Error("wall-clock time should not count down a turn effect")
	}
}

func TestSetBaseGrowthKeepsModifier(t *testing.T) {
	s := newTestSession(t, SessionConfig{Hazard: HazardConfig{GrowthRate: 0.2, Ceiling: 10}}, never())
	s.ScaleGrowth(0.5)
	s.SetBaseGrowthRate(0.6)

	if s.BaseGrowthRate() != 0.6 {
		t.Errorf("BaseGrowthRate() = %v, want 0.6", s.BaseGrowthRate())
	}
	if !approx(s.Hazard().GrowthRate(), 0.3) {
		t.Errorf("GrowthRate() = %v, want 0.3", s.Hazard().GrowthRate())
	}
}

func TestRecordRoundTrip(t *testing.T) {
	s := newTestSession(t, SessionConfig{
		Hazard:    HazardConfig{Seeds: []Coord{C(0, 0)}, GrowthRate: 0.4, Ceiling: 20},
		Tools:     map[string]int{"shears": 3},
		Objective: &RequirementSpec{MinCounts: map[string]int{"rose": 2}},
		Mode:      ModeZen,
	}, always())
	s.AddEffect(slowCreepers(s))

	s.Place("rose", C(4, 4))
	s.ActivateEffect("slow")
	s.Pass()
	s.UseTool("shears", C(0, 0))
	s.Check()

	data, err := json.Marshal(s.Record())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	restored, err := RestoreSession(rec, nil, always())
	if err != nil {
		t.Fatalf("RestoreSession failed: %v", err)
	}
	restored.AddEffect(slowCreepers(restored))

	if restored.Turn() != s.Turn() || restored.Score() != s.Score() {
		t.Errorf("turn/score = %d/%d, want %d/%d", restored.Turn(), restored.Score(), s.Turn(), s.Score())
	}
	if restored.Mode() != ModeZen {
		t.Errorf("Mode() = %v, want zen", restored.Mode())
	}
	if restored.Status() != s.Status() {
		t.Errorf("Status() = %+v, want %+v", restored.Status(), s.Status())
	}
	if restored.Requirement().String() != s.Requirement().String() {
		t.Errorf("Requirement = %q, want %q", restored.Requirement(), s.Requirement())
	}
	if restored.Tools().Uses()["shears"] != 2 {
		t.Errorf("shears uses = %d, want 2", restored.Tools().Uses()["shears"])
	}
	if restored.Hazard().Coverage() != s.Hazard().Coverage() || restored.Hazard().Ticks() != s.Hazard().Ticks() {
		t.Error("hazard state not restored")
	}

	got, want := restored.Snapshot().Cells(), s.Snapshot().Cells()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	e, _ := restored.Effect("slow")
	if e.Remaining() != 1 {
		t.Errorf("restored effect remaining = %v, want 1", e.Remaining())
	}
	if !approx(restored.Hazard().GrowthRate(), 0.2) {
		t.Errorf("restored GrowthRate() = %v, want 0.2", restored.Hazard().GrowthRate())
	}
	restored.Pass()
	if !approx(restored.Hazard().GrowthRate(), 0.4) {
		t.Errorf("GrowthRate() after expiry = %v, want 0.4", restored.Hazard().GrowthRate())
	}
}

func TestRestoreSessionRejectsBadRecord(t *testing.T) {
	base := Record{Rows: 2, Cols: 2, Mode: "strict", Hazard: HazardRecord{Status: "growing"}}

	tests := []struct {
		name   string
		mutate func(*Record)
	}{
		{"bad mode", func(r *Record) { r.Mode = "chaos" }},
		{"bad hazard status", func(r *Record) { r.Hazard.Status = "sleeping" }},
		{"unknown piece", func(r *Record) { r.Cells = []CellRecord{{Row: 0, Col: 0, Kind: "occupied", Piece: "cactus"}} }},
		{"unknown kind", func(r *Record) { r.Cells = []CellRecord{{Row: 0, Col: 0, Kind: "water"}} }},
		{"seed off board", func(r *Record) { r.Hazard.Seeds = []Coord{C(5, 5)} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := base
			tc.mutate(&rec)
			if _, err := RestoreSession(rec, nil, never()); err == nil {
				t.Error("RestoreSession succeeded")
			}
		})
	}
}
