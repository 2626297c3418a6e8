package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/bloom-burst/internal/core"
)

type fakeGame struct{ id string }

func (g fakeGame) ID() string { return g.id }
func (g fakeGame) Title() string { return strings.ToUpper(g.id) }
func (g fakeGame) Reset(core.RuntimeConfig) {}
func (g fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g fakeGame) Render(*core.Screen) {}
func (g fakeGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_b", func() Game { return fakeGame{id: "test_b"} })
	Register("test_a", func() Game { return fakeGame{id: "test_a"} })

	if !Exists("test_a") || Exists("test_missing") {
		t.Error("Exists reported the wrong registrations")
	}

	g, err := Create("test_a")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "test_a" {
		t.Errorf("Create returned %q", g.ID())
	}

	if _, err := Create("test_missing"); err == nil {
		t.Error("Create of unknown id should fail")
	}

	var titles []string
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "test_") {
			titles = append(titles, info.Title)
		}
	}
	if len(titles) != 2 || titles[0] != "TEST_A" || titles[1] != "TEST_B" {
		t.Errorf("List titles = %v, expected sorted [TEST_A TEST_B]", titles)
	}

	ids := IDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("IDs not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return fakeGame{id: "test_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test_dup", func() Game { return fakeGame{id: "test_dup"} })
}
