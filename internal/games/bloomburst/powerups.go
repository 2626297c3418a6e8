package bloomburst

import (
	"sort"
	"strconv"
	"strings"

	platformcore "github.com/vovakirdan/bloom-burst/internal/core"
	"github.com/vovakirdan/bloom-burst/internal/games/bloomburst/core"
)

// Power-up effect names.
const (
	PowerScoreBoost   = "score_boost"
	PowerSlowCreepers = "slow_creepers"
)

// powerUp binds an effect to its key.
type powerUp struct {
	name   string
	title  string
	action platformcore.Action
}

// powerUps lists the power-ups in key order.
var powerUps = []powerUp{
	{name: PowerScoreBoost, title: "Score Boost", action: platformcore.ActionPower1},
	{name: PowerSlowCreepers, title: "Slow Creepers", action: platformcore.ActionPower2},
}

func powerUpTitle(name string) string {
	for _, p := range powerUps {
		if p.name == name {
			return p.title
		}
	}
	return name
}

// addPowerUps registers the power-up effects with s.
// Score Boost is instant. Slow Creepers scales growth for a number of turns
// and restores it when it runs out.
func (g *Game) addPowerUps(s *core.Session) error {
	pu := g.cfg.PowerUps

	boost := core.NewEffect(PowerScoreBoost, float64(pu.ScoreBoost), 0, core.TimeBaseTurns,
		func(m float64) { s.AddPoints(int(m)) },
		nil)
	slow := core.NewEffect(PowerSlowCreepers, pu.SlowFactor, float64(pu.SlowTurns), core.TimeBaseTurns,
		func(m float64) { s.ScaleGrowth(m) },
		func(m float64) { s.ScaleGrowth(1 / m) })

	for _, e := range []*core.Effect{boost, slow} {
		if err := s.AddEffect(e); err != nil {
			return err
		}
	}
	return nil
}

// usePowerUps activates the power-ups requested in this frame.
// Each power-up works once per level.
func (g *Game) usePowerUps(in platformcore.InputFrame) {
	for _, p := range powerUps {
		if !in.Has(p.action) {
			continue
		}
		if g.used[p.name] {
			g.message = p.title + " was already used on this level"
			continue
		}
		if err := g.session.ActivateEffect(p.name); err != nil {
			g.message = describeError(p.title, err)
			continue
		}
		g.used[p.name] = true
		logger.Debug("power-up activated", "mode", g.ID(), "name", p.name, "score", g.session.Score())
		g.message = p.title + " activated"
	}
}

// powerUpStatus is the panel label for a power-up.
func (g *Game) powerUpStatus(p powerUp) string {
	if e, ok := g.session.Effect(p.name); ok && e.Active() {
		return "active (" + strconv.Itoa(int(e.Remaining())) + ")"
	}
	if g.used[p.name] {
		return "used"
	}
	return "ready"
}

func (g *Game) usedNames() []string {
	names := make([]string, 0, len(g.used))
	for name, used := range g.used {
		if used {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func parseUsed(s string) map[string]bool {
	used := make(map[string]bool)
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			used[name] = true
		}
	}
	return used
}
