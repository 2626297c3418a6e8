// Package bloomburst provides the Bloom Burst flower arrangement puzzle.
// Players plant flowers to fill orders while creepers spread over the
// empty beds and must be cut back with a limited pair of shears.
package bloomburst

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bloom-burst/internal/config"
	platformcore "github.com/vovakirdan/bloom-burst/internal/core"
	"github.com/vovakirdan/bloom-burst/internal/games/bloomburst/core"
	"github.com/vovakirdan/bloom-burst/internal/games/bloomburst/levels"
	"github.com/vovakirdan/bloom-burst/internal/registry"
)

// Kind selects the play mode.
type Kind int

const (
	KindClassic  Kind = iota // Strict failure policy, random orders
	KindZen                  // Lenient failure policy, random orders
	KindCampaign             // Level objectives, advances on clear
)

// Registered mode IDs.
const (
	ModeClassic  = "classic"
	ModeZen      = "zen"
	ModeCampaign = "campaign"
)

// Shears is the tool every mode hands out.
const Shears = "shears"

// Save metadata keys.
const (
	metaGame  = "game"
	metaLevel = "level"
	metaUsed  = "power_ups_used"
)

// Package-level settings applied on Reset, set from the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelsDir        string
	startLevel       string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Empty keeps the config as is.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLevelsDir loads campaign levels from dir instead of the built-in set.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetStartLevel selects the campaign level to start from by ID.
// It is consumed by the next campaign Reset.
func SetStartLevel(id string) {
	startLevel = id
}

// SetLogger sets the logger used by every game instance. Nil discards output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register(ModeClassic, func() registry.Game {
		return New()
	})
	registry.Register(ModeZen, func() registry.Game {
		return NewZen()
	})
	registry.Register(ModeCampaign, func() registry.Game {
		return NewCampaign()
	})
}

// Game implements a Bloom Burst play mode.
type Game struct {
	kind    Kind
	rng     *rand.Rand
	runtime platformcore.RuntimeConfig

	// Configuration
	cfg        config.BloomConfig
	catalog    *core.Catalog
	glyphs     GlyphTable
	difficulty *config.DifficultyManager

	session *core.Session

	// Campaign
	levels     []levels.Level
	levelIndex int

	// Selection state
	cursor   core.Coord
	selected int             // Catalog index of the piece to plant
	used     map[string]bool // Power-ups spent on the current level

	message string
	loadErr string // Why no session could be started
	paused  bool
	won     bool
}

// New creates a classic (strict) game.
func New() *Game {
	return &Game{kind: KindClassic}
}

// NewZen creates a zen (lenient) game.
func NewZen() *Game {
	return &Game{kind: KindZen}
}

// NewCampaign creates a campaign game.
func NewCampaign() *Game {
	return &Game{kind: KindCampaign}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.kind {
	case KindZen:
		return ModeZen
	case KindCampaign:
		return ModeCampaign
	default:
		return ModeClassic
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.kind {
	case KindZen:
		return "Bloom Burst: Zen"
	case KindCampaign:
		return "Bloom Burst: Campaign"
	default:
		return "Bloom Burst"
	}
}

// Reset loads configuration and starts a fresh round.
func (g *Game) Reset(rt platformcore.RuntimeConfig) {
	g.runtime = rt
	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.session = nil
	g.message = ""
	g.loadErr = ""
	g.paused = false
	g.won = false
	g.levelIndex = 0

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Warn("using default config", "error", err)
		cfg = config.DefaultBloomConfig()
	}
	if difficultyPreset != "" {
		preset := cfg
		config.ApplyPreset(&preset, difficultyPreset)
		if err := preset.Validate(); err != nil {
			logger.Warn("difficulty preset ignored", "preset", difficultyPreset, "error", err)
		} else {
			cfg = preset
		}
	}
	g.cfg = cfg

	catalog, err := cfg.Catalog.BuildCatalog()
	if err != nil {
		logger.Warn("using default catalog", "error", err)
		catalog = core.DefaultCatalog()
		cfg.Catalog = config.CatalogConfig{}
	}
	g.catalog = catalog
	g.glyphs = NewGlyphTable(cfg.Catalog.Pieces)
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	if g.kind == KindCampaign {
		// Campaign levels keep their own rates.
		g.difficulty.SetEnabled(false)
	}

	if g.kind == KindCampaign {
		if err := g.loadLevels(); err != nil {
			logger.Error("cannot start campaign", "error", err)
			g.loadErr = err.Error()
			return
		}
	}

	g.startRound(0)
}

// CampaignLevels returns the campaign levels in play order, read from the
// directory set with SetLevelsDir or from the built-in set.
func CampaignLevels() ([]levels.Level, error) {
	loader := levels.Builtin()
	if levelsDir != "" {
		loader = levels.NewLoader(levelsDir)
	}
	return loader.LoadAll()
}

// loadLevels reads the campaign and picks the start level.
func (g *Game) loadLevels() error {
	all, err := CampaignLevels()
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}

	playable := make([]levels.Level, 0, len(all))
	for _, l := range all {
		if err := l.ValidateCatalog(g.catalog); err != nil {
			logger.Warn("skipping level", "id", l.ID, "error", err)
			continue
		}
		playable = append(playable, l)
	}
	if len(playable) == 0 {
		return errors.New("no playable levels found")
	}
	g.levels = playable

	if startLevel != "" {
		if idx := g.findLevel(startLevel); idx >= 0 {
			g.levelIndex = idx
		} else {
			logger.Warn("unknown start level", "id", startLevel)
		}
		startLevel = "" // Reset after use
	}
	return nil
}

func (g *Game) findLevel(id string) int {
	for i, l := range g.levels {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// levelID returns the ID of the current campaign level, or "".
func (g *Game) levelID() string {
	if g.kind != KindCampaign || g.levelIndex >= len(g.levels) {
		return ""
	}
	return g.levels[g.levelIndex].ID
}

// startRound opens a new session, carrying score over from the previous level.
func (g *Game) startRound(carry int) {
	sc := g.sessionConfig()
	s, err := core.NewSession(sc, g.rng)
	if err == nil {
		err = g.addPowerUps(s)
	}
	if err != nil {
		logger.Error("cannot start round", "mode", g.ID(), "level", g.levelID(), "error", err)
		g.session = nil
		g.loadErr = err.Error()
		return
	}
	s.AddPoints(carry)

	g.session = s
	g.used = make(map[string]bool)
	g.cursor = core.C(sc.Rows/2, sc.Cols/2)
	g.selected = 0

	logger.Debug("round started",
		"mode", g.ID(),
		"level", g.levelID(),
		"size", fmt.Sprintf("%dx%d", sc.Rows, sc.Cols),
		"seeds", len(sc.Hazard.Seeds),
		"growth", sc.Hazard.GrowthRate,
		"ceiling", sc.Hazard.Ceiling,
	)
}

// sessionConfig builds the round setup for the current mode.
func (g *Game) sessionConfig() core.SessionConfig {
	points := g.cfg.Scoring.FulfillPoints
	if g.kind == KindCampaign {
		return g.levels[g.levelIndex].SessionConfig(g.catalog, core.ModeZen, points)
	}

	mode := core.ModeStrict
	if g.kind == KindZen {
		mode = core.ModeZen
	}
	rows, cols := g.cfg.Grid.Rows, g.cfg.Grid.Cols
	return core.SessionConfig{
		Rows:    rows,
		Cols:    cols,
		Catalog: g.catalog,
		Hazard: core.HazardConfig{
			Seeds:      randomSeeds(g.rng, rows, cols, g.cfg.Hazard.Seeds),
			GrowthRate: g.difficulty.GrowthRate(g.cfg.Hazard.GrowthRate, 0, 0),
			Ceiling:    max(g.difficulty.Ceiling(g.cfg.Hazard.Ceiling, 0, 0), g.cfg.Hazard.Seeds),
		},
		Tools:         map[string]int{Shears: g.cfg.Tools.Shears},
		FulfillPoints: points,
		Mode:          mode,
	}
}

// randomSeeds picks n distinct cells with a partial Fisher-Yates shuffle.
func randomSeeds(rng core.Rand, rows, cols, n int) []core.Coord {
	total := rows * cols
	n = platformcore.Clamp(n, 0, total)

	cells := make([]int, total)
	for i := range cells {
		cells[i] = i
	}

	seeds := make([]core.Coord, n)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(total-i)
		cells[i], cells[j] = cells[j], cells[i]
		seeds[i] = core.C(cells[i]/cols, cells[i]%cols)
	}
	return seeds
}

// Step applies the actions gathered since the previous tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	// Handle restart
	if in.Has(platformcore.ActionRestart) && g.over() {
		rt := g.runtime
		rt.Seed = g.rng.Int63()
		g.Reset(rt)
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) && !g.over() {
		g.paused = !g.paused
	}

	if g.over() || g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	g.moveCursor(in)
	g.cyclePiece(in)
	g.usePowerUps(in)

	turn := g.runCommand(in)
	if turn {
		g.afterTurn()
	}
	g.updateDifficulty()

	if g.kind == KindCampaign && g.session.Status().Cleared {
		g.advanceLevel()
	}

	return platformcore.StepResult{State: g.State(), Turn: turn}
}

func (g *Game) moveCursor(in platformcore.InputFrame) {
	snap := g.session.Snapshot()
	row, col := g.cursor.Row, g.cursor.Col
	if in.Has(platformcore.ActionUp) {
		row--
	}
	if in.Has(platformcore.ActionDown) {
		row++
	}
	if in.Has(platformcore.ActionLeft) {
		col--
	}
	if in.Has(platformcore.ActionRight) {
		col++
	}
	g.cursor = core.C(
		platformcore.Clamp(row, 0, snap.Rows()-1),
		platformcore.Clamp(col, 0, snap.Cols()-1),
	)
}

func (g *Game) cyclePiece(in platformcore.InputFrame) {
	n := g.catalog.Len()
	if in.Has(platformcore.ActionNextPiece) {
		g.selected = platformcore.Wrap(g.selected+1, n)
	}
	if in.Has(platformcore.ActionPrevPiece) {
		g.selected = platformcore.Wrap(g.selected-1, n)
	}
}

// runCommand executes at most one board command. Returns true if a turn closed.
// Checking the order does not cost a turn.
func (g *Game) runCommand(in platformcore.InputFrame) bool {
	switch {
	case in.Has(platformcore.ActionPlace):
		piece, err := g.catalog.At(g.selected)
		if err == nil {
			err = g.session.Place(piece.ID, g.cursor)
		}
		if err != nil {
			g.message = describeError("Cannot plant "+piece.Name, err)
			return false
		}
		g.message = fmt.Sprintf("Planted %s at %s", piece.Name, g.cursor)
		return true

	case in.Has(platformcore.ActionRemove):
		if err := g.session.Remove(g.cursor); err != nil {
			g.message = describeError("Cannot dig", err)
			return false
		}
		g.message = fmt.Sprintf("Dug up %s", g.cursor)
		return true

	case in.Has(platformcore.ActionTool):
		cleared, err := g.session.UseTool(Shears, g.cursor)
		if err != nil {
			g.message = describeError("Cannot use the shears", err)
			return false
		}
		left := g.session.Tools().Uses()[Shears]
		logger.Debug("shears used", "mode", g.ID(), "at", g.cursor.String(), "cleared", cleared, "left", left)
		g.message = fmt.Sprintf("Snipped %d creeper cells, %d uses left", cleared, left)
		return true

	case in.Has(platformcore.ActionPass):
		if err := g.session.Pass(); err != nil {
			g.message = describeError("Cannot wait", err)
			return false
		}
		g.message = "You watch the garden grow"
		return true

	case in.Has(platformcore.ActionCheck):
		ev, err := g.session.Check()
		if err != nil {
			g.message = describeError("Cannot check", err)
			return false
		}
		st := g.session.Status()
		switch {
		case ev.Fulfilled:
			logger.Info("order fulfilled",
				"mode", g.ID(),
				"level", g.levelID(),
				"score", g.session.Score(),
				"fulfilled", g.session.Fulfilled(),
			)
		case st.Terminal:
			logger.Info("game over", "mode", g.ID(), "reason", "order failed", "score", g.session.Score(), "failed", len(ev.Failed))
		}
		g.message = st.Message
		return false
	}
	return false
}

// afterTurn reports on the hazard tick and expired effects.
func (g *Game) afterTurn() {
	rep := g.session.LastTurn()
	for _, name := range rep.Expired {
		logger.Debug("power-up expired", "mode", g.ID(), "name", name, "turn", rep.Turn)
		g.message += ". " + powerUpTitle(name) + " wore off"
	}
	if rep.Hazard.Status == core.HazardOverrun {
		logger.Info("game over",
			"mode", g.ID(),
			"reason", "overrun",
			"coverage", rep.Hazard.Coverage,
			"ceiling", g.session.Hazard().Ceiling(),
			"turn", rep.Turn,
		)
		g.message = g.session.Status().Message
	}
}

// updateDifficulty raises creeper growth with score in random-order modes.
func (g *Game) updateDifficulty() {
	if !g.difficulty.IsEnabled() {
		return
	}
	rate := g.difficulty.GrowthRate(g.cfg.Hazard.GrowthRate, g.session.Score(), g.session.Turn())
	if rate != g.session.BaseGrowthRate() {
		logger.Debug("growth rate changed", "mode", g.ID(), "from", g.session.BaseGrowthRate(), "to", rate)
		g.session.SetBaseGrowthRate(rate)
	}
}

// advanceLevel moves the campaign on after a cleared objective.
func (g *Game) advanceLevel() {
	score := g.session.Score()
	logger.Info("level cleared", "level", g.levelID(), "score", score, "turns", g.session.Turn())

	if g.levelIndex+1 >= len(g.levels) {
		g.won = true
		g.message = "Every garden is in bloom"
		return
	}
	g.levelIndex++
	g.startRound(score)
	if g.session != nil {
		g.message = "Level cleared! Next up: " + g.levels[g.levelIndex].Name
	}
}

// describeError turns a command failure into a status line.
func describeError(prefix string, err error) string {
	var reason string
	switch {
	case errors.Is(err, core.ErrOccupiedSlot):
		reason = "that bed is taken"
	case errors.Is(err, core.ErrEmptySlot):
		reason = "nothing is planted there"
	case errors.Is(err, core.ErrOutOfBounds):
		reason = "outside the garden"
	case errors.Is(err, core.ErrOutOfTools):
		reason = "the shears are worn out"
	case errors.Is(err, core.ErrAreaOutOfBounds):
		reason = "the shears need a 2x2 patch inside the garden"
	case errors.Is(err, core.ErrAlreadyActive):
		reason = "already running"
	case errors.Is(err, core.ErrGameOver):
		reason = "the game is over"
	default:
		reason = err.Error()
	}
	return prefix + ": " + reason
}

// over reports whether play has stopped.
func (g *Game) over() bool {
	if g.won || g.session == nil {
		return true
	}
	return g.session.Status().Terminal
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		GameOver: g.over(),
		Paused:   g.paused,
		Message:  g.message,
	}
	if g.session != nil {
		st.Score = g.session.Score()
	}
	return st
}

// Session returns the running session, or nil if none could be started.
func (g *Game) Session() *core.Session {
	return g.session
}

// Turns returns the number of finished turns.
func (g *Game) Turns() int {
	if g.session == nil {
		return 0
	}
	return g.session.Turn()
}

// Cursor returns the cursor position.
func (g *Game) Cursor() core.Coord {
	return g.cursor
}

// SelectedPiece returns the piece type that will be planted next.
func (g *Game) SelectedPiece() core.PieceType {
	p, _ := g.catalog.At(g.selected)
	return p
}

// SaveState encodes the session with the mode, level and spent power-ups.
func (g *Game) SaveState() ([]byte, error) {
	if g.session == nil {
		return nil, errors.New("bloomburst: no session to save")
	}

	rec := g.session.Record()
	rec.Meta = map[string]string{
		metaGame: g.ID(),
		metaUsed: strings.Join(g.usedNames(), ","),
	}
	if id := g.levelID(); id != "" {
		rec.Meta[metaLevel] = id
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("bloomburst: encode save: %w", err)
	}
	logger.Debug("session saved", "mode", g.ID(), "level", g.levelID(), "turn", rec.Turn, "bytes", len(data))
	return data, nil
}

// LoadState replaces the session with a saved one. Reset must run first.
func (g *Game) LoadState(data []byte) error {
	var rec core.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("bloomburst: decode save: %w", err)
	}
	if id := rec.Meta[metaGame]; id != g.ID() {
		return fmt.Errorf("bloomburst: save belongs to mode %q, not %q", id, g.ID())
	}

	levelIndex := 0
	if g.kind == KindCampaign {
		levelIndex = g.findLevel(rec.Meta[metaLevel])
		if levelIndex < 0 {
			return fmt.Errorf("bloomburst: save refers to unknown level %q", rec.Meta[metaLevel])
		}
	}

	s, err := core.RestoreSession(rec, g.catalog, g.rng)
	if err != nil {
		return fmt.Errorf("bloomburst: %w", err)
	}
	if err := g.addPowerUps(s); err != nil {
		return fmt.Errorf("bloomburst: %w", err)
	}

	snap := s.Snapshot()
	g.session = s
	g.levelIndex = levelIndex
	g.used = parseUsed(rec.Meta[metaUsed])
	g.cursor = core.C(
		platformcore.Clamp(g.cursor.Row, 0, snap.Rows()-1),
		platformcore.Clamp(g.cursor.Col, 0, snap.Cols()-1),
	)
	g.loadErr = ""
	g.paused = false
	g.won = false
	g.message = "Garden restored"
	logger.Debug("session restored", "mode", g.ID(), "level", g.levelID(), "turn", s.Turn())
	return nil
}

// Interface checks
var (
	_ registry.Game        = (*Game)(nil)
	_ registry.Saver       = (*Game)(nil)
	_ registry.TurnCounter = (*Game)(nil)
)
