// Package levels provides campaign level loading for Bloom Burst.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/bloom-burst/internal/games/bloomburst/core"
	"github.com/vovakirdan/bloom-burst/internal/games/bloomburst/levels/formats"
)

//go:embed data/*.yaml
var builtin embed.FS

// Level represents a complete level definition.
type Level struct {
	formats.Level
	FilePath string
}

// SessionConfig builds the core session configuration for this level.
func (l Level) SessionConfig(catalog *core.Catalog, mode core.Mode, points int) core.SessionConfig {
	var objective *core.RequirementSpec
	if l.Objective != nil {
		o := *l.Objective
		objective = &o
	}
	return core.SessionConfig{
		Rows:    l.Rows,
		Cols:    l.Cols,
		Catalog: catalog,
		Hazard: core.HazardConfig{
			Seeds:      append([]core.Coord(nil), l.Seeds...),
			GrowthRate: l.GrowthRate,
			Ceiling:    l.Ceiling,
		},
		Tools:         copyUses(l.Tools),
		Preplaced:     l.Preplaced,
		Objective:     objective,
		FulfillPoints: points,
		Mode:          mode,
	}
}

// ValidateCatalog checks that every piece the level names exists in catalog.
func (l Level) ValidateCatalog(catalog *core.Catalog) error {
	for at, id := range l.Preplaced {
		if _, err := catalog.Lookup(id); err != nil {
			return fmt.Errorf("level %s: piece at %s: %w", l.ID, at, err)
		}
	}
	if l.Objective != nil {
		for id := range l.Objective.MinCounts {
			if _, err := catalog.Lookup(id); err != nil {
				return fmt.Errorf("level %s: objective: %w", l.ID, err)
			}
		}
	}
	return nil
}

func copyUses(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Loader handles loading levels from a file system.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// Builtin returns a loader over the levels compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtin, "data")
	if err != nil {
		panic(err) // static embed path
	}
	return &Loader{Root: "builtin", fsys: sub}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by campaign order, then ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		if levels[i].Order != levels[j].Order {
			return levels[i].Order < levels[j].Order
		}
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file, relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	ext := strings.ToLower(path.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	return Level{Level: parsed, FilePath: path.Join(l.Root, p)}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in campaign order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
