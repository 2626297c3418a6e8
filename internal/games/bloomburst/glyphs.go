package bloomburst

import (
	"unicode/utf8"

	"github.com/vovakirdan/bloom-burst/internal/config"
	platformcore "github.com/vovakirdan/bloom-burst/internal/core"
)

// Board glyphs that do not depend on the catalog.
const (
	EmptyGlyph  = '·'
	HazardGlyph = '#'
	SeedGlyph   = '+' // Pruned creeper root, will regrow
)

// Glyph is how a piece type is drawn.
type Glyph struct {
	Rune  rune
	Color platformcore.Color
}

// unknownGlyph is drawn for pieces missing from the table.
var unknownGlyph = Glyph{Rune: '?', Color: platformcore.ColorDefault}

// GlyphTable maps piece type IDs to glyphs.
type GlyphTable map[string]Glyph

// NewGlyphTable builds the table from the catalog section of the config.
// An empty section uses the default pieces, matching BuildCatalog.
func NewGlyphTable(pieces []config.PieceConfig) GlyphTable {
	if len(pieces) == 0 {
		pieces = config.DefaultBloomConfig().Catalog.Pieces
	}

	table := make(GlyphTable, len(pieces))
	for _, p := range pieces {
		g := unknownGlyph
		if r, size := utf8.DecodeRuneInString(p.Glyph); size > 0 && r != utf8.RuneError {
			g.Rune = r
		}
		if c, ok := platformcore.ParseColor(p.Color); ok {
			g.Color = c
		}
		table[p.ID] = g
	}
	return table
}

// Lookup returns the glyph for a piece type ID.
func (t GlyphTable) Lookup(id string) Glyph {
	if g, ok := t[id]; ok {
		return g
	}
	return unknownGlyph
}
