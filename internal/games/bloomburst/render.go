package bloomburst

import (
	"fmt"
	"strconv"

	platformcore "github.com/vovakirdan/bloom-burst/internal/core"
	"github.com/vovakirdan/bloom-burst/internal/games/bloomburst/core"
)

// Layout constants
const (
	cellW     = 3  // Terminal columns per garden cell: "[R]"
	gardenTop = 2  // First row of the garden box
	panelW    = 34 // Width of the side panel
	panelGap  = 2
)

// minSize returns the smallest screen that fits the garden and panel.
func (g *Game) minSize() (int, int) {
	snap := g.session.Snapshot()
	w := snap.Cols()*cellW + 2 + panelGap + panelW
	h := max(gardenTop+snap.Rows()+2+1, 18)
	return w, h
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.session == nil {
		reason := g.loadErr
		if reason == "" {
			reason = "Press R to retry"
		}
		g.renderOverlay(dst, "No garden to tend", reason)
		return
	}

	if w, h := g.minSize(); dst.Width() < w || dst.Height() < h {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Resize to at least %dx%d", w, h))
		return
	}

	box := g.renderGarden(dst)
	g.renderPanel(dst, box.Right()+panelGap)
	dst.DrawTextColor(1, dst.Height()-1, g.message, platformcore.ColorCyan)

	switch {
	case g.won:
		g.renderOverlay(dst, "Every garden is in bloom!", "Press R to play again")
	case g.over():
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " " + g.Title()
	if g.session != nil {
		hud += " | Score: " + strconv.Itoa(g.session.Score()) +
			" | Turn: " + strconv.Itoa(g.session.Turn())
		if g.kind == KindCampaign {
			lvl := g.levels[g.levelIndex]
			hud += fmt.Sprintf(" | Level %d/%d: %s", g.levelIndex+1, len(g.levels), lvl.Name)
		} else {
			hud += " | Orders: " + strconv.Itoa(g.session.Fulfilled())
		}
	}
	dst.DrawTextColor(0, 0, hud, platformcore.ColorBrightGreen)

	for x := 0; x < dst.Width(); x++ {
		dst.SetColor(x, 1, '─', platformcore.ColorGray)
	}
}

// renderGarden draws the bordered board and cursor. Returns the box drawn.
func (g *Game) renderGarden(dst *platformcore.Screen) platformcore.Rect {
	snap := g.session.Snapshot()
	box := platformcore.NewRect(0, gardenTop, snap.Cols()*cellW+2, snap.Rows()+2)
	dst.DrawBoxColor(box, platformcore.ColorGreen)

	seeds := make(map[core.Coord]bool)
	for _, s := range g.session.Hazard().Seeds() {
		seeds[s] = true
	}

	for r := 0; r < snap.Rows(); r++ {
		for c := 0; c < snap.Cols(); c++ {
			at := core.C(r, c)
			x := box.X + 1 + c*cellW
			y := box.Y + 1 + r

			glyph := g.cellGlyph(snap.At(at), seeds[at])
			dst.SetColor(x+1, y, glyph.Rune, glyph.Color)

			if at == g.cursor {
				dst.SetColor(x, y, '[', platformcore.ColorBrightWhite)
				dst.SetColor(x+2, y, ']', platformcore.ColorBrightWhite)
			}
		}
	}
	return box
}

// cellGlyph picks the glyph for a board cell.
func (g *Game) cellGlyph(cell core.Cell, seed bool) Glyph {
	switch cell.Kind {
	case core.CellHazard:
		return Glyph{Rune: HazardGlyph, Color: platformcore.ColorGreen}
	case core.CellOccupied:
		return g.glyphs.Lookup(cell.Piece)
	}
	if seed {
		return Glyph{Rune: SeedGlyph, Color: platformcore.ColorGreen}
	}
	return Glyph{Rune: EmptyGlyph, Color: platformcore.ColorGray}
}

// renderPanel draws the order, scores, selection and power-ups.
func (g *Game) renderPanel(dst *platformcore.Screen, x int) {
	y := gardenTop
	line := func(text string, c platformcore.Color) {
		dst.DrawTextColor(x, y, text, c)
		y++
	}

	title := "Order"
	if g.kind == KindCampaign {
		title = "Objective"
	}
	line(title, platformcore.ColorBrightYellow)
	for _, clause := range g.session.Requirement().Describe() {
		line("  "+clause, platformcore.ColorDefault)
	}
	y++

	sc := g.session.Scores()
	sim := g.session.Hazard()
	line(fmt.Sprintf("Density   %3.0f%%", sc.Density), platformcore.ColorDefault)
	line(fmt.Sprintf("Symmetry  %3.0f%%", sc.Symmetry), platformcore.ColorDefault)
	line(fmt.Sprintf("Creepers  %d/%d  grow %.0f%%", sc.Coverage, sim.Ceiling(), sim.GrowthRate()*100), platformcore.ColorGreen)
	y++

	piece := g.SelectedPiece()
	glyph := g.glyphs.Lookup(piece.ID)
	dst.DrawText(x, y, "Plant  < ")
	dst.SetColor(x+9, y, glyph.Rune, glyph.Color)
	dst.DrawText(x+11, y, piece.Name+" >")
	y++
	line("Shears x"+strconv.Itoa(g.session.Tools().Uses()[Shears]), platformcore.ColorDefault)
	y++

	for i, p := range powerUps {
		c := platformcore.ColorPurple
		status := g.powerUpStatus(p)
		if status == "used" {
			c = platformcore.ColorGray
		}
		line(fmt.Sprintf("%d %-14s %s", i+1, p.title, status), c)
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	h := 5
	box := platformcore.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, platformcore.ColorBrightWhite)
	dst.DrawTextCenteredColor(box.Y+1, line1, platformcore.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2)
}
