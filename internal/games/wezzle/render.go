package wezzle

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/wezzle/internal/board"
	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/core"
	"github.com/vovakirdan/wezzle/internal/engine"
	"github.com/vovakirdan/wezzle/internal/layer"
	"github.com/vovakirdan/wezzle/internal/tile"
)

const (
	cellWidth  = 3 // terminal columns per board cell
	cellHeight = 1 // terminal rows per board cell
	panelWidth = 24
	barWidth   = 16
)

// layoutSize is the smallest screen the game fits on.
func (g *Game) layoutSize() (w, h int) {
	boardW := g.cfg.Board.Columns*cellWidth + 2
	boardH := g.cfg.Board.Rows*cellHeight + 2
	return boardW + 1 + panelWidth, max(boardH, 14) + 2
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.rc.ScreenW, g.rc.ScreenH = w, h
	g.checkScreenSize()
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.eng == nil {
		g.drawOverlay(dst, g.rc.ScreenW/2, g.rc.ScreenH/2, "CANNOT START", "Check the config file")
		return
	}

	b := g.eng.Board()
	boardW := b.Columns()*cellWidth + 2
	boardH := b.Rows()*cellHeight + 2
	totalW, _ := g.layoutSize()

	boardX := (g.rc.ScreenW - totalW) / 2
	boardY := 1

	dst.DrawTextColored(boardX, 0, g.title, core.ColorBrightCyan)
	dst.DrawBox(core.Rect{X: boardX, Y: boardY, W: boardW, H: boardH}, core.ColorGray)

	g.renderBoard(dst, boardX+1, boardY+1)
	g.renderPiece(dst, b, boardX+1, boardY+1)
	g.renderHUD(dst, boardX+boardW+1, boardY)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)

	dst.DrawTextColored(boardX, boardY+boardH, g.Controls(), core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.layoutSize()
	msg := "Window too small"
	y := g.rc.ScreenH / 2
	dst.DrawText((g.rc.ScreenW-len(msg))/2, y, msg)

	hint := fmt.Sprintf("Need %dx%d", w, h)
	dst.DrawText((g.rc.ScreenW-len(hint))/2, y+1, hint)
}

// renderBoard paints the empty grid, then every visible tile at its
// animated position. Tiles are placed in pixels by the board, so a falling
// tile is drawn between cells until it lands.
func (g *Game) renderBoard(dst *core.Screen, originX, originY int) {
	b := g.eng.Board()
	if !b.Visible() {
		return
	}

	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Columns(); c++ {
			dst.SetColored(originX+c*cellWidth+1, originY+r*cellHeight, '·', core.ColorGray)
		}
	}

	settings := g.eng.Settings()
	frame := b.Frame()
	g.eng.Display().Each(func(d layer.Drawable, l layer.Layer) {
		t, ok := d.(*tile.Tile)
		if !ok || l != layer.Tile {
			return
		}
		x := originX + toCells(t.X-frame.X, b.CellWidth(), cellWidth)
		y := originY + toCells(t.Y-frame.Y, b.CellHeight(), cellHeight)
		drawTile(dst, x, y, t, settings.Color(config.PaletteKey(t.Color)))
	})
}

// toCells converts a pixel offset to terminal cells, rounding to nearest.
func toCells(px, pixelsPerCell, cellsPerCell int) int {
	if pixelsPerCell <= 0 {
		return 0
	}
	return int(math.Round(float64(px*cellsPerCell) / float64(pixelsPerCell)))
}

func drawTile(dst *core.Screen, x, y int, t *tile.Tile, c core.Color) {
	switch {
	case t.Scale < 0.5:
		dst.SetColored(x+1, y, '·', c)
	case t.Opacity < 50:
		dst.DrawTextColored(x, y, "░░░", c)
	case t.Type == tile.Normal:
		dst.DrawTextColored(x, y, "▐█▌", c)
	default:
		dst.SetColored(x, y, '▐', c)
		dst.SetColored(x+1, y, t.Rune(), c)
		dst.SetColored(x+2, y, '▌', c)
	}
}

// renderPiece brackets every cell the piece covers.
func (g *Game) renderPiece(dst *core.Screen, b *board.Board, originX, originY int) {
	pm := g.eng.Pieces()
	if !pm.Visible() || !b.Visible() {
		return
	}
	column, row := pm.Cursor()
	p := pm.Piece()
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if !p.Has(dc, dr) {
				continue
			}
			x := originX + (column+dc)*cellWidth
			y := originY + (row+dr)*cellHeight
			dst.SetColored(x, y, '[', core.ColorBrightWhite)
			dst.SetColored(x+2, y, ']', core.ColorBrightWhite)
		}
	}
}

// renderHUD draws the score panel right of the board.
func (g *Game) renderHUD(dst *core.Screen, x, y int) {
	s := g.eng.Stats()
	timer := g.eng.Timer()
	gravity := g.eng.Board().Gravity()

	lines := []struct {
		text  string
		color core.Color
	}{
		{fmt.Sprintf("Score   %d", s.Score), core.ColorBrightYellow},
		{fmt.Sprintf("Level   %d", s.Level), core.ColorDefault},
		{fmt.Sprintf("Target  %d/%d", s.LevelScore, s.TargetScore), core.ColorDefault},
		{progressBar(s.LevelScore, s.TargetScore, barWidth), core.ColorGreen},
		{"", core.ColorDefault},
		{fmt.Sprintf("Time    %ds", timer.Seconds()), timeColor(timer)},
		{progressBar(timer.Remaining(), timer.Total(), barWidth), timeColor(timer)},
		{"", core.ColorDefault},
		{fmt.Sprintf("Moves   %d", s.Moves), core.ColorDefault},
		{fmt.Sprintf("Lines   %d", s.Lines), core.ColorDefault},
		{fmt.Sprintf("Chain   %d", s.MaxChain), core.ColorDefault},
		{fmt.Sprintf("Gravity %c%c", gravity.Vertical.Rune(), gravity.Horizontal.Rune()), core.ColorCyan},
		{fmt.Sprintf("Mode    %s", g.eng.Preset()), core.ColorGray},
	}
	for i, l := range lines {
		dst.DrawTextColored(x, y+i, l.text, l.color)
	}
}

func timeColor(t *engine.Timer) core.Color {
	if t.Total() > 0 && t.Remaining()*4 < t.Total() {
		return core.ColorBrightRed
	}
	return core.ColorDefault
}

// progressBar renders value/total as a bar of width cells.
func progressBar(value, total, width int) string {
	filled := 0
	if total > 0 {
		filled = core.Clamp(value*width/total, 0, width)
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	if g.err != nil {
		g.drawOverlay(dst, centerX, centerY, "ENGINE ERROR", "Press R to restart")
		return
	}

	if g.eng.Paused() {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.eng.GameOver() {
		s := g.eng.Stats()
		g.drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			fmt.Sprintf("Score: %d", s.Score),
			fmt.Sprintf("Level: %d", s.Level),
			"Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.Rect{X: centerX - boxW/2, Y: centerY - boxH/2, W: boxW, H: boxH}

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}
