package game

import (
	"fmt"

	"github.com/ddanilov/tetrion/internal/core"
	"github.com/ddanilov/tetrion/internal/tetromino"
)

const (
	cellWidth  = 2 // terminal cells are tall; two columns per board cell
	panelWidth = 14
	hudHeight  = 2
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	s := g.session
	boardW := s.Board().Width()*cellWidth + 2
	boardH := s.Board().VisibleHeight() + 2
	if dst.Width() < boardW+panelWidth || dst.Height() < boardH+hudHeight {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	ox := (dst.Width() - boardW - panelWidth) / 2
	oy := hudHeight

	dst.DrawBox(core.NewRect(ox, oy, boardW, boardH))
	g.renderStack(dst, ox+1, oy+1)
	g.renderGhost(dst, ox+1, oy+1)
	g.renderPiece(dst, ox+1, oy+1)
	g.renderPanel(dst, ox+boardW+2, oy)

	switch {
	case s.Over():
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d - R to restart", s.Score()))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	hud := fmt.Sprintf(" %s | Score: %d  Lines: %d  Level: %d",
		g.Title(), s.Score(), s.Lines(), s.Level())
	if g.aiOn {
		hud += fmt.Sprintf("  [AI %d-ply]", g.planner.Depth())
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderStack draws the locked cells of the visible board area.
func (g *Game) renderStack(dst *core.Screen, ox, oy int) {
	b := g.session.Board()
	for y := 0; y < b.VisibleHeight(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := b.At(x, y+b.HiddenRows())
			if c.Empty() {
				continue
			}
			drawCell(dst, ox+x*cellWidth, oy+y, '█', c.Kind().Color())
		}
	}
}

// renderPiece draws the active piece.
func (g *Game) renderPiece(dst *core.Screen, ox, oy int) {
	s := g.session
	if s.Phase() != PhaseFalling && s.Phase() != PhaseLockPending {
		return
	}
	p := s.Piece()
	hidden := s.Board().HiddenRows()
	for _, o := range tetromino.Cells(p.Kind, p.Rot) {
		vy := p.Y + o.Y - hidden
		if vy < 0 {
			continue // still inside the hidden buffer
		}
		drawCell(dst, ox+(p.X+o.X)*cellWidth, oy+vy, '█', p.Kind.Color())
	}
}

// renderGhost draws the hard-drop projection of the active piece.
func (g *Game) renderGhost(dst *core.Screen, ox, oy int) {
	s := g.session
	gy, ok := s.GhostY()
	if !ok {
		return
	}
	p := s.Piece()
	if gy == p.Y {
		return
	}
	hidden := s.Board().HiddenRows()
	for _, o := range tetromino.Cells(p.Kind, p.Rot) {
		vy := gy + o.Y - hidden
		if vy < 0 {
			continue
		}
		drawCell(dst, ox+(p.X+o.X)*cellWidth, oy+vy, '░', core.ColorGray)
	}
}

// renderPanel draws the hold slot and the preview queue beside the board.
func (g *Game) renderPanel(dst *core.Screen, px, py int) {
	s := g.session

	dst.DrawText(px, py, "HOLD")
	if k, ok := s.Hold(); ok {
		drawMini(dst, px, py+1, k)
	}

	dst.DrawText(px, py+5, "NEXT")
	for i, k := range s.Preview() {
		drawMini(dst, px, py+6+i*3, k)
	}
}

// drawMini draws a piece thumbnail using its spawn state.
func drawMini(dst *core.Screen, px, py int, k tetromino.Kind) {
	for _, o := range tetromino.Cells(k, 0) {
		drawCell(dst, px+o.X*cellWidth, py+o.Y, '█', k.Color())
	}
}

func drawCell(dst *core.Screen, x, y int, r rune, color core.Color) {
	for i := 0; i < cellWidth; i++ {
		dst.SetColored(x+i, y, r, color)
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := len(line1)
	if len(line2) > maxLen {
		maxLen = len(line2)
	}
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY; y < boxY+boxH && y < h; y++ {
		for x := boxX; x < boxX+boxW && x < w; x++ {
			if x < 0 || y < 0 {
				continue
			}
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
