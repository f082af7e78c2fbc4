package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"firespread/internal/core"
	"firespread/internal/sims/wildfire"
)

// upperHalf packs two grid rows into one terminal row: the foreground paints
// the top cell, the background the bottom one.
const upperHalf = '▀'

// TerminalPainter draws frames into a tcell screen.
type TerminalPainter struct {
	colors []tcell.Color
	buf    []uint8
}

// NewTerminalPainter converts palette into terminal colors.
func NewTerminalPainter(palette []color.RGBA) *TerminalPainter {
	colors := make([]tcell.Color, len(palette))
	for i, c := range palette {
		colors[i] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return &TerminalPainter{colors: colors}
}

func (tp *TerminalPainter) color(v uint8) tcell.Color {
	if int(v) >= len(tp.colors) {
		return tcell.ColorDefault
	}
	return tp.colors[v]
}

// Draw paints f with its top-left corner at (ox, oy).
func (tp *TerminalPainter) Draw(s tcell.Screen, f wildfire.Frame, ox, oy int) {
	tp.buf = f.AppendBytes(tp.buf[:0])
	tp.DrawCells(s, tp.buf, f.Size(), ox, oy)
}

// DrawCells paints row-major palette indices. A grid of height h occupies
// (h+1)/2 terminal rows. Cells beyond the screen are clipped.
func (tp *TerminalPainter) DrawCells(s tcell.Screen, cells []uint8, size core.Size, ox, oy int) {
	sw, sh := s.Size()
	for y := 0; y < size.H; y += 2 {
		ty := oy + y/2
		if ty >= sh {
			return
		}
		row := y * size.W
		for x := 0; x < size.W; x++ {
			tx := ox + x
			if tx >= sw {
				break
			}
			st := tcell.StyleDefault.Foreground(tp.color(cells[row+x]))
			if y+1 < size.H {
				st = st.Background(tp.color(cells[row+size.W+x]))
			}
			s.SetContent(tx, ty, upperHalf, nil, st)
		}
	}
}

// DrawText writes a single line of text starting at (x, y).
func DrawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
