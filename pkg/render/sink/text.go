package sink

import (
	"strings"
	"unicode"

	"github.com/matzehuels/buttonhalo/pkg/geom"
	"github.com/matzehuels/buttonhalo/pkg/render"
)

// CellKind classifies a grid cell so callers can style it.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellArea
	CellSelection
	CellControl
)

// Cell is one character of a text grid.
type Cell struct {
	Kind CellKind
	Rune rune
}

// Grid is a scene scaled down to a character grid.
type Grid struct {
	Cols, Rows int
	Cells      [][]Cell
}

// RenderText scales the display bound onto cols x rows cells. The
// selection is drawn as a box, the last working area as dots, and each
// control as the first letter of its label at the cell holding its centre.
func RenderText(s render.Scene, cols, rows int) Grid {
	cols, rows = max(cols, 1), max(rows, 1)
	g := Grid{Cols: cols, Rows: rows, Cells: make([][]Cell, rows)}
	for y := range g.Cells {
		g.Cells[y] = make([]Cell, cols)
		for x := range g.Cells[y] {
			g.Cells[y][x] = Cell{Kind: CellEmpty, Rune: ' '}
		}
	}
	if s.Display.IsEmpty() {
		return g
	}

	cell := func(p geom.Point) (int, int, bool) {
		x := (p.X - s.Display.X) * cols / s.Display.W
		y := (p.Y - s.Display.Y) * rows / s.Display.H
		return x, y, x >= 0 && x < cols && y >= 0 && y < rows
	}

	if n := len(s.Rounds); n > 1 {
		a := s.Rounds[n-1].Area
		g.box(cell, a, CellArea, '.', '.', '.')
	}
	g.box(cell, s.Selection, CellSelection, '+', '-', '|')

	half := s.Footprint / 2
	for i, c := range s.Controls {
		x, y, ok := cell(c.Position.Add(geom.Pt(half, half)))
		if !ok {
			continue
		}
		g.Cells[y][x] = Cell{Kind: CellControl, Rune: controlRune(c.Label, i)}
	}
	return g
}

func (g Grid) box(cell func(geom.Point) (int, int, bool), r geom.Rect, kind CellKind, corner, horiz, vert rune) {
	if r.IsEmpty() {
		return
	}
	x0, y0, _ := cell(r.TopLeft())
	x1, y1, _ := cell(r.BottomRight())

	set := func(x, y int, ch rune) {
		if x >= 0 && x < g.Cols && y >= 0 && y < g.Rows {
			g.Cells[y][x] = Cell{Kind: kind, Rune: ch}
		}
	}
	for x := x0; x <= x1; x++ {
		set(x, y0, horiz)
		set(x, y1, horiz)
	}
	for y := y0; y <= y1; y++ {
		set(x0, y, vert)
		set(x1, y, vert)
	}
	set(x0, y0, corner)
	set(x1, y0, corner)
	set(x0, y1, corner)
	set(x1, y1, corner)
}

func controlRune(label string, index int) rune {
	for _, r := range label {
		return unicode.ToUpper(r)
	}
	return rune('0' + index%10)
}

// String renders the grid as plain text, one line per row.
func (g Grid) String() string {
	var b strings.Builder
	for y, row := range g.Cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteRune(c.Rune)
		}
	}
	return b.String()
}
