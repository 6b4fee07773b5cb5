package placement

import "github.com/matzehuels/buttonhalo/pkg/geom"

// packInside stacks count controls in rows inside area, starting one
// separation in from the bottom-left corner and moving up a row on wrap.
// Cells whose footprint overlaps a control in placed are skipped; earlier
// rounds leave controls just outside what later became area.
func (e *Engine) packInside(area geom.Rect, count int, placed []geom.Point) []geom.Point {
	left := area.Left() + Separation
	x, y := left, area.Bottom()-e.extended

	points := make([]geom.Point, 0, count)
	for len(points) < count {
		p := geom.Pt(x, y)

		if e.cfg.legacyWrap {
			points = append(points, p)
			if p.X+e.extended != 0 {
				x = left
				y -= e.extended
			}
			x += e.extended
			continue
		}

		if !e.occupied(p, placed) {
			points = append(points, p)
		}
		x += e.extended
		if x+e.base-1 > area.Right() {
			x = left
			y -= e.extended
		}
	}
	return points
}

// occupied reports whether a footprint at p overlaps any footprint in placed.
func (e *Engine) occupied(p geom.Point, placed []geom.Point) bool {
	for _, q := range placed {
		if abs(p.X-q.X) < e.base && abs(p.Y-q.Y) < e.base {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
