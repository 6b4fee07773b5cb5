package placement

import "github.com/matzehuels/buttonhalo/pkg/geom"

// horizontalPoints returns count positions on a row centred on center.
// Left-to-right rows start left of the centre and step right; the reverse
// starts on the right and steps left, covering the same footprints.
func (e *Engine) horizontalPoints(center geom.Point, count int, leftToRight bool) []geom.Point {
	shift := e.centerShift(count, leftToRight)
	x, step := center.X+shift, -e.extended
	if leftToRight {
		x, step = center.X-shift, e.extended
	}

	points := make([]geom.Point, count)
	for i := range points {
		points[i] = geom.Pt(x+i*step, center.Y)
	}
	return points
}

// verticalPoints is the column counterpart of horizontalPoints.
func (e *Engine) verticalPoints(center geom.Point, count int, upToDown bool) []geom.Point {
	shift := e.centerShift(count, upToDown)
	y, step := center.Y+shift, -e.extended
	if upToDown {
		y, step = center.Y-shift, e.extended
	}

	points := make([]geom.Point, count)
	for i := range points {
		points[i] = geom.Pt(center.X, y+i*step)
	}
	return points
}

// centerShift is the distance from the centre to the first position of a
// group of count controls.
func (e *Engine) centerShift(count int, forward bool) int {
	var shift int
	if count%2 == 0 {
		shift = e.extended*(count/2) - Separation/2
	} else {
		shift = e.extended*((count-1)/2) + e.base/2
	}
	if !forward {
		shift -= e.base
	}
	return shift
}
