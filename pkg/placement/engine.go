package placement

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/buttonhalo/pkg/geom"
)

// Separation is the gap in pixels between adjacent controls, and between a
// control and the selection edge it sits on.
const Separation = 6

// maxCornerControls caps how many surplus controls a round may place on
// the corners of the working area.
const maxCornerControls = 4

// Option configures an [Engine] or a [Handler].
type Option func(*config)

type config struct {
	logger     *log.Logger
	legacyWrap bool
}

// WithLogger sets the logger used for per-round debug output.
// A nil logger disables logging.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithLegacyInsideWrap restores the historical inside-packing row wrap: a new
// row starts after every control whose x + extended footprint is non-zero.
func WithLegacyInsideWrap() Option {
	return func(c *config) { c.legacyWrap = true }
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return c
}

// Engine computes control positions around a selection. An Engine is
// immutable after construction and safe for concurrent use.
type Engine struct {
	bounds   geom.Rect
	base     int
	extended int
	cfg      config
}

// NewEngine returns an engine for controls of the given footprint inside
// bounds. Footprints below one pixel are treated as one pixel.
func NewEngine(bounds geom.Rect, footprint int, opts ...Option) *Engine {
	return newEngine(bounds, footprint, newConfig(opts))
}

func newEngine(bounds geom.Rect, footprint int, cfg config) *Engine {
	footprint = max(footprint, 1)
	return &Engine{
		bounds:   bounds,
		base:     footprint,
		extended: footprint + Separation,
		cfg:      cfg,
	}
}

// Bounds returns the display bound.
func (e *Engine) Bounds() geom.Rect { return e.bounds }

// Footprint returns the control edge length.
func (e *Engine) Footprint() int { return e.base }

// Extended returns the footprint plus [Separation], the pitch between
// consecutive controls.
func (e *Engine) Extended() int { return e.extended }

// Clearance returns the minimum distance between a working-area edge and the
// display bound for that side to hold controls.
func (e *Engine) Clearance() int { return 2*Separation + e.base }

// Result is the outcome of one placement.
type Result struct {
	// Positions holds the top-left corner of control i at index i.
	Positions []geom.Point

	// Inside is true when some controls were packed inside the working area
	// because every side was blocked.
	Inside bool

	// Area is the working area after the last round.
	Area geom.Rect

	// Rounds traces each pass of the placement loop.
	Rounds []Round
}

// Round describes one pass of the placement loop.
type Round struct {
	Area   geom.Rect
	Sides  Sides
	PerRow int
	PerCol int

	// CornersTop and CornersBottom are the surplus controls assigned to the
	// top and bottom rows.
	CornersTop    int
	CornersBottom int

	// Placed counts the controls placed per side in this round.
	Bottom, Right, Top, Left int

	// Inside counts controls packed inside the working area.
	Inside int
}

// Total returns the number of controls placed in the round.
func (r Round) Total() int {
	return r.Bottom + r.Right + r.Top + r.Left + r.Inside
}

// Place computes positions for n controls around selection. The selection is
// not modified. For n <= 0 the result has no positions.
func (e *Engine) Place(selection geom.Rect, n int) Result {
	if n <= 0 {
		return Result{Area: selection}
	}

	area := selection
	sides := e.blockedSides(area)
	area = e.ensureMinimumSize(area, sides)

	positions := make([]geom.Point, 0, n)
	var rounds []Round
	inside := false

	for len(positions) < n {
		round := Round{Area: area, Sides: sides}

		if sides.All() {
			packed := e.packInside(area, n-len(positions), positions)
			positions = append(positions, packed...)
			round.Inside = len(packed)
			rounds = append(rounds, round)
			e.logRound(len(rounds), round, len(positions))
			inside = true
			break
		}

		round.PerRow = (area.W + Separation) / e.extended
		round.PerCol = (area.H + Separation) / e.extended

		corners := min(n-len(positions)-2*(round.PerRow+round.PerCol), maxCornerControls)
		maxExtra := 2
		if sides.OneHorizontal() {
			maxExtra = 1
		} else if sides.Horizontal() {
			maxExtra = 0
		}
		round.CornersTop = clamp(corners, 0, maxExtra)
		corners -= round.CornersTop
		round.CornersBottom = clamp(corners, 0, maxExtra)

		if !sides.Bottom {
			count := clamp(round.PerRow+round.CornersBottom, 0, n-len(positions))
			center := geom.Pt(area.Center().X, area.Bottom()+Separation)
			if count > round.PerRow {
				center = e.adjustHorizontalCenter(center, sides)
			}
			positions = append(positions, e.horizontalPoints(center, count, true)...)
			round.Bottom = count
		}
		if !sides.Right && len(positions) < n {
			count := clamp(round.PerCol, 0, n-len(positions))
			center := geom.Pt(area.Right()+Separation, area.Center().Y)
			positions = append(positions, e.verticalPoints(center, count, false)...)
			round.Right = count
		}
		if !sides.Top && len(positions) < n {
			count := clamp(round.PerRow+round.CornersTop, 0, n-len(positions))
			center := geom.Pt(area.Center().X, area.Top()-e.extended)
			// Top recentres only for exactly one corner control, unlike bottom.
			if count == round.PerRow+1 {
				center = e.adjustHorizontalCenter(center, sides)
			}
			positions = append(positions, e.horizontalPoints(center, count, false)...)
			round.Top = count
		}
		if !sides.Left && len(positions) < n {
			count := clamp(round.PerCol, 0, n-len(positions))
			center := geom.Pt(area.Left()-e.extended, area.Center().Y)
			positions = append(positions, e.verticalPoints(center, count, true)...)
			round.Left = count
		}

		rounds = append(rounds, round)
		e.logRound(len(rounds), round, len(positions))

		if len(positions) < n && !sides.All() {
			area = e.expand(area, sides)
		}
		sides = e.blockedSides(area)
	}

	return Result{
		Positions: positions,
		Inside:    inside,
		Area:      area,
		Rounds:    rounds,
	}
}

// blockedSides marks every side of area that lies within the clearance of
// the display bound.
func (e *Engine) blockedSides(area geom.Rect) Sides {
	clearance := e.Clearance()
	return Sides{
		Right:  e.bounds.Right()-area.Right() < clearance,
		Left:   area.Left()-e.bounds.Left() < clearance,
		Bottom: e.bounds.Bottom()-area.Bottom() < clearance,
		Top:    area.Top()-e.bounds.Top() < clearance,
	}
}

// ensureMinimumSize grows area to at least one footprint per axis. The growth
// is split evenly around the original centre unless the leading side is
// blocked, in which case the area only grows right or down.
func (e *Engine) ensureMinimumSize(area geom.Rect, sides Sides) geom.Rect {
	if area.W < e.base {
		if !sides.Left {
			area.SetLeft(area.Left() - (e.base-area.W)/2)
		}
		area.SetWidth(e.base)
	}
	if area.H < e.base {
		if !sides.Top {
			area.SetTop(area.Top() - (e.base-area.H)/2)
		}
		area.SetHeight(e.base)
	}
	return area
}

// expand grows area by one extended footprint on each axis that still has
// an open side. An axis blocked on both sides keeps its extent.
func (e *Engine) expand(area geom.Rect, sides Sides) geom.Rect {
	switch {
	case sides.Right && !sides.Left:
		area.SetLeft(area.Left() - e.extended)
	case !sides.Right && !sides.Left:
		area.SetLeft(area.Left() - e.extended)
		area.SetWidth(area.W + e.extended)
	case sides.Left && !sides.Right:
		area.SetWidth(area.W + e.extended)
	}

	switch {
	case sides.Bottom && !sides.Top:
		area.SetTop(area.Top() - e.extended)
	case !sides.Bottom && !sides.Top:
		area.SetTop(area.Top() - e.extended)
		area.SetHeight(area.H + e.extended)
	case sides.Top && !sides.Bottom:
		area.SetHeight(area.H + e.extended)
	}
	return area
}

// adjustHorizontalCenter shifts a row centre half a pitch away from the
// blocked horizontal side.
func (e *Engine) adjustHorizontalCenter(center geom.Point, sides Sides) geom.Point {
	if sides.Left {
		center.X += e.extended / 2
	} else if sides.Right {
		center.X -= e.extended / 2
	}
	return center
}

func (e *Engine) logRound(index int, r Round, placed int) {
	e.cfg.logger.Debug("placement round",
		"round", index,
		"area", r.Area.String(),
		"blocked", r.Sides.String(),
		"per_row", r.PerRow,
		"per_col", r.PerCol,
		"corners_top", r.CornersTop,
		"corners_bottom", r.CornersBottom,
		"placed", placed)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
