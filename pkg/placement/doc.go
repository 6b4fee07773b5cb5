// Package placement positions the tool buttons that surround a selection
// rectangle in a screen-capture overlay.
//
// # Overview
//
// Given a display bound, a selection rectangle and N square controls of the
// same footprint, the [Engine] assigns every control a top-left position so
// that the controls hug the selection's edges. The computation is pure and
// deterministic: the same inputs always produce the same [Result].
//
// The stateful [Handler] wraps an Engine around a set of [Control] values and
// applies the computed positions to them, mirroring how an overlay widget
// drives its buttons while the user drags the selection.
//
// # Algorithm
//
// Placement works on a private copy of the selection, the working area:
//
//  1. Each side of the working area whose distance to the display bound is
//     below the clearance (2*[Separation] + footprint) is marked blocked.
//  2. The working area is grown to at least one footprint on each axis.
//  3. Each round computes how many controls fit along a row and a column,
//     splits up to four surplus controls between the top and bottom corners,
//     and fills the unblocked sides in the order bottom, right, top, left.
//  4. While controls remain, the working area grows outward by one extended
//     footprint (footprint + Separation) on every axis that is not blocked on
//     both sides, the blocked sides are recomputed, and a new round starts.
//  5. When all four sides are blocked the remaining controls are packed in
//     rows inside the working area, starting at its bottom-left corner, and
//     [Result.Inside] is set.
//
// Rows are centred on the side's midpoint. When a row takes a corner control
// and one horizontal side is blocked, the row centre is shifted half an
// extended footprint away from the blocked side so the extra control lands
// on the open side.
//
// # Inside Packing
//
// By default a packed row wraps when the next control would pass the working
// area's right edge, and cells overlapping a control from an earlier round
// are skipped. [WithLegacyInsideWrap] restores the historical predicate,
// which wraps after nearly every control and stacks the controls diagonally.
//
// # Usage
//
//	e := placement.NewEngine(geom.R(0, 0, 1920, 1080), 24)
//	res := e.Place(geom.R(500, 500, 100, 100), 8)
//	for i, p := range res.Positions {
//	    fmt.Println(i, p)
//	}
//
// With controls:
//
//	h := placement.NewHandler(screen, placement.WithLogger(logger))
//	_ = h.SetControls(buttons)
//	h.UpdatePosition(selection)
//	h.Show()
package placement
