// Package scenario describes a placement input: the display bound, the
// selection rectangle, the control set, and an optional drag path.
//
// # Formats
//
// Scenarios are read from TOML or YAML, chosen by file extension, and from
// JSON on the HTTP API. They are always written as TOML:
//
//	name = "corner"
//	legacy_wrap = false
//
//	[display]
//	width = 1920
//	height = 1080
//
//	[selection]
//	x = 0
//	y = 0
//	width = 50
//	height = 50
//
//	[controls]
//	size = 24
//	labels = ["copy", "save", "exit"]
//
//	[[drag]]
//	dx = 10
//	dy = 0
//
// # Drag Paths
//
// Each [[drag]] step moves and resizes the selection relative to the
// previous frame. [Scenario.Frames] expands the path into absolute
// selections starting with the initial one.
package scenario
