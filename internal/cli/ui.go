package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/buttonhalo/pkg/render"
)

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success, cached
	colorYellow = lipgloss.Color("220") // warnings, inside packing
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted
)

// Styles shared with the preview.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// printer writes status lines for people. Machine-readable output (JSON,
// cache paths) is written to the command's writer directly.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) icon(style lipgloss.Style, icon, msg string) {
	fmt.Fprintln(p.w, style.Render(icon)+" "+msg)
}

func (p printer) success(format string, args ...any) {
	p.icon(StyleSuccess, "✓", fmt.Sprintf(format, args...))
}

func (p printer) failure(format string, args ...any) {
	p.icon(styleIconError, "✗", fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	p.icon(StyleWarning, "!", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.icon(styleIconInfo, "›", fmt.Sprintf(format, args...))
}

// detail prints an indented, muted line under the previous status.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	fmt.Fprintln(p.w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

func (p printer) nextStep(description, cmd string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// stats prints "8 controls · 2 rounds · cached" with inside packing flagged.
func (p printer) stats(controls, rounds int, inside, cached bool) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d controls", controls)),
		StyleDim.Render(fmt.Sprintf("%d rounds", rounds)),
	}
	if inside {
		parts = append(parts, StyleWarning.Render("inside"))
	}
	if cached {
		parts = append(parts, StyleSuccess.Render("cached"))
	} else {
		parts = append(parts, styleIconInfo.Render("fresh"))
	}
	fmt.Fprintln(p.w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// positionsTable renders one row per control with its footprint corners.
func positionsTable(scene render.Scene) string {
	rows := make([][]string, len(scene.Controls))
	for i, ctl := range scene.Controls {
		b := ctl.Bounds(scene.Footprint)
		rows[i] = []string{
			strconv.Itoa(i),
			ctl.Label,
			strconv.Itoa(b.X),
			strconv.Itoa(b.Y),
			fmt.Sprintf("%d,%d", b.Right(), b.Bottom()),
		}
	}

	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "Label", "X", "Y", "Bottom-right").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0:
				return StyleDim
			case col == 1:
				return StyleValue
			default:
				return StyleNumber
			}
		}).
		Render()
}
