package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/buttonhalo/pkg/control"
	"github.com/matzehuels/buttonhalo/pkg/geom"
	"github.com/matzehuels/buttonhalo/pkg/placement"
	"github.com/matzehuels/buttonhalo/pkg/render"
	"github.com/matzehuels/buttonhalo/pkg/render/sink"
	"github.com/matzehuels/buttonhalo/pkg/scenario"
)

// Preview styles
var (
	cellAreaStyle      = lipgloss.NewStyle().Foreground(colorDim)
	cellSelectionStyle = lipgloss.NewStyle().Foreground(colorCyan)
	cellControlStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	cellInsideStyle    = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	previewFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "preview [scenario]",
		Short: "Move and resize a selection in the terminal",
		Long: `Move and resize a selection in the terminal and watch the controls follow.

Keys:
  arrows         move the selection
  shift+arrows   resize the selection
  + / -          add or remove a control
  l              toggle legacy inside wrapping
  r              reset to the scenario
  q              quit

With --watch the scenario file is reloaded whenever it changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			if watch && path == "" {
				return fmt.Errorf("--watch needs a scenario file")
			}
			return c.runPreview(cmd.Context(), path, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the scenario when the file changes")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, path string, watch bool) error {
	s := c.defaultScenario()
	if path != "" {
		var err error
		if s, err = scenario.Load(path); err != nil {
			return fmt.Errorf("load scenario: %w", err)
		}
	}

	// The alternate screen hides the log, so placement debug lines go nowhere.
	m := newPreviewModel(s, log.NewWithOptions(io.Discard, log.Options{}))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if watch {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := watchScenario(watchCtx, path, func(msg tea.Msg) { p.Send(msg) }); err != nil {
				p.Send(previewErrMsg{err})
			}
		}()
	}

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(previewModel); ok {
		fm.close()
	}
	return nil
}

// =============================================================================
// Watcher
// =============================================================================

// scenarioReloadedMsg carries a scenario re-read after a file change.
type scenarioReloadedMsg struct{ scenario *scenario.Scenario }

// previewErrMsg reports a reload or watcher error without quitting.
type previewErrMsg struct{ err error }

// watchScenario sends a scenarioReloadedMsg each time path is written,
// created or renamed, until ctx is done. A half-written file is reported as
// a previewErrMsg and superseded by the next event. The parent directory is watched
// so editors that replace the file are followed.
func watchScenario(ctx context.Context, path string, send func(tea.Msg)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if _, err := os.Stat(path); err != nil {
				continue
			}

			s, err := scenario.Load(path)
			if err != nil {
				send(previewErrMsg{err})
				continue
			}
			send(scenarioReloadedMsg{s})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			send(previewErrMsg{err})
		}
	}
}

// =============================================================================
// previewModel
// =============================================================================

// previewModel is the bubbletea model behind the preview command. It keeps
// one placement handler alive across key presses, like an overlay does
// while the user drags its selection.
type previewModel struct {
	base    *scenario.Scenario
	logger  *log.Logger
	sel     geom.Rect
	count   int
	legacy  bool
	buttons []*control.Button
	handler *placement.Handler
	scene   render.Scene
	width   int
	height  int
	err     error
}

func newPreviewModel(s *scenario.Scenario, logger *log.Logger) previewModel {
	m := previewModel{logger: logger, width: 80, height: 24}
	m.reset(s)
	return m
}

// reset adopts s as the base scenario and rebuilds everything from it.
func (m *previewModel) reset(s *scenario.Scenario) {
	m.close()
	m.base = s
	m.sel = s.Selection.Geom()
	m.count = s.Controls.Len()
	m.legacy = s.LegacyWrap
	m.handler = nil
	m.buttons = nil
	m.rebuild()
}

// rebuild swaps in a fresh control set, replacing the handler only when
// its options changed.
func (m *previewModel) rebuild() {
	buttons := control.NewSet(m.count, m.base.Controls.Size, m.base.Controls.Labels)
	controls := make([]placement.Control, len(buttons))
	for i, b := range buttons {
		controls[i] = b
	}

	if m.handler == nil {
		opts := []placement.Option{placement.WithLogger(m.logger)}
		if m.legacy {
			opts = append(opts, placement.WithLegacyInsideWrap())
		}
		m.handler = placement.NewHandlerWithControls(controls, m.base.Display.Geom(), opts...)
	} else if err := m.handler.SetControls(controls); err != nil {
		m.err = err
	}
	m.buttons = buttons
	m.relayout()
	m.handler.Show()
}

func (m *previewModel) relayout() {
	m.handler.UpdatePosition(m.sel)
	m.scene = render.NewScene(m.base.Name, m.base.Display.Geom(), m.sel, m.buttons, m.handler.LastResult())
}

func (m *previewModel) close() {
	for _, b := range m.buttons {
		_ = b.Close()
	}
}

// step is the distance one key press moves or resizes the selection.
func (m previewModel) step() geom.Point {
	d := m.base.Display.Geom()
	return geom.Pt(max(d.W/m.cols(), 1), max(d.H/m.rows(), 1))
}

func (m previewModel) cols() int { return max(m.width-2, 10) }
func (m previewModel) rows() int { return max(m.height-6, 5) }

// move shifts the selection, keeping it on the display.
func (m *previewModel) move(dx, dy int) {
	d := m.base.Display.Geom()
	m.sel.X = clamp(m.sel.X+dx, d.X, d.X+d.W-m.sel.W)
	m.sel.Y = clamp(m.sel.Y+dy, d.Y, d.Y+d.H-m.sel.H)
	m.relayout()
}

// resize grows or shrinks the selection from its bottom-right corner.
func (m *previewModel) resize(dw, dh int) {
	d := m.base.Display.Geom()
	m.sel.W = clamp(m.sel.W+dw, 0, d.X+d.W-m.sel.X)
	m.sel.H = clamp(m.sel.H+dh, 0, d.Y+d.H-m.sel.Y)
	m.relayout()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		st := m.step()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			m.move(0, -st.Y)
		case "down":
			m.move(0, st.Y)
		case "left":
			m.move(-st.X, 0)
		case "right":
			m.move(st.X, 0)
		case "shift+up":
			m.resize(0, -st.Y)
		case "shift+down":
			m.resize(0, st.Y)
		case "shift+left":
			m.resize(-st.X, 0)
		case "shift+right":
			m.resize(st.X, 0)
		case "+", "=":
			if m.count < scenario.MaxControls {
				m.count++
				m.rebuild()
			}
		case "-":
			if m.count > 0 {
				m.count--
				m.rebuild()
			}
		case "l":
			m.legacy = !m.legacy
			m.close()
			m.handler = nil
			m.rebuild()
		case "r":
			m.reset(m.base)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case scenarioReloadedMsg:
		m.err = nil
		m.reset(msg.scenario)
	case previewErrMsg:
		m.err = msg.err
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("buttonhalo preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.base.Name))
	b.WriteString("\n")

	grid := sink.RenderText(m.scene, m.cols(), m.rows())
	b.WriteString(previewFrameStyle.Render(renderGrid(grid, m.scene.Inside)))
	b.WriteString("\n")

	mode := "default"
	if m.legacy {
		mode = "legacy"
	}
	res := m.handler.LastResult()
	status := fmt.Sprintf("selection %s  controls %d  rounds %d  wrap %s",
		m.sel, m.count, len(res.Rounds), mode)
	b.WriteString(StyleValue.Render(status))
	if m.handler.ButtonsAreInside() {
		b.WriteString("  " + StyleWarning.Render("inside"))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	}
	b.WriteString(StyleDim.Render("arrows move  shift+arrows resize  +/- controls  l wrap  r reset  q quit"))
	return b.String()
}

// renderGrid styles a text grid, grouping runs of equal cells.
func renderGrid(g sink.Grid, inside bool) string {
	var b strings.Builder
	for y, row := range g.Cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < len(row); {
			kind := row[x].Kind
			var run strings.Builder
			for ; x < len(row) && row[x].Kind == kind; x++ {
				run.WriteRune(row[x].Rune)
			}
			b.WriteString(cellStyle(kind, inside).Render(run.String()))
		}
	}
	return b.String()
}

func cellStyle(kind sink.CellKind, inside bool) lipgloss.Style {
	switch kind {
	case sink.CellArea:
		return cellAreaStyle
	case sink.CellSelection:
		return cellSelectionStyle
	case sink.CellControl:
		if inside {
			return cellInsideStyle
		}
		return cellControlStyle
	default:
		return lipgloss.NewStyle()
	}
}
