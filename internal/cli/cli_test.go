package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/buttonhalo/pkg/pipeline"
	"github.com/matzehuels/buttonhalo/pkg/scenario"
)

// testCLI returns a CLI whose config points the file cache at a temp dir.
func testCLI(t *testing.T) (*CLI, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	cfg := "[cache]\nbackend = \"file\"\ndir = " + quote(filepath.Join(dir, "cache")) + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return New(io.Discard, LogInfo), cfgPath
}

func quote(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func execute(t *testing.T, c *CLI, cfgPath string, args ...string) (string, error) {
	t.Helper()
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--config", cfgPath))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"layout", "render", "preview", "serve", "scenario", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Find(%q) = %v, %v", name, cmd, err)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,json", []string{"svg", "json"}},
		{"svg, dot", []string{"svg", "dot"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, name string
		want                string
	}{
		{"", "scenarios/corner.toml", "corner", "scenarios/corner"},
		{"", "", "default", "default"},
		{"", "", "../escape", "placement"},
		{"out/halo.svg", "x.toml", "x", "out/halo"},
		{"out/halo.neato.svg", "x.toml", "x", "out/halo"},
		{"out/halo", "x.toml", "x", "out/halo"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input, tt.name); got != tt.want {
			t.Errorf("basePath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.name, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("a.svg", "a", "svg", 1); got != "a.svg" {
		t.Errorf("single format = %q, want a.svg", got)
	}
	if got := outputPath("a.svg", "a", "neato", 2); got != "a.neato.svg" {
		t.Errorf("multiple formats = %q, want a.neato.svg", got)
	}
	if got := outputPath("", "a", "json", 1); got != "a.json" {
		t.Errorf("no output = %q, want a.json", got)
	}
}

func TestDefaultScenario(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Display.Width, c.Config.Display.Height = 800, 600
	c.Config.Controls.Count = 20

	s := c.defaultScenario()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got, want := s.Selection, (scenario.Rect{X: 300, Y: 225, Width: 200, Height: 150}); got != want {
		t.Errorf("Selection = %+v, want %+v", got, want)
	}
	if s.Controls.Len() != 20 {
		t.Errorf("Controls.Len() = %d, want 20", s.Controls.Len())
	}
	if len(s.Controls.Labels) != len(scenario.DefaultLabels) {
		t.Errorf("got %d labels, want %d", len(s.Controls.Labels), len(scenario.DefaultLabels))
	}
}

func TestLayoutCommandJSON(t *testing.T) {
	c, cfgPath := testCLI(t)

	out, err := execute(t, c, cfgPath, "layout", "--json")
	if err != nil {
		t.Fatalf("layout error = %v", err)
	}
	var doc struct {
		Controls []json.RawMessage `json:"controls"`
		Rounds   []json.RawMessage `json:"rounds"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(doc.Controls) != 8 {
		t.Errorf("got %d controls, want 8", len(doc.Controls))
	}
	if len(doc.Rounds) == 0 {
		t.Error("rounds missing")
	}
}

func TestLayoutCommandDrag(t *testing.T) {
	c, cfgPath := testCLI(t)
	path := filepath.Join(t.TempDir(), "drag.toml")
	s := scenario.Default()
	s.Drag = []scenario.Step{{DX: 10}, {DY: 10}}
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, c, cfgPath, "layout", path, "--drag", "--json")
	if err != nil {
		t.Fatalf("layout --drag error = %v", err)
	}
	var frames []frameJSON
	if err := json.Unmarshal([]byte(out), &frames); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if frames[1].Selection.X != s.Selection.X+10 {
		t.Errorf("frame 1 x = %d, want %d", frames[1].Selection.X, s.Selection.X+10)
	}
}

func TestScenarioInitAndRender(t *testing.T) {
	c, cfgPath := testCLI(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "halo.toml")

	if _, err := execute(t, c, cfgPath, "scenario", "init", path); err != nil {
		t.Fatalf("scenario init error = %v", err)
	}
	if _, err := execute(t, c, cfgPath, "scenario", "init", path); err == nil {
		t.Error("second init without --force should fail")
	}
	if _, err := execute(t, c, cfgPath, "scenario", "check", path); err != nil {
		t.Errorf("scenario check error = %v", err)
	}

	base := filepath.Join(dir, "out", "halo")
	if _, err := execute(t, c, cfgPath, "render", path, "-f", "svg,json,dot", "-o", base, "--rings"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	for _, format := range []string{"svg", "json", "dot"} {
		p := base + pipeline.Extensions[format]
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", p, err)
		}
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	c, cfgPath := testCLI(t)
	if _, err := execute(t, c, cfgPath, "render", "-f", "gif"); err == nil {
		t.Error("render -f gif should fail")
	}
}

func TestPreviewWatchNeedsFile(t *testing.T) {
	c, cfgPath := testCLI(t)
	if _, err := execute(t, c, cfgPath, "preview", "--watch"); err == nil {
		t.Error("preview --watch without a file should fail")
	}
}

func TestInvalidConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[cache]\nbackend = \"memcached\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, c, cfgPath, "layout"); err == nil {
		t.Error("invalid config should fail")
	}
}

func TestCompletion(t *testing.T) {
	c, cfg := testCLI(t)
	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, c, cfg, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out, "buttonhalo") {
				t.Errorf("completion %s output does not mention the command", shell)
			}
		})
	}

	if _, err := execute(t, c, cfg, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh: want error for unsupported shell")
	}
}

func TestScenarioCheckExamples(t *testing.T) {
	c, cfg := testCLI(t)
	paths, _ := filepath.Glob(filepath.Join("..", "..", "examples", "scenarios", "*"))
	if len(paths) == 0 {
		t.Fatal("no example scenarios found")
	}

	out, err := execute(t, c, cfg, append([]string{"scenario", "check"}, paths...)...)
	if err != nil {
		t.Fatalf("scenario check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "fullscreen") {
		t.Errorf("output = %q, want every scenario listed", out)
	}
}
