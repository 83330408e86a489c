package cli

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buffos/go-roadmap/roadmap"
)

const sampleYAML = `title: CLI Roadmap
width: 900
timeline:
  mode: weekly
  start: "2024-08-26"
  periods: 6
groups:
  - name: Documentation
    fill: "#FFC000"
    tasks:
      - name: Problem Research
        start: "2024-08-26"
        end: "2024-09-05"
        milestones:
          - name: Research done
            date: "2024-09-05"
  - name: Development
    tasks:
      - name: Database
        start: "2024-09-02"
        end: "2024-09-20"
        parallel:
          - name: API
            start: "2024-09-21"
            end: "2024-10-01"
`

const backwardsYAML = `timeline:
  mode: monthly
  start: "2024-01-01"
  periods: 2
groups:
  - name: G
    tasks:
      - name: Backwards
        start: "2024-01-20"
        end: "2024-01-02"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testApp(env map[string]string) *App {
	return &App{
		Getenv: func(key string) string { return env[key] },
		Now:    func() time.Time { return time.Date(2024, 9, 10, 9, 0, 0, 0, time.UTC) },
	}
}

// executeCmd runs a cobra command and captures stdout and stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(app)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	out, _, err := executeCmd(t, testApp(nil))
	require.NoError(t, err)
	assert.Contains(t, out, "roadmapper")
	assert.Contains(t, out, "render")
}

func TestRenderCmd_DefaultOutputIsPNG(t *testing.T) {
	path := writeFile(t, "plan.yaml", sampleYAML)

	_, logs, err := executeCmd(t, testApp(nil), "render", path)
	require.NoError(t, err)

	f, err := os.Open(strings.TrimSuffix(path, ".yaml") + ".png")
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 900, img.Bounds().Dx())
	assert.Contains(t, logs, "Output saved")
}

func TestRenderCmd_OutputFlagPicksFormat(t *testing.T) {
	path := writeFile(t, "plan.yaml", sampleYAML)
	out := filepath.Join(filepath.Dir(path), "plan.svg")

	_, _, err := executeCmd(t, testApp(nil), "render", path, "-o", out, "--theme", "greenturtle", "--width", "700")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `<svg width="700"`))
	assert.Contains(t, string(data), `class="marker"`)
}

func TestRenderCmd_Stdout(t *testing.T) {
	path := writeFile(t, "plan.yaml", sampleYAML)

	out, logs, err := executeCmd(t, testApp(nil), "render", path, "-o", "-", "--format", "html", "--no-marker")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.NotContains(t, out, `class="marker"`)
	assert.NotContains(t, out, "level=", "logs go to stderr")
	assert.Contains(t, logs, "stdout")

	out, _, err = executeCmd(t, testApp(nil), "render", path, "-o", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg"), "stdout defaults to SVG")
}

func TestRenderCmd_BinaryToTerminal(t *testing.T) {
	path := writeFile(t, "plan.yaml", sampleYAML)
	app := testApp(nil)
	app.StdoutIsTerminal = func() bool { return true }

	out, _, err := executeCmd(t, app, "render", path, "-o", "-", "--format", "png")
	assert.ErrorIs(t, err, ErrBinaryToTerminal)
	assert.Empty(t, out)

	app.StdoutIsTerminal = func() bool { return false }
	out, _, err = executeCmd(t, app, "render", path, "-o", "-", "--format", "png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\x89PNG"))
}

func TestRenderCmd_Errors(t *testing.T) {
	path := writeFile(t, "plan.yaml", sampleYAML)
	dir := filepath.Dir(path)

	_, _, err := executeCmd(t, testApp(nil), "render", path, "--format", "svg", "-o", filepath.Join(dir, "x.png"))
	assert.ErrorIs(t, err, roadmap.ErrUnsupportedFormat)

	_, _, err = executeCmd(t, testApp(nil), "render", path, "-o", filepath.Join(dir, "x.gif"))
	assert.ErrorIs(t, err, roadmap.ErrUnsupportedFormat)

	_, _, err = executeCmd(t, testApp(nil), "render", path, "--theme", "neon")
	assert.ErrorIs(t, err, roadmap.ErrUnknownTheme)

	_, _, err = executeCmd(t, testApp(nil), "render", path, "--width", "0")
	assert.ErrorContains(t, err, "--width")

	_, _, err = executeCmd(t, testApp(map[string]string{EnvEngine: "cairo"}), "render", path)
	assert.ErrorIs(t, err, roadmap.ErrUnsupportedEngine)

	_, _, err = executeCmd(t, testApp(nil), "render", filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, "bad.yaml", backwardsYAML)
	_, _, err = executeCmd(t, testApp(nil), "render", bad)
	assert.ErrorIs(t, err, roadmap.ErrEndBeforeStart)
	assert.NoFileExists(t, strings.TrimSuffix(bad, ".yaml")+".png")
}

func TestLogLevel(t *testing.T) {
	path := writeFile(t, "plan.yaml", sampleYAML)

	_, _, err := executeCmd(t, testApp(nil), "validate", path, "--log-level", "loud")
	assert.ErrorContains(t, err, "loud")

	_, logs, err := executeCmd(t, testApp(map[string]string{EnvLogLevel: "debug"}), "validate", path)
	require.NoError(t, err)
	assert.Contains(t, logs, "Layout complete")

	_, logs, err = executeCmd(t, testApp(nil), "validate", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestValidateCmd(t *testing.T) {
	path := writeFile(t, "plan.yaml", sampleYAML)
	out, _, err := executeCmd(t, testApp(nil), "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 groups, 3 tasks, 1 milestone")

	bad := writeFile(t, "bad.yaml", backwardsYAML)
	_, _, err = executeCmd(t, testApp(nil), "validate", bad)
	assert.ErrorIs(t, err, roadmap.ErrEndBeforeStart)
}

func TestInspectCmd(t *testing.T) {
	path := writeFile(t, "plan.yaml", sampleYAML)
	out, _, err := executeCmd(t, testApp(nil), "inspect", path)
	require.NoError(t, err)

	assert.Contains(t, out, "CLI Roadmap")
	assert.Contains(t, out, "WEEKLY · 6 periods")
	assert.Contains(t, out, "Problem Research")
	assert.Contains(t, out, "◆ Research done")
	assert.Contains(t, out, "∥ API")
}

func TestThemesCmd(t *testing.T) {
	out, _, err := executeCmd(t, testApp(nil), "themes")
	require.NoError(t, err)
	for _, name := range roadmap.ThemeNames() {
		assert.Contains(t, out, name)
	}
}

func TestResolveOutput(t *testing.T) {
	tests := []struct {
		output, format string
		wantFormat     roadmap.Format
		wantPath       string
	}{
		{"", "", roadmap.FormatPNG, "dir/plan.png"},
		{"", "jpeg", roadmap.FormatJPEG, "dir/plan.jpg"},
		{"", "html", roadmap.FormatHTML, "dir/plan.html"},
		{"out.svg", "", roadmap.FormatSVG, "out.svg"},
		{"out.jpeg", "jpg", roadmap.FormatJPEG, "out.jpeg"},
		{"-", "", roadmap.FormatSVG, "-"},
		{"-", "png", roadmap.FormatPNG, "-"},
	}
	for _, tt := range tests {
		f, path, err := resolveOutput("dir/plan.yaml", tt.output, tt.format)
		require.NoError(t, err, "%q %q", tt.output, tt.format)
		assert.Equal(t, tt.wantFormat, f)
		assert.Equal(t, tt.wantPath, path)
	}

	_, _, err := resolveOutput("plan.yaml", "out", "")
	assert.ErrorIs(t, err, roadmap.ErrUnsupportedFormat)
	_, _, err = resolveOutput("plan.yaml", "out", "svg")
	assert.ErrorIs(t, err, roadmap.ErrUnsupportedFormat)
	_, _, err = resolveOutput("plan.yaml", "", "bmp")
	assert.ErrorIs(t, err, roadmap.ErrUnsupportedFormat)
}
