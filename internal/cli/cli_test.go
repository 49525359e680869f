package cli

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/internal/scenefile"
)

const testScene = `
[options]
width = 120
height = 80
background = "#ffffff"

[root]
kind = "stack"
name = "column"
padding = 4

[[root.children]]
kind = "container"
name = "swatch"
min_height = 20
background = "#ff0000"

[[root.children]]
kind = "control"
name = "panel"
`

func writeScene(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	t.Cleanup(func() { arbor.SetLogger(nil) })
	return withLogger(context.Background(), newLogger(&buf, log.DebugLevel)), &buf
}

// --- Logging ---

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Error("loggerFromContext should return the attached logger")
	}
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Error("debug message written at info level")
	}
	newProgress(l).done("finished", "items", 3)
	if !strings.Contains(buf.String(), "finished") || !strings.Contains(buf.String(), "elapsed") {
		t.Errorf("progress output = %q", buf.String())
	}
}

// --- Scene loading ---

func TestLoadSceneAppliesOverrides(t *testing.T) {
	ctx, _ := testContext(t)
	path := writeScene(t, testScene)
	s, err := loadScene(ctx, path, &sceneFlags{width: 200, debugOutlines: true})
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	if s.Options.Width != 200 || s.Options.Height != 80 || !s.Options.DebugOutlines {
		t.Errorf("options = %+v", s.Options)
	}
}

func TestLoadSceneConfigReplacesOptions(t *testing.T) {
	ctx, _ := testContext(t)
	path := writeScene(t, testScene)
	cfg := filepath.Join(t.TempDir(), "arbor.toml")
	if err := os.WriteFile(cfg, []byte("width = 50\nheight = 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := loadScene(ctx, path, &sceneFlags{config: cfg})
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	if s.Options.Width != 50 || s.Options.Height != 40 {
		t.Errorf("size = %dx%d, want 50x40", s.Options.Width, s.Options.Height)
	}
}

func TestLoadSceneErrors(t *testing.T) {
	ctx, _ := testContext(t)
	bad := writeScene(t, "[root]\nkind = \"wheel\"")
	if _, err := loadScene(ctx, bad, &sceneFlags{}); !errors.Is(err, scenefile.ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
	if _, err := loadScene(ctx, filepath.Join(t.TempDir(), "missing.toml"), &sceneFlags{}); err == nil {
		t.Error("expected an error for a missing scene")
	}
}

// --- Commands ---

func TestRunLayoutPrintsTree(t *testing.T) {
	ctx, _ := testContext(t)
	path := writeScene(t, testScene)
	var out bytes.Buffer
	if err := runLayout(ctx, &out, path, &sceneFlags{}); err != nil {
		t.Fatalf("runLayout: %v", err)
	}
	got := out.String()
	for _, want := range []string{"canvas", "column", "swatch", "[0,0 120x80]", "anchor of panel"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunRenderWritesPNG(t *testing.T) {
	ctx, logs := testContext(t)
	path := writeScene(t, testScene)
	output := filepath.Join(t.TempDir(), "out.png")
	if err := runRender(ctx, path, output, &sceneFlags{}); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Errorf("image bounds = %v, want 120x80", b)
	}
	if !strings.Contains(logs.String(), "Rendered") {
		t.Errorf("logs = %q, want a Rendered record", logs.String())
	}
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct{ in, want string }{
		{"scene.toml", "scene.png"},
		{"dir/demo.scene.toml", "dir/demo.scene.png"},
		{"noext", "noext.png"},
	}
	for _, tt := range tests {
		if got := defaultOutput(tt.in); got != tt.want {
			t.Errorf("defaultOutput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRootCommandRunsLayout(t *testing.T) {
	t.Cleanup(func() { arbor.SetLogger(nil) })
	path := writeScene(t, testScene)
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"layout", "--height", "60", path})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "[0,0 120x60]") {
		t.Errorf("output = %q, want the overridden canvas height", out.String())
	}
}
