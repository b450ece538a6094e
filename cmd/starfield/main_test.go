package main

import (
	"bytes"
	"encoding/json"
	"image/gif"
	"os"
	"strings"
	"testing"

	"github.com/san-kum/starfield/internal/config"
	"github.com/san-kum/starfield/internal/storage"
)

// runCLI executes a fresh command tree and returns everything written to
// the command output.
func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("starfield %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func setupWorkdir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("STARFIELD_STAR_COUNT", "60")
}

func TestRenderDefaults(t *testing.T) {
	setupWorkdir(t)

	out := runCLI(t, "render", "--seed", "3")
	if !strings.Contains(out, "wrote starfield.gif (90 frames, 480x300)") {
		t.Errorf("unexpected output %q", out)
	}

	f, err := os.Open("starfield.gif")
	if err != nil {
		t.Fatalf("gif not written: %v", err)
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(g.Image) != 90 {
		t.Errorf("expected 90 frames, got %d", len(g.Image))
	}
	if g.Config.Width != 480 || g.Config.Height != 300 {
		t.Errorf("expected 480x300, got %dx%d", g.Config.Width, g.Config.Height)
	}
	if g.Delay[0] != 100/30 {
		t.Errorf("expected delay %d for 30 fps, got %d", 100/30, g.Delay[0])
	}
	if _, err := os.Stat("starfield.svg"); !os.IsNotExist(err) {
		t.Error("render wrote starfield.svg")
	}
}

func TestRenderFlags(t *testing.T) {
	setupWorkdir(t)

	out := runCLI(t, "render", "--seed", "3", "--out", "small.gif", "--frames", "4", "--width", "64", "--height", "32")
	if !strings.Contains(out, "wrote small.gif (4 frames, 64x32)") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRecordDefaults(t *testing.T) {
	setupWorkdir(t)

	out := runCLI(t, "record", "--seed", "5")
	if !strings.Contains(out, "frames: 600 ") {
		t.Errorf("expected 600 recorded frames, got %q", out)
	}

	runs, err := storage.New(config.DefaultDataDir).List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Frames != 600 || runs[0].FPS != config.DefaultFPS {
		t.Errorf("expected 600 frames at %d fps, got %d at %d", config.DefaultFPS, runs[0].Frames, runs[0].FPS)
	}
	if runs[0].Width != config.DefaultWindowWidth || runs[0].Height != config.DefaultWindowHeight {
		t.Errorf("unexpected field size %vx%v", runs[0].Width, runs[0].Height)
	}
}

func TestExportDefaultsToStdout(t *testing.T) {
	setupWorkdir(t)

	runCLI(t, "record", "--seed", "7", "--frames", "20")
	runs, err := storage.New(config.DefaultDataDir).List()
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected one recorded run, got %d (%v)", len(runs), err)
	}
	runID := runs[0].ID

	out := runCLI(t, "export", runID)

	var data storage.ExportData
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("stdout is not the exported json: %v\n%s", err, out)
	}
	if data.Run.ID != runID || len(data.Samples) != 20 {
		t.Errorf("unexpected export: id %s, %d samples", data.Run.ID, len(data.Samples))
	}
	for _, name := range []string{"starfield.svg", "starfield.gif"} {
		if _, err := os.Stat(name); !os.IsNotExist(err) {
			t.Errorf("export wrote %s", name)
		}
	}

	out = runCLI(t, "export", runID, "--out", "run.json")
	if !strings.Contains(out, "exported "+runID+" to run.json") {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := os.Stat("run.json"); err != nil {
		t.Errorf("run.json not written: %v", err)
	}
}

func TestSnapshotDefaults(t *testing.T) {
	setupWorkdir(t)

	out := runCLI(t, "snapshot", "--seed", "2")
	if !strings.Contains(out, "wrote starfield.svg") {
		t.Errorf("unexpected output %q", out)
	}
	data, err := os.ReadFile("starfield.svg")
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !strings.Contains(string(data), `width="960" height="600"`) {
		t.Error("expected a 960x600 document")
	}
}

func TestPresetsListsAll(t *testing.T) {
	setupWorkdir(t)

	out := runCLI(t, "presets")
	for _, name := range config.ListPresets() {
		if !strings.Contains(out, name) {
			t.Errorf("preset %s missing from %q", name, out)
		}
	}
}
