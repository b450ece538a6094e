package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/starfield/internal/field"
	"github.com/san-kum/starfield/internal/raster"
)

func testSamples() []Sample {
	return []Sample{
		{Frame: 0, Time: 0, Streaks: 1, MeanOpacity: 0.42, Spawned: 1},
		{Frame: 1, Time: 0.016667, Streaks: 3, MeanOpacity: 0.44, Spawned: 3},
		{Frame: 2, Time: 0.033333, Streaks: 2, MeanOpacity: 0.40, Spawned: 3, Pruned: 1},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{
		Preset:     "shower",
		Seed:       42,
		FPS:        60,
		Width:      960,
		Height:     600,
		StarCount:  900,
		StreakRate: 6,
	}, testSamples())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Preset != "shower" {
		t.Errorf("expected preset 'shower', got '%s'", meta.Preset)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", meta.Frames)
	}
	if meta.Summary["peak_streaks"] != 3 {
		t.Errorf("expected peak_streaks 3, got %f", meta.Summary["peak_streaks"])
	}
	if meta.Summary["pruned"] != 1 {
		t.Errorf("expected pruned 1, got %f", meta.Summary["pruned"])
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}

	want := testSamples()
	if len(samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(samples))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d: expected %+v, got %+v", i, want[i], samples[i])
		}
	}
}

func TestStoreDefaultPreset(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "custom" {
		t.Errorf("expected preset 'custom', got '%s'", meta.Preset)
	}
	if len(meta.Summary) != 0 {
		t.Errorf("expected empty summary, got %v", meta.Summary)
	}
}

func TestStoreUniqueIDs(t *testing.T) {
	st := New(t.TempDir())

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		runID, err := st.Save(RunMetadata{Preset: "reference"}, testSamples())
		if err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
		if seen[runID] {
			t.Fatalf("duplicate run id %s", runID)
		}
		seen[runID] = true
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 runs, got %d", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].Timestamp.Before(runs[i-1].Timestamp) {
			t.Error("expected runs sorted by timestamp")
		}
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreListSkipsStrayEntries(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if _, err := st.Save(RunMetadata{Preset: "sparse"}, testSamples()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "empty"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreErrors(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if _, err := st.Load("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadSamples("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}

	bad := filepath.Join(tmpDir, "bad")
	if err := os.Mkdir(bad, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bad, metadataFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bad, framesFile), []byte("frame,time,streaks,mean_opacity,spawned,pruned\n0,zero,1,0.5,0,0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Load("bad"); !errors.Is(err, ErrCorruptRun) {
		t.Errorf("expected ErrCorruptRun, got %v", err)
	}
	if _, err := st.LoadSamples("bad"); !errors.Is(err, ErrCorruptRun) {
		t.Errorf("expected ErrCorruptRun, got %v", err)
	}
}

func TestCapture(t *testing.T) {
	opts := field.DefaultOptions()
	opts.StarCount = 50
	f := field.New(raster.New(raster.White, raster.Black), rand.New(rand.NewSource(3)), opts)
	f.Seed(120, 80)
	f.SpawnStreak()

	calls := 0
	samples := Capture(f, 30, 60, func(frame int) {
		if frame != calls {
			t.Errorf("hook frame %d, expected %d", frame, calls)
		}
		calls++
	})

	if len(samples) != 30 {
		t.Fatalf("expected 30 samples, got %d", len(samples))
	}
	if calls != 30 {
		t.Errorf("expected 30 hook calls, got %d", calls)
	}
	if samples[0].Time != 0 {
		t.Errorf("first frame should not advance the clock, got %f", samples[0].Time)
	}
	for i, s := range samples {
		want := float64(i) / 60
		if math.Abs(s.Time-want) > 1e-6 {
			t.Errorf("frame %d: expected time %f, got %f", i, want, s.Time)
		}
		if s.Spawned != 1 {
			t.Errorf("frame %d: expected 1 spawned, got %d", i, s.Spawned)
		}
	}
}

func TestCaptureUnavailableField(t *testing.T) {
	f := field.New(nil, nil, field.DefaultOptions())
	if samples := Capture(f, 10, 60, nil); len(samples) != 0 {
		t.Errorf("expected no samples, got %d", len(samples))
	}
}

func TestSummarize(t *testing.T) {
	if got := Summarize(nil); len(got) != 0 {
		t.Errorf("expected empty summary, got %v", got)
	}

	s := Summarize(testSamples())
	if s["mean_streaks"] != 2 {
		t.Errorf("expected mean_streaks 2, got %f", s["mean_streaks"])
	}
	if math.Abs(s["mean_opacity"]-0.42) > 1e-9 {
		t.Errorf("expected mean_opacity 0.42, got %f", s["mean_opacity"])
	}
	if s["duration"] != 0.033333 {
		t.Errorf("expected duration 0.033333, got %f", s["duration"])
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Preset: "terminal", Seed: 7}, testSamples())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if data.Run.ID != runID || data.Run.Seed != 7 {
		t.Errorf("unexpected run metadata %+v", data.Run)
	}
	if len(data.Samples) != 3 || data.Samples[2].Pruned != 1 {
		t.Errorf("unexpected samples %+v", data.Samples)
	}

	if err := st.ExportJSON(&buf, "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}
