package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/starfield/internal/config"
	"github.com/san-kum/starfield/internal/export"
	"github.com/san-kum/starfield/internal/field"
	"github.com/san-kum/starfield/internal/raster"
	"github.com/san-kum/starfield/internal/storage"
	"github.com/san-kum/starfield/internal/viz"
	"github.com/san-kum/starfield/internal/window"
)

var (
	dataDir    string
	configFile string
	preset     string
	envFile    string
	seed       int64
	frameRate  int
	theme      string
	spawn      bool
	debug      bool
	width      int
	height     int

	renderOut    string
	renderFrames int
	renderFPS    int
	renderWidth  int
	renderHeight int

	recordFrames int

	snapshotOut    string
	snapshotFrames int
	braille        bool

	exportOut   string
	benchFrames int

	logFile io.Closer
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers every command. Flags whose defaults differ between
// commands are bound to per-command variables.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "starfield",
		Short:             "ambient starfield for terminals, windows and gifs",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
				logFile = nil
			}
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&envFile, "env", ".env", "dotenv file with STARFIELD_* overrides")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.BoolVar(&spawn, "spawn", false, "spawn streaks automatically")
	pf.BoolVar(&debug, "debug", false, "write logs to debug.log")

	rootCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the starfield in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run the starfield in a desktop window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	windowCmd.Flags().IntVar(&width, "width", config.DefaultWindowWidth, "window width")
	windowCmd.Flags().IntVar(&height, "height", config.DefaultWindowHeight, "window height")
	windowCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render an animated gif",
		Args:  cobra.NoArgs,
		RunE:  renderGIF,
	}
	renderCmd.Flags().StringVar(&renderOut, "out", "starfield.gif", "output file")
	renderCmd.Flags().IntVar(&renderFrames, "frames", 90, "number of frames")
	renderCmd.Flags().IntVar(&renderFPS, "fps", 30, "frame rate")
	renderCmd.Flags().IntVar(&renderWidth, "width", 480, "image width")
	renderCmd.Flags().IntVar(&renderHeight, "height", 300, "image height")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "run headless and save per-frame statistics",
		Args:  cobra.NoArgs,
		RunE:  recordRun,
	}
	recordCmd.Flags().IntVar(&recordFrames, "frames", 600, "number of frames")
	recordCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	recordCmd.Flags().IntVar(&width, "width", config.DefaultWindowWidth, "field width")
	recordCmd.Flags().IntVar(&height, "height", config.DefaultWindowHeight, "field height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write one frame as svg",
		Args:  cobra.NoArgs,
		RunE:  snapshotSVG,
	}
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "starfield.svg", "output file")
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 30, "frames to simulate before the snapshot")
	snapshotCmd.Flags().IntVar(&width, "width", config.DefaultWindowWidth, "field width")
	snapshotCmd.Flags().IntVar(&height, "height", config.DefaultWindowHeight, "field height")
	snapshotCmd.Flags().BoolVar(&braille, "braille", false, "snapshot the braille canvas instead of vector shapes")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame cost per surface",
		Args:  cobra.NoArgs,
		RunE:  benchField,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 300, "frames per case")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "  %s\t%s\n", name, config.Presets[name].Description)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	})

	rootCmd.AddCommand(liveCmd, windowCmd, renderCmd, recordCmd, snapshotCmd, listCmd, plotCmd, exportCmd, benchCmd, presetsCmd, configCmd)
	return rootCmd
}

// setupLogging keeps the log package away from the terminal a TUI owns.
func setupLogging(cmd *cobra.Command, args []string) error {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile("debug.log", "starfield")
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	logFile = f
	return nil
}

// loadConfig layers preset, config file, environment and changed flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	// config file overrides preset
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("spawn") {
		cfg.Field.SpawnStreaks = spawn
	}
	if flags.Changed("fps") {
		cfg.View.FPS, _ = flags.GetInt("fps")
	}
	if flags.Changed("theme") {
		cfg.View.Theme = theme
	}
	if flags.Changed("width") {
		cfg.Window.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Window.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	log.Printf("config: preset=%q seed=%d stars=%d spawn=%v", preset, cfg.Seed, cfg.Field.StarCount, cfg.Field.SpawnStreaks)
	return cfg, nil
}

func newRand(cfg *config.Config) *rand.Rand {
	return rand.New(rand.NewSource(cfg.Seed))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(cfg, newRand(cfg))
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return window.Run(cfg, newRand(cfg))
}

// headless builds a seeded field over a white-on-black raster.
func headless(cfg *config.Config, w, h int) (*field.Field, *raster.Raster) {
	r := raster.New(raster.White, raster.Black)
	f := field.New(r, newRand(cfg), cfg.FieldOptions())
	f.Seed(float64(w), float64(h))
	return f, r
}

func renderGIF(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if renderFrames <= 0 || renderFPS <= 0 {
		return fmt.Errorf("frames and fps must be positive, got %d and %d", renderFrames, renderFPS)
	}

	// render sizes come from its own flags, not the window section
	f, r := headless(cfg, renderWidth, renderHeight)
	if !cfg.Field.SpawnStreaks {
		// a gif with no streak at all reads as a broken render
		f.SpawnStreak()
	}

	rec := raster.NewRecorder(raster.White, raster.Black, renderFPS)
	storage.Capture(f, renderFrames, renderFPS, func(int) { rec.Capture(r.Image()) })

	out, err := os.Create(renderOut)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := rec.Encode(out); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	b := r.Image().Bounds()
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d frames, %dx%d)\n", renderOut, rec.Len(), b.Dx(), b.Dy())
	return nil
}

func recordRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	f, _ := headless(cfg, cfg.Window.Width, cfg.Window.Height)
	samples := storage.Capture(f, recordFrames, cfg.View.FPS, nil)

	name := preset
	if name == "" {
		name = "custom"
	}
	runID, err := st.Save(storage.RunMetadata{
		Preset:       name,
		Seed:         cfg.Seed,
		FPS:          cfg.View.FPS,
		Width:        float64(cfg.Window.Width),
		Height:       float64(cfg.Window.Height),
		StarCount:    cfg.Field.StarCount,
		StreakRate:   cfg.Field.StreakRate,
		SpawnStreaks: cfg.Field.SpawnStreaks,
	}, samples)
	if err != nil {
		return err
	}

	summary := storage.Summarize(samples)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", runID)
	fmt.Fprintf(out, "frames: %d  simulated: %.2fs\n", len(samples), summary["duration"])
	fmt.Fprintf(out, "streaks: peak %.0f  spawned %.0f  pruned %.0f\n", summary["peak_streaks"], summary["spawned"], summary["pruned"])
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tFPS\tSTARS\tSPAWNED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.0f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.FPS,
			run.StarCount,
			run.Summary["spawned"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "preset: %s  seed: %d\n", meta.Preset, meta.Seed)
	fmt.Fprintf(out, "samples: %d\n\n", len(samples))

	streaks := make([]float64, len(samples))
	opacity := make([]float64, len(samples))
	for i, s := range samples {
		streaks[i] = float64(s.Streaks)
		opacity[i] = s.MeanOpacity
	}

	for _, p := range []struct {
		caption string
		data    []float64
	}{
		{"active streaks", streaks},
		{"mean star opacity", opacity},
	} {
		fmt.Fprintln(out, asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption(p.caption),
		))
		fmt.Fprintln(out)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)

	if exportOut == "" {
		return st.ExportJSON(cmd.OutOrStdout(), args[0])
	}

	out, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := st.ExportJSON(out, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", args[0], exportOut)
	return nil
}

func snapshotSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	n := max(snapshotFrames, 1)

	var doc string
	if braille {
		th, err := viz.LookupTheme(cfg.View.Theme)
		if err != nil {
			return err
		}
		canvas := viz.NewCanvas(0, 0, cfg.View.DotThreshold)
		opts := cfg.FieldOptions()
		opts.PixelRatio = 1
		f := field.New(canvas, newRand(cfg), opts)
		// one braille cell per 8x16 field pixels keeps the dot grid legible
		f.Seed(float64(cfg.Window.Width/4), float64(cfg.Window.Height/4))
		storage.Capture(f, n, cfg.View.FPS, nil)
		doc = export.CanvasToSVG(canvas, th, 4)
	} else {
		svg := export.NewSVG("#ffffff", "#000000")
		f := field.New(svg, newRand(cfg), cfg.FieldOptions())
		f.Seed(float64(cfg.Window.Width), float64(cfg.Window.Height))
		storage.Capture(f, n, cfg.View.FPS, nil)
		var sb strings.Builder
		if _, err := svg.WriteTo(&sb); err != nil {
			return err
		}
		doc = sb.String()
	}

	if err := os.WriteFile(snapshotOut, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", snapshotOut)
	return nil
}

func benchField(cmd *cobra.Command, args []string) error {
	if benchFrames <= 0 {
		return fmt.Errorf("benchFrames must be positive, got %d", benchFrames)
	}

	type surfaceCase struct {
		name    string
		surface func() field.Surface
		w, h    float64
	}
	surfaces := []surfaceCase{
		{"raster", func() field.Surface { return raster.New(raster.White, raster.Black) }, 960, 600},
		{"braille", func() field.Surface { return viz.NewCanvas(0, 0, config.DefaultDotThreshold) }, 320, 192},
	}
	counts := []int{200, field.DefaultStarCount, 5000}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %d frames per case\n\n", benchFrames)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SURFACE\tSTARS\tFRAMES\tTIME\tFRAMES/SEC")

	for _, sc := range surfaces {
		for _, n := range counts {
			opts := field.DefaultOptions()
			opts.StarCount = n
			opts.SpawnStreaks = true
			opts.StreakRate = 4
			f := field.New(sc.surface(), rand.New(rand.NewSource(1)), opts)
			f.Seed(sc.w, sc.h)

			start := time.Now()
			for i := 0; i < benchFrames; i++ {
				f.Frame(1.0 / 60)
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n",
				sc.name, n, benchFrames, elapsed.Round(time.Microsecond),
				float64(benchFrames)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("seed") {
		// keep a fresh seed per run unless one was asked for
		cfg.Seed = 0
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}
