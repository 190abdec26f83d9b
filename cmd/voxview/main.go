package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/CanisArtorus/Voreeal/cmd/voxview/voxview"
	"github.com/CanisArtorus/Voreeal/importer"
	"github.com/CanisArtorus/Voreeal/volume"
)

const (
	logDir      = "logs"
	logFileName = "voxview.log"
	maxLogSize  = 10 * 1024 * 1024

	defaultConfigPath = "voxview.ini"
)

func main() {
	var (
		axisStr    string
		modeStr    string
		sliceIdx   int
		scale      int
		fitMode    bool
		noStatus   bool
		configPath string
		debugMode  bool
	)

	flag.StringVar(&axisStr, "axis", "", "Slice axis: 'x', 'y' or 'z'")
	flag.StringVar(&modeStr, "m", "", "Render mode: 'blocks' or 'half'")
	flag.IntVar(&sliceIdx, "slice", -1, "Initial slice index (default: middle)")
	flag.IntVar(&scale, "z", 0, "Initial zoom scale (disables fit)")
	flag.BoolVar(&fitMode, "fit", true, "Start in fit-to-screen mode")
	flag.BoolVar(&noStatus, "no-status", false, "Hide status bar")
	flag.StringVar(&configPath, "config", "", "Path to INI config file")
	flag.BoolVar(&debugMode, "debug", false, "Write debug log to logs/voxview.log")
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	logFile := setupLogging(debugMode)
	if logFile != nil {
		defer logFile.Close()
	}

	modelPath := flag.Arg(0)

	vol, err := importer.ImportFile(modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	size := vol.Size()
	log.Printf("Loaded %s (%dx%dx%d, %d voxels)", modelPath, size.X, size.Y, size.Z, vol.VoxelCount())

	cfg := voxview.DefaultConfig()
	if configPath != "" {
		cfg, err = voxview.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file settings
	if axisStr != "" {
		cfg.Axis = voxview.ParseAxis(axisStr)
	}
	if modeStr != "" {
		cfg.Mode = voxview.ParseRenderMode(modeStr)
	}
	if noStatus {
		cfg.ShowStatus = false
	}

	viewer := voxview.NewViewer(vol)
	viewer.SetAxis(cfg.Axis)
	viewer.JumpSlice(viewer.SliceCount() / 2)
	viewer.RenderMode = cfg.Mode
	viewer.ShowStatus = cfg.ShowStatus
	viewer.Background = cfg.Background

	if sliceIdx >= 0 {
		viewer.JumpSlice(sliceIdx)
	}
	if scale > 0 {
		viewer.SetScale(scale)
	} else if !fitMode {
		viewer.Fit = false
	}

	if err := runViewer(viewer, cfg, configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: voxview [options] <model>")
	fmt.Fprintln(os.Stderr, "\nSupported formats: MagicaVoxel .vox, volume snapshots")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "\nControls:")
	fmt.Fprintln(os.Stderr, "  q, Esc, Ctrl+C    Quit")
	fmt.Fprintln(os.Stderr, "  x, y, z           Slice along axis")
	fmt.Fprintln(os.Stderr, "  , .               Previous/next slice")
	fmt.Fprintln(os.Stderr, "  g, G              First/last slice")
	fmt.Fprintln(os.Stderr, "  m                 Toggle render mode (blocks/half)")
	fmt.Fprintln(os.Stderr, "  +, =              Zoom in")
	fmt.Fprintln(os.Stderr, "  -, _              Zoom out")
	fmt.Fprintln(os.Stderr, "  0                 Reset zoom to 1x")
	fmt.Fprintln(os.Stderr, "  f                 Fit slice to screen")
	fmt.Fprintln(os.Stderr, "  Arrow keys, hjkl  Pan viewport (HJKL for large steps)")
	fmt.Fprintln(os.Stderr, "  Home/End          Jump to left/right edge")
	fmt.Fprintln(os.Stderr, "  s                 Toggle status bar")
	fmt.Fprintln(os.Stderr, "  w                 Save current settings to config")
}

// setupLogging routes the standard logger to a file when debug is
// enabled. Returns the open log file, or nil when logging is disabled.
func setupLogging(debugEnabled bool) *os.File {
	if !debugEnabled {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)

	// Rotate oversized logs aside with a timestamp suffix
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("voxview-%s.log", time.Now().Format("20060102-150405")))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	return f
}

func runViewer(viewer *voxview.Viewer, cfg *voxview.Config, configPath string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "voxview crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
		screen.Fini()
	}()

	termW, termH := screen.Size()
	frame := voxview.NewFrame(termW, termH)

	viewer.Update(termW, termH)
	drawFrame(screen, viewer, frame)

	for {
		ev := screen.PollEvent()

		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch handleKey(ev, viewer, termW, termH) {
			case actionQuit:
				return nil
			case actionRedraw:
				viewer.Update(termW, termH)
			case actionSaveConfig:
				saveConfig(viewer, cfg, configPath)
			}

		case *tcell.EventResize:
			termW, termH = screen.Size()
			frame = voxview.NewFrame(termW, termH)
			viewer.Update(termW, termH)
			screen.Sync()

		case nil:
			return nil
		}

		drawFrame(screen, viewer, frame)
	}
}

type keyAction int

const (
	actionNone keyAction = iota
	actionQuit
	actionRedraw
	actionSaveConfig
)

func handleKey(ev *tcell.EventKey, viewer *voxview.Viewer, termW, termH int) keyAction {
	// Pan step sizes
	smallStep := 1
	largeStep := 10

	switch ev.Key() {
	// Quit
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return actionQuit

		// Slice axis
		case 'x':
			viewer.SetAxis(volume.AxisX)
			return actionRedraw
		case 'y':
			viewer.SetAxis(volume.AxisY)
			return actionRedraw
		case 'z':
			viewer.SetAxis(volume.AxisZ)
			return actionRedraw

		// Slice stepping
		case ',', '<':
			viewer.StepSlice(-1)
			return actionRedraw
		case '.', '>':
			viewer.StepSlice(1)
			return actionRedraw
		case 'g':
			viewer.JumpSlice(0)
			return actionRedraw
		case 'G':
			viewer.JumpSlice(viewer.SliceCount() - 1)
			return actionRedraw

		// Render mode
		case 'm', 'M':
			viewer.ToggleRenderMode()
			return actionRedraw

		// Zoom
		case '+', '=':
			viewer.AdjustScale(1)
			return actionRedraw
		case '-', '_':
			viewer.AdjustScale(-1)
			return actionRedraw
		case '0':
			viewer.SetScale(1)
			return actionRedraw
		case 'f', 'F':
			viewer.Fit = true
			return actionRedraw

		// Status toggle
		case 's', 'S':
			viewer.ShowStatus = !viewer.ShowStatus
			return actionRedraw

		// Config save
		case 'w', 'W':
			return actionSaveConfig

		// Vim-style panning
		case 'h':
			viewer.Pan(-smallStep, 0, termW, termH)
		case 'l':
			viewer.Pan(smallStep, 0, termW, termH)
		case 'j':
			viewer.Pan(0, smallStep, termW, termH)
		case 'k':
			viewer.Pan(0, -smallStep, termW, termH)
		case 'H':
			viewer.Pan(-largeStep, 0, termW, termH)
		case 'L':
			viewer.Pan(largeStep, 0, termW, termH)
		case 'J':
			viewer.Pan(0, largeStep, termW, termH)
		case 'K':
			viewer.Pan(0, -largeStep, termW, termH)
		}

	// Arrow keys
	case tcell.KeyLeft:
		step := smallStep
		if ev.Modifiers()&tcell.ModShift != 0 {
			step = largeStep
		}
		viewer.Pan(-step, 0, termW, termH)
	case tcell.KeyRight:
		step := smallStep
		if ev.Modifiers()&tcell.ModShift != 0 {
			step = largeStep
		}
		viewer.Pan(step, 0, termW, termH)
	case tcell.KeyUp:
		step := smallStep
		if ev.Modifiers()&tcell.ModShift != 0 {
			step = largeStep
		}
		viewer.Pan(0, -step, termW, termH)
	case tcell.KeyDown:
		step := smallStep
		if ev.Modifiers()&tcell.ModShift != 0 {
			step = largeStep
		}
		viewer.Pan(0, step, termW, termH)

	// Edge jumps
	case tcell.KeyHome:
		viewer.PanTo(0, viewer.ViewportY, termW, termH)
	case tcell.KeyEnd:
		viewer.PanTo(999999, viewer.ViewportY, termW, termH)
	}

	return actionNone
}

// saveConfig persists the current view settings
func saveConfig(viewer *voxview.Viewer, cfg *voxview.Config, configPath string) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg.Axis = viewer.Axis
	cfg.Mode = viewer.RenderMode
	cfg.ShowStatus = viewer.ShowStatus
	cfg.Background = viewer.Background

	if err := cfg.Save(configPath); err != nil {
		log.Printf("Config save failed: %v", err)
		return
	}
	log.Printf("Saved config to %s", configPath)
}

func drawFrame(screen tcell.Screen, viewer *voxview.Viewer, frame *voxview.Frame) {
	viewer.Render(frame)
	for y := 0; y < frame.H; y++ {
		for x := 0; x < frame.W; x++ {
			c := frame.At(x, y)
			screen.SetContent(x, y, c.Rune, nil, c.Style)
		}
	}
	screen.Show()
}
