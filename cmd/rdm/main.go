package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dotmotion/audio"
	"github.com/lixenwraith/dotmotion/config"
	"github.com/lixenwraith/dotmotion/constant"
	"github.com/lixenwraith/dotmotion/engine"
	"github.com/lixenwraith/dotmotion/input"
	"github.com/lixenwraith/dotmotion/render"
	"github.com/lixenwraith/dotmotion/render/raster"
	"github.com/lixenwraith/dotmotion/render/term"
	"github.com/lixenwraith/dotmotion/vmath"
)

var (
	configFlag    = flag.String("config", "", "Session TOML file (defaults apply when empty)")
	seedFlag      = flag.Uint64("seed", 0, "Session seed (0 derives one from the clock)")
	demoFlag      = flag.Bool("demo", false, "Prepend a demo trial")
	trialsFlag    = flag.Int("trials", -1, "Override the number of trials")
	outFlag       = flag.String("out", "", "Output JSON-lines file (overrides the session)")
	framesDirFlag = flag.String("frames-dir", "", "Dump every presented frame as PNG into this directory")
	soundFlag     = flag.Bool("sound", false, "Play feedback tones")
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/rdm.log")
	offlineFlag   = flag.Bool("offline", false, "Render without a terminal on virtual time (no responses)")
	colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	session, err := loadSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := vmath.NewFastRand(seed)

	out, err := os.Create(session.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &Runner{
		Plan:        session.Plan(rng),
		MaxReissues: session.MaxReissues,
		Score:       session.Trial.Score,
		Out:         out,
		Reseed:      rng,
	}

	if session.Sound {
		player := audio.NewPlayer()
		if err := player.Initialize(); err == nil {
			runner.Sounder = player
			defer player.Close()
		} else {
			fmt.Fprintf(os.Stderr, "Audio initialization failed: %v (continuing without audio)\n", err)
		}
	}

	var sum Summary
	if *offlineFlag {
		sum, err = runOffline(ctx, runner, session.FramesDir)
	} else {
		sum, err = runTerminal(ctx, stop, runner, session.FramesDir)
	}

	fmt.Printf("seed %d: %d completed, %d aborted, %d re-issued, score %d -> %s\n",
		seed, sum.Completed, sum.Aborted, sum.Reissued, sum.Score, session.Output)
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// loadSession applies the config file and then flag overrides
func loadSession() (config.Session, error) {
	s := config.DefaultSession()
	if *configFlag != "" {
		var err error
		if s, err = config.LoadSession(*configFlag); err != nil {
			return s, err
		}
	}
	if *demoFlag {
		s.DemoFirst = true
	}
	if *trialsFlag >= 0 {
		s.Trials = *trialsFlag
	}
	if *outFlag != "" {
		s.Output = *outFlag
	}
	if *framesDirFlag != "" {
		s.FramesDir = *framesDirFlag
	}
	if *soundFlag {
		s.Sound = true
	}
	return s, s.Validate()
}

// runTerminal plays the session on the terminal, optionally mirroring frames to PNG
func runTerminal(ctx context.Context, cancel context.CancelFunc, runner *Runner, framesDir string) (sum Summary, err error) {
	switch *colorModeFlag {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return sum, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return sum, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	screen.EnableFocus()
	screen.HideCursor()

	// Panic recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mRDM CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	pump := input.NewPump(screen)
	pump.OnQuit(cancel)
	pump.Start()
	defer pump.Stop()

	canvas := term.NewCanvas(screen)
	runner.Bind = pump.SetTarget
	runner.Canvas = func() (render.Canvas, func(), error) {
		screen.Sync()
		if framesDir == "" {
			return canvas, func() {}, nil
		}
		w, h := canvas.Size()
		rc, err := raster.NewCanvas(int(w), int(h), trialDir(framesDir))
		if err != nil {
			return nil, nil, err
		}
		return render.MultiCanvas{canvas, rc}, func() { rc.Close() }, nil
	}

	return runner.Run(ctx)
}

// runOffline renders every trial on virtual time without input
func runOffline(ctx context.Context, runner *Runner, framesDir string) (Summary, error) {
	runner.Frames = func(cfg *config.TrialConfig) engine.FrameSource {
		return engine.NewVirtualFrames(time.Now(), cfg.FrameInterval())
	}
	runner.Canvas = func() (render.Canvas, func(), error) {
		if framesDir == "" {
			return render.NewRecordingCanvas(constant.DefaultCanvasWidth, constant.DefaultCanvasHeight), func() {}, nil
		}
		rc, err := raster.NewCanvas(constant.DefaultCanvasWidth, constant.DefaultCanvasHeight, trialDir(framesDir))
		if err != nil {
			return nil, nil, err
		}
		return rc, func() { rc.Close() }, nil
	}
	return runner.Run(ctx)
}

var trialCounter int

// trialDir gives each trial its own numbered frame directory
func trialDir(base string) string {
	trialCounter++
	return filepath.Join(base, fmt.Sprintf("trial_%03d", trialCounter))
}
