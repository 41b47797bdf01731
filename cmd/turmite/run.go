package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/turmite/internal/config"
	"github.com/vovakirdan/turmite/internal/core"
	"github.com/vovakirdan/turmite/internal/driver"
	"github.com/vovakirdan/turmite/internal/platform/tui"
	"github.com/vovakirdan/turmite/internal/storage"
	"github.com/vovakirdan/turmite/internal/turmite"
)

var (
	flagPreset      string
	flagHeadless    bool
	flagSteps       int
	flagReportEvery int
	flagIntervalMS  int
	flagRunning     bool
	flagMaxPrint    int
)

var runCmd = &cobra.Command{
	Use:   "run [ruleset]",
	Short: "Run a ruleset",
	Long: `Run a ruleset from the library, a preset or a ruleset file.
Without a ruleset the picker menu opens.

Controls:
  Space      - Run/pause (starts paused)
  N          - Single step
  +/-        - Faster/slower (3ms to 1s)
  Arrows     - Pan, C centers, F follows the ant
  E          - Edit the rule table
  R          - Reset the lattice
  Ctrl+S     - Save a text snapshot
  Esc        - Back to the picker
  Q/Ctrl+C   - Quit

Headless mode runs a fixed number of steps without a terminal UI, logs
progress and prints the final lattice.

Examples:
  turmite run langton
  turmite run --preset fibonacci --running
  turmite run ./my-rules.json --speed fast
  turmite run langton --headless --steps 11000
  turmite run llr --headless --steps 500 --interval 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagPreset, "preset", "", "Built-in preset ID")
	runCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without the terminal UI")
	runCmd.Flags().IntVar(&flagSteps, "steps", 11000, "Steps to run in headless mode")
	runCmd.Flags().IntVar(&flagReportEvery, "report-every", 1000, "Log progress every N steps in headless mode")
	runCmd.Flags().IntVar(&flagIntervalMS, "interval", 0, "Step interval in ms (0 = from config; headless: as fast as possible)")
	runCmd.Flags().BoolVar(&flagRunning, "running", false, "Start unpaused")
	runCmd.Flags().IntVar(&flagMaxPrint, "max-print", 200, "Largest lattice side printed after a headless run")
}

func runRun(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()
	lib := openLibrary(cfg)

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}

	name, rows, err := resolveRuleset(lib, arg, flagPreset)
	if err != nil {
		fail("%v", err)
	}

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	if flagHeadless {
		if rows == nil {
			fail("headless mode needs a ruleset or --preset")
		}
		runHeadless(cfg, logger, store, name, rows)
		return
	}

	if flagIntervalMS > 0 {
		cfg.Simulation.IntervalMS = flagIntervalMS
	}

	env := &tui.Env{
		Config:  cfg,
		Library: lib,
		Store:   store,
		Source:  storage.SourceTUI,
	}
	start := tui.Start{Name: name, Rows: rows, Running: flagRunning}

	if err := tui.Run(context.Background(), env, runtimeConfig(cfg), start); err != nil {
		fail("%v", err)
	}
}

// runHeadless steps a session without a UI, then prints the lattice.
func runHeadless(cfg config.Config, logger *log.Logger, store *storage.Store, name string, rows []turmite.RawRule) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := turmite.NewSession(cfg.TurmiteLimits())
	if err := session.Load(name, rows); err != nil {
		fail("loading %s: %v", name, err)
	}

	target := uint64(max(flagSteps, 0))
	report := uint64(max(flagReportEvery, 1))
	logger.Info("starting headless run", "ruleset", name, "rules", len(session.Rows()), "steps", target)
	logger.Debug("rule table\n" + session.Ruleset().String())

	started := time.Now()
	if flagIntervalMS > 0 {
		stepPaced(ctx, logger, session, target, report, time.Duration(flagIntervalMS)*time.Millisecond)
	} else {
		stepFast(ctx, logger, session, target, report)
	}
	elapsed := time.Since(started)

	if ctx.Err() != nil {
		logger.Warn("interrupted", "steps", session.Steps())
	}

	pos, heading, state := session.Ant()
	logger.Info("finished",
		"steps", session.Steps(),
		"painted", session.Painted(),
		"ant", fmt.Sprintf("(%d,%d)", pos.X, pos.Y),
		"heading", heading,
		"state", state,
		"elapsed", elapsed.Round(time.Millisecond),
	)

	minCell, maxCell := session.Bounds()
	w, h := maxCell.X-minCell.X+1, maxCell.Y-minCell.Y+1
	if w <= flagMaxPrint && h <= flagMaxPrint {
		snap := session.Snapshot(minCell, w, h)
		fmt.Println(core.RenderASCII(snap, '@'))
	} else {
		logger.Warn("lattice too large to print", "width", w, "height", h, "max", flagMaxPrint)
	}

	if store != nil && session.Steps() > 0 {
		run, err := store.SaveRun(storage.Run{
			Ruleset:  session.Name(),
			Rules:    session.Ruleset().Compact(),
			Steps:    session.Steps(),
			Painted:  session.Painted(),
			Source:   storage.SourceHeadless,
			Duration: elapsed,
		})
		if err != nil {
			logger.Warn("could not record run", "error", err)
		} else {
			logger.Debug("recorded run", "id", run.ID)
		}
	}
}

// stepFast runs the session as fast as possible in batches of report steps.
func stepFast(ctx context.Context, logger *log.Logger, session *turmite.Session, target, report uint64) {
	for session.Steps() < target && ctx.Err() == nil {
		n := min(report, target-session.Steps())
		session.StepN(int(n))
		logger.Info("progress", "steps", session.Steps(), "painted", session.Painted())
	}
}

// stepPaced runs the session through a driver at a fixed interval.
func stepPaced(ctx context.Context, logger *log.Logger, session *turmite.Session, target, report uint64, interval time.Duration) {
	if target == 0 {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var drv *driver.Driver
	drv = driver.New(session,
		driver.WithInterval(interval),
		driver.Running(),
		driver.WithOnStep(func(turmite.StepResult) {
			n := drv.Steps()
			if n%report == 0 {
				logger.Info("progress", "steps", n, "painted", session.Painted())
			}
			if n >= target {
				drv.Pause()
				cancel()
			}
		}),
	)

	if interval != drv.Interval() {
		logger.Warn("interval clamped", "requested", interval, "using", drv.Interval())
	}

	//nolint:errcheck // Run returns ctx.Err() when the target is reached
	drv.Run(ctx)
}
