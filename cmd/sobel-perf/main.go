package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"sobel-perf/internal/bench"
	"sobel-perf/internal/catalog"
	"sobel-perf/internal/config"
	"sobel-perf/internal/debug/timing"
	"sobel-perf/internal/dispatch"
	"sobel-perf/internal/gui"
	"sobel-perf/internal/host/cli"
	"sobel-perf/internal/logger"
	"sobel-perf/internal/opencv/cases"
	"sobel-perf/internal/opencv/memory"
	"sobel-perf/internal/shutdown"
)

const (
	AppName = "Sobel Perf"
	AppID   = "org.opencv.perf.sobel"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	os.Exit(run(cfg))
}

func newLogger(cfg config.Config) logger.Logger {
	opts := []logger.ZerologOption{logger.WithErrorMessage("perf case failed")}
	if cfg.LogLevel == logger.DebugLevel {
		opts = append(opts, logger.WithStack())
	}
	if cfg.JSONLogs {
		return logger.NewZerolog(os.Stderr, cfg.LogLevel, opts...)
	}
	return logger.NewConsoleLogger(cfg.LogLevel, opts...)
}

func newEngine(cfg config.Config) bench.Engine {
	if cfg.Iterations > 0 {
		return bench.FixedEngine{Iterations: cfg.Iterations}
	}
	return bench.TestingEngine{}
}

func run(cfg config.Config) int {
	log := newLogger(cfg)

	shutdownMgr := shutdown.NewManager(log)
	shutdownMgr.Listen()
	defer shutdownMgr.Shutdown()

	memoryMgr := memory.NewManager(log, cfg.MemoryLimit)
	defer memoryMgr.Shutdown()

	timings := timing.NewTracker()
	dispatcher := dispatch.New(
		catalog.Sobel(),
		cases.Factory(memoryMgr),
		newEngine(cfg),
		dispatch.WithLogger(log),
		dispatch.WithTimings(timings),
		dispatch.WithLeakCheck(memoryMgr.Outstanding),
	)

	log.Debug("Main", "configuration loaded", map[string]interface{}{
		"gui":          cfg.GUI,
		"iterations":   cfg.Iterations,
		"memory_limit": cfg.MemoryLimit,
		"log_level":    cfg.LogLevel.String(),
	})

	if cfg.GUI {
		runGUI(shutdownMgr, dispatcher, timings, cfg, log)
		return 0
	}
	return runCLI(shutdownMgr.Context(), dispatcher, timings, cfg, log)
}

func runCLI(ctx context.Context, dispatcher *dispatch.Dispatcher, timings *timing.Tracker, cfg config.Config, log logger.Logger) int {
	var progress io.Writer
	if cfg.Progress && !cfg.JSONLogs {
		progress = os.Stderr
	}
	host := cli.New(cfg.Filter, os.Stdout, progress, log, cli.WithTimings(timings))

	dispatcher.Dispatch(ctx, host)
	summary := <-host.Done()

	if summary.Failed > 0 || summary.Cancelled {
		return 1
	}
	return 0
}

func runGUI(shutdownMgr *shutdown.Manager, dispatcher *dispatch.Dispatcher, timings *timing.Tracker, cfg config.Config, log logger.Logger) {
	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(900, 600))

	host := gui.New(shutdownMgr.Context(), dispatcher, log, gui.WithTimings(timings))
	shutdownMgr.Register(host)
	window.SetContent(host.Content())

	if cfg.Filter != "" {
		host.Start(cfg.Filter)
	}

	stopped := make(chan struct{})
	go func() {
		select {
		case <-shutdownMgr.Done():
			fyne.Do(fyneApp.Quit)
		case <-stopped:
		}
	}()

	window.ShowAndRun()
	close(stopped)
	host.Shutdown()
}
