// Package gui hosts the dispatcher in a fyne window.
package gui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"sobel-perf/internal/bench"
	"sobel-perf/internal/debug/timing"
	"sobel-perf/internal/dispatch"
	"sobel-perf/internal/logger"
)

// Runner starts a run against a host.
type Runner interface {
	Dispatch(ctx context.Context, host dispatch.Host) (<-chan bench.Summary, dispatch.Selection)
}

type Host struct {
	runner   Runner
	logger   logger.Logger
	controls *ControlsPanel
	log      *LogPanel
	content  fyne.CanvasObject

	timings  *timing.Tracker

	wg      sync.WaitGroup
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	done    chan bench.Summary
}

type Option func(*Host)

// WithTimings adds case wall times from tt to the completion line.
func WithTimings(tt *timing.Tracker) Option {
	return func(h *Host) { h.timings = tt }
}

// New builds the window content. Runs started from the window are
// cancelled when ctx is done or Shutdown is called.
func New(ctx context.Context, runner Runner, log logger.Logger, opts ...Option) *Host {
	if log == nil {
		log = logger.NoOp{}
	}
	ctx, cancel := context.WithCancel(ctx)

	h := &Host{
		runner:   runner,
		logger:   log,
		controls: NewControlsPanel(),
		log:      NewLogPanel(),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan bench.Summary, 1),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.controls.SetRunHandler(h.start)
	h.content = container.NewBorder(h.controls.GetContainer(), nil, nil, nil, h.log.GetContainer())

	return h
}

func (h *Host) Content() fyne.CanvasObject {
	return h.content
}

// Start runs with filter as if it had been typed and submitted. It is
// ignored while another run is in progress.
func (h *Host) Start(filter string) {
	h.start(filter)
}

// run is the host one dispatch sees. It keeps the filter the run was
// started with.
type run struct {
	*Host
	filter string
}

func (r run) FilterInput() string {
	return r.filter
}

func (h *Host) start(filter string) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		h.logger.Warning("GUIHost", "run already in progress", map[string]interface{}{"filter": filter})
		return
	}
	h.running = true
	ctx := h.ctx
	h.mu.Unlock()

	h.logger.Debug("GUIHost", "run requested", map[string]interface{}{"filter": filter})
	h.controls.SetEnabled(false)

	// Dispatch calls back into the host; keep it off the UI thread.
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		finished, _ := h.runner.Dispatch(ctx, run{Host: h, filter: filter})
		<-finished
	}()
}

// Running reports whether a run has started and not yet completed.
func (h *Host) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

func (h *Host) Log(message string) {
	h.logger.Info("GUIHost", message, nil)
	fyne.Do(func() {
		h.log.Append(message)
	})
}

func (h *Host) ReportResult(current, total int, r bench.Result) {
	line := fmt.Sprintf("[%d/%d] %s", current, total, r)
	fyne.Do(func() {
		h.log.Append(line)
		h.log.SetStatus(fmt.Sprintf("%d / %d", current, total))
		h.controls.SetProgress(current, total)
	})
}

func (h *Host) Complete(s bench.Summary) {
	h.mu.Lock()
	h.running = false
	h.mu.Unlock()

	status := fmt.Sprintf("%s: %d of %d cases, %d failed in %s", s.Name, s.Completed, s.Total, s.Failed, s.Elapsed.Round(time.Millisecond))
	if total, longest, d := s.CaseTimes(h.timings); total > 0 {
		status += fmt.Sprintf("; case time %s, longest %s (%s)", total.Round(time.Millisecond), longest.Label(), d.Round(time.Microsecond))
	}
	if s.Cancelled {
		status += " (cancelled)"
	}
	fyne.Do(func() {
		h.log.Append(status)
		h.log.SetStatus("Ready")
		h.controls.SetProgress(0, 0)
	})

	select {
	case h.done <- s:
	default:
	}
}

func (h *Host) SetControlsEnabled(enabled bool) {
	fyne.Do(func() {
		h.controls.SetEnabled(enabled)
	})
}

// Done delivers the summary of the most recent run.
func (h *Host) Done() <-chan bench.Summary {
	return h.done
}

// Shutdown cancels the run in progress, if any, and waits for its current
// case to tear down.
func (h *Host) Shutdown() {
	h.cancel()
	h.wg.Wait()
}
