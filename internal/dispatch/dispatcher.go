// Package dispatch selects which perf cases to register, hands the suite to
// the measurement engine and reports through a host environment.
package dispatch

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"sobel-perf/internal/bench"
	"sobel-perf/internal/catalog"
	"sobel-perf/internal/debug/memtracker"
	"sobel-perf/internal/debug/timing"
	"sobel-perf/internal/filter"
	"sobel-perf/internal/logger"
)

// SuiteName is the name every registered case is reported under.
const SuiteName = "sobel"

// Host is the environment the dispatcher runs in: a command line or a
// window. The dispatcher never depends on which one is active.
type Host interface {
	// FilterInput returns the raw filter text, possibly empty.
	FilterInput() string
	// Log reports a free-form progress line.
	Log(message string)
	// ReportResult is called after every case with its 1-based position.
	ReportResult(current, total int, r bench.Result)
	// Complete is called once the suite stops.
	Complete(s bench.Summary)
	// SetControlsEnabled toggles whatever lets a user start another run.
	SetControlsEnabled(enabled bool)
}

// CaseFactory materializes one combination.
type CaseFactory func(c catalog.Combination) bench.Case

// Selection describes what Register decided.
type Selection struct {
	Filtered   bool
	Coordinate filter.Coordinate
	Total      int
}

type Dispatcher struct {
	catalog *catalog.Catalog
	factory CaseFactory
	engine  bench.Engine
	logger  logger.Logger
	timings *timing.Tracker
	leaks   func() []memtracker.AllocationInfo
}

type Option func(*Dispatcher)

func WithLogger(l logger.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

func WithTimings(tt *timing.Tracker) Option {
	return func(d *Dispatcher) { d.timings = tt }
}

// WithLeakCheck installs a probe run after the suite completes. Anything it
// returns is reported as a leaked buffer.
func WithLeakCheck(probe func() []memtracker.AllocationInfo) Option {
	return func(d *Dispatcher) { d.leaks = probe }
}

func New(cat *catalog.Catalog, factory CaseFactory, engine bench.Engine, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		catalog: cat,
		factory: factory,
		engine:  engine,
		logger:  logger.NoOp{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register resolves filterText and builds the suite: one case when the
// filter names a generated combination, every combination of every mode
// otherwise.
func (d *Dispatcher) Register(filterText string) (*bench.Suite, Selection) {
	suite := bench.NewSuite(SuiteName)
	if d.timings != nil {
		suite.WithTimings(d.timings)
	}

	if coord, ok := filter.Decode(filterText, d.catalog); ok {
		c, _ := d.catalog.At(coord.Mode, coord.Index)
		suite.Add(d.build(c))
		return suite, Selection{Filtered: true, Coordinate: coord, Total: 1}
	}

	for _, m := range d.catalog.Modes() {
		for _, c := range d.catalog.Combinations(m) {
			suite.Add(d.build(c))
		}
	}
	return suite, Selection{Total: suite.Len()}
}

// build stamps each case with the filter text that reruns it alone.
func (d *Dispatcher) build(c catalog.Combination) bench.Case {
	bc := d.factory(c)
	if bc.Filter == "" {
		bc.Filter = filter.QueryFor(c).String()
	}
	return bc
}

// Dispatch registers the cases selected by the host's filter and requests
// an asynchronous run. It returns as soon as the run is scheduled.
func (d *Dispatcher) Dispatch(ctx context.Context, host Host) (<-chan bench.Summary, Selection) {
	suite, sel := d.Register(host.FilterInput())
	runID := uuid.NewString()

	if sel.Filtered {
		d.logger.Info("Dispatcher", "filter resolved", map[string]interface{}{
			"run":   runID,
			"mode":  sel.Coordinate.Mode.String(),
			"index": sel.Coordinate.Index,
		})
	} else {
		host.Log("no filter or getting invalid params, run all the cases")
	}

	if sel.Total > 0 {
		host.SetControlsEnabled(false)
	}

	current := 0
	suite.On(bench.Hooks{
		Cycle: func(r bench.Result) {
			current++
			if r.Err != nil {
				d.logger.Error("Dispatcher", r.Err, map[string]interface{}{"run": runID, "case": current})
			}
			host.ReportResult(current, sel.Total, r)
		},
		Complete: func(s bench.Summary) {
			d.logger.Debug("Dispatcher", "run finished", map[string]interface{}{
				"run":       runID,
				"completed": s.Completed,
				"failed":    s.Failed,
				"cancelled": s.Cancelled,
			})
			d.checkLeaks()
			host.SetControlsEnabled(true)
			host.Complete(s)
		},
	})

	host.Log(fmt.Sprintf("Running %d tests from Sobel", sel.Total))
	return suite.RunAsync(ctx, d.engine), sel
}

func (d *Dispatcher) checkLeaks() {
	if d.leaks == nil {
		return
	}
	leaked := d.leaks()
	if len(leaked) == 0 {
		return
	}

	tags := make([]string, len(leaked))
	for i, info := range leaked {
		tags[i] = info.Tag
	}
	d.logger.Warning("Dispatcher", "case buffers outlived their case", map[string]interface{}{
		"count": len(leaked),
		"tags":  tags,
	})
}
