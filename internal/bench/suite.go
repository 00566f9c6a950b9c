// Package bench runs a named suite of measured cases strictly one at a
// time. How a single case is measured is left to an Engine.
package bench

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"sobel-perf/internal/debug/timing"
)

// Case is one measured unit. Setup and Teardown may be nil. Teardown runs
// whenever Setup was called, including when Setup fails or Run errors or
// panics. Filter, when set, is the text that selects this case alone.
type Case struct {
	Name     string
	Params   string
	Filter   string
	Setup    func() error
	Run      func() error
	Teardown func()
}

// Label is Filter when set, Params otherwise.
func (c Case) Label() string {
	if c.Filter != "" {
		return c.Filter
	}
	return c.Params
}

// Result is the outcome of one case.
type Result struct {
	Index       int
	Name        string
	Params      string
	Filter      string
	Measurement Measurement
	Err         error
}

// Label is Filter when set, Params otherwise.
func (r Result) Label() string {
	if r.Filter != "" {
		return r.Filter
	}
	return r.Params
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s [%s]: %v", r.Name, r.Label(), r.Err)
	}
	return fmt.Sprintf("%s [%s]: %s", r.Name, r.Label(), r.Measurement)
}

// Summary is delivered once the suite stops.
type Summary struct {
	Name      string
	Total     int
	Completed int
	Failed    int
	Cancelled bool
	Elapsed   time.Duration
	Results   []Result
}

// CaseTimes reads back the wall time tt recorded for each result, setup and
// teardown included. Results without a recording are skipped.
func (s Summary) CaseTimes(tt *timing.Tracker) (total time.Duration, slowest Result, longest time.Duration) {
	if tt == nil {
		return 0, Result{}, 0
	}
	for _, r := range s.Results {
		d, ok := tt.Latest(r.Label())
		if !ok {
			continue
		}
		total += d
		if d > longest {
			slowest, longest = r, d
		}
	}
	return total, slowest, longest
}

// Listener receives suite events on the runner goroutine.
type Listener interface {
	OnStart(index int, c Case)
	OnCycle(r Result)
	OnComplete(s Summary)
}

// Suite is an ordered list of cases.
type Suite struct {
	name      string
	cases     []Case
	listeners []Listener
	timings   *timing.Tracker
	mu        sync.Mutex
	running   bool
}

func NewSuite(name string) *Suite {
	return &Suite{name: name}
}

func (s *Suite) Name() string {
	return s.name
}

// Add appends c. Cases added while the suite runs are ignored by that run.
func (s *Suite) Add(c Case) *Suite {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases = append(s.cases, c)
	return s
}

func (s *Suite) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cases)
}

// Cases returns a copy of the registered cases.
func (s *Suite) Cases() []Case {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]Case, len(s.cases))
	copy(result, s.cases)
	return result
}

// On registers a listener.
func (s *Suite) On(l Listener) *Suite {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
	return s
}

// WithTimings records every case's wall time, setup and teardown included,
// into tt under the case label.
func (s *Suite) WithTimings(tt *timing.Tracker) *Suite {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timings = tt
	return s
}

// RunAsync starts the suite on its own goroutine and returns immediately.
// The channel yields the summary once and is then closed.
func (s *Suite) RunAsync(ctx context.Context, engine Engine) <-chan Summary {
	done := make(chan Summary, 1)
	go func() {
		defer close(done)
		done <- s.Run(ctx, engine)
	}()
	return done
}

// Run executes every case in order and blocks until done. Cancelling ctx
// stops scheduling further cases; the case in flight finishes.
func (s *Suite) Run(ctx context.Context, engine Engine) Summary {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return Summary{Name: s.name, Results: []Result{{Err: errors.New("suite already running")}}, Failed: 1}
	}
	s.running = true
	cases := make([]Case, len(s.cases))
	copy(cases, s.cases)
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	tt := s.timings
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	start := time.Now()
	summary := Summary{
		Name:    s.name,
		Total:   len(cases),
		Results: make([]Result, 0, len(cases)),
	}

	for i, c := range cases {
		if ctx.Err() != nil {
			summary.Cancelled = true
			break
		}

		for _, l := range listeners {
			l.OnStart(i, c)
		}

		result := runCase(ctx, engine, i, c, tt)
		summary.Results = append(summary.Results, result)
		summary.Completed++
		if result.Err != nil {
			summary.Failed++
		}

		for _, l := range listeners {
			l.OnCycle(result)
		}
	}

	summary.Elapsed = time.Since(start)
	for _, l := range listeners {
		l.OnComplete(summary)
	}
	return summary
}

func runCase(ctx context.Context, engine Engine, index int, c Case, tt *timing.Tracker) (result Result) {
	result = Result{Index: index, Name: c.Name, Params: c.Params, Filter: c.Filter}

	if tt != nil {
		timed := tt.StartTiming(ctx, c.Label())
		defer tt.EndTiming(timed)
	}
	if c.Teardown != nil {
		defer c.Teardown()
	}
	defer func() {
		if r := recover(); r != nil {
			result.Err = errors.Errorf("case %d (%s) panicked: %v", index, c.Label(), r)
		}
	}()

	if c.Setup != nil {
		if err := c.Setup(); err != nil {
			result.Err = errors.Wrapf(err, "setup of case %d (%s)", index, c.Label())
			return result
		}
	}
	if c.Run == nil {
		result.Err = errors.Errorf("case %d (%s) has no run function", index, c.Label())
		return result
	}

	m, err := engine.Measure(c.Run)
	if err != nil {
		result.Err = errors.Wrapf(err, "case %d (%s)", index, c.Label())
		return result
	}
	result.Measurement = m
	return result
}

// Hooks adapts optional functions to Listener.
type Hooks struct {
	Start    func(index int, c Case)
	Cycle    func(r Result)
	Complete func(s Summary)
}

func (h Hooks) OnStart(index int, c Case) {
	if h.Start != nil {
		h.Start(index, c)
	}
}

func (h Hooks) OnCycle(r Result) {
	if h.Cycle != nil {
		h.Cycle(r)
	}
}

func (h Hooks) OnComplete(s Summary) {
	if h.Complete != nil {
		h.Complete(s)
	}
}
