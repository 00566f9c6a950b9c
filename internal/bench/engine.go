package bench

import (
	"fmt"
	"testing"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// Measurement is what an engine reports for one case.
type Measurement struct {
	Iterations int
	Elapsed    time.Duration
	AllocsOp   int64
	BytesOp    int64
}

// NsPerOp is the mean time of one iteration in nanoseconds.
func (m Measurement) NsPerOp() int64 {
	if m.Iterations <= 0 {
		return 0
	}
	return m.Elapsed.Nanoseconds() / int64(m.Iterations)
}

// OpsPerSec is the throughput implied by NsPerOp.
func (m Measurement) OpsPerSec() float64 {
	ns := m.NsPerOp()
	if ns == 0 {
		return 0
	}
	return float64(time.Second) / float64(ns)
}

func (m Measurement) String() string {
	return fmt.Sprintf("%s ops %s/op %s ops/sec",
		humanize.Comma(int64(m.Iterations)),
		time.Duration(m.NsPerOp()),
		humanize.CommafWithDigits(m.OpsPerSec(), 2))
}

// Engine measures one run function. Statistical methodology lives here,
// never in the suite. The first error or panic from run stops the
// measurement and is returned on the caller's goroutine.
type Engine interface {
	Measure(run func() error) (Measurement, error)
}

// TestingEngine delegates to testing.Benchmark, which picks the iteration
// count from the default benchmark time.
type TestingEngine struct{}

func (TestingEngine) Measure(run func() error) (Measurement, error) {
	var failure error

	// testing.Benchmark calls the closure on its own goroutine, so panics
	// have to be caught in there.
	r := testing.Benchmark(func(b *testing.B) {
		defer func() {
			if p := recover(); p != nil {
				failure = errors.Errorf("panic: %v", p)
				b.SkipNow()
			}
		}()

		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if err := run(); err != nil {
				failure = err
				b.SkipNow()
			}
		}
	})
	if failure != nil {
		return Measurement{}, failure
	}

	return Measurement{
		Iterations: r.N,
		Elapsed:    r.T,
		AllocsOp:   r.AllocsPerOp(),
		BytesOp:    r.AllocedBytesPerOp(),
	}, nil
}

// FixedEngine runs exactly Iterations times. It is meant for smoke runs
// where a stable number matters more than a stable estimate.
type FixedEngine struct {
	Iterations int
}

func (e FixedEngine) Measure(run func() error) (m Measurement, err error) {
	n := e.Iterations
	if n <= 0 {
		n = 1
	}

	defer func() {
		if p := recover(); p != nil {
			m, err = Measurement{}, errors.Errorf("panic: %v", p)
		}
	}()

	start := time.Now()
	for i := 0; i < n; i++ {
		if err := run(); err != nil {
			return Measurement{}, errors.Wrapf(err, "iteration %d", i)
		}
	}
	return Measurement{Iterations: n, Elapsed: time.Since(start)}, nil
}
