// Package cli runs the dispatcher from a terminal: results go to stdout,
// progress and logs to stderr.
package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"sobel-perf/internal/bench"
	"sobel-perf/internal/debug/timing"
	"sobel-perf/internal/logger"
)

type Host struct {
	filter   string
	out      io.Writer
	progress io.Writer
	logger   logger.Logger
	timings  *timing.Tracker

	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	done chan bench.Summary
}

type Option func(*Host)

// WithTimings adds per-case wall times from tt to the summary table. tt
// should be the tracker the dispatcher records into.
func WithTimings(tt *timing.Tracker) Option {
	return func(h *Host) { h.timings = tt }
}

// New creates a host that reports results to out. A nil progress writer
// disables the progress bar.
func New(filter string, out, progress io.Writer, log logger.Logger, opts ...Option) *Host {
	if log == nil {
		log = logger.NoOp{}
	}
	h := &Host{
		filter:   filter,
		out:      out,
		progress: progress,
		logger:   log,
		done:     make(chan bench.Summary, 1),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) FilterInput() string {
	return h.filter
}

func (h *Host) Log(message string) {
	h.logger.Info("CLI", message, nil)
}

func (h *Host) ReportResult(current, total int, r bench.Result) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.progress != nil && h.bar == nil {
		h.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(h.progress),
			progressbar.OptionSetDescription(r.Name),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("cases"),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
			progressbar.OptionClearOnFinish(),
		)
	}

	if r.Err != nil {
		fmt.Fprintf(h.out, "[%d/%d] FAIL %s\n", current, total, r)
	} else {
		fmt.Fprintf(h.out, "[%d/%d] %s\n", current, total, r)
	}

	if h.bar != nil {
		_ = h.bar.Set(current)
	}
}

func (h *Host) Complete(s bench.Summary) {
	h.mu.Lock()
	if h.bar != nil {
		_ = h.bar.Finish()
	}
	h.mu.Unlock()

	fmt.Fprintln(h.out, summaryTable(s, h.timings).Render())

	select {
	case h.done <- s:
	default:
	}
}

var (
	normalStyle       = lipgloss.NewStyle().Padding(0, 1)
	rightAlignedStyle = lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
)

func summaryTable(s bench.Summary, tt *timing.Tracker) *lgtable.Table {
	state := "done"
	if s.Cancelled {
		state = "cancelled"
	}

	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return rightAlignedStyle
			}
			return normalStyle
		})
	t.Row("Suite", s.Name)
	t.Row("Cases", fmt.Sprintf("%s of %s %s", humanize.Comma(int64(s.Completed)), humanize.Comma(int64(s.Total)), state))
	t.Row("Failed", humanize.Comma(int64(s.Failed)))
	t.Row("Elapsed", s.Elapsed.Round(time.Millisecond).String())

	var slowest *bench.Result
	for i := range s.Results {
		r := &s.Results[i]
		if r.Err == nil && (slowest == nil || r.Measurement.NsPerOp() > slowest.Measurement.NsPerOp()) {
			slowest = r
		}
	}
	if slowest != nil {
		t.Row("Slowest", fmt.Sprintf("%s (%s ns/op)", slowest.Label(), humanize.Comma(slowest.Measurement.NsPerOp())))
	}

	if total, longest, d := s.CaseTimes(tt); total > 0 {
		t.Row("Case time", total.Round(time.Millisecond).String())
		t.Row("Longest case", fmt.Sprintf("%s (%s)", longest.Label(), d.Round(time.Microsecond)))
	}
	return t
}

// SetControlsEnabled is a no-op: a terminal run has nothing to disable.
func (h *Host) SetControlsEnabled(bool) {}

// Done delivers the summary passed to Complete.
func (h *Host) Done() <-chan bench.Summary {
	return h.done
}
