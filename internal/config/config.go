// Package config collects run settings from flags and the environment.
package config

import (
	"flag"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"sobel-perf/internal/logger"
)

// FilterFlag matches the flag name used by the OpenCV perf runners.
const FilterFlag = "test_param_filter"

type Config struct {
	Filter      string
	GUI         bool
	Iterations  int
	JSONLogs    bool
	Progress    bool
	LogLevel    logger.LogLevel
	MemoryLimit int64
}

func DefaultConfig() Config {
	return Config{
		Progress:    true,
		LogLevel:    logger.InfoLevel,
		MemoryLimit: 2 * 1024 * 1024 * 1024,
	}
}

// Load parses args (without the program name) on top of DefaultConfig and
// the environment lookup env.
func Load(args []string, env func(string) string, output io.Writer) (Config, error) {
	cfg := DefaultConfig()
	if env == nil {
		env = os.Getenv
	}

	cfg.LogLevel = logger.ParseLevel(env("LOG_LEVEL"), env("DEBUG") == "1")
	if limit := env("SOBEL_PERF_MEMORY_LIMIT"); limit != "" {
		n, err := humanize.ParseBytes(limit)
		if err != nil {
			return cfg, errors.Wrapf(err, "SOBEL_PERF_MEMORY_LIMIT=%q", limit)
		}
		cfg.MemoryLimit = int64(n)
	}

	fs := flag.NewFlagSet("sobel-perf", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.StringVar(&cfg.Filter, FilterFlag, "", "run only the case matching (WxH, DEPTH, (dx,dy), BORDER[|BORDER])")
	fs.BoolVar(&cfg.GUI, "gui", false, "open a window instead of running from the command line")
	fs.IntVar(&cfg.Iterations, "iterations", 0, "fixed iterations per case; 0 lets testing.Benchmark decide")
	fs.BoolVar(&cfg.JSONLogs, "json", false, "log JSON lines instead of console output")
	fs.BoolVar(&cfg.Progress, "progress", cfg.Progress, "draw a progress bar on stderr")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	// An unquoted filter is split by the shell; glue the pieces back.
	if cfg.Filter != "" && fs.NArg() > 0 {
		cfg.Filter = strings.Join(append([]string{cfg.Filter}, fs.Args()...), " ")
	}

	if cfg.Iterations < 0 {
		return cfg, errors.Errorf("-iterations must be >= 0, got %d", cfg.Iterations)
	}
	return cfg, nil
}
