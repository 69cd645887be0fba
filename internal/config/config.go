// Package config parses command-line arguments and the optional YAML
// configuration file for the jx server.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jx/internal/exit"
)

var ErrNoArguments = errors.New("no arguments provided")

// Config holds the server bootstrap settings. The engine itself is
// configured per call through tool arguments.
type Config struct {
	// DebugLog is the path of the wire trace file. Empty disables
	// tracing. Stdout stays clean JSON-RPC either way.
	DebugLog string `yaml:"debug_log"`

	// RateLimit throttles request handling in requests per second.
	// Zero means unlimited.
	RateLimit float64 `yaml:"rate_limit"`
}

// Parse parses command-line arguments, applying the config file first
// and explicit flags on top. On failure or help it returns an exit
// result instead of a config.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		configFile = fs.String("config", "", "Path to YAML configuration file")
		debugLog   = fs.String("debug-log", "", "Path to wire trace log file (empty to disable)")
		rateLimit  = fs.Float64("rate-limit", 0, "Rate limit in requests per second (0 for unlimited)")
		version    = fs.Bool("version", false, "Show version information")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	if *version {
		return nil, exit.Success("jx 0.1.0\n")
	}

	cfg := &Config{}
	if *configFile != "" {
		loaded, err := loadFile(*configFile)
		if err != nil {
			return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
		}
		*cfg = *loaded
	}

	// Explicit flags override file settings.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug-log":
			cfg.DebugLog = *debugLog
		case "rate-limit":
			cfg.RateLimit = *rateLimit
		}
	})

	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Usage returns the CLI usage text.
func Usage() string {
	return `jx - JSON document tool server (JSON-RPC over stdio)

Usage: jx [options]

Options:
  --config FILE       Path to YAML configuration file
  --debug-log FILE    Append a timestamped wire trace to FILE
  --rate-limit N      Rate limit in requests per second (0 for unlimited)
  --version           Show version information
  -h, --help          Show this help message

The server reads JSON-RPC requests line by line from stdin and writes
one response per line to stdout. Supported methods: initialize,
initialized, tools/list, tools/call.

Config file keys (flags take precedence):
  debug_log: ./jx-debug.log
  rate_limit: 10
`
}
