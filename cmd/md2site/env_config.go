package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly defaults without repeating flags.
type envConfig struct {
	Root     string        // MD2SITE_ROOT: site root directory
	Config   string        // MD2SITE_CONFIG: configuration override file
	Out      string        // MD2SITE_OUT: output directory
	Workers  int           // MD2SITE_WORKERS: parallel workers
	Debounce time.Duration // MD2SITE_DEBOUNCE: watch rebuild delay
}

// envPrefix starts every recognized variable.
const envPrefix = "MD2SITE_"

// knownEnvVars lists valid MD2SITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2SITE_ROOT":     true,
	"MD2SITE_CONFIG":   true,
	"MD2SITE_OUT":      true,
	"MD2SITE_WORKERS":  true,
	"MD2SITE_DEBOUNCE": true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		Root:   getenv("MD2SITE_ROOT"),
		Config: getenv("MD2SITE_CONFIG"),
		Out:    getenv("MD2SITE_OUT"),
	}

	if workers := getenv("MD2SITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if debounce := getenv("MD2SITE_DEBOUNCE"); debounce != "" {
		if d, err := time.ParseDuration(debounce); err == nil && d > 0 {
			cfg.Debounce = d
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for unrecognized MD2SITE_* variables.
// Helps catch typos like MD2SITE_OUTPUT instead of MD2SITE_OUT.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills flags the user did not set on the command line.
// Priority: CLI flags > env vars > defaults.
func applyEnvConfig(env *envConfig, fs *flag.FlagSet, f *buildFlags) {
	if env.Root != "" && !fs.Changed("root") {
		f.common.root = env.Root
	}
	if env.Config != "" && !fs.Changed("config") {
		f.common.config = env.Config
	}
	if fs.Lookup("out") != nil {
		if env.Out != "" && !fs.Changed("out") {
			f.out = env.Out
		}
		if env.Workers > 0 && !fs.Changed("workers") {
			f.workers = env.Workers
		}
	}
	if fs.Lookup("debounce") != nil && env.Debounce > 0 && !fs.Changed("debounce") {
		f.debounce = env.Debounce
	}
}
