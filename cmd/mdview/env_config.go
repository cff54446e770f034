package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-mdview/internal/config"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string // MDVIEW_CONFIG: config file name or path
	Style      string // MDVIEW_STYLE: CSS style name or path
	Workers    int    // MDVIEW_WORKERS: concurrent renders
	LogLevel   string // MDVIEW_LOG_LEVEL: debug, info, warn, error
	Addr       string // MDVIEW_ADDR: bridge server address
}

// knownEnvVars lists valid MDVIEW_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDVIEW_CONFIG":    true,
	"MDVIEW_STYLE":     true,
	"MDVIEW_WORKERS":   true,
	"MDVIEW_LOG_LEVEL": true,
	"MDVIEW_ADDR":      true,
	"MDVIEW_CONTAINER": true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDVIEW_CONFIG"),
		Style:      getenv("MDVIEW_STYLE"),
		LogLevel:   getenv("MDVIEW_LOG_LEVEL"),
		Addr:       getenv("MDVIEW_ADDR"),
	}

	if workers := getenv("MDVIEW_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized MDVIEW_* variable.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "MDVIEW_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with set environment variables.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
}

// mergeFlags applies explicitly set CLI flags on top of cfg.
func mergeFlags(f *viewFlags, cfg *config.Config) {
	if f.style != "" {
		cfg.Style = f.style
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.workers > 0 {
		cfg.Render.Workers = f.workers
	}
	if f.noEffects {
		cfg.Window.Effects = false
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.highlight {
		cfg.Render.Highlight.Enabled = true
	}
	if f.browser != "" {
		cfg.Browser.Bin = f.browser
	}
	if f.common.verbose {
		cfg.Log.Level = "debug"
	} else if f.common.quiet {
		cfg.Log.Level = "error"
	}
}
