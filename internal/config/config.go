package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config file exceeds maximum size")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "mdview"

// appDirName is the directory under the user config dir holding config files.
const appDirName = "mdview"

// MaxInputSize limits config files to prevent memory exhaustion (1MB).
const MaxInputSize = 1 << 20

// Field limits.
const (
	MaxPathLength  = 4096
	MaxAddrLength  = 255
	MaxStyleLength = 4096 // style is a name or a path
	MaxNameLength  = 64
	MaxWindowSize  = 16384
	MinWindowSize  = 200
	MaxWorkers     = 256
)

// Config holds all viewer configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Style   string        `yaml:"style"` // Built-in style name or path to a .css file
	Assets  AssetsConfig  `yaml:"assets"`
	Browser BrowserConfig `yaml:"browser"`
	Server  ServerConfig  `yaml:"server"`
	Render  RenderConfig  `yaml:"render"`
	Log     LogConfig     `yaml:"log"`
}

// WindowConfig defines the viewer window.
type WindowConfig struct {
	Width   int  `yaml:"width"`   // 0 = default
	Height  int  `yaml:"height"`  // 0 = default
	Effects bool `yaml:"effects"` // Translucent backdrop where supported (default: true)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// BrowserConfig defines the browser hosting the window.
type BrowserConfig struct {
	Bin           string `yaml:"bin"`           // Empty = ROD_BROWSER_BIN or auto-detect
	NoSandbox     bool   `yaml:"noSandbox"`     // Also enabled by ROD_NO_SANDBOX=1
	LocateTimeout string `yaml:"locateTimeout"` // Go duration, e.g. "10s" (empty = default)
}

// ServerConfig defines the loopback bridge server.
type ServerConfig struct {
	Addr string `yaml:"addr"` // host:port on loopback (empty = random port)
}

// RenderConfig defines rendering options.
type RenderConfig struct {
	Workers   int             `yaml:"workers"` // 0 = auto
	Highlight HighlightConfig `yaml:"highlight"`
}

// HighlightConfig defines code block syntax highlighting.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma style name (empty = default)
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (empty = warn)
	Format string `yaml:"format"` // text, json (empty = text)
}

// LocateTimeout parses Browser.LocateTimeout. Zero means the default.
func (c *Config) LocateTimeout() time.Duration {
	d, err := time.ParseDuration(c.Browser.LocateTimeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks value ranges and field lengths.
// Called automatically by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	if err := validateWindowSize("window.width", c.Window.Width); err != nil {
		return err
	}
	if err := validateWindowSize("window.height", c.Window.Height); err != nil {
		return err
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"style", c.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"browser.bin", c.Browser.Bin, MaxPathLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"render.highlight.style", c.Render.Highlight.Style, MaxNameLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Browser.LocateTimeout != "" {
		d, err := time.ParseDuration(c.Browser.LocateTimeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: browser.locateTimeout: %q is not a positive duration", ErrInvalidValue, c.Browser.LocateTimeout)
		}
	}

	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Render.Workers)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level: %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format: %q (must be text or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

func validateWindowSize(field string, v int) error {
	if v == 0 {
		return nil
	}
	if v < MinWindowSize || v > MaxWindowSize {
		return fmt.Errorf("%w: %s: must be between %d and %d, got %d", ErrInvalidValue, field, MinWindowSize, MaxWindowSize, v)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is loaded.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{Effects: true},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decodeStrict parses YAML into v, rejecting unknown keys.
// An empty document leaves v untouched.
func decodeStrict(data []byte, v any) error {
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxInputSize)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
