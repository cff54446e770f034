package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// writeConfig writes content to dir/name and returns the path.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if !cfg.Window.Effects {
		t.Error("Window.Effects = false, want true")
	}
	if cfg.Style != "" {
		t.Errorf("Style = %q, want empty", cfg.Style)
	}
	if cfg.Render.Workers != 0 || cfg.Render.Highlight.Enabled {
		t.Errorf("Render = %+v, want zero", cfg.Render)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		max     int
		wantErr bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit is invalid", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("field", tt.value, tt.max)
			if tt.wantErr && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("error = %v, want ErrFieldTooLong", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"window size at bounds", func(c *Config) { c.Window.Width, c.Window.Height = MinWindowSize, MaxWindowSize }, nil},
		{"window too narrow", func(c *Config) { c.Window.Width = MinWindowSize - 1 }, ErrInvalidValue},
		{"window too tall", func(c *Config) { c.Window.Height = MaxWindowSize + 1 }, ErrInvalidValue},
		{"negative workers", func(c *Config) { c.Render.Workers = -1 }, ErrInvalidValue},
		{"too many workers", func(c *Config) { c.Render.Workers = MaxWorkers + 1 }, ErrInvalidValue},
		{"valid locate timeout", func(c *Config) { c.Browser.LocateTimeout = "15s" }, nil},
		{"bad locate timeout", func(c *Config) { c.Browser.LocateTimeout = "soon" }, ErrInvalidValue},
		{"zero locate timeout", func(c *Config) { c.Browser.LocateTimeout = "0s" }, ErrInvalidValue},
		{"log level case-insensitive", func(c *Config) { c.Log.Level = "DEBUG" }, nil},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }, ErrInvalidValue},
		{"json log format", func(c *Config) { c.Log.Format = "json" }, nil},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidValue},
		{"addr too long", func(c *Config) { c.Server.Addr = strings.Repeat("a", MaxAddrLength+1) }, ErrFieldTooLong},
		{"highlight style too long", func(c *Config) { c.Render.Highlight.Style = strings.Repeat("a", MaxNameLength+1) }, ErrFieldTooLong},
		{"browser bin too long", func(c *Config) { c.Browser.Bin = strings.Repeat("a", MaxPathLength+1) }, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_LocateTimeout(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.LocateTimeout() != 0 {
		t.Errorf("empty timeout = %v, want 0", cfg.LocateTimeout())
	}
	cfg.Browser.LocateTimeout = "1m30s"
	if got := cfg.LocateTimeout(); got != 90*time.Second {
		t.Errorf("LocateTimeout() = %v", got)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "viewer.yaml", `window:
  width: 1280
  height: 800
style: dark
browser:
  noSandbox: true
  locateTimeout: 20s
server:
  addr: "127.0.0.1:7777"
render:
  workers: 2
  highlight:
    enabled: true
    style: monokai
log:
  level: debug
  format: json
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Window.Width != 1280 || cfg.Window.Height != 800 {
			t.Errorf("Window = %+v", cfg.Window)
		}
		if !cfg.Window.Effects {
			t.Error("Window.Effects should keep its default when absent")
		}
		if cfg.Style != "dark" {
			t.Errorf("Style = %q", cfg.Style)
		}
		if !cfg.Browser.NoSandbox || cfg.LocateTimeout() != 20*time.Second {
			t.Errorf("Browser = %+v", cfg.Browser)
		}
		if cfg.Server.Addr != "127.0.0.1:7777" {
			t.Errorf("Server.Addr = %q", cfg.Server.Addr)
		}
		if cfg.Render.Workers != 2 || !cfg.Render.Highlight.Enabled || cfg.Render.Highlight.Style != "monokai" {
			t.Errorf("Render = %+v", cfg.Render)
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
			t.Errorf("Log = %+v", cfg.Log)
		}
	})

	t.Run("effects can be disabled", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "viewer.yaml", "window:\n  effects: false\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Window.Effects {
			t.Error("Window.Effects = true, want false")
		}
	})

	t.Run("empty file yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfig(writeConfig(t, t.TempDir(), "empty.yaml", "\n"))
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if !cfg.Window.Effects {
			t.Error("expected default config")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig("/nonexistent/path/config.yaml"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "invalid.yaml", "style: [unclosed")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "unknown.yaml", "style: dark\nunknownField: x\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown nested field returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "nested.yaml", "window:\n  depth: 3\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "render:\n  workers: -4\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("oversized file returns ErrConfigTooLarge", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "big.yaml", "# "+strings.Repeat("x", MaxInputSize)+"\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigTooLarge) {
			t.Errorf("error = %v, want ErrConfigTooLarge", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("file permissions are not enforced here")
		}
		path := writeConfig(t, t.TempDir(), "unreadable.yaml", "style: dark\n")
		if err := os.Chmod(path, 0o000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer os.Chmod(path, 0o600)

		_, err := LoadConfig(path)
		if err == nil || errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want a read error", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig_ByName - not parallel: changes working directory and env
// ---------------------------------------------------------------------------

func TestLoadConfig_ByName(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME drives os.UserConfigDir on linux only")
	}

	t.Run("working directory first", func(t *testing.T) {
		cwd := t.TempDir()
		xdg := t.TempDir()
		t.Chdir(cwd)
		t.Setenv("XDG_CONFIG_HOME", xdg)

		writeConfig(t, cwd, "work.yaml", "style: local\n")
		writeConfig(t, xdg, "mdview/work.yaml", "style: user\n")

		cfg, err := LoadConfig("work")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style != "local" {
			t.Errorf("Style = %q, want local", cfg.Style)
		}
	})

	t.Run("user config dir with .yml", func(t *testing.T) {
		t.Chdir(t.TempDir())
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)

		writeConfig(t, xdg, "mdview/work.yml", "style: user\n")

		cfg, err := LoadConfig("work")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style != "user" {
			t.Errorf("Style = %q, want user", cfg.Style)
		}
	})

	t.Run("not found lists searched paths", func(t *testing.T) {
		t.Chdir(t.TempDir())
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)

		_, err := LoadConfig("missing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		for _, p := range SearchPaths("missing") {
			if !strings.Contains(err.Error(), p) {
				t.Errorf("error %q should mention %q", err.Error(), p)
			}
		}
		if got := SearchPaths("missing"); len(got) != 4 || got[2] != filepath.Join(xdg, "mdview", "missing.yaml") {
			t.Errorf("SearchPaths() = %v", got)
		}
	})
}
