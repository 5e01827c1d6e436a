// Package oak is a retained-mode GUI toolkit core. Widgets describe UI
// declaratively; the framework reconciles a persistent element tree, routes
// input through it with capture/target/bubble phases, computes layout
// incrementally through per-element memoization, and schedules repaints.
//
// The oak package itself is the application shell: windows, the UI-thread
// loop with posted-message marshaling, configuration, and the platform
// backend boundary. The pipeline lives in oak/retained and the basic widget
// set in oak/widgets.
package oak

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config configures the application shell. All fields have usable defaults;
// TOML files override them selectively.
type Config struct {
	Window WindowConfig `toml:"window"`
	Input  InputConfig  `toml:"input"`
	// StatePath is the bbolt database persisting window state across runs.
	// Empty disables persistence.
	StatePath string `toml:"state_path"`
	// LogLevel is "debug", "info", "warn", or "error". Empty leaves logging
	// disabled.
	LogLevel string `toml:"log_level"`
}

// WindowConfig is the default shape of new windows.
type WindowConfig struct {
	Title  string  `toml:"title"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// Scale overrides the backend-reported scale factor when positive.
	Scale float64 `toml:"scale"`
}

// InputConfig tunes event dispatch.
type InputConfig struct {
	// DoubleClickMillis bounds consecutive clicks counted as one sequence.
	DoubleClickMillis int `toml:"double_click_millis"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oak",
			Width:  800,
			Height: 600,
		},
		Input: InputConfig{
			DoubleClickMillis: 500,
		},
	}
}

// LoadConfig reads a TOML config file over the defaults. A missing file is
// not an error; the defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DoubleClickInterval returns the configured click sequence bound.
func (c Config) DoubleClickInterval() time.Duration {
	if c.Input.DoubleClickMillis <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.Input.DoubleClickMillis) * time.Millisecond
}
