// Package config loads the YAML configuration file and carries every
// tunable of the run loop, the browser attachment, and the diagram
// decoders. All values have working defaults; a config file only needs the
// keys it overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bitdittowit/autoduo/internal/diagram"
)

// Config is the top-level configuration.
type Config struct {
	Browser     BrowserConfig       `yaml:"browser"`
	Runner      RunnerConfig        `yaml:"runner"`
	Scanner     ScannerConfig       `yaml:"scanner"`
	Calibration diagram.Calibration `yaml:"calibration"`
}

// BrowserConfig controls Chrome attachment and lifecycle.
type BrowserConfig struct {
	// Attach is the DevTools websocket URL of a running Chrome instance.
	// Empty means launch a local one.
	Attach string `yaml:"attach"`

	// Headless controls the launch mode when Attach is empty.
	Headless bool `yaml:"headless"`

	// URL is navigated to after launch. Empty means use whatever page the
	// browser already shows.
	URL string `yaml:"url"`

	// NavigateTimeout bounds the initial navigation and load wait.
	NavigateTimeout time.Duration `yaml:"navigate_timeout"`
}

// RunnerConfig controls the exercise loop.
type RunnerConfig struct {
	// PollInterval is the sleep between loop cycles.
	PollInterval time.Duration `yaml:"poll_interval"`

	// SettleDelay is the wait after performing answer actions before
	// looking for the continue button, so the page can react.
	SettleDelay time.Duration `yaml:"settle_delay"`

	// PairClickDelay staggers multi-element clicks.
	PairClickDelay time.Duration `yaml:"pair_click_delay"`

	// MaxExercises stops the loop after this many solved exercises.
	// Zero means run until stopped.
	MaxExercises int `yaml:"max_exercises"`
}

// ScannerConfig carries the DOM selectors the exercise snapshot is built
// from. Each entry is a fallback list tried in order, so a vendor markup
// change usually needs only a config edit.
type ScannerConfig struct {
	Container []string `yaml:"container"`
	Header    []string `yaml:"header"`
	Equation  []string `yaml:"equation"`
	TextInput []string `yaml:"text_input"`
	Choices   []string `yaml:"choices"`
	Continue  []string `yaml:"continue"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:        false,
			NavigateTimeout: 30 * time.Second,
		},
		Runner: RunnerConfig{
			PollInterval:   2 * time.Second,
			SettleDelay:    800 * time.Millisecond,
			PairClickDelay: 300 * time.Millisecond,
		},
		Scanner: ScannerConfig{
			Container: []string{`[data-test="challenge"]`, ".challenge-container"},
			Header:    []string{`[data-test="challenge-header"]`, ".challenge-header"},
			Equation:  []string{".katex", `[data-test="challenge-equation"]`},
			TextInput: []string{`input[type="text"]`, `[data-test="challenge-text-input"]`},
			Choices:   []string{`[data-test="challenge-choice"]`, ".challenge-choice"},
			Continue:  []string{`[data-test="player-next"]`, `button[data-test="continue"]`},
		},
		Calibration: diagram.DefaultCalibration(),
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults refills zero values a partial file left behind.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Browser.NavigateTimeout <= 0 {
		c.Browser.NavigateTimeout = def.Browser.NavigateTimeout
	}
	if c.Runner.PollInterval <= 0 {
		c.Runner.PollInterval = def.Runner.PollInterval
	}
	if c.Runner.SettleDelay <= 0 {
		c.Runner.SettleDelay = def.Runner.SettleDelay
	}
	if c.Runner.PairClickDelay <= 0 {
		c.Runner.PairClickDelay = def.Runner.PairClickDelay
	}
	if len(c.Scanner.Container) == 0 {
		c.Scanner.Container = def.Scanner.Container
	}
	if len(c.Scanner.Header) == 0 {
		c.Scanner.Header = def.Scanner.Header
	}
	if len(c.Scanner.Equation) == 0 {
		c.Scanner.Equation = def.Scanner.Equation
	}
	if len(c.Scanner.TextInput) == 0 {
		c.Scanner.TextInput = def.Scanner.TextInput
	}
	if len(c.Scanner.Choices) == 0 {
		c.Scanner.Choices = def.Scanner.Choices
	}
	if len(c.Scanner.Continue) == 0 {
		c.Scanner.Continue = def.Scanner.Continue
	}
	if len(c.Calibration.FillPalette) == 0 {
		c.Calibration = def.Calibration
	}
}
