// Package config handles application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tshuldberg/WyVoice/internal/types"
)

const (
	appName        = "wyvoice"
	configFileName = "config.json"
)

// AutoStopPauseOptionsMs are the selectable silence auto-stop delays.
var AutoStopPauseOptionsMs = []int{1000, 1500, 2000, 3000, 5000, 8000}

// SilenceThresholdOptions are the selectable loudness thresholds below which
// audio counts as silence.
var SilenceThresholdOptions = []float64{0.01, 0.02, 0.03, 0.04, 0.06, 0.08}

const (
	defaultAutoStopPauseMs  = 3000
	defaultSilenceThreshold = 0.02
	defaultLanguage         = "en"
)

// Config represents the application configuration.
type Config struct {
	AutoStopPauseMs  int                  `json:"auto_stop_pause_ms"`
	SilenceThreshold float64              `json:"silence_threshold"`
	FormattingMode   types.FormattingMode `json:"formatting_mode"`

	// DeviceID selects the capture input device; "" means system default.
	DeviceID string `json:"device_id,omitempty"`

	// Language is the dictation language passed to the recognition engine,
	// or "auto" to let it detect.
	Language string `json:"language"`

	// Recognition engine paths. Empty WhisperCLI triggers PATH discovery.
	WhisperCLI   string `json:"whisper_cli,omitempty"`
	WhisperModel string `json:"whisper_model,omitempty"`

	// API access for the Whisper API provider and transcript enhancement.
	APIKey     string `json:"api_key,omitempty"`
	APIBaseURL string `json:"api_base_url,omitempty"`

	// AIEnhancement runs the formatted transcript through an LLM cleanup
	// pass before delivery.
	AIEnhancement bool `json:"ai_enhancement"`
}

// Load loads configuration from the config file.
// Returns default config if the file doesn't exist; unknown or out-of-range
// values are normalized back to defaults rather than rejected.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.normalize()
	return &cfg, nil
}

// Save persists the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("get config path: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Snapshot returns the read-only settings view consumed by the dictation core.
func (c *Config) Snapshot() types.Snapshot {
	return types.Snapshot{
		AutoStopPauseMs:  c.AutoStopPauseMs,
		SilenceThreshold: c.SilenceThreshold,
		FormattingMode:   c.FormattingMode,
		Language:         c.Language,
	}
}

// SetAutoStopPauseMs validates and persists a new auto-stop delay.
func (c *Config) SetAutoStopPauseMs(ms int) error {
	if !slices.Contains(AutoStopPauseOptionsMs, ms) {
		return fmt.Errorf("invalid auto-stop pause: %dms", ms)
	}
	c.AutoStopPauseMs = ms
	return c.Save()
}

// SetSilenceThreshold validates and persists a new silence threshold.
func (c *Config) SetSilenceThreshold(v float64) error {
	if !slices.Contains(SilenceThresholdOptions, v) {
		return fmt.Errorf("invalid silence threshold: %v", v)
	}
	c.SilenceThreshold = v
	return c.Save()
}

// SetFormattingMode validates and persists a new formatting mode.
func (c *Config) SetFormattingMode(mode types.FormattingMode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid formatting mode: %q", mode)
	}
	c.FormattingMode = mode
	return c.Save()
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		AutoStopPauseMs:  defaultAutoStopPauseMs,
		SilenceThreshold: defaultSilenceThreshold,
		FormattingMode:   types.FormattingBasic,
		Language:         defaultLanguage,
	}
}

// normalize clamps enumerated fields to their allowed values.
func (c *Config) normalize() {
	if !slices.Contains(AutoStopPauseOptionsMs, c.AutoStopPauseMs) {
		c.AutoStopPauseMs = defaultAutoStopPauseMs
	}
	if !slices.Contains(SilenceThresholdOptions, c.SilenceThreshold) {
		c.SilenceThreshold = defaultSilenceThreshold
	}
	if !c.FormattingMode.Valid() {
		c.FormattingMode = types.FormattingBasic
	}
	if c.Language == "" {
		c.Language = defaultLanguage
	}
}

// Dir returns the directory holding all persistent application state.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
