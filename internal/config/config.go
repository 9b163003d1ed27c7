// Package config provides configuration types and defaults for carillon.
package config

import (
	"fmt"
	"time"
)

// TimingConfig holds the interaction timing knobs.
type TimingConfig struct {
	// AutoClear is how long a rating stays selected before reverting.
	AutoClear time.Duration `mapstructure:"auto_clear"`
	// AttemptTimeout bounds each clip-resolution attempt.
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`
}

// WordsConfig locates the word pool.
type WordsConfig struct {
	// Source is a URL or local file path with one word per line.
	Source string `mapstructure:"source"`
	// CacheTTL is how long a fetched pool is reused before refetching.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// Watch enables reloading when a local Source file changes.
	Watch bool `mapstructure:"watch"`
	// Fallback overrides the built-in fallback pool (optional).
	Fallback []string `mapstructure:"fallback"`
}

// ClipsConfig locates the pre-rendered audio clips.
type ClipsConfig struct {
	// Dir is the directory holding one clip per word.
	Dir string `mapstructure:"dir"`
	// Ext is the clip file extension including the dot.
	Ext string `mapstructure:"ext"`
}

// TTSConfig configures the clip-generation utility.
type TTSConfig struct {
	// Endpoint is the HTTP text-to-speech service base URL.
	Endpoint string `mapstructure:"endpoint"`
	// Lang is the synthesis language code.
	Lang string `mapstructure:"lang"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	// Silent disables all audio output.
	Silent bool `mapstructure:"silent"`
	// QuizCounts are the word counts offered by the quiz trigger keys.
	QuizCounts []int `mapstructure:"quiz_counts"`
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`
}

// TelemetryConfig configures trace export.
type TelemetryConfig struct {
	// Enabled turns span export on.
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects the span exporter: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter"`
	// Endpoint is the OTLP gRPC collector address (exporter: otlp).
	Endpoint string `mapstructure:"endpoint"`
}

// Config holds all configuration options for carillon.
type Config struct {
	Timing    TimingConfig    `mapstructure:"timing"`
	Words     WordsConfig     `mapstructure:"words"`
	Clips     ClipsConfig     `mapstructure:"clips"`
	TTS       TTSConfig       `mapstructure:"tts"`
	UI        UIConfig        `mapstructure:"ui"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	LogFile   string          `mapstructure:"log_file"`
	Debug     bool            `mapstructure:"debug"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Timing: TimingConfig{
			AutoClear:      500 * time.Millisecond,
			AttemptTimeout: 1500 * time.Millisecond,
		},
		Words: WordsConfig{
			Source:   "words.txt",
			CacheTTL: 5 * time.Minute,
			Watch:    true,
		},
		Clips: ClipsConfig{
			Dir: "tts",
			Ext: ".mp3",
		},
		TTS: TTSConfig{
			Endpoint: "http://127.0.0.1:5002/tts",
			Lang:     "en",
		},
		UI: UIConfig{
			QuizCounts: []int{4, 5},
		},
		Telemetry: TelemetryConfig{
			Exporter: "stdout",
		},
		LogFile: "carillon.log",
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.Timing.AutoClear <= 0 {
		return fmt.Errorf("timing.auto_clear must be positive, got %s", c.Timing.AutoClear)
	}
	if c.Timing.AttemptTimeout <= 0 {
		return fmt.Errorf("timing.attempt_timeout must be positive, got %s", c.Timing.AttemptTimeout)
	}
	if c.Words.Source == "" {
		return fmt.Errorf("words.source is required")
	}
	if c.Clips.Dir == "" {
		return fmt.Errorf("clips.dir is required")
	}
	if len(c.UI.QuizCounts) == 0 {
		return fmt.Errorf("ui.quiz_counts must list at least one count")
	}
	for i, n := range c.UI.QuizCounts {
		if n <= 0 {
			return fmt.Errorf("ui.quiz_counts[%d]: count must be positive, got %d", i, n)
		}
	}
	switch c.Telemetry.Exporter {
	case "", "stdout", "otlp":
	default:
		return fmt.Errorf("telemetry.exporter must be \"stdout\" or \"otlp\", got %q", c.Telemetry.Exporter)
	}
	if c.Telemetry.Exporter == "otlp" && c.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry.endpoint is required when telemetry.exporter is \"otlp\"")
	}
	switch c.Theme.Mode {
	case "", "light", "dark":
	default:
		return fmt.Errorf("theme.mode must be \"light\", \"dark\" or empty, got %q", c.Theme.Mode)
	}
	return nil
}
