package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// LocalConfigPath is the project-local config file location.
const LocalConfigPath = ".carillon/config.yaml"

// Load reads configuration from the first config file found, layered over
// defaults. Search order: explicit path (if non-empty), ./.carillon/,
// ~/.config/carillon/. A missing config file is not an error.
func Load(explicitPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".carillon")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "carillon"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("timing.auto_clear", d.Timing.AutoClear)
	v.SetDefault("timing.attempt_timeout", d.Timing.AttemptTimeout)
	v.SetDefault("words.source", d.Words.Source)
	v.SetDefault("words.cache_ttl", d.Words.CacheTTL)
	v.SetDefault("words.watch", d.Words.Watch)
	v.SetDefault("clips.dir", d.Clips.Dir)
	v.SetDefault("clips.ext", d.Clips.Ext)
	v.SetDefault("tts.endpoint", d.TTS.Endpoint)
	v.SetDefault("tts.lang", d.TTS.Lang)
	v.SetDefault("ui.silent", d.UI.Silent)
	v.SetDefault("ui.quiz_counts", d.UI.QuizCounts)
	v.SetDefault("telemetry.enabled", d.Telemetry.Enabled)
	v.SetDefault("telemetry.exporter", d.Telemetry.Exporter)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("debug", d.Debug)
}

// defaultConfigFile mirrors Config for YAML serialization. Viper reads
// mapstructure tags; writing goes through yaml.v3 so the emitted file uses
// the same key names.
type defaultConfigFile struct {
	Timing struct {
		AutoClear      string `yaml:"auto_clear"`
		AttemptTimeout string `yaml:"attempt_timeout"`
	} `yaml:"timing"`
	Words struct {
		Source   string `yaml:"source"`
		CacheTTL string `yaml:"cache_ttl"`
		Watch    bool   `yaml:"watch"`
	} `yaml:"words"`
	Clips struct {
		Dir string `yaml:"dir"`
		Ext string `yaml:"ext"`
	} `yaml:"clips"`
	TTS struct {
		Endpoint string `yaml:"endpoint"`
		Lang     string `yaml:"lang"`
	} `yaml:"tts"`
	UI struct {
		Silent     bool  `yaml:"silent"`
		QuizCounts []int `yaml:"quiz_counts"`
	} `yaml:"ui"`
	LogFile string `yaml:"log_file"`
}

// WriteDefaultConfig writes a commented starter config file to path.
// It refuses to overwrite an existing file.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	d := Default()
	var f defaultConfigFile
	f.Timing.AutoClear = d.Timing.AutoClear.String()
	f.Timing.AttemptTimeout = d.Timing.AttemptTimeout.String()
	f.Words.Source = d.Words.Source
	f.Words.CacheTTL = d.Words.CacheTTL.String()
	f.Words.Watch = d.Words.Watch
	f.Clips.Dir = d.Clips.Dir
	f.Clips.Ext = d.Clips.Ext
	f.TTS.Endpoint = d.TTS.Endpoint
	f.TTS.Lang = d.TTS.Lang
	f.UI.Silent = d.UI.Silent
	f.UI.QuizCounts = d.UI.QuizCounts
	f.LogFile = d.LogFile

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}

	header := []byte("# carillon configuration\n# Durations accept Go syntax: 500ms, 1.5s, 5m\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
