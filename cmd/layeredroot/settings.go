package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Settings holds process-level knobs kept outside the directive
// configuration: where to listen and how to log.
type Settings struct {
	Listen    string `yaml:"listen"`
	LogLevel  string `yaml:"log_level"`
	AccessLog *bool  `yaml:"access_log"`
}

func defaultSettings() Settings {
	on := true
	return Settings{
		Listen:    ":8080",
		LogLevel:  "info",
		AccessLog: &on,
	}
}

// loadSettings reads an optional YAML settings file, filling unset fields
// with defaults. An empty name returns the defaults.
func loadSettings(fsys afero.Fs, name string) (Settings, error) {
	s := defaultSettings()
	if name == "" {
		return s, nil
	}

	data, err := afero.ReadFile(fsys, name)
	if err != nil {
		return s, err
	}
	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return s, fmt.Errorf("%s: %w", name, err)
	}

	if loaded.Listen != "" {
		s.Listen = loaded.Listen
	}
	if loaded.LogLevel != "" {
		s.LogLevel = loaded.LogLevel
	}
	if loaded.AccessLog != nil {
		s.AccessLog = loaded.AccessLog
	}
	return s, nil
}

func (s Settings) slogLevel() (slog.Level, error) {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s.LogLevel)
}
