package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	pkerrors "github.com/josephschmitt/tmux-powerkit-sub000/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseConfig loads a configuration file from disk, validates it, and
// returns the resulting model.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkerrors.NewParseError(path, 0, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, pkerrors.NewParseError(path, extractLine(err), err)
	}

	applyDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault parses the file at path when it exists; a missing file is a
// configuration gap, not an error, and yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return ParseConfig(path)
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Widgets == "" {
		cfg.Widgets = def.Widgets
	}
	if cfg.RenderTTLSeconds == 0 {
		cfg.RenderTTLSeconds = def.RenderTTLSeconds
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}

	return line
}
