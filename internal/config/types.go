package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/palette"
)

// Config is the full powerkit configuration document.
type Config struct {
	// Widgets is the ordered, comma-separated widget-id list. Entries may
	// be built-in ids, script ids, or inline "external:" specs.
	Widgets string `yaml:"widgets" validate:"required"`

	// Theme is a path to a theme file; empty selects the builtin palette.
	Theme string `yaml:"theme,omitempty"`

	// WidgetsDir holds script-backed widgets resolved by naming convention.
	WidgetsDir string `yaml:"widgets_dir,omitempty"`

	// CacheDir overrides the default on-disk cache location.
	CacheDir string `yaml:"cache_dir,omitempty"`

	// RenderTTLSeconds is the default render-cache TTL; widgets override it
	// with their own "ttl" option.
	RenderTTLSeconds int `yaml:"render_ttl,omitempty" validate:"omitempty,min=0,max=86400"`

	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`

	Layout Layout `yaml:"layout,omitempty"`
	Tiers  Tiers  `yaml:"tiers,omitempty"`

	// WidgetOptions maps widget id to its key/value options.
	WidgetOptions map[string]map[string]string `yaml:"widget_options,omitempty"`
}

// Layout holds the four independent rendering toggles.
type Layout struct {
	// TwoLine renders the status line across two host lines.
	TwoLine bool `yaml:"two_line,omitempty"`

	// WidgetsFirst places widgets before the session segment.
	WidgetsFirst bool `yaml:"widgets_first,omitempty"`

	// Spacing inserts a neutral gap between segments.
	Spacing bool `yaml:"spacing,omitempty"`

	// Transparent replaces the outermost background with the terminal
	// default color.
	Transparent bool `yaml:"transparent,omitempty"`
}

// Tiers configures the six variant percentages as percent strings with one
// decimal of precision ("20", "12.5").
type Tiers struct {
	Light    string `yaml:"light,omitempty"`
	Lighter  string `yaml:"lighter,omitempty"`
	Lightest string `yaml:"lightest,omitempty"`
	Dark     string `yaml:"dark,omitempty"`
	Darker   string `yaml:"darker,omitempty"`
	Darkest  string `yaml:"darkest,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Widgets:          "session,datetime,hostname",
		RenderTTLSeconds: 5,
		LogLevel:         "info",
	}
}

// WidgetList splits the ordered widget list on commas and trims each entry,
// dropping empties. Displayed order always follows this list.
func (c *Config) WidgetList() []string {
	var ids []string
	for _, entry := range strings.Split(c.Widgets, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			ids = append(ids, entry)
		}
	}
	return ids
}

// Options returns the configured options for one widget id, never nil.
func (c *Config) Options(id string) map[string]string {
	if opts, ok := c.WidgetOptions[id]; ok {
		return opts
	}
	return map[string]string{}
}

// RenderTTL returns the default render-cache TTL as a duration.
func (c *Config) RenderTTL() time.Duration {
	if c.RenderTTLSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.RenderTTLSeconds) * time.Second
}

// TierSet converts the configured tier percentages, falling back to the
// stock tiers for unset fields.
func (c *Config) TierSet() (palette.Tiers, error) {
	tiers := palette.DefaultTiers()

	fields := []struct {
		raw  string
		dest *palette.PerMille
	}{
		{c.Tiers.Light, &tiers.Light},
		{c.Tiers.Lighter, &tiers.Lighter},
		{c.Tiers.Lightest, &tiers.Lightest},
		{c.Tiers.Dark, &tiers.Dark},
		{c.Tiers.Darker, &tiers.Darker},
		{c.Tiers.Darkest, &tiers.Darkest},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		p, err := palette.ParsePerMille(f.raw)
		if err != nil {
			return tiers, err
		}
		*f.dest = p
	}
	return tiers, nil
}

// ResolveCacheDir returns the configured cache directory or the default
// under the user cache dir.
func (c *Config) ResolveCacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "powerkit")
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "powerkit", "config.yaml")
}
