package palette

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/logger"
	pkerrors "github.com/josephschmitt/tmux-powerkit-sub000/pkg/errors"
)

// requiredNames are the semantic names the resolver depends on. A theme
// missing any of them gets the builtin default with a logged warning,
// never a fatal error.
var requiredNames = []string{
	"background",
	"foreground",
	"surface",
	"subtle",
	"primary",
	"secondary",
	"success",
	"info",
	"warning",
	"error",
	"gap",
	"session",
	"window",
}

// builtinTheme is the stock palette, used whole when no theme is configured
// and as the per-name fallback for incomplete themes.
var builtinTheme = map[string]string{
	"background": "#1a1b26",
	"foreground": "#c0caf5",
	"surface":    "#292e42",
	"subtle":     "#565f89",
	"primary":    "#7aa2f7",
	"secondary":  "#bb9af7",
	"success":    "#9ece6a",
	"info":       "#7dcfff",
	"warning":    "#e0af68",
	"error":      "#f7768e",
	"gap":        "#16161e",
	"session":    "#7aa2f7",
	"window":     "#3b4261",
}

// BuiltinTheme returns a copy of the stock theme mapping.
func BuiltinTheme() map[string]string {
	theme := make(map[string]string, len(builtinTheme))
	for k, v := range builtinTheme {
		theme[k] = v
	}
	return theme
}

// LoadTheme reads a theme file (semantic-name -> hex color or "none") and
// fills any missing required names from the builtin defaults. An empty path
// returns the builtin theme.
func LoadTheme(path string, log *logger.Logger) (map[string]string, error) {
	if path == "" {
		return BuiltinTheme(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkerrors.NewParseError(path, 0, err)
	}

	var theme map[string]string
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, pkerrors.NewParseError(path, 0, err)
	}
	if theme == nil {
		// An empty or comments-only file unmarshals to a nil map.
		theme = map[string]string{}
	}

	for name, value := range theme {
		if value == "none" || IsHex(value) {
			continue
		}
		log.WithFields(map[string]any{"name": name, "value": value}).Warn("theme entry is not a hex color or none, using default")
		delete(theme, name)
	}

	for _, name := range requiredNames {
		if _, ok := theme[name]; !ok {
			log.WithFields(map[string]any{"name": name}).Warn(fmt.Sprintf("theme %s missing required name, using default", path))
			theme[name] = builtinTheme[name]
		}
	}

	return theme, nil
}
