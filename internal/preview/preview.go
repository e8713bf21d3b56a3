// Package preview renders built status lines as ANSI in a plain terminal,
// outside tmux. Host placeholders get sample values and style tokens are
// translated through the terminal's detected color profile.
package preview

import (
	"os"
	"regexp"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/palette"
)

// fallbackWidth is used when stdout is not a terminal.
const fallbackWidth = 120

// samplePlaceholders stand in for host-expanded values.
var samplePlaceholders = map[string]string{
	"#S":                     "main",
	"#{session_windows}":     "3",
	"#{session_attached}":    "1",
	"#{active_window_index}": "1",
}

// conditionalPattern matches the active-window conditionals the builder
// emits: #{?#{==:#{active_window_index},N},then,else}.
var conditionalPattern = regexp.MustCompile(`#\{\?#\{==:#\{active_window_index\},([^,}]+)\},([^,]*),([^}]*)\}`)

// Renderer converts tmux-format lines to ANSI.
type Renderer struct {
	output *termenv.Output
	width  int
}

// NewRenderer detects the terminal's color profile and width.
func NewRenderer() *Renderer {
	width := fallbackWidth
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}
	return &Renderer{output: termenv.NewOutput(os.Stdout), width: width}
}

// Width returns the render width in cells.
func (r *Renderer) Width() int { return r.width }

// SetWidth overrides the detected width.
func (r *Renderer) SetWidth(w int) {
	if w > 0 {
		r.width = w
	}
}

// Line translates one built status line into ANSI, truncated to the
// terminal width.
func (r *Renderer) Line(line string) string {
	line = expandConditionals(line)
	for placeholder, sample := range samplePlaceholders {
		line = strings.ReplaceAll(line, placeholder, sample)
	}

	var b strings.Builder
	var fg, bg string
	cells := 0

	for len(line) > 0 && cells < r.width {
		if strings.HasPrefix(line, "#[") {
			end := strings.Index(line, "]")
			if end < 0 {
				break
			}
			fg, bg = applyToken(line[2:end], fg, bg)
			line = line[end+1:]
			continue
		}

		next := strings.Index(line, "#[")
		text := line
		if next >= 0 {
			text = line[:next]
		}
		line = line[len(text):]

		if remaining := r.width - cells; len([]rune(text)) > remaining {
			text = string([]rune(text)[:remaining])
		}
		cells += len([]rune(text))
		b.WriteString(r.styled(text, fg, bg))
	}

	return b.String()
}

// applyToken folds one #[...] token into the current fg/bg selection.
func applyToken(token, fg, bg string) (string, string) {
	for _, part := range strings.Split(token, ",") {
		switch {
		case part == "default":
			fg, bg = "", ""
		case strings.HasPrefix(part, "fg="):
			fg = strings.TrimPrefix(part, "fg=")
		case strings.HasPrefix(part, "bg="):
			bg = strings.TrimPrefix(part, "bg=")
		}
	}
	return fg, bg
}

func (r *Renderer) styled(text, fg, bg string) string {
	s := r.output.String(text)
	if fg != "" && fg != "default" && fg != "none" {
		s = s.Foreground(r.output.Color(fg))
	}
	if bg != "" && bg != "default" && bg != "none" {
		s = s.Background(r.output.Color(bg))
	}
	return s.String()
}

// expandConditionals resolves active-window conditionals against the sample
// active index, so the preview shows one highlighted window.
func expandConditionals(line string) string {
	return conditionalPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := conditionalPattern.FindStringSubmatch(match)
		if parts[1] == samplePlaceholders["#{active_window_index}"] {
			return parts[2]
		}
		return parts[3]
	})
}

// Swatch is one palette entry prepared for display.
type Swatch struct {
	Name  string
	Value string
}

// Swatches lists the palette's base colors sorted by hue, hex entries
// first, sentinels last. Hue ordering groups related tones together in the
// preview output.
func Swatches(pal *palette.Palette) []Swatch {
	names := pal.Names()

	type entry struct {
		swatch Swatch
		hue    float64
		isHex  bool
	}
	entries := make([]entry, 0, len(names))
	for _, name := range names {
		value, ok := pal.Base(name)
		if !ok {
			continue
		}
		e := entry{swatch: Swatch{Name: name, Value: value}}
		if c, err := colorful.Hex(value); err == nil {
			h, _, _ := c.Hsv()
			e.hue = h
			e.isHex = true
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isHex != entries[j].isHex {
			return entries[i].isHex
		}
		if entries[i].hue != entries[j].hue {
			return entries[i].hue < entries[j].hue
		}
		return entries[i].swatch.Name < entries[j].swatch.Name
	})

	swatches := make([]Swatch, len(entries))
	for i, e := range entries {
		swatches[i] = e.swatch
	}
	return swatches
}

// SwatchLine renders one swatch as a colored block plus its name and value.
func (r *Renderer) SwatchLine(s Swatch) string {
	block := r.styled("      ", "", s.Value)
	return block + " " + s.Name + " " + s.Value
}
