package render

import (
	"strings"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/logger"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/palette"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

// DefaultMarker is substituted for unresolvable color names. Magenta makes
// a bad name visible on the line instead of crashing the render.
const DefaultMarker = Literal("#ff00ff")

// Resolver maps semantic color names to concrete values against one loaded
// palette. Resolution is pure and idempotent; unresolvable names warn once
// per call and fall back to DefaultMarker.
type Resolver struct {
	pal *palette.Palette
	log *logger.Logger
}

// NewResolver builds a Resolver over the palette.
func NewResolver(pal *palette.Palette, log *logger.Logger) *Resolver {
	return &Resolver{pal: pal, log: log}
}

// Resolve looks up a name in fixed order: reserved sentinel, generated
// variant namespace, base palette, literal hex passthrough, then the
// default marker with a warning.
func (r *Resolver) Resolve(name string) Literal {
	name = strings.TrimSpace(name)

	if palette.IsSentinel(name) {
		return Literal(palette.SentinelValue(name))
	}
	if v, ok := r.pal.Variant(name); ok {
		return Literal(v)
	}
	if v, ok := r.pal.Base(name); ok {
		return Literal(v)
	}
	if palette.IsHex(name) {
		rgb, err := palette.ParseHex(name)
		if err == nil {
			return Literal(rgb.Hex())
		}
	}

	r.log.WithFields(map[string]any{"name": name}).Warn("unresolvable color name, using default marker")
	return DefaultMarker
}

// Style is the four-color selection for one widget segment.
type Style struct {
	ContentBg Literal
	ContentFg Literal
	IconBg    Literal
	IconFg    Literal
}

// StyleFor maps (state, health) to segment colors. Context is deliberately
// not an input: color stays a pure function of state and health so widgets
// cannot bypass the shared palette semantics.
func (r *Resolver) StyleFor(state widget.State, health widget.Health) Style {
	tone := toneFor(state, health)

	if tone == "" {
		// Inactive widgets render muted.
		return Style{
			IconBg:    r.Resolve("surface"),
			IconFg:    r.Resolve("subtle"),
			ContentBg: r.Resolve("surface"),
			ContentFg: r.Resolve("subtle"),
		}
	}

	return Style{
		IconBg:    r.Resolve(tone),
		IconFg:    r.Resolve("background"),
		ContentBg: r.Resolve("surface"),
		ContentFg: r.Resolve(tone + "-light"),
	}
}

// toneFor picks the accent tone. Failure trumps warning trumps info trumps
// good; an inactive widget with ok health has no tone.
func toneFor(state widget.State, health widget.Health) string {
	switch {
	case state == widget.StateFailed || health == widget.HealthError:
		return "error"
	case state == widget.StateDegraded || health == widget.HealthWarning:
		return "warning"
	case health == widget.HealthInfo:
		return "info"
	case health == widget.HealthGood:
		return "success"
	case state == widget.StateInactive:
		return ""
	default:
		return "primary"
	}
}

// AccentStyle colors an external widget with its declared accents instead of
// the state/health mapping.
func (r *Resolver) AccentStyle(accent, accentIcon string) Style {
	if accent == "" {
		accent = "primary"
	}
	if accentIcon == "" {
		accentIcon = accent
	}
	return Style{
		IconBg:    r.Resolve(accentIcon),
		IconFg:    r.Resolve("background"),
		ContentBg: r.Resolve("surface"),
		ContentFg: r.Resolve(accent),
	}
}
