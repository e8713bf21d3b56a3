package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/logger"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/palette"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	log, err := logger.New(logger.Options{Level: "error"})
	require.NoError(t, err)
	pal, err := palette.New(palette.BuiltinTheme(), palette.DefaultTiers())
	require.NoError(t, err)
	return NewResolver(pal, log)
}

func TestResolveSentinelFirst(t *testing.T) {
	r := newTestResolver(t)

	assert.Equal(t, Literal("default"), r.Resolve("transparent"))
	assert.Equal(t, Literal("none"), r.Resolve("none"))
	assert.Equal(t, Literal("#ffffff"), r.Resolve("white"))
	assert.Equal(t, Literal("#000000"), r.Resolve("black"))
}

func TestResolveVariantBeforeBase(t *testing.T) {
	r := newTestResolver(t)

	base := r.Resolve("primary")
	variant := r.Resolve("primary-dark")
	assert.NotEqual(t, base, variant)
	assert.NotEqual(t, DefaultMarker, variant)
}

func TestResolveBase(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, Literal("#7aa2f7"), r.Resolve("primary"))
}

func TestResolveLiteralHexPassthrough(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, Literal("#abcdef"), r.Resolve("#AbCdEf"))
}

func TestResolveUnknownFallsBack(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, DefaultMarker, r.Resolve("does-not-exist"))
}

func TestResolveIdempotent(t *testing.T) {
	r := newTestResolver(t)
	first := r.Resolve("primary-light")
	assert.Equal(t, first, r.Resolve("primary-light"))
	assert.Equal(t, first, r.Resolve(string(first)))
}

func TestStyleForToneSelection(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name    string
		state   widget.State
		health  widget.Health
		iconBg  Literal
	}{
		{name: "active ok", state: widget.StateActive, health: widget.HealthOK, iconBg: r.Resolve("primary")},
		{name: "failed trumps", state: widget.StateFailed, health: widget.HealthOK, iconBg: r.Resolve("error")},
		{name: "error health trumps", state: widget.StateActive, health: widget.HealthError, iconBg: r.Resolve("error")},
		{name: "degraded", state: widget.StateDegraded, health: widget.HealthOK, iconBg: r.Resolve("warning")},
		{name: "warning health", state: widget.StateActive, health: widget.HealthWarning, iconBg: r.Resolve("warning")},
		{name: "info", state: widget.StateActive, health: widget.HealthInfo, iconBg: r.Resolve("info")},
		{name: "good", state: widget.StateActive, health: widget.HealthGood, iconBg: r.Resolve("success")},
		{name: "inactive muted", state: widget.StateInactive, health: widget.HealthOK, iconBg: r.Resolve("surface")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := r.StyleFor(tt.state, tt.health)
			assert.Equal(t, tt.iconBg, style.IconBg)
		})
	}
}

func TestStyleForExcludesContext(t *testing.T) {
	// Same (state, health) must yield the same colors; there is no other
	// input to vary.
	r := newTestResolver(t)
	a := r.StyleFor(widget.StateActive, widget.HealthWarning)
	b := r.StyleFor(widget.StateActive, widget.HealthWarning)
	assert.Equal(t, a, b)
}

func TestAccentStyle(t *testing.T) {
	r := newTestResolver(t)

	style := r.AccentStyle("secondary", "")
	assert.Equal(t, r.Resolve("secondary"), style.IconBg)
	assert.Equal(t, r.Resolve("secondary"), style.ContentFg)

	style = r.AccentStyle("", "")
	assert.Equal(t, r.Resolve("primary"), style.IconBg)
}
