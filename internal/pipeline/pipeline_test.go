package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/cache"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/config"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/palette"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/registry"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/render"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

// stubWidget is a configurable builtin for pipeline tests. collectCalls is
// shared so tests can prove whether Collect ran.
type stubWidget struct {
	widget.Base

	id           string
	collectCalls *int
	collectErr   error
	presence     widget.Presence
	state        widget.State
	content      string
}

func (w *stubWidget) ID() string { return w.id }

func (w *stubWidget) Collect(rc *widget.RunContext) error {
	*w.collectCalls++
	return w.collectErr
}

func (w *stubWidget) ContentType() widget.ContentType { return widget.ContentStatic }
func (w *stubWidget) Presence() widget.Presence       { return w.presence }
func (w *stubWidget) State() widget.State             { return w.state }
func (w *stubWidget) Render() string                  { return w.content }

func registerStub(t *testing.T, w *stubWidget) {
	t.Helper()
	require.NoError(t, registry.Register(w.id, func() widget.Widget { return w }))
	t.Cleanup(registry.Reset)
}

func newTestPipeline(t *testing.T, cfg *config.Config) (*Pipeline, *cache.Store, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Unix(1000, 0)}
	store, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)
	store = store.WithClock(clock.Now)

	return New(cfg, store, nil), store, clock
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestRenderCacheHitSkipsWidgetExecution(t *testing.T) {
	calls := 0
	registerStub(t, &stubWidget{
		id: "battery", collectCalls: &calls,
		presence: widget.PresenceAlways, state: widget.StateActive, content: "fresh",
	})

	cfg := config.Default()
	cfg.Widgets = "battery"
	cfg.WidgetOptions = map[string]map[string]string{"battery": {"ttl": "30"}}

	p, store, clock := newTestPipeline(t, cfg)

	cached := widget.Record{Content: "cached 82%", State: widget.StateActive, Health: widget.HealthOK, Visible: true}
	require.NoError(t, store.Set("battery.render", cached.Encode()))
	clock.Advance(10 * time.Second)

	result := p.Run()

	require.Len(t, result.Descriptors, 1)
	assert.Equal(t, widget.StateResolved, result.Descriptors[0].State)
	assert.Equal(t, "cached 82%", result.Records["battery"].Content)
	assert.Equal(t, 0, calls, "a render-cache hit must not execute any widget code")
}

func TestRenderCacheExpiryTriggersFreshCollection(t *testing.T) {
	calls := 0
	registerStub(t, &stubWidget{
		id: "battery", collectCalls: &calls,
		presence: widget.PresenceAlways, state: widget.StateActive, content: "fresh",
	})

	cfg := config.Default()
	cfg.Widgets = "battery"
	cfg.WidgetOptions = map[string]map[string]string{"battery": {"ttl": "30"}}

	p, store, clock := newTestPipeline(t, cfg)

	stale := widget.Record{Content: "stale", State: widget.StateActive, Visible: true}
	require.NoError(t, store.Set("battery.render", stale.Encode()))
	clock.Advance(31 * time.Second)

	result := p.Run()

	assert.Equal(t, 1, calls)
	assert.Equal(t, "fresh", result.Records["battery"].Content)
}

func TestSecondRunWithinTTLUsesCache(t *testing.T) {
	calls := 0
	registerStub(t, &stubWidget{
		id: "host", collectCalls: &calls,
		presence: widget.PresenceAlways, state: widget.StateActive, content: "box01",
	})

	cfg := config.Default()
	cfg.Widgets = "host"

	p, _, clock := newTestPipeline(t, cfg)

	p.Run()
	clock.Advance(2 * time.Second) // default render TTL is 5s
	p.Run()

	assert.Equal(t, 1, calls)
}

func TestHiddenWidgetCachedAsSentinel(t *testing.T) {
	calls := 0
	registerStub(t, &stubWidget{
		id: "vpn", collectCalls: &calls,
		presence: widget.PresenceConditional, state: widget.StateInactive, content: "down",
	})

	cfg := config.Default()
	cfg.Widgets = "vpn"

	p, store, _ := newTestPipeline(t, cfg)

	result := p.Run()

	assert.False(t, result.Records["vpn"].Visible)

	encoded, ok := store.Get("vpn.render", time.Minute)
	require.True(t, ok)
	assert.Equal(t, widget.HiddenSentinel, encoded)
}

func TestUnknownWidgetSkipped(t *testing.T) {
	calls := 0
	registerStub(t, &stubWidget{
		id: "host", collectCalls: &calls,
		presence: widget.PresenceAlways, state: widget.StateActive, content: "box01",
	})

	cfg := config.Default()
	cfg.Widgets = "nosuchwidget,host"

	p, _, _ := newTestPipeline(t, cfg)

	result := p.Run()

	require.Len(t, result.Descriptors, 1)
	assert.Equal(t, "host", result.Descriptors[0].ID)
	assert.Equal(t, 1, calls)
}

func TestScriptMissingCapabilitiesMarkedInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vpn.sh")
	require.NoError(t, os.WriteFile(path, []byte(`#!/bin/sh
case "$1" in
  capabilities) echo "collect render" ;;
esac
`), 0o755))

	cfg := config.Default()
	cfg.Widgets = "vpn"
	cfg.WidgetsDir = dir

	p, _, _ := newTestPipeline(t, cfg)

	result := p.Run()

	require.Len(t, result.Descriptors, 1)
	d := result.Descriptors[0]
	assert.Equal(t, widget.SourceScript, d.Source)
	assert.Equal(t, widget.StateInvalid, d.State)
	require.Error(t, d.Err)
	assert.False(t, result.Records["vpn"].Visible)
}

func TestScriptWidgetFullLifecycle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vpn.sh")
	require.NoError(t, os.WriteFile(path, []byte(`#!/bin/sh
case "$1" in
  capabilities) echo "collect content_type presence state render" ;;
  collect) ;;
  content_type) echo static ;;
  presence) echo always ;;
  state) echo active ;;
  render) echo "vpn up" ;;
esac
`), 0o755))

	cfg := config.Default()
	cfg.Widgets = "vpn"
	cfg.WidgetsDir = dir

	p, _, _ := newTestPipeline(t, cfg)

	result := p.Run()

	require.Len(t, result.Descriptors, 1)
	assert.Equal(t, widget.StateResolved, result.Descriptors[0].State)
	assert.Equal(t, "vpn up", result.Records["vpn"].Content)
	assert.True(t, result.Records["vpn"].Visible)
}

func TestExternalWidgetResolvedWithoutValidation(t *testing.T) {
	cfg := config.Default()
	cfg.Widgets = "external:content=#(uptime);icon=U;accent=success;ttl=10"

	p, store, _ := newTestPipeline(t, cfg)

	result := p.Run()

	require.Len(t, result.Descriptors, 1)
	d := result.Descriptors[0]
	assert.Equal(t, "external-1", d.ID)
	assert.Equal(t, widget.SourceExternal, d.Source)
	assert.Equal(t, widget.StateResolved, d.State)

	rec := result.Records["external-1"]
	assert.True(t, rec.Visible)
	assert.Equal(t, "#(uptime)", rec.Content)
	assert.Equal(t, widget.ContentDynamic, rec.ContentType)

	_, ok := store.Get("external-1.render", 10*time.Second)
	assert.True(t, ok)
}

func TestCollectFailureIsIsolated(t *testing.T) {
	failCalls, okCalls := 0, 0
	failing := &stubWidget{
		id: "broken", collectCalls: &failCalls, collectErr: errors.New("probe exploded"),
		presence: widget.PresenceAlways, state: widget.StateActive,
	}
	healthy := &stubWidget{
		id: "host", collectCalls: &okCalls,
		presence: widget.PresenceAlways, state: widget.StateActive, content: "box01",
	}
	require.NoError(t, registry.Register(failing.id, func() widget.Widget { return failing }))
	require.NoError(t, registry.Register(healthy.id, func() widget.Widget { return healthy }))
	t.Cleanup(registry.Reset)

	cfg := config.Default()
	cfg.Widgets = "broken,host"

	p, _, _ := newTestPipeline(t, cfg)

	result := p.Run()

	require.Len(t, result.Descriptors, 2)

	broken := result.Records["broken"]
	assert.Equal(t, widget.StateFailed, broken.State)
	assert.Equal(t, widget.HealthError, broken.Health)
	assert.Equal(t, widget.StateResolved, result.Descriptors[0].State, "collect_failed still resolves")
	require.Error(t, result.Descriptors[0].Err)

	assert.Equal(t, 1, okCalls)
	assert.Equal(t, "box01", result.Records["host"].Content)
}

func TestDescriptorOrderFollowsConfiguration(t *testing.T) {
	calls := 0
	for _, id := range []string{"one", "two", "three"} {
		w := &stubWidget{
			id: id, collectCalls: &calls,
			presence: widget.PresenceAlways, state: widget.StateActive, content: id,
		}
		require.NoError(t, registry.Register(id, func() widget.Widget { return w }))
	}
	t.Cleanup(registry.Reset)

	cfg := config.Default()
	cfg.Widgets = "three,one,two"

	p, _, _ := newTestPipeline(t, cfg)

	result := p.Run()

	var ids []string
	for _, d := range result.Descriptors {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"three", "one", "two"}, ids)
}

func TestBuildSegmentsDropsInvisibleAndColorsExternals(t *testing.T) {
	pal, err := palette.New(palette.BuiltinTheme(), palette.DefaultTiers())
	require.NoError(t, err)
	res := render.NewResolver(pal, nil)

	spec := &widget.ExternalSpec{Content: "hi", Accent: "success", AccentIcon: "success", TTL: 5 * time.Second}
	extDesc := widget.NewDescriptor("external-1", widget.SourceExternal)
	extDesc.External = spec

	result := &Result{
		Descriptors: []*widget.Descriptor{
			widget.NewDescriptor("hidden", widget.SourceBuiltin),
			extDesc,
			widget.NewDescriptor("host", widget.SourceBuiltin),
		},
		Records: map[string]widget.Record{
			"hidden":     {Visible: false},
			"external-1": {Content: "hi", Visible: true},
			"host":       {Content: "box01", State: widget.StateActive, Health: widget.HealthOK, Visible: true},
		},
	}

	segments := BuildSegments(res, result)

	require.Len(t, segments, 2)
	assert.Equal(t, "external-1", segments[0].ID)
	assert.Equal(t, res.Resolve("success"), segments[0].Style.IconBg)
	assert.Equal(t, "host", segments[1].ID)
}
