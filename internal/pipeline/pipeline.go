// Package pipeline drives widgets through discovery, validation,
// initialization, cache-aware collection, and resolution, producing one
// normalized output record per widget.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/cache"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/config"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/logger"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/registry"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/render"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/store"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
	scriptwidget "github.com/josephschmitt/tmux-powerkit-sub000/internal/widgets/script"
	pkerrors "github.com/josephschmitt/tmux-powerkit-sub000/pkg/errors"
)

// Pipeline carries all state for one run explicitly: configuration, cache,
// datastore, and the ordered per-widget records. No globals, so runs are
// independently testable and repeatable.
type Pipeline struct {
	cfg   *config.Config
	cache *cache.Store
	data  *store.Datastore
	log   *logger.Logger
}

// Result is the outcome of one full run. Descriptors preserve the
// configured list order, which is also the displayed order.
type Result struct {
	Descriptors []*widget.Descriptor
	Records     map[string]widget.Record
}

// New assembles a Pipeline.
func New(cfg *config.Config, cacheStore *cache.Store, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:   cfg,
		cache: cacheStore,
		data:  store.New(log),
		log:   log,
	}
}

// Run executes the full lifecycle for every configured widget. A stage
// failure is recorded on its widget and never aborts the run for others.
func (p *Pipeline) Run() *Result {
	descriptors := p.discover()

	result := &Result{
		Descriptors: descriptors,
		Records:     make(map[string]widget.Record, len(descriptors)),
	}
	for _, d := range descriptors {
		result.Records[d.ID] = p.process(d)
	}
	return result
}

// discover parses the ordered widget list into descriptors. Missing script
// files are skipped with a warning; discovery continues.
func (p *Pipeline) discover() []*widget.Descriptor {
	var descriptors []*widget.Descriptor
	externals := 0

	for _, entry := range p.cfg.WidgetList() {
		if widget.IsExternalSpec(entry) {
			spec, err := widget.ParseExternalSpec(entry)
			if err != nil {
				p.log.Error(err, "skipping malformed external widget spec")
				continue
			}
			externals++
			d := widget.NewDescriptor(fmt.Sprintf("external-%d", externals), widget.SourceExternal)
			d.External = spec
			descriptors = append(descriptors, d)
			continue
		}

		if _, ok := registry.Lookup(entry); ok {
			descriptors = append(descriptors, widget.NewDescriptor(entry, widget.SourceBuiltin))
			continue
		}

		path := p.scriptPath(entry)
		if path == "" {
			p.log.WithWidget(entry).Warn("widget not found, skipping")
			continue
		}
		d := widget.NewDescriptor(entry, widget.SourceScript)
		d.Path = path
		descriptors = append(descriptors, d)
	}
	return descriptors
}

// scriptPath resolves a script widget by naming convention under the
// configured widgets dir.
func (p *Pipeline) scriptPath(id string) string {
	if p.cfg.WidgetsDir == "" {
		return ""
	}
	for _, candidate := range []string{id + ".sh", id} {
		path := filepath.Join(p.cfg.WidgetsDir, candidate)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0o111 == 0 {
			continue
		}
		return path
	}
	return ""
}

// process runs one widget through the remaining stages and returns its
// record. The render-cache lookup comes first: a hit returns with zero
// widget execution.
func (p *Pipeline) process(d *widget.Descriptor) widget.Record {
	opts := widget.NewOptions(p.cfg.Options(d.ID))
	ttl := opts.TTL(p.cfg.RenderTTL())
	if d.Source == widget.SourceExternal {
		ttl = d.External.TTL
	}
	renderKey := d.ID + ".render"

	if encoded, ok := p.cache.Get(renderKey, ttl); ok {
		if rec, err := widget.DecodeRecord(encoded); err == nil {
			_ = d.Transition(widget.StateResolved)
			return rec
		}
		// Corrupt cache entry: fall through to a fresh collection.
		_ = p.cache.Delete(renderKey)
	}

	if d.Source == widget.SourceExternal {
		return p.processExternal(d, renderKey)
	}
	return p.processWidget(d, opts, renderKey)
}

// processExternal materializes an inline spec. External widgets skip
// validation and initialization and are always visible; command content
// stays a placeholder the host executes.
func (p *Pipeline) processExternal(d *widget.Descriptor, renderKey string) widget.Record {
	contentType := widget.ContentStatic
	if d.External.IsCommand() {
		contentType = widget.ContentDynamic
	}

	rec := widget.Record{
		Icon:        d.External.Icon,
		Content:     d.External.Content,
		ContentType: contentType,
		Presence:    widget.PresenceAlways,
		State:       widget.StateActive,
		Health:      widget.HealthOK,
		Visible:     true,
	}

	p.cacheRecord(d, renderKey, rec)
	_ = d.Transition(widget.StateResolved)
	return rec
}

func (p *Pipeline) processWidget(d *widget.Descriptor, opts *widget.Options, renderKey string) widget.Record {
	w, ok := p.validate(d)
	if !ok {
		return widget.Record{Presence: widget.PresenceHidden}
	}

	if !p.initialize(d, w, opts) {
		return widget.Record{Presence: widget.PresenceHidden}
	}

	return p.collect(d, w, opts, renderKey)
}

// validate checks the widget exposes the mandatory contract. Built-ins
// satisfy it statically; scripts are probed in an isolated process.
func (p *Pipeline) validate(d *widget.Descriptor) (widget.Widget, bool) {
	switch d.Source {
	case widget.SourceBuiltin:
		factory, ok := registry.Lookup(d.ID)
		if !ok {
			d.Fail(widget.StateInvalid, pkerrors.NewWidgetError(d.ID, "validate", fmt.Errorf("not registered")))
			return nil, false
		}
		_ = d.Transition(widget.StateValidated)
		return factory(), true

	case widget.SourceScript:
		caps, err := scriptwidget.Probe(d.Path)
		if err != nil {
			d.Fail(widget.StateInvalid, pkerrors.NewWidgetError(d.ID, "validate", err))
			p.log.WithWidget(d.ID).Error(err, "widget validation failed")
			return nil, false
		}
		if missing := scriptwidget.Missing(caps); len(missing) > 0 {
			err := pkerrors.NewWidgetError(d.ID, "validate", fmt.Errorf("missing capabilities %v", missing))
			d.Fail(widget.StateInvalid, err)
			p.log.WithWidget(d.ID).Error(err, "widget validation failed")
			return nil, false
		}
		_ = d.Transition(widget.StateValidated)
		return scriptwidget.New(d.ID, d.Path, caps), true
	}

	d.Fail(widget.StateInvalid, pkerrors.NewWidgetError(d.ID, "validate", fmt.Errorf("unknown source %q", d.Source)))
	return nil, false
}

// initialize establishes the owner context and runs the optional hooks.
// A failed dependency check marks init_failed; the pipeline continues for
// other widgets.
func (p *Pipeline) initialize(d *widget.Descriptor, w widget.Widget, opts *widget.Options) bool {
	if declarer, ok := w.(widget.OptionDeclarer); ok {
		declarer.DeclareOptions(opts)
	}

	if checker, ok := w.(widget.DependencyChecker); ok {
		if err := checker.CheckDependencies(); err != nil {
			d.Fail(widget.StateInitFailed, pkerrors.NewWidgetError(d.ID, "init", err))
			p.log.WithWidget(d.ID).Error(err, "widget dependency check failed")
			return false
		}
	}

	if binder, ok := w.(widget.KeybindingBinder); ok {
		if err := binder.SetupKeybindings(); err != nil {
			p.log.WithWidget(d.ID).Error(err, "widget keybinding setup failed")
		}
	}

	_ = d.Transition(widget.StateInitialized)
	return true
}

// collect clears the widget's scoped data, runs its collection hook, and
// computes the output record. Hidden outcomes are cached as the HIDDEN
// sentinel so the check is not repeated every cycle.
func (p *Pipeline) collect(d *widget.Descriptor, w widget.Widget, opts *widget.Options, renderKey string) widget.Record {
	scope := p.data.Scope(d.ID)
	scope.ClearAll()

	rc := &widget.RunContext{
		Store:   scope,
		Cache:   prefixedCache{store: p.cache, prefix: d.ID + "."},
		Options: opts,
		Log:     p.log.WithWidget(d.ID),
	}

	collectErr := w.Collect(rc)
	if collectErr != nil {
		d.Fail(widget.StateCollectFailed, pkerrors.NewWidgetError(d.ID, "collect", collectErr))
		p.log.WithWidget(d.ID).Error(collectErr, "widget collection failed")
	}

	presence := w.Presence()
	state := w.State()
	health := w.Health()
	if collectErr != nil {
		state = widget.StateFailed
		health = widget.HealthError
	}

	rec := widget.Record{
		Icon:        w.Icon(),
		Content:     w.Render(),
		ContentType: w.ContentType(),
		Presence:    presence,
		State:       state,
		Health:      health,
		Context:     w.Context(),
		Visible:     widget.Visibility(presence, state),
	}

	p.cacheRecord(d, renderKey, rec)
	_ = d.Transition(widget.StateResolved)
	return rec
}

func (p *Pipeline) cacheRecord(d *widget.Descriptor, renderKey string, rec widget.Record) {
	if err := p.cache.Set(renderKey, rec.Encode()); err != nil {
		p.log.WithWidget(d.ID).Error(err, "render cache write failed")
	}
}

// Datastore exposes the run's scoped datastore (the privileged accessor is
// reserved for pipeline consumers such as the doctor view).
func (p *Pipeline) Datastore() *store.Datastore {
	return p.data
}

// prefixedCache is the widget-facing data cache: keys are transparently
// prefixed with the widget id to keep the flat namespace collision-free.
type prefixedCache struct {
	store  *cache.Store
	prefix string
}

func (c prefixedCache) Get(key string, ttl time.Duration) (string, bool) {
	return c.store.Get(c.prefix+key, ttl)
}

func (c prefixedCache) Set(key, value string) error {
	return c.store.Set(c.prefix+key, value)
}

// BuildSegments converts a run result into ordered builder segments,
// dropping invisible records. External widgets color by their declared
// accents; everything else by the (state, health) mapping.
func BuildSegments(res *render.Resolver, result *Result) []render.WidgetSegment {
	var segments []render.WidgetSegment
	for _, d := range result.Descriptors {
		rec, ok := result.Records[d.ID]
		if !ok || !rec.Visible {
			continue
		}

		if d.Source == widget.SourceExternal && d.External != nil {
			segments = append(segments, render.WidgetSegment{
				ID:      d.ID,
				Icon:    rec.Icon,
				Content: rec.Content,
				Style:   res.AccentStyle(d.External.Accent, d.External.AccentIcon),
			})
			continue
		}
		segments = append(segments, render.RecordSegment(d.ID, rec, res))
	}
	return segments
}
