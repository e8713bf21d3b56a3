// Package widget defines the contract every status-line widget satisfies and
// the supporting value types the pipeline exchanges with widgets.
package widget

import (
	"strconv"
	"time"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/logger"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/store"
)

// DataCache is the widget-facing view of the data cache. Keys handed in are
// transparently prefixed with the widget id by the pipeline, so expensive
// probe results from different widgets never collide.
type DataCache interface {
	Get(key string, ttl time.Duration) (string, bool)
	Set(key, value string) error
}

// RunContext carries everything a widget may touch during collection. It is
// passed explicitly into hooks rather than held in ambient globals.
type RunContext struct {
	// Store is the widget's own scoped datastore handle.
	Store *store.Scope

	// Cache is the widget-prefixed data cache for expensive probes.
	Cache DataCache

	// Options holds the widget's configured options merged over its
	// declared defaults.
	Options *Options

	// Log is scoped to the widget id.
	Log *logger.Logger
}

// Widget is the contract all widgets implement. Collect runs first and may
// fail; the accessor methods report on whatever Collect gathered. Embedding
// Base supplies the documented defaults for the optional accessors.
type Widget interface {
	ID() string
	Collect(rc *RunContext) error
	ContentType() ContentType
	Presence() Presence
	State() State
	Health() Health
	Context() string
	Icon() string
	Render() string
}

// DependencyChecker is an optional hook: widgets whose probes need external
// tools report a missing dependency here and are marked init_failed instead
// of failing at collection time. Detected by type assertion.
type DependencyChecker interface {
	CheckDependencies() error
}

// OptionDeclarer is an optional hook for declaring option defaults before
// collection. Detected by type assertion.
type OptionDeclarer interface {
	DeclareOptions(opts *Options)
}

// KeybindingBinder is an optional hook for widgets that install tmux key
// bindings (popup helpers and the like). Detected by type assertion.
type KeybindingBinder interface {
	SetupKeybindings() error
}

// Base provides the default bodies for the optional parts of the Widget
// contract: health defaults to ok, context and icon to empty.
type Base struct{}

func (Base) Health() Health  { return HealthOK }
func (Base) Context() string { return "" }
func (Base) Icon() string    { return "" }

// Options is a per-widget key/value option set. Configured values win over
// declared defaults.
type Options struct {
	values   map[string]string
	defaults map[string]string
}

// NewOptions wraps the configured values for one widget.
func NewOptions(values map[string]string) *Options {
	if values == nil {
		values = map[string]string{}
	}
	return &Options{values: values, defaults: map[string]string{}}
}

// Declare registers a default for key without overriding a configured value.
func (o *Options) Declare(key, def string) {
	o.defaults[key] = def
}

// Get returns the configured value for key, falling back to its declared
// default and then to "".
func (o *Options) Get(key string) string {
	if v, ok := o.values[key]; ok {
		return v
	}
	return o.defaults[key]
}

// Int returns the option as an integer, or fallback when unset or invalid.
func (o *Options) Int(key string, fallback int) int {
	v := o.Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// Duration returns the option as a duration. Bare integers are seconds;
// Go duration syntax is also accepted.
func (o *Options) Duration(key string, fallback time.Duration) time.Duration {
	v := o.Get(key)
	if v == "" {
		return fallback
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return fallback
}

// TTL returns the widget's configured cache TTL via the reserved "ttl"
// option.
func (o *Options) TTL(fallback time.Duration) time.Duration {
	return o.Duration("ttl", fallback)
}
