// Package datetimewidget shows the clock. Content is a strftime string the
// host expands on every redraw, so the cached record never goes stale.
package datetimewidget

import (
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

const defaultFormat = "%H:%M"

type Widget struct {
	widget.Base

	format string
}

func New() widget.Widget { return &Widget{} }

func (w *Widget) ID() string { return "datetime" }

func (w *Widget) DeclareOptions(opts *widget.Options) {
	opts.Declare("format", defaultFormat)
}

func (w *Widget) Collect(rc *widget.RunContext) error {
	w.format = rc.Options.Get("format")
	if w.format == "" {
		w.format = defaultFormat
	}
	return nil
}

func (w *Widget) ContentType() widget.ContentType { return widget.ContentDynamic }
func (w *Widget) Presence() widget.Presence       { return widget.PresenceAlways }
func (w *Widget) State() widget.State             { return widget.StateActive }
func (w *Widget) Icon() string                    { return "" }
func (w *Widget) Render() string                  { return w.format }
