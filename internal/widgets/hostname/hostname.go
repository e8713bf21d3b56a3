// Package hostwidget shows the machine's hostname.
package hostwidget

import (
	"os"
	"strings"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

type Widget struct {
	widget.Base

	name string
}

func New() widget.Widget { return &Widget{} }

func (w *Widget) ID() string { return "hostname" }

func (w *Widget) DeclareOptions(opts *widget.Options) {
	// short trims the domain part of an FQDN.
	opts.Declare("short", "true")
}

func (w *Widget) Collect(rc *widget.RunContext) error {
	name, err := os.Hostname()
	if err != nil {
		return err
	}
	if rc.Options.Get("short") == "true" {
		name, _, _ = strings.Cut(name, ".")
	}
	w.name = name
	return nil
}

func (w *Widget) ContentType() widget.ContentType { return widget.ContentStatic }
func (w *Widget) Presence() widget.Presence       { return widget.PresenceAlways }
func (w *Widget) State() widget.State             { return widget.StateActive }
func (w *Widget) Icon() string                    { return "󰒋" }
func (w *Widget) Render() string                  { return w.name }
