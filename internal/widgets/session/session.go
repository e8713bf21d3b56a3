// Package sessionwidget summarizes the current tmux session: window count
// and attached clients, via host placeholders so the values track the
// server without re-collection.
package sessionwidget

import (
	"os/exec"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/tmux"
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

type Widget struct {
	widget.Base

	inside bool
}

func New() widget.Widget { return &Widget{} }

func (w *Widget) ID() string { return "session" }

func (w *Widget) CheckDependencies() error {
	_, err := exec.LookPath("tmux")
	return err
}

func (w *Widget) Collect(rc *widget.RunContext) error {
	w.inside = tmux.InsideSession()
	return nil
}

func (w *Widget) ContentType() widget.ContentType { return widget.ContentDynamic }

// Presence is conditional: outside a session there is nothing to summarize.
func (w *Widget) Presence() widget.Presence { return widget.PresenceConditional }

func (w *Widget) State() widget.State {
	if w.inside {
		return widget.StateActive
	}
	return widget.StateInactive
}

func (w *Widget) Icon() string { return "" }

func (w *Widget) Render() string {
	return "#{session_windows}󰖯 #{session_attached}󰌢"
}
