// Package scriptwidget adapts executable files into the widget contract.
// A script widget answers subcommands on stdout: capabilities, collect,
// content_type, presence, state, health, context, icon, render.
package scriptwidget

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widget"
)

// subcommandTimeout bounds each script invocation.
const subcommandTimeout = 5 * time.Second

// Required is the mandatory capability set. Scripts missing any of these
// are marked invalid at validation time. health, context, icon and the
// hooks are optional.
var Required = []string{"collect", "content_type", "presence", "state", "render"}

// Probe runs the script's capabilities subcommand in isolation from the
// pipeline and returns the declared capability names.
func Probe(path string) ([]string, error) {
	out, err := invoke(path, "capabilities")
	if err != nil {
		return nil, err
	}
	return strings.Fields(strings.ReplaceAll(out, ",", " ")), nil
}

// Missing returns the required capabilities absent from caps.
func Missing(caps []string) []string {
	have := make(map[string]bool, len(caps))
	for _, c := range caps {
		have[c] = true
	}
	var missing []string
	for _, want := range Required {
		if !have[want] {
			missing = append(missing, want)
		}
	}
	return missing
}

// Widget runs one script through the widget contract. Collect executes the
// script's collect hook and then snapshots every accessor subcommand, so
// the accessor methods never spawn processes themselves.
type Widget struct {
	widget.Base

	id   string
	path string
	caps map[string]bool

	contentType widget.ContentType
	presence    widget.Presence
	state       widget.State
	health      widget.Health
	context     string
	icon        string
	content     string
}

// New wraps the script at path under the given widget id.
func New(id, path string, caps []string) *Widget {
	capSet := make(map[string]bool, len(caps))
	for _, c := range caps {
		capSet[c] = true
	}
	return &Widget{id: id, path: path, caps: capSet, health: widget.HealthOK}
}

func (w *Widget) ID() string { return w.id }

// Collect runs the script's collect hook, then snapshots its accessors.
func (w *Widget) Collect(rc *widget.RunContext) error {
	if _, err := invoke(w.path, "collect"); err != nil {
		return fmt.Errorf("collect: %w", err)
	}

	contentType, err := invoke(w.path, "content_type")
	if err != nil {
		return fmt.Errorf("content_type: %w", err)
	}
	presence, err := invoke(w.path, "presence")
	if err != nil {
		return fmt.Errorf("presence: %w", err)
	}
	state, err := invoke(w.path, "state")
	if err != nil {
		return fmt.Errorf("state: %w", err)
	}
	content, err := invoke(w.path, "render")
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	w.contentType = widget.ParseContentType(contentType)
	w.presence = widget.ParsePresence(presence)
	w.state = widget.ParseState(state)
	w.content = content

	// Optional accessors: only call what the script declares.
	if w.caps["health"] {
		if health, err := invoke(w.path, "health"); err == nil {
			w.health = widget.ParseHealth(health)
		}
	}
	if w.caps["context"] {
		if context, err := invoke(w.path, "context"); err == nil {
			w.context = context
		}
	}
	if w.caps["icon"] {
		if icon, err := invoke(w.path, "icon"); err == nil {
			w.icon = icon
		}
	}

	return nil
}

func (w *Widget) ContentType() widget.ContentType { return w.contentType }
func (w *Widget) Presence() widget.Presence       { return w.presence }
func (w *Widget) State() widget.State             { return w.state }
func (w *Widget) Health() widget.Health           { return w.health }
func (w *Widget) Context() string                 { return w.context }
func (w *Widget) Icon() string                    { return w.icon }
func (w *Widget) Render() string                  { return w.content }

func invoke(path string, subcommand string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), subcommandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, subcommand).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
