// Package widgets wires every built-in widget into the registry.
package widgets

import (
	"github.com/josephschmitt/tmux-powerkit-sub000/internal/registry"
	datetimewidget "github.com/josephschmitt/tmux-powerkit-sub000/internal/widgets/datetime"
	gitwidget "github.com/josephschmitt/tmux-powerkit-sub000/internal/widgets/git"
	hostwidget "github.com/josephschmitt/tmux-powerkit-sub000/internal/widgets/hostname"
	sessionwidget "github.com/josephschmitt/tmux-powerkit-sub000/internal/widgets/session"
	sysloadwidget "github.com/josephschmitt/tmux-powerkit-sub000/internal/widgets/sysload"
)

// RegisterBuiltins registers every compiled-in widget. Called once at
// startup, before the pipeline discovers anything.
func RegisterBuiltins() error {
	builtins := map[string]registry.Factory{
		"datetime": datetimewidget.New,
		"git":      gitwidget.New,
		"hostname": hostwidget.New,
		"session":  sessionwidget.New,
		"sysload":  sysloadwidget.New,
	}
	for id, factory := range builtins {
		if err := registry.Register(id, factory); err != nil {
			return err
		}
	}
	return nil
}
