package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/config"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	var writeConfig bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Print the tmux configuration snippet that hooks powerkit in",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if writeConfig {
				path, err := writeDefaultConfig(flags.configPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
			}

			interval := int(app.cfg.RenderTTL().Seconds())
			fmt.Fprintln(out, "# powerkit: add to tmux.conf")
			fmt.Fprintf(out, "set -g status-interval %d\n", interval)
			fmt.Fprintln(out, `set -g status-left ""`)
			fmt.Fprintln(out, `set -g status-right ""`)
			if app.cfg.Layout.TwoLine {
				fmt.Fprintln(out, "set -g status 2")
				fmt.Fprintln(out, `set -g status-format[0] "#(powerkit render --line 0)"`)
				fmt.Fprintln(out, `set -g status-format[1] "#(powerkit render --line 1)"`)
			} else {
				fmt.Fprintln(out, "set -g status on")
				fmt.Fprintln(out, `set -g status-format[0] "#(powerkit render --line 0)"`)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&writeConfig, "write-config", false, "Also write the default config file if none exists")

	return cmd
}

// writeDefaultConfig writes the stock configuration; an existing file is
// left untouched.
func writeDefaultConfig(path string) (string, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return "", fmt.Errorf("cannot determine config path")
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
